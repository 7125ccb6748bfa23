package game

import (
	"bufio"
	"log"
	"math/rand"
	"os"
	"strings"
)

// WordMode controls which pool the secret word is drawn from.
type WordMode string

const (
	WordModeDisabled WordMode = "disabled" // normal words only
	WordModePossible WordMode = "possible" // normal and spicy words, equally likely
	WordModeForced   WordMode = "forced"   // spicy words only
)

// ValidWordMode reports whether s names a known mode.
func ValidWordMode(s string) bool {
	switch WordMode(s) {
	case WordModeDisabled, WordModePossible, WordModeForced:
		return true
	}
	return false
}

// Fallbacks used when a word file is missing or empty.
var (
	fallbackWords      = []string{"Apfel", "Banane", "Auto", "Haus", "Baum"}
	fallbackSpicyWords = []string{"Massage", "Kuss", "Romantik", "Verführung"}
)

// WordSource loads the normal and spicy word pools from line-delimited files.
type WordSource struct {
	WordsFile      string
	SpicyWordsFile string
}

func loadWordFile(path string, fallback []string) []string {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("word file %s unreadable, using fallback list: %v", path, err)
		}
		return fallback
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			words = append(words, line)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("word file %s unreadable, using fallback list: %v", path, err)
		return fallback
	}
	if len(words) == 0 {
		log.Printf("word file %s is empty, using fallback list", path)
		return fallback
	}
	return words
}

// Words returns the normal word pool.
func (ws WordSource) Words() []string {
	return loadWordFile(ws.WordsFile, fallbackWords)
}

// SpicyWords returns the spicy word pool.
func (ws WordSource) SpicyWords() []string {
	return loadWordFile(ws.SpicyWordsFile, fallbackSpicyWords)
}

// Pool resolves the active pool for the given mode.
func (ws WordSource) Pool(mode WordMode) []string {
	switch mode {
	case WordModeForced:
		return ws.SpicyWords()
	case WordModePossible:
		return append(ws.Words(), ws.SpicyWords()...)
	default:
		return ws.Words()
	}
}

// PickWord draws uniformly from the resolved pool.
func (ws WordSource) PickWord(mode WordMode, rng *rand.Rand) string {
	pool := ws.Pool(mode)
	return pool[rng.Intn(len(pool))]
}
