// Package leaderboard persists win counters to a small JSON file. Every
// mutation flushes to disk; durability is crash-only, a crash between the
// in-memory credit and the flush loses the most recent win.
package leaderboard

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
)

// Store holds the two counter sets, keyed by lower-cased player name.
type Store struct {
	mu   sync.Mutex
	path string
	data counters
}

type counters struct {
	Players   map[string]int `json:"players"`
	Impostors map[string]int `json:"impostors"`
}

// Entry is one leaderboard row with a display-formatted name.
type Entry struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

// Open loads the leaderboard file, creating it if absent. A corrupt file is
// replaced with an empty board rather than failing the process.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		data: counters{
			Players:   make(map[string]int),
			Impostors: make(map[string]int),
		},
	}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := s.flushLocked(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("reading leaderboard: %w", err)
	default:
		var data counters
		if err := json.Unmarshal(raw, &data); err != nil {
			log.Printf("leaderboard file %s is corrupt, starting fresh: %v", path, err)
			if err := s.flushLocked(); err != nil {
				return nil, err
			}
			break
		}
		if data.Players == nil {
			data.Players = make(map[string]int)
		}
		if data.Impostors == nil {
			data.Impostors = make(map[string]int)
		}
		s.data = data
	}
	return s, nil
}

func (s *Store) flushLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding leaderboard: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		return fmt.Errorf("writing leaderboard: %w", err)
	}
	return nil
}

func (s *Store) addWin(set map[string]int, name string) {
	set[strings.ToLower(name)]++
	if err := s.flushLocked(); err != nil {
		log.Printf("leaderboard flush failed: %v", err)
	}
}

// AddPlayerWin credits a win as a regular player.
func (s *Store) AddPlayerWin(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addWin(s.data.Players, name)
}

// AddImpostorWin credits a win as the impostor.
func (s *Store) AddImpostorWin(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addWin(s.data.Impostors, name)
}

// FormatName uppercases the first letter and lowercases the rest, for display.
func FormatName(name string) string {
	if name == "" {
		return ""
	}
	r := []rune(strings.ToLower(name))
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func top(set map[string]int, limit int) []Entry {
	entries := make([]Entry, 0, len(set))
	for name, wins := range set {
		entries = append(entries, Entry{Name: FormatName(name), Wins: wins})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		return entries[i].Name < entries[j].Name
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// TopPlayers returns player winners sorted by wins. limit <= 0 means all.
func (s *Store) TopPlayers(limit int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return top(s.data.Players, limit)
}

// TopImpostors returns impostor winners sorted by wins. limit <= 0 means all.
func (s *Store) TopImpostors(limit int) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return top(s.data.Impostors, limit)
}

// Reset clears the selected counter set: "players", "impostors" or "both".
func (s *Store) Reset(which string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch which {
	case "players":
		s.data.Players = make(map[string]int)
	case "impostors":
		s.data.Impostors = make(map[string]int)
	case "both":
		s.data.Players = make(map[string]int)
		s.data.Impostors = make(map[string]int)
	default:
		return fmt.Errorf("invalid reset option %q", which)
	}
	return s.flushLocked()
}

// Wins reports the current counters for a name.
func (s *Store) Wins(name string) (player, impostor int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(name)
	return s.data.Players[key], s.data.Impostors[key]
}
