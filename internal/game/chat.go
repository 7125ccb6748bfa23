package game

import "time"

// ChatPhase selects which of the two message queues a record belongs to.
type ChatPhase int

const (
	ChatLobby ChatPhase = iota
	ChatGame
)

// Message is a single chat or event record.
type Message struct {
	Player    string `json:"player"` // "SYSTEM" for events
	Text      string `json:"message"`
	Timestamp string `json:"timestamp"`
	IsEvent   bool   `json:"is_event"`
	EventType string `json:"event_type,omitempty"`
}

// ChatLog holds the lobby and game message queues. Growth is unbounded;
// readers take a bounded tail.
type ChatLog struct {
	queues [2][]Message
}

func (c *ChatLog) append(phase ChatPhase, msg Message) {
	c.queues[phase] = append(c.queues[phase], msg)
}

// AddEvent appends a SYSTEM event to the given phase's queue.
func (c *ChatLog) AddEvent(phase ChatPhase, eventType, text string) {
	c.append(phase, Message{
		Player:    "SYSTEM",
		Text:      text,
		Timestamp: time.Now().Format("15:04:05"),
		IsEvent:   true,
		EventType: eventType,
	})
}

// AddPlayerMessage appends a player chat message to the given phase's queue.
func (c *ChatLog) AddPlayerMessage(phase ChatPhase, player, text string) {
	c.append(phase, Message{
		Player:    player,
		Text:      text,
		Timestamp: time.Now().Format("15:04:05"),
	})
}

// Tail returns up to n of the most recent messages for the phase.
func (c *ChatLog) Tail(phase ChatPhase, n int) []Message {
	q := c.queues[phase]
	if len(q) > n {
		q = q[len(q)-n:]
	}
	out := make([]Message, len(q))
	copy(out, q)
	return out
}

// ClearGame drops the game-phase queue; the lobby queue survives.
func (c *ChatLog) ClearGame() {
	c.queues[ChatGame] = nil
}
