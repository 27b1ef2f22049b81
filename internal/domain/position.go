package domain

import "time"

// Position represents an open trade tracked by the engine. It exists only
// between an entry decision and the corresponding exit decision, and at most
// one is open at a time.
type Position struct {
	ID           int64          // Unique identifier for the position (usually from DB)
	Symbol       string         // Trading symbol (e.g., "ESU25")
	Direction    Direction      // long or short
	EntryPrice   float64        // Price at which the position was entered
	ExitPrice    float64        // Price at which the position was exited (0 if open)
	Quantity     float64        // Size of the position (unit size; sizing is out of scope)
	InitialStop  float64        // Protective stop set at entry
	TrailingStop float64        // Current trailing-stop level; ratchets favorably only
	EntryTime    time.Time      // Timestamp when the position was entered
	ExitTime     time.Time      // Timestamp when the position was exited (zero value if open)
	Status       PositionStatus // Current status (open, closed)
}

// IsOpen checks if the position status is open.
func (p *Position) IsOpen() bool {
	return p.Status == StatusOpen
}
