package domain

import "time"

// Trade represents a completed trade. Immutable once appended to the ledger.
type Trade struct {
	ID         int64      // Unique identifier for the trade (usually from DB)
	PositionID int64      // Identifier of the position this trade closed (optional)
	Symbol     string     // Trading symbol
	Direction  Direction  // long or short
	EntryPrice float64    // Price at which the position was entered
	ExitPrice  float64    // Price at which the position was exited
	Quantity   float64    // Size of the position traded
	Return     float64    // Realized fractional return, net of commission
	EntryTime  time.Time  // Timestamp when the position was entered
	ExitTime   time.Time  // Timestamp when the position was exited
	ExitReason ExitReason // Why the position was closed (stop, end-of-data)
}

// EquityPoint is one point on the equity curve: cumulative equity after the
// realized return of the trade that closed at Time.
type EquityPoint struct {
	Time   time.Time
	Equity float64
}
