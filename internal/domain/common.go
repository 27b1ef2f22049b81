package domain

// Direction represents the side of a position (long or short).
type Direction string

const (
	Long  Direction = "long"
	Short Direction = "short"
)

// Regime classifies a bar's volatility state relative to its recent history.
type Regime string

const (
	RegimeConsolidating Regime = "consolidating"
	RegimeExpanding     Regime = "expanding"
)

// Ignition flags a momentum-ignition bar, directionally.
type Ignition string

const (
	IgnitionNone    Ignition = "none"
	IgnitionBullish Ignition = "bullish"
	IgnitionBearish Ignition = "bearish"
)

// Confirmation is the combined oscillator confirmation state for a bar.
type Confirmation string

const (
	ConfirmNone    Confirmation = "none"
	ConfirmBullish Confirmation = "bullish"
	ConfirmBearish Confirmation = "bearish"
)

// PositionStatus represents the status of a position.
type PositionStatus string

const (
	StatusOpen   PositionStatus = "open"
	StatusClosed PositionStatus = "closed"
)

// ExitReason indicates why a position was closed.
type ExitReason string

const (
	ExitReasonStop      ExitReason = "stop"
	ExitReasonEndOfData ExitReason = "end-of-data"
	ExitReasonUnknown   ExitReason = "unknown"
)
