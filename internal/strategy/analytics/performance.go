package analytics

import (
	"math"
	"sort"
	"time"

	"ignitionBot/internal/domain"
)

// PerformanceMetrics holds performance metrics computed from a closed ledger
type PerformanceMetrics struct {
	// Basic Metrics
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64
	TotalReturn   float64
	FinalEquity   float64
	MaxDrawdown   float64
	ProfitFactor  float64
	AverageWin    float64
	AverageLoss   float64
	SharpeRatio   float64

	// Advanced Metrics
	MaxConsecutiveWins   int
	MaxConsecutiveLosses int
	AverageTradeDuration time.Duration
	Expectancy           float64
	MonthlyReturns       map[string]float64
}

// AnalyzePerformance computes performance metrics from closed trades. Trade
// returns are fractional and compound multiplicatively over initialCapital,
// matching how the backtest ledger settles equity.
func AnalyzePerformance(trades []*domain.Trade, initialCapital float64) *PerformanceMetrics {
	metrics := &PerformanceMetrics{
		FinalEquity:    initialCapital,
		MonthlyReturns: make(map[string]float64),
	}

	if len(trades) == 0 {
		return metrics
	}

	sorted := make([]*domain.Trade, len(trades))
	copy(sorted, trades)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ExitTime.Before(sorted[j].ExitTime)
	})

	var (
		equity             = initialCapital
		peakEquity         = initialCapital
		sumWins, sumLosses float64
		consecutiveWins    int
		consecutiveLosses  int
		totalDuration      time.Duration
		returns            = make([]float64, 0, len(sorted))
	)

	for _, trade := range sorted {
		metrics.TotalTrades++
		if trade.Return > 0 {
			metrics.WinningTrades++
			consecutiveWins++
			consecutiveLosses = 0
			sumWins += trade.Return
		} else {
			metrics.LosingTrades++
			consecutiveLosses++
			consecutiveWins = 0
			sumLosses += trade.Return
		}
		if consecutiveWins > metrics.MaxConsecutiveWins {
			metrics.MaxConsecutiveWins = consecutiveWins
		}
		if consecutiveLosses > metrics.MaxConsecutiveLosses {
			metrics.MaxConsecutiveLosses = consecutiveLosses
		}

		equity *= 1 + trade.Return
		if equity > peakEquity {
			peakEquity = equity
		} else {
			drawdown := (peakEquity - equity) / peakEquity
			if drawdown > metrics.MaxDrawdown {
				metrics.MaxDrawdown = drawdown
			}
		}

		metrics.MonthlyReturns[trade.ExitTime.Format("2006-01")] += trade.Return
		totalDuration += trade.ExitTime.Sub(trade.EntryTime)
		returns = append(returns, trade.Return)
	}

	metrics.FinalEquity = equity
	metrics.TotalReturn = (equity - initialCapital) / initialCapital
	metrics.WinRate = float64(metrics.WinningTrades) / float64(metrics.TotalTrades)
	if metrics.WinningTrades > 0 {
		metrics.AverageWin = sumWins / float64(metrics.WinningTrades)
	}
	if metrics.LosingTrades > 0 {
		metrics.AverageLoss = sumLosses / float64(metrics.LosingTrades)
	}
	if sumLosses != 0 {
		metrics.ProfitFactor = sumWins / -sumLosses
	}
	metrics.Expectancy = metrics.WinRate*metrics.AverageWin + (1-metrics.WinRate)*metrics.AverageLoss
	metrics.AverageTradeDuration = totalDuration / time.Duration(len(sorted))
	metrics.SharpeRatio = calculateSharpeRatio(returns)

	return metrics
}

// calculateSharpeRatio computes the Sharpe ratio of a per-trade return series
// with a risk-free rate of zero. Undefined for fewer than two trades or a
// constant return series; both report zero.
func calculateSharpeRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)
	stdDev := math.Sqrt(variance)

	if stdDev == 0 {
		return 0
	}
	return mean / stdDev
}

// GetMonthlyReturns returns the monthly returns as a sorted slice
func (m *PerformanceMetrics) GetMonthlyReturns() []MonthlyReturn {
	returns := make([]MonthlyReturn, 0, len(m.MonthlyReturns))
	for month, ret := range m.MonthlyReturns {
		date, _ := time.Parse("2006-01", month)
		returns = append(returns, MonthlyReturn{Month: date, Return: ret})
	}
	sort.Slice(returns, func(i, j int) bool {
		return returns[i].Month.Before(returns[j].Month)
	})
	return returns
}

// MonthlyReturn represents a monthly return value
type MonthlyReturn struct {
	Month  time.Time
	Return float64
}
