package backtesting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ignitionBot/internal/domain"
	"ignitionBot/internal/ports"
)

func TestNewLedger(t *testing.T) {
	tests := []struct {
		name       string
		capital    float64
		commission float64
		wantErr    bool
	}{
		{name: "valid", capital: 100000, commission: 0.001},
		{name: "zero commission", capital: 100000, commission: 0},
		{name: "zero capital", capital: 0, commission: 0, wantErr: true},
		{name: "negative capital", capital: -1, commission: 0, wantErr: true},
		{name: "negative commission", capital: 100000, commission: -0.001, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, err := NewLedger(tt.capital, tt.commission)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, ledger)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, ledger)
			}
		})
	}
}

func TestLedgerRecordRejectsDuplicatePosition(t *testing.T) {
	ledger, err := NewLedger(100000, 0)
	require.NoError(t, err)

	trade := &domain.Trade{ID: 1, PositionID: 1, Return: 0.01}
	require.NoError(t, ledger.Record(trade))

	err = ledger.Record(&domain.Trade{ID: 2, PositionID: 1, Return: 0.02})
	assert.ErrorIs(t, err, ports.ErrDuplicateEntry)
	assert.Len(t, ledger.Trades(), 1)
}

func TestLedgerTradesReturnsSnapshot(t *testing.T) {
	ledger, err := NewLedger(100000, 0)
	require.NoError(t, err)
	require.NoError(t, ledger.Record(&domain.Trade{ID: 1, PositionID: 1, Return: 0.01}))
	require.NoError(t, ledger.Record(&domain.Trade{ID: 2, PositionID: 2, Return: 0.02}))

	got := ledger.Trades()
	got[0] = nil
	got[1] = &domain.Trade{ID: 99, PositionID: 99}

	fresh := ledger.Trades()
	require.Len(t, fresh, 2)
	assert.Equal(t, int64(1), fresh[0].ID)
	assert.Equal(t, int64(2), fresh[1].ID)
}

func TestLedgerRecordRejectsNil(t *testing.T) {
	ledger, err := NewLedger(100000, 0)
	require.NoError(t, err)
	assert.Error(t, ledger.Record(nil))
}

func TestLedgerEquityCurveFoldsReturns(t *testing.T) {
	ledger, err := NewLedger(100000, 0)
	require.NoError(t, err)

	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	require.NoError(t, ledger.Record(&domain.Trade{ID: 1, PositionID: 1, Return: 0.10, ExitTime: t1}))
	require.NoError(t, ledger.Record(&domain.Trade{ID: 2, PositionID: 2, Return: -0.05, ExitTime: t2}))

	curve := ledger.EquityCurve()
	require.Len(t, curve, 2)
	assert.InDelta(t, 110000.0, curve[0].Equity, 1e-6)
	assert.InDelta(t, 104500.0, curve[1].Equity, 1e-6)
	assert.Equal(t, t1, curve[0].Time)
	assert.Equal(t, t2, curve[1].Time)
	assert.InDelta(t, 104500.0, ledger.FinalEquity(), 1e-6)
}

func TestLedgerNetReturn(t *testing.T) {
	ledger, err := NewLedger(100000, 0.001)
	require.NoError(t, err)

	// Long gains when price rises, short gains when it falls; both legs
	// pay commission.
	assert.InDelta(t, 0.10-0.002, ledger.NetReturn(100, 110, domain.Long), 1e-9)
	assert.InDelta(t, 0.10-0.002, ledger.NetReturn(100, 90, domain.Short), 1e-9)
	assert.InDelta(t, -0.10-0.002, ledger.NetReturn(100, 90, domain.Long), 1e-9)
}
