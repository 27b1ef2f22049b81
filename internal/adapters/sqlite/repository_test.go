package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ignitionBot/internal/domain"
	"ignitionBot/internal/ports"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, msg string, fields ...map[string]interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(ctx context.Context, err error, msg string, fields ...map[string]interface{}) {
}

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(Config{
		DBPath: filepath.Join(t.TempDir(), "test.db"),
		Logger: &mockLogger{},
	})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testBar(t0 time.Time, i int, close float64) *domain.Bar {
	return &domain.Bar{
		OpenTime:  t0.Add(time.Duration(i) * time.Hour),
		CloseTime: t0.Add(time.Duration(i+1) * time.Hour),
		Symbol:    "ETHUSDT",
		Interval:  "1h",
		Open:      close - 0.5,
		High:      close + 1,
		Low:       close - 1,
		Close:     close,
		Volume:    100,
	}
}

func TestNewRepositoryRequiresLogger(t *testing.T) {
	repo, err := NewRepository(Config{DBPath: filepath.Join(t.TempDir(), "test.db")})
	assert.Error(t, err)
	assert.Nil(t, repo)
}

func TestSaveAndFindBars(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	bars := []*domain.Bar{
		testBar(t0, 0, 100),
		testBar(t0, 1, 101),
		testBar(t0, 2, 102),
	}
	require.NoError(t, repo.SaveBars(ctx, bars))

	got, err := repo.FindBars(ctx, "ETHUSDT", "1h", t0, t0.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].OpenTime.Before(got[1].OpenTime))
	assert.InDelta(t, 100.0, got[0].Close, 1e-9)
	assert.InDelta(t, 102.0, got[2].Close, 1e-9)
}

func TestSaveBarsReplacesDuplicates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveBars(ctx, []*domain.Bar{testBar(t0, 0, 100)}))
	updated := testBar(t0, 0, 105)
	require.NoError(t, repo.SaveBars(ctx, []*domain.Bar{updated}))

	got, err := repo.FindBars(ctx, "ETHUSDT", "1h", t0, t0.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 105.0, got[0].Close, 1e-9)
}

func TestFindBarsRangeBounds(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveBars(ctx, []*domain.Bar{
		testBar(t0, 0, 100),
		testBar(t0, 1, 101),
		testBar(t0, 2, 102),
	}))

	// End bound is exclusive.
	got, err := repo.FindBars(ctx, "ETHUSDT", "1h", t0.Add(time.Hour), t0.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 101.0, got[0].Close, 1e-9)
}

func TestCreateAndFindTradesByRun(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	trades := []*domain.Trade{
		{
			PositionID: 1,
			Symbol:     "ETHUSDT",
			Direction:  domain.Long,
			EntryPrice: 100,
			ExitPrice:  105,
			Quantity:   10,
			Return:     0.05,
			EntryTime:  t0,
			ExitTime:   t0.Add(2 * time.Hour),
			ExitReason: domain.ExitReasonStop,
		},
		{
			PositionID: 2,
			Symbol:     "ETHUSDT",
			Direction:  domain.Short,
			EntryPrice: 110,
			ExitPrice:  108,
			Quantity:   9,
			Return:     0.0181,
			EntryTime:  t0.Add(3 * time.Hour),
			ExitTime:   t0.Add(5 * time.Hour),
			ExitReason: domain.ExitReasonEndOfData,
		},
	}
	for _, tr := range trades {
		id, err := repo.CreateTrade(ctx, "run-1", tr)
		require.NoError(t, err)
		assert.Positive(t, id)
	}
	// A different run stays isolated.
	_, err := repo.CreateTrade(ctx, "run-2", &domain.Trade{
		PositionID: 1, Symbol: "ETHUSDT", Direction: domain.Long,
		EntryPrice: 1, ExitPrice: 1, Quantity: 1, Return: 0,
		EntryTime: t0, ExitTime: t0.Add(time.Hour), ExitReason: domain.ExitReasonStop,
	})
	require.NoError(t, err)

	got, err := repo.FindTradesByRun(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.Long, got[0].Direction)
	assert.Equal(t, domain.ExitReasonStop, got[0].ExitReason)
	assert.Equal(t, domain.Short, got[1].Direction)
	assert.InDelta(t, 0.0181, got[1].Return, 1e-9)
}

func TestSaveEquityCurve(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	points := []domain.EquityPoint{
		{Time: t0, Equity: 100000},
		{Time: t0.Add(time.Hour), Equity: 101000},
	}
	require.NoError(t, repo.SaveEquityCurve(ctx, "run-1", points))
	// Re-saving the same run is idempotent.
	require.NoError(t, repo.SaveEquityCurve(ctx, "run-1", points))
}

func TestClosedDatabaseWrapsSentinels(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Close())

	_, err := repo.FindBars(ctx, "ETHUSDT", "1h", t0, t0.Add(time.Hour))
	assert.ErrorIs(t, err, ports.ErrQueryFailed)

	err = repo.SaveBars(ctx, []*domain.Bar{testBar(t0, 0, 100)})
	assert.ErrorIs(t, err, ports.ErrUpdateFailed)

	_, err = repo.FindTradesByRun(ctx, "run-1")
	assert.ErrorIs(t, err, ports.ErrQueryFailed)
}
