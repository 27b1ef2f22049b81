package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"ignitionBot/internal/domain"
)

func WriteBarsToCSV(bars []*domain.Bar, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	writer.Write([]string{"open_time", "close_time", "symbol", "interval", "open", "high", "low", "close", "volume"})

	for _, b := range bars {
		writer.Write([]string{
			b.OpenTime.Format(time.RFC3339),
			b.CloseTime.Format(time.RFC3339),
			b.Symbol,
			b.Interval,
			strconv.FormatFloat(b.Open, 'f', -1, 64),
			strconv.FormatFloat(b.High, 'f', -1, 64),
			strconv.FormatFloat(b.Low, 'f', -1, 64),
			strconv.FormatFloat(b.Close, 'f', -1, 64),
			strconv.FormatFloat(b.Volume, 'f', -1, 64),
		})
	}
	return writer.Error()
}

func ReadBarsFromCSV(filename string) ([]*domain.Bar, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv file %s has no data rows", filename)
	}

	bars := make([]*domain.Bar, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != 9 {
			return nil, fmt.Errorf("row %d: expected 9 fields, got %d", i+2, len(record))
		}
		openTime, err := time.Parse(time.RFC3339, record[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid open_time: %w", i+2, err)
		}
		closeTime, err := time.Parse(time.RFC3339, record[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid close_time: %w", i+2, err)
		}
		values := make([]float64, 5)
		for j, field := range record[4:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid numeric field %q: %w", i+2, field, err)
			}
			values[j] = v
		}
		bars = append(bars, &domain.Bar{
			OpenTime:  openTime,
			CloseTime: closeTime,
			Symbol:    record[2],
			Interval:  record[3],
			Open:      values[0],
			High:      values[1],
			Low:       values[2],
			Close:     values[3],
			Volume:    values[4],
		})
	}
	return bars, nil
}

func WriteTradesToCSV(trades []*domain.Trade, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"id", "position_id", "symbol", "direction", "entry_price", "exit_price", "quantity", "return", "entry_time", "exit_time", "exit_reason"})

	for _, tr := range trades {
		writer.Write([]string{
			strconv.FormatInt(tr.ID, 10),
			strconv.FormatInt(tr.PositionID, 10),
			tr.Symbol,
			string(tr.Direction),
			strconv.FormatFloat(tr.EntryPrice, 'f', -1, 64),
			strconv.FormatFloat(tr.ExitPrice, 'f', -1, 64),
			strconv.FormatFloat(tr.Quantity, 'f', -1, 64),
			strconv.FormatFloat(tr.Return, 'f', -1, 64),
			tr.EntryTime.Format(time.RFC3339),
			tr.ExitTime.Format(time.RFC3339),
			string(tr.ExitReason),
		})
	}
	return writer.Error()
}

func WriteEquityCurveToCSV(points []domain.EquityPoint, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"time", "equity"})

	for _, p := range points {
		writer.Write([]string{
			p.Time.Format(time.RFC3339),
			strconv.FormatFloat(p.Equity, 'f', -1, 64),
		})
	}
	return writer.Error()
}
