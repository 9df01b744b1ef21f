// Package export writes calendar evaluations to disk. The output format is
// chosen from the destination path's extension: .csv, .json, .parquet, and
// .db / .sqlite are supported.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"bizcal/internal/calendar"
	"bizcal/internal/domain"
)

// DayRecord is one evaluated date. It doubles as the Parquet on-disk schema
// and the JSON wire shape; CSV columns follow the same order.
type DayRecord struct {
	Date          string `parquet:"date" json:"date"`
	IsBusinessDay bool   `parquet:"is_business_day" json:"is_business_day"`
	Weekday       string `parquet:"weekday" json:"weekday"`
	Month         int    `parquet:"month" json:"month"`
	Quarter       int    `parquet:"quarter" json:"quarter"`
}

// Evaluate builds one record per date in [start, end] against the adapter.
func Evaluate(a calendar.Adapter, start, end time.Time) ([]DayRecord, error) {
	if err := calendar.CheckRange(start, end); err != nil {
		return nil, err
	}
	var records []DayRecord
	for d := domain.DayOf(start); !d.After(end); d = d.AddDate(0, 0, 1) {
		open, err := a.IsBusinessDay(d)
		if err != nil {
			return nil, fmt.Errorf("evaluating %s: %w", domain.FormatDate(d), err)
		}
		records = append(records, DayRecord{
			Date:          domain.FormatDate(d),
			IsBusinessDay: open,
			Weekday:       d.Weekday().String(),
			Month:         int(d.Month()),
			Quarter:       (int(d.Month())-1)/3 + 1,
		})
	}
	return records, nil
}

// Write evaluates the adapter over [start, end] and writes the records to
// path, dispatching on the file extension.
func Write(a calendar.Adapter, start, end time.Time, path string) error {
	records, err := Evaluate(a, start, end)
	if err != nil {
		return err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return writeCSV(path, records)
	case ".json":
		return writeJSON(path, records)
	case ".parquet":
		return writeParquet(path, records)
	case ".db", ".sqlite":
		return writeSQLite(path, records)
	default:
		return fmt.Errorf("unsupported export format %q", ext)
	}
}
