package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/parquet-go/parquet-go"
)

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func writeCSV(path string, records []DayRecord) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "is_business_day", "weekday", "month", "quarter"}); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Date,
			strconv.FormatBool(r.IsBusinessDay),
			r.Weekday,
			strconv.Itoa(r.Month),
			strconv.Itoa(r.Quarter),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func writeJSON(path string, records []DayRecord) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return err
	}
	return f.Close()
}

func writeParquet(path string, records []DayRecord) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return parquet.WriteFile(path, records)
}

// ReadParquet loads previously exported records, mainly for verification.
func ReadParquet(path string) ([]DayRecord, error) {
	return parquet.ReadFile[DayRecord](path)
}
