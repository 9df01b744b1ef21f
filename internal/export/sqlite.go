package export

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

const createDaysTable = `
CREATE TABLE IF NOT EXISTS calendar_days (
	date            TEXT PRIMARY KEY,
	is_business_day INTEGER NOT NULL,
	weekday         TEXT NOT NULL,
	month           INTEGER NOT NULL,
	quarter         INTEGER NOT NULL
)`

func writeSQLite(path string, records []DayRecord) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(createDaysTable); err != nil {
		return fmt.Errorf("creating calendar_days: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO calendar_days
		(date, is_business_day, weekday, month, quarter)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		open := 0
		if r.IsBusinessDay {
			open = 1
		}
		if _, err := stmt.Exec(r.Date, open, r.Weekday, r.Month, r.Quarter); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting %s: %w", r.Date, err)
		}
	}
	return tx.Commit()
}

// ReadSQLite loads previously exported records ordered by date, mainly for
// verification.
func ReadSQLite(path string) ([]DayRecord, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`SELECT date, is_business_day, weekday, month, quarter
		FROM calendar_days ORDER BY date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []DayRecord
	for rows.Next() {
		var r DayRecord
		var open int
		if err := rows.Scan(&r.Date, &open, &r.Weekday, &r.Month, &r.Quarter); err != nil {
			return nil, err
		}
		r.IsBusinessDay = open != 0
		records = append(records, r)
	}
	return records, rows.Err()
}
