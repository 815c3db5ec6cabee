// ABOUTME: Activity and quote reference tables: loading and CSV bootstrap.
// ABOUTME: Malformed bootstrap rows are skipped with a warning, never fatal.
package storage

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/harperreed/heat/internal/models"
)

// ListActivities loads the exercise catalog.
func (d *DB) ListActivities() ([]*models.Activity, error) {
	rows, err := d.h().Query(`
		SELECT id, activity_name, kind, category, met_value, bodyweight_factor
		FROM activities ORDER BY category, activity_name`)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		var a models.Activity
		var kind string
		if err := rows.Scan(&a.ID, &a.Name, &kind, &a.Category, &a.MetValue, &a.BodyWeightFactor); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Kind, err = models.ParseKind(kind)
		if err != nil {
			return nil, fmt.Errorf("invalid activity kind in database: %w", err)
		}
		activities = append(activities, &a)
	}
	return activities, rows.Err()
}

// ListQuotes loads the motivational quote catalog.
func (d *DB) ListQuotes() ([]*models.Quote, error) {
	rows, err := d.h().Query("SELECT level, quote FROM quotes")
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var quotes []*models.Quote
	for rows.Next() {
		var q models.Quote
		if err := rows.Scan(&q.Level, &q.Text); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, &q)
	}
	return quotes, rows.Err()
}

// TableEmpty reports whether a reference table has no rows yet. Seeding only
// runs against empty tables so re-running it is harmless.
func (d *DB) TableEmpty(table string) (bool, error) {
	switch table {
	case "activities", "quotes":
	default:
		return false, fmt.Errorf("not a reference table: %s", table)
	}
	var count int
	if err := d.h().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		return false, fmt.Errorf("count %s: %w", table, err)
	}
	return count == 0, nil
}

// ResetTable clears a reference table so it can be reseeded.
func (d *DB) ResetTable(table string) error {
	switch table {
	case "activities", "quotes":
	default:
		return fmt.Errorf("not a reference table: %s", table)
	}
	if _, err := d.h().Exec("DELETE FROM " + table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	return nil
}

// SeedActivities imports the activity catalog from CSV rows of the form
// name,kind,category,met_value,bodyweight_factor. Returns how many rows were
// imported; malformed rows are skipped with a warning.
func (d *DB) SeedActivities(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	imported := 0
	for {
		parts, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read activities csv: %w", err)
		}
		if len(parts) < 5 {
			fmt.Fprintf(os.Stderr, "skipping invalid activities line: %s\n", strings.Join(parts, ","))
			continue
		}

		kind, kindErr := models.ParseKind(strings.TrimSpace(parts[1]))
		met, metErr := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		factor, factorErr := strconv.ParseFloat(strings.TrimSpace(parts[4]), 64)
		if kindErr != nil || metErr != nil || factorErr != nil {
			fmt.Fprintf(os.Stderr, "skipping invalid activities line: %s\n", strings.Join(parts, ","))
			continue
		}

		_, err = d.h().Exec(`
			INSERT INTO activities (activity_name, kind, category, met_value, bodyweight_factor)
			VALUES (?, ?, ?, ?, ?)`,
			strings.TrimSpace(parts[0]), string(kind), strings.TrimSpace(parts[2]), met, factor)
		if err != nil {
			return imported, fmt.Errorf("insert activity: %w", err)
		}
		imported++
	}
	return imported, nil
}

// SeedQuotes imports motivational quotes from pipe-separated rows of the form
// level|quote text. Returns how many rows were imported.
func (d *DB) SeedQuotes(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)

	imported := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.SplitN(line, "|", 2)
		if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			fmt.Fprintf(os.Stderr, "skipping invalid quotes line: %s\n", line)
			continue
		}

		_, err := d.h().Exec("INSERT INTO quotes (level, quote) VALUES (?, ?)",
			strings.ToLower(strings.TrimSpace(parts[0])), strings.TrimSpace(parts[1]))
		if err != nil {
			return imported, fmt.Errorf("insert quote: %w", err)
		}
		imported++
	}
	if err := scanner.Err(); err != nil {
		return imported, fmt.Errorf("read quotes: %w", err)
	}
	return imported, nil
}
