// Package report writes the run outputs: the CSV summary table and the
// sequence-length chart.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/user/taxfetch/internal/record"
)

// WriteCSV writes a header row followed by one row per record, in the
// order given. Any existing file at path is overwritten.
func WriteCSV(records []record.Summary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"accession", "length", "description"}); err != nil {
		f.Close()
		return fmt.Errorf("write table header: %w", err)
	}
	for _, r := range records {
		row := []string{r.Accession, strconv.Itoa(r.Length), r.Description}
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("write table row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush table: %w", err)
	}
	return f.Close()
}
