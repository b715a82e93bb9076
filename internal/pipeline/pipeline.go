// Package pipeline drives one retrieval run: organism lookup, search,
// batched fetch, length filtering, then the CSV table and the chart.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/user/taxfetch/internal/entrez"
	"github.com/user/taxfetch/internal/record"
	"github.com/user/taxfetch/internal/report"
)

// fetchBatch is how many records one run requests from the service.
const fetchBatch = 100

// Retriever is the slice of the entrez client the pipeline consumes.
type Retriever interface {
	LookupOrganism(ctx context.Context, taxid string) (string, error)
	Search(ctx context.Context, taxid string) (*entrez.Session, error)
	Fetch(ctx context.Context, s *entrez.Session, start, maxRecords int) (string, error)
}

var _ Retriever = (*entrez.Client)(nil)

// Params are the user-supplied inputs for one run.
type Params struct {
	TaxID  string
	MinLen int
	MaxLen int
}

// Pipeline runs the retrieval flow and writes its outputs into outDir.
type Pipeline struct {
	client Retriever
	outDir string
	out    io.Writer
}

// New creates a Pipeline writing output files into outDir and progress
// messages to stdout.
func New(client Retriever, outDir string) *Pipeline {
	return &Pipeline{client: client, outDir: outDir, out: os.Stdout}
}

// TablePath returns the summary table filename for a taxid.
func TablePath(outDir, taxid string) string {
	return filepath.Join(outDir, fmt.Sprintf("taxid_%s_filtered.csv", taxid))
}

// ChartPath returns the chart filename for a taxid.
func ChartPath(outDir, taxid string) string {
	return filepath.Join(outDir, fmt.Sprintf("taxid_%s_chart.png", taxid))
}

// Run executes one retrieval. Expected empty outcomes (no search hits,
// nothing within the length bounds, service unreachable) print a message
// and return nil without writing files. File-write failures are returned.
func (p *Pipeline) Run(ctx context.Context, params Params) error {
	log := slog.With("run_id", uuid.NewString(), "taxid", params.TaxID)

	fmt.Fprintf(p.out, "Searching for records with taxID: %s\n", params.TaxID)

	organism, err := p.client.LookupOrganism(ctx, params.TaxID)
	if err != nil {
		log.Warn("taxonomy lookup failed", "error", err)
	} else {
		fmt.Fprintf(p.out, "Organism: %s (TaxID: %s)\n", organism, params.TaxID)
	}

	session, err := p.client.Search(ctx, params.TaxID)
	if err != nil {
		log.Error("search failed", "error", err)
	}
	if session == nil {
		fmt.Fprintln(p.out, "No records found. Exiting.")
		return nil
	}
	fmt.Fprintf(p.out, "Found %d records\n", session.Count)

	fmt.Fprintln(p.out, "\nFetching records from the nucleotide database...")
	raw, err := p.client.Fetch(ctx, session, 0, fetchBatch)
	if err != nil {
		log.Error("fetch failed", "error", err)
		raw = ""
	}

	fmt.Fprintln(p.out, "Filtering and parsing sequences...")
	filtered, err := record.FilterByLength(raw, params.MinLen, params.MaxLen)
	if err != nil {
		log.Error("parse failed", "error", err)
	}
	if len(filtered) == 0 {
		fmt.Fprintln(p.out, "No sequences matched the length filter.")
		return nil
	}

	tablePath := TablePath(p.outDir, params.TaxID)
	chartPath := ChartPath(p.outDir, params.TaxID)

	if err := report.WriteCSV(filtered, tablePath); err != nil {
		return fmt.Errorf("write summary table: %w", err)
	}
	fmt.Fprintf(p.out, "CSV saved to %s\n", tablePath)

	if err := report.RenderChart(filtered, chartPath); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	fmt.Fprintf(p.out, "Chart saved to %s\n", chartPath)

	log.Info("run complete", "records", len(filtered), "table", tablePath, "chart", chartPath)
	fmt.Fprintln(p.out, "\nTask complete!")
	return nil
}
