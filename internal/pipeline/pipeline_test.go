package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/taxfetch/internal/entrez"
)

// stubRetriever scripts the client responses for one run.
type stubRetriever struct {
	organism   string
	organismOK bool
	session    *entrez.Session
	searchErr  error
	fetchText  string
	fetchErr   error
	fetched    bool
}

func (s *stubRetriever) LookupOrganism(ctx context.Context, taxid string) (string, error) {
	if !s.organismOK {
		return "", errors.New("no taxonomy record")
	}
	return s.organism, nil
}

func (s *stubRetriever) Search(ctx context.Context, taxid string) (*entrez.Session, error) {
	return s.session, s.searchErr
}

func (s *stubRetriever) Fetch(ctx context.Context, sess *entrez.Session, start, maxRecords int) (string, error) {
	s.fetched = true
	return s.fetchText, s.fetchErr
}

func newTestPipeline(client Retriever, dir string) (*Pipeline, *bytes.Buffer) {
	p := New(client, dir)
	var buf bytes.Buffer
	p.out = &buf
	return p, &buf
}

func assertNoOutputFiles(t *testing.T, dir, taxid string) {
	t.Helper()
	for _, path := range []string{TablePath(dir, taxid), ChartPath(dir, taxid)} {
		if _, err := os.Stat(path); err == nil {
			t.Errorf("unexpected output file %s", path)
		}
	}
}

func TestRunNoSearchResults(t *testing.T) {
	dir := t.TempDir()
	stub := &stubRetriever{organismOK: false, session: nil}
	p, buf := newTestPipeline(stub, dir)

	if err := p.Run(context.Background(), Params{TaxID: "999999999", MinLen: 1, MaxLen: 10}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No records found") {
		t.Errorf("expected no-records message, got %q", buf.String())
	}
	if stub.fetched {
		t.Error("fetch should not run without a session")
	}
	assertNoOutputFiles(t, dir, "999999999")
}

func TestRunSearchError(t *testing.T) {
	dir := t.TempDir()
	stub := &stubRetriever{searchErr: errors.New("connection refused")}
	p, buf := newTestPipeline(stub, dir)

	// A service error is an expected outcome: message, clean return, no files.
	if err := p.Run(context.Background(), Params{TaxID: "9606", MinLen: 1, MaxLen: 10}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No records found") {
		t.Errorf("expected no-records message, got %q", buf.String())
	}
	assertNoOutputFiles(t, dir, "9606")
}

func TestRunEmptyFilter(t *testing.T) {
	dir := t.TempDir()
	stub := &stubRetriever{
		organism:   "Homo sapiens",
		organismOK: true,
		session:    &entrez.Session{WebEnv: "W", QueryKey: "1", Count: 3},
		fetchText:  ">X1 too short\nACGT\n",
	}
	p, buf := newTestPipeline(stub, dir)

	if err := p.Run(context.Background(), Params{TaxID: "9606", MinLen: 500, MaxLen: 1000}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No sequences matched the length filter") {
		t.Errorf("expected empty-filter message, got %q", buf.String())
	}
	assertNoOutputFiles(t, dir, "9606")
}

func TestRunFetchErrorProducesNoFiles(t *testing.T) {
	dir := t.TempDir()
	stub := &stubRetriever{
		organismOK: true,
		organism:   "Homo sapiens",
		session:    &entrez.Session{WebEnv: "W", QueryKey: "1", Count: 3},
		fetchErr:   errors.New("timeout"),
	}
	p, _ := newTestPipeline(stub, dir)

	if err := p.Run(context.Background(), Params{TaxID: "9606", MinLen: 1, MaxLen: 10}); err != nil {
		t.Fatal(err)
	}
	assertNoOutputFiles(t, dir, "9606")
}

func TestRunWritesTableAndChart(t *testing.T) {
	dir := t.TempDir()
	raw := fmt.Sprintf(">AB000001.1 short\n%s\n>AB000002.1 medium\n%s\n>AB000003.1 long\n%s\n",
		strings.Repeat("A", 300), strings.Repeat("C", 750), strings.Repeat("G", 1200))
	stub := &stubRetriever{
		organismOK: true,
		organism:   "Homo sapiens",
		session:    &entrez.Session{WebEnv: "W", QueryKey: "1", Count: 3},
		fetchText:  raw,
	}
	p, buf := newTestPipeline(stub, dir)

	if err := p.Run(context.Background(), Params{TaxID: "9606", MinLen: 500, MaxLen: 1000}); err != nil {
		t.Fatal(err)
	}

	table, err := os.ReadFile(TablePath(dir, "9606"))
	if err != nil {
		t.Fatalf("table not written: %v", err)
	}
	if !strings.Contains(string(table), "AB000002.1,750,medium") {
		t.Errorf("table missing filtered record: %s", table)
	}
	if strings.Contains(string(table), "AB000001.1") || strings.Contains(string(table), "AB000003.1") {
		t.Errorf("table contains out-of-bounds records: %s", table)
	}

	if _, err := os.Stat(ChartPath(dir, "9606")); err != nil {
		t.Errorf("chart not written: %v", err)
	}
	if !strings.Contains(buf.String(), "Task complete!") {
		t.Errorf("expected completion message, got %q", buf.String())
	}
}

func TestRunUnwritableOutputDirIsFatal(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")
	stub := &stubRetriever{
		organismOK: true,
		organism:   "Homo sapiens",
		session:    &entrez.Session{WebEnv: "W", QueryKey: "1", Count: 1},
		fetchText:  ">X1 rec\n" + strings.Repeat("A", 100) + "\n",
	}
	p, _ := newTestPipeline(stub, dir)

	if err := p.Run(context.Background(), Params{TaxID: "9606", MinLen: 1, MaxLen: 1000}); err == nil {
		t.Fatal("expected error for unwritable output directory")
	}
}
