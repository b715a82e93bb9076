package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/user/taxfetch/internal/record"
)

func TestRenderChartWritesPNG(t *testing.T) {
	records := []record.Summary{
		{Accession: "AB000001.1", Length: 300},
		{Accession: "AB000002.1", Length: 750},
		{Accession: "AB000003.1", Length: 520},
	}

	path := filepath.Join(t.TempDir(), "chart.png")
	if err := RenderChart(records, path); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("chart file not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	if len(data) < 4 || string(data[:4]) != string(pngMagic) {
		t.Error("output is not a PNG image")
	}
}

func TestRenderChartLeavesInputOrder(t *testing.T) {
	records := []record.Summary{
		{Accession: "A", Length: 100},
		{Accession: "B", Length: 300},
	}

	path := filepath.Join(t.TempDir(), "chart.png")
	if err := RenderChart(records, path); err != nil {
		t.Fatal(err)
	}
	if records[0].Accession != "A" || records[1].Accession != "B" {
		t.Error("input slice was reordered")
	}
}

func TestRenderChartUnwritablePath(t *testing.T) {
	records := []record.Summary{{Accession: "A", Length: 100}}
	err := RenderChart(records, filepath.Join(t.TempDir(), "missing", "chart.png"))
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
