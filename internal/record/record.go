// Package record parses fetched flat-file sequence text and filters it by
// sequence length.
package record

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Summary describes one sequence record that passed the length filter.
type Summary struct {
	Accession   string
	Length      int
	Description string
}

// FilterByLength parses raw FASTA text and keeps records whose sequence
// length is within [minLen, maxLen], bounds inclusive. The length is
// computed from the parsed sequence data, never from any annotation.
// Records come back in parse order.
func FilterByLength(raw string, minLen, maxLen int) ([]Summary, error) {
	r := fasta.NewReader(strings.NewReader(raw), linear.NewSeq("", nil, alphabet.DNA))
	var out []Summary
	for {
		s, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, fmt.Errorf("read sequence record: %w", err)
		}
		sq := s.(*linear.Seq)
		n := len(sq.Seq)
		if n < minLen || n > maxLen {
			continue
		}
		out = append(out, Summary{
			Accession:   sq.ID,
			Length:      n,
			Description: sq.Desc,
		})
	}
	return out, nil
}

// SortByLengthDesc returns a copy of in ordered by length descending.
// Ties keep their original relative order; the input is left untouched.
func SortByLengthDesc(in []Summary) []Summary {
	out := make([]Summary, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Length > out[j].Length
	})
	return out
}
