package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/cognicore/larder/pkg/larder/analytics"
	"github.com/cognicore/larder/pkg/larder/recipe"
)

var errClosed = errors.New("corpus writer is closed")

// CorpusWriter streams recipes as a pretty-printed JSON array, one element
// at a time, so the corpus is never held in memory.
type CorpusWriter struct {
	w      *bufio.Writer
	count  int
	closed bool
}

// NewCorpusWriter returns a writer over w. Close must be called to finish
// the array.
func NewCorpusWriter(w io.Writer) *CorpusWriter {
	return &CorpusWriter{w: bufio.NewWriter(w)}
}

// Write appends one recipe to the array.
func (cw *CorpusWriter) Write(r recipe.ImportedRecipe) error {
	if cw.closed {
		return errClosed
	}
	data, err := json.MarshalIndent(r, "  ", "  ")
	if err != nil {
		return fmt.Errorf("encode recipe %d: %w", r.SourceID, err)
	}

	sep := ",\n  "
	if cw.count == 0 {
		sep = "[\n  "
	}
	if _, err := cw.w.WriteString(sep); err != nil {
		return err
	}
	if _, err := cw.w.Write(data); err != nil {
		return err
	}
	cw.count++
	return nil
}

// Count returns the number of recipes written.
func (cw *CorpusWriter) Count() int {
	return cw.count
}

// Close terminates the array and flushes. An empty corpus is written as [].
func (cw *CorpusWriter) Close() error {
	if cw.closed {
		return nil
	}
	cw.closed = true

	tail := "\n]\n"
	if cw.count == 0 {
		tail = "[]\n"
	}
	if _, err := cw.w.WriteString(tail); err != nil {
		return err
	}
	return cw.w.Flush()
}

// WriteCorpusFile writes every recipe of seq to path and returns how many
// were written.
func WriteCorpusFile(path string, seq iter.Seq[recipe.ImportedRecipe]) (n int, err error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	cw := NewCorpusWriter(f)
	for r := range seq {
		if err := cw.Write(r); err != nil {
			return cw.Count(), err
		}
	}
	return cw.Count(), cw.Close()
}

// ReadCorpus decodes a corpus written by CorpusWriter.
func ReadCorpus(r io.Reader) ([]recipe.ImportedRecipe, error) {
	var out []recipe.ImportedRecipe
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode corpus: %w", err)
	}
	return out, nil
}

// Report is the JSON stats report of one run.
type Report struct {
	RunID          string                     `json:"runId"`
	Input          string                     `json:"input"`
	StartedAt      time.Time                  `json:"startedAt"`
	FinishedAt     time.Time                  `json:"finishedAt"`
	Rows           int64                      `json:"rows"`
	Accepted       int64                      `json:"accepted"`
	Rejected       int64                      `json:"rejected"`
	Failed         int64                      `json:"failed"`
	Ingredients    int                        `json:"distinctIngredients"`
	TopIngredients []analytics.IngredientStat `json:"topIngredients"`
	TopPairings    []analytics.Pairing        `json:"topPairings"`
}

// ReportMinSupport is the co-occurrence floor for reported pairings.
const ReportMinSupport = 2

// NewReport builds a report holding the top ingredients and pairings.
func NewReport(s Summary, topIngredients, topPairings int) Report {
	pairs := s.Stats.TopPairings(topPairings, ReportMinSupport)
	if pairs == nil {
		pairs = []analytics.Pairing{}
	}
	return Report{
		RunID:          s.RunID,
		Input:          s.Input,
		StartedAt:      s.StartedAt,
		FinishedAt:     s.FinishedAt,
		Rows:           s.Rows,
		Accepted:       s.Accepted,
		Rejected:       s.Rejected,
		Failed:         s.Failed,
		Ingredients:    len(s.Stats.Ingredients),
		TopIngredients: s.Stats.TopIngredients(topIngredients),
		TopPairings:    pairs,
	}
}

// WriteReport writes rep as indented JSON.
func WriteReport(w io.Writer, rep Report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
