// Package importer drives a recipe export through the row pipeline, filters
// and aggregates the results, and optionally persists them.
package importer

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"iter"
	"os"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/cognicore/larder/internal/logging"
	"github.com/cognicore/larder/pkg/larder/analytics"
	"github.com/cognicore/larder/pkg/larder/ingest"
	"github.com/cognicore/larder/pkg/larder/internalerr"
	"github.com/cognicore/larder/pkg/larder/recipe"
	"github.com/cognicore/larder/pkg/larder/record"
	"github.com/cognicore/larder/pkg/larder/store"
	"github.com/cognicore/larder/pkg/larder/units"
)

// DefaultProgressEvery is the progress cadence in data rows.
const DefaultProgressEvery = 1000

// AcceptFunc decides whether a decoded recipe belongs in the corpus.
type AcceptFunc func(recipe.ImportedRecipe) bool

// Progress is a snapshot of the run counters.
type Progress struct {
	RunID    string
	Rows     int64
	Accepted int64
	Rejected int64
	Failed   int64
	Done     bool
}

// ProgressFunc receives progress snapshots.
type ProgressFunc func(Progress)

// Decoder turns one export record into a recipe. *ingest.Pipeline is the
// production implementation.
type Decoder interface {
	Decode(rec record.Record) (recipe.ImportedRecipe, error)
}

// Options configures an Importer
type Options struct {
	Decoder       Decoder    // nil uses an ingest.Pipeline over the built-in tables
	Accept        AcceptFunc // nil uses DefaultAccept
	Progress      ProgressFunc
	ProgressEvery int // rows between progress calls, DefaultProgressEvery when <= 0
	Limit         int // stop after this many accepted recipes, 0 for no limit

	// Store, when set, receives every accepted recipe, the run record and
	// the run's ingredient statistics.
	Store     store.Store
	Converter *units.Converter // metric totals and ingredient profiles in statistics

	Logger *zerolog.Logger // nil uses the global logger
}

// Importer runs one import. It is single-use and not safe for concurrent
// use; each run owns its own aggregate.
type Importer struct {
	opts   Options
	log    zerolog.Logger
	runID  string
	input  string
	agg    *analytics.Aggregate
	start  time.Time
	finish time.Time
	err    error
	used   bool

	rows, accepted, rejected, failed int64
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newRunID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// New creates an importer with the given options
func New(opts Options) *Importer {
	if opts.Decoder == nil {
		opts.Decoder = ingest.NewPipeline(nil, nil, nil)
	}
	if opts.Accept == nil {
		opts.Accept = DefaultAccept
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	if opts.Converter == nil {
		opts.Converter = units.NewConverter()
	}

	im := &Importer{
		opts:  opts,
		runID: newRunID(),
		agg:   analytics.NewAggregate(opts.Converter),
	}
	if opts.Logger != nil {
		im.log = opts.Logger.With().Str("run_id", im.runID).Logger()
	} else {
		im.log = logging.Logger().With().Str("run_id", im.runID).Logger()
	}
	return im
}

// RunID returns the run's ULID.
func (im *Importer) RunID() string {
	return im.runID
}

// Err returns the read error that ended the run early, if any. Row errors
// are never returned here.
func (im *Importer) Err() error {
	return im.err
}

// Recipes returns the accepted recipes read from r, in input order. The
// sequence is single-use: rows are decoded as the caller pulls them, and
// stopping the range loop or cancelling ctx ends the run. Rows that fail to
// decode are logged and skipped.
func (im *Importer) Recipes(ctx context.Context, r io.Reader) iter.Seq[recipe.ImportedRecipe] {
	return func(yield func(recipe.ImportedRecipe) bool) {
		if im.used {
			im.log.Warn().Msg("importer already used, ignoring second run")
			return
		}
		im.used = true
		im.start = time.Now()
		im.log.Info().Str("input", im.input).Msg("import started")
		defer im.complete(ctx)

		reader := record.NewReader(r)
		checked := false
		for rec, err := range reader.Records() {
			if err != nil {
				im.err = fmt.Errorf("%w: line %d: %w", internalerr.ErrInputUnavailable, rec.Line, err)
				im.log.Error().Err(err).Int("line", rec.Line).Msg("read failed, stopping")
				return
			}
			if !checked {
				checked = true
				im.checkHeader(reader.Header())
			}
			if err := ctx.Err(); err != nil {
				im.err = err
				return
			}

			im.rows++
			rcp, ok := im.decode(rec)
			im.tick()
			if !ok {
				continue
			}
			if !im.opts.Accept(rcp) {
				im.rejected++
				continue
			}

			im.accepted++
			im.agg.Add(rcp)
			im.persist(ctx, rcp)

			if !yield(rcp) {
				return
			}
			if im.opts.Limit > 0 && im.accepted >= int64(im.opts.Limit) {
				im.log.Info().Int("limit", im.opts.Limit).Msg("limit reached")
				return
			}
		}
	}
}

// checkHeader warns once when the header width differs from the export
// layout. Cells are read by position, so such a file usually decodes badly.
func (im *Importer) checkHeader(header []string) {
	if len(header) == ingest.NumColumns {
		return
	}
	im.log.Warn().
		Int("columns", len(header)).
		Strs("header", header).
		Strs("want", ingest.Columns).
		Msg("unexpected header width")
}

// decode runs the pipeline on one record. Errors and panics are logged
// with the record's line and count as a failed row.
func (im *Importer) decode(rec record.Record) (r recipe.ImportedRecipe, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			im.failed++
			im.log.Warn().Int("line", rec.Line).Interface("panic", p).Msg("row skipped")
			r, ok = recipe.ImportedRecipe{}, false
		}
	}()

	r, err := im.opts.Decoder.Decode(rec)
	if err != nil {
		im.failed++
		im.log.Warn().Err(err).Int("line", rec.Line).Msg("row skipped")
		return recipe.ImportedRecipe{}, false
	}
	return r, true
}

func (im *Importer) persist(ctx context.Context, r recipe.ImportedRecipe) {
	if im.opts.Store == nil {
		return
	}
	if err := im.opts.Store.UpsertRecipe(ctx, r); err != nil {
		im.log.Error().Err(err).Int64("source_id", r.SourceID).Msg("store recipe")
	}
}

func (im *Importer) tick() {
	if im.rows%int64(im.opts.ProgressEvery) != 0 {
		return
	}
	im.log.Info().
		Int64("rows", im.rows).
		Int64("accepted", im.accepted).
		Int64("failed", im.failed).
		Msg("progress")
	if im.opts.Progress != nil {
		im.opts.Progress(im.progress(false))
	}
}

func (im *Importer) progress(done bool) Progress {
	return Progress{
		RunID:    im.runID,
		Rows:     im.rows,
		Accepted: im.accepted,
		Rejected: im.rejected,
		Failed:   im.failed,
		Done:     done,
	}
}

// complete runs once when the sequence ends for any reason.
func (im *Importer) complete(ctx context.Context) {
	im.finish = time.Now()
	if im.opts.Progress != nil {
		im.opts.Progress(im.progress(true))
	}
	im.log.Info().
		Int64("rows", im.rows).
		Int64("accepted", im.accepted).
		Int64("rejected", im.rejected).
		Int64("failed", im.failed).
		Int("ingredients", im.agg.Len()).
		Dur("elapsed", im.finish.Sub(im.start)).
		Msg("import finished")

	if im.opts.Store == nil {
		return
	}
	// the run record is written even when ctx was cancelled
	ctx = context.WithoutCancel(ctx)
	if err := im.opts.Store.SaveRun(ctx, im.Summary().Run()); err != nil {
		im.log.Error().Err(err).Msg("store run")
		return
	}
	stats := im.agg.Snapshot().TopIngredients(0)
	if err := im.opts.Store.SaveIngredientStats(ctx, im.runID, stats); err != nil {
		im.log.Error().Err(err).Msg("store ingredient stats")
	}
}

// Summary describes a finished (or in-progress) run.
type Summary struct {
	RunID      string
	Input      string
	StartedAt  time.Time
	FinishedAt time.Time
	Rows       int64
	Accepted   int64
	Rejected   int64
	Failed     int64
	Stats      analytics.Stats
}

// Summary returns the run counters and a snapshot of the ingredient
// statistics.
func (im *Importer) Summary() Summary {
	return Summary{
		RunID:      im.runID,
		Input:      im.input,
		StartedAt:  im.start,
		FinishedAt: im.finish,
		Rows:       im.rows,
		Accepted:   im.accepted,
		Rejected:   im.rejected,
		Failed:     im.failed,
		Stats:      im.agg.Snapshot(),
	}
}

// Run converts the summary to a store record.
func (s Summary) Run() store.Run {
	return store.Run{
		ID:         s.RunID,
		Input:      s.Input,
		StartedAt:  s.StartedAt,
		FinishedAt: s.FinishedAt,
		Rows:       s.Rows,
		Accepted:   s.Accepted,
		Rejected:   s.Rejected,
		Failed:     s.Failed,
	}
}

// FileRun is an import bound to an open input file.
type FileRun struct {
	*Importer

	f         *os.File
	closeOnce sync.Once
	closeErr  error
}

// Open opens the input file and prepares a run over it. Failure to open is
// the only fatal import error; it wraps internalerr.ErrInputUnavailable.
func Open(path string, opts Options) (*FileRun, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", internalerr.ErrInputUnavailable, err)
	}
	im := New(opts)
	im.input = path
	return &FileRun{Importer: im, f: f}, nil
}

// Recipes is Importer.Recipes over the file. The file is closed when the
// sequence ends, however it ends.
func (fr *FileRun) Recipes(ctx context.Context) iter.Seq[recipe.ImportedRecipe] {
	seq := fr.Importer.Recipes(ctx, fr.f)
	return func(yield func(recipe.ImportedRecipe) bool) {
		defer fr.Close()
		seq(yield)
	}
}

// Close releases the input file. It is safe to call more than once.
func (fr *FileRun) Close() error {
	fr.closeOnce.Do(func() {
		fr.closeErr = fr.f.Close()
	})
	return fr.closeErr
}
