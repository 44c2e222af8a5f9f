// Command larder-import turns a recipe CSV export into a canonical JSON
// corpus.
//
//	larder-import recipes.csv -l 5000 -c dinner -o corpus.json --stats stats.json
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/cognicore/larder/internal/logging"
	"github.com/cognicore/larder/pkg/larder/config"
	"github.com/cognicore/larder/pkg/larder/importer"
	"github.com/cognicore/larder/pkg/larder/ingest"
	"github.com/cognicore/larder/pkg/larder/store"
	"github.com/cognicore/larder/pkg/larder/store/sqlite"
)

// Exit codes
const (
	exitOK    = 0
	exitIO    = 1
	exitUsage = 2
)

type options struct {
	input         string
	limit         int
	category      string
	output        string
	db            string
	lexicon       string
	taxonomy      string
	units         string
	stats         string
	logLevel      string
	logFormat     string
	progressEvery int
}

var errUsage = errors.New("usage")

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(exitUsage)
	}

	logging.Init(logging.Config{Level: opts.logLevel, Format: opts.logFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		logging.Error().Err(err).Msg("import failed")
		if errors.Is(err, errUsage) {
			os.Exit(exitUsage)
		}
		os.Exit(exitIO)
	}
	os.Exit(exitOK)
}

// parseArgs reads flags before and after the positional input path, so both
// "larder-import -l 10 in.csv" and "larder-import in.csv -l 10" work.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("larder-import", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: larder-import <input.csv> [flags]")
		fs.PrintDefaults()
	}

	fs.IntVar(&opts.limit, "limit", 0, "Stop after N accepted recipes (0 = all)")
	fs.IntVar(&opts.limit, "l", 0, "Shorthand for --limit")
	fs.StringVar(&opts.category, "category", "", "Keep only recipes of this derived category")
	fs.StringVar(&opts.category, "c", "", "Shorthand for --category")
	fs.StringVar(&opts.output, "output", "", "Write the corpus as a JSON array to this path")
	fs.StringVar(&opts.output, "o", "", "Shorthand for --output")
	fs.StringVar(&opts.db, "db", "", "Optional SQLite database for recipes and run statistics")
	fs.StringVar(&opts.lexicon, "lexicon", "", "Optional YAML file of extra normalizer rules")
	fs.StringVar(&opts.taxonomy, "taxonomy", "", "Optional YAML file of extra tag keywords")
	fs.StringVar(&opts.units, "units", "", "Optional YAML file of extra densities and profiles")
	fs.StringVar(&opts.stats, "stats", "", "Write the ingredient statistics report to this path")
	fs.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.StringVar(&opts.logFormat, "log-format", "console", "Log format: console or json")
	fs.IntVar(&opts.progressEvery, "progress-every", importer.DefaultProgressEvery, "Rows between progress reports")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return opts, fmt.Errorf("%w: input path required", errUsage)
	}
	opts.input = rest[0]
	if err := fs.Parse(rest[1:]); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return opts, fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}
	if opts.limit < 0 {
		return opts, fmt.Errorf("%w: --limit must not be negative", errUsage)
	}
	return opts, nil
}

func run(ctx context.Context, opts options, stdout io.Writer) error {
	fr, cleanup, err := buildImport(ctx, opts)
	if err != nil {
		return err
	}
	defer cleanup()

	seq := fr.Recipes(ctx)
	written := 0
	if opts.output != "" {
		written, err = importer.WriteCorpusFile(opts.output, seq)
		if err != nil {
			return fmt.Errorf("write corpus: %w", err)
		}
	} else {
		for range seq {
			written++
		}
	}
	if err := fr.Err(); err != nil {
		return err
	}

	summary := fr.Summary()
	if opts.stats != "" {
		if err := writeReport(opts.stats, summary); err != nil {
			return fmt.Errorf("write stats: %w", err)
		}
	}

	fmt.Fprintf(stdout, "imported %d recipes (rows %d, rejected %d, failed %d, distinct ingredients %d)\n",
		written, summary.Rows, summary.Rejected, summary.Failed, len(summary.Stats.Ingredients))
	if opts.output != "" {
		fmt.Fprintf(stdout, "corpus written to %s\n", opts.output)
	}
	return nil
}

// buildImport loads configuration, opens the optional store and the input.
func buildImport(ctx context.Context, opts options) (*importer.FileRun, func(), error) {
	loader := config.Loader{
		LexiconPath:  opts.lexicon,
		TaxonomyPath: opts.taxonomy,
		UnitsPath:    opts.units,
	}
	components, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: load config: %w", errUsage, err)
	}

	var st store.Store
	if opts.db != "" {
		st, err = sqlite.OpenSQLite(ctx, opts.db)
		if err != nil {
			return nil, nil, fmt.Errorf("open db: %w", err)
		}
	}

	pipeline := ingest.NewPipeline(ingest.NewParser(components.Normalizer), components.Classifier, components.Selector)

	accept := importer.DefaultAccept
	if opts.category != "" {
		accept = importer.All(importer.DefaultAccept, importer.InCategory(opts.category))
	}

	fr, err := importer.Open(opts.input, importer.Options{
		Decoder:       pipeline,
		Accept:        accept,
		Limit:         opts.limit,
		ProgressEvery: opts.progressEvery,
		Store:         st,
		Converter:     components.Converter,
	})
	if err != nil {
		if st != nil {
			st.Close()
		}
		return nil, nil, err
	}

	cleanup := func() {
		fr.Close()
		if st != nil {
			st.Close()
		}
	}
	return fr, cleanup, nil
}

func writeReport(path string, summary importer.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := importer.WriteReport(f, importer.NewReport(summary, 50, 50)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
