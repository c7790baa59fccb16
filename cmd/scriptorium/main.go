// Command scriptorium looks up, searches and serves the Book of Mormon text.
// It accepts references such as "1 Nephi 3:5-7; Alma 5" wherever a citation
// is expected.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/scriptorium/core/corpus"
	"github.com/FocuswithJustin/scriptorium/internal/config"
	"github.com/FocuswithJustin/scriptorium/internal/loader"
	"github.com/FocuswithJustin/scriptorium/internal/logging"
	"github.com/FocuswithJustin/scriptorium/internal/snapshot"
)

const version = "0.4.0"

// Globals are flags accepted by every command.
type Globals struct {
	Config      string `help:"Path to YAML config file (default $SCRIPTORIUM_CONFIG or ./scriptorium.yaml)" type:"path"`
	Corpus      string `help:"Gutenberg source text (overrides corpus.path)" type:"path"`
	DeleteCache bool   `name:"delete-cache" short:"d" help:"Delete corpus snapshots before loading"`
	LogLevel    string `name:"log-level" help:"Log level: debug, info, warn, error"`
	LogFormat   string `name:"log-format" help:"Log format: text or json"`
}

// CLI defines the command-line interface for scriptorium.
type CLI struct {
	Globals

	Search       SearchCmd       `cmd:"" help:"Search by reference ('1 Nephi 5:3-6') or with free-form text ('dwelt in a')"`
	Random       RandomCmd       `cmd:"" help:"Print a random verse"`
	Text         TextCmd         `cmd:"" help:"Print every verse, one per line"`
	Verse        VerseCmd        `cmd:"" help:"Print the verse at a book index, chapter and verse"`
	Canonicalize CanonicalizeCmd `cmd:"" help:"Rewrite a citation in canonical form and check it against the corpus"`
	Serve        ServeCmd        `cmd:"" help:"Start the HTTP API server"`
	Mail         MailCmd         `cmd:"" help:"Email a random verse"`
	Config       ConfigCmd       `cmd:"" help:"Print the effective configuration"`
	Version      VersionCmd      `cmd:"" help:"Print version information"`
}

// app carries what commands share: output, configuration and the corpus.
type app struct {
	ctx     context.Context
	globals *Globals
	out     io.Writer
	errOut  io.Writer
	cfg     *config.Config
	loaded  *corpus.Corpus
}

// setup loads configuration, applies flag overrides and installs the logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.globals.Config)
	if err != nil {
		return err
	}
	if a.globals.Corpus != "" {
		cfg.Corpus.Path = a.globals.Corpus
	}
	if a.globals.LogLevel != "" {
		cfg.Log.Level = a.globals.LogLevel
	}
	if a.globals.LogFormat != "" {
		cfg.Log.Format = a.globals.LogFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	format, _ := logging.ParseFormat(cfg.Log.Format)
	logging.InitLoggerTo(a.errOut, level, format)

	a.cfg = cfg
	return nil
}

func (a *app) snapshots() *snapshot.Store {
	if a.cfg.Corpus.NoSnapshot {
		return nil
	}
	return snapshot.NewStore(a.cfg.Corpus.SnapshotDirOrDefault())
}

// corpus loads the corpus once per invocation.
func (a *app) corpus() (*corpus.Corpus, error) {
	if a.loaded != nil {
		return a.loaded, nil
	}

	store := a.snapshots()
	if a.globals.DeleteCache {
		if store == nil {
			store = snapshot.NewStore(a.cfg.Corpus.SnapshotDirOrDefault())
		}
		n, err := store.Purge()
		if err != nil {
			return nil, fmt.Errorf("delete cache: %w", err)
		}
		logging.SnapshotEvent("purged", store.Dir, "removed", n)
		if a.cfg.Corpus.NoSnapshot {
			store = nil
		}
	}

	res, err := loader.Load(loader.Options{Path: a.cfg.Corpus.Path, Snapshots: store})
	if err != nil {
		return nil, err
	}
	a.loaded = res.Corpus
	return a.loaded, nil
}

// run parses args and executes the selected command.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, exit func(int)) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("scriptorium"),
		kong.Description("Book of Mormon lookup, citation and search tool"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
	)
	if err != nil {
		return err
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	a := &app{ctx: ctx, globals: &cli.Globals, out: stdout, errOut: stderr}
	if err := a.setup(); err != nil {
		return err
	}
	return kctx.Run(a)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, os.Exit); err != nil {
		fmt.Fprintf(os.Stderr, "scriptorium: error: %v\n", err)
		os.Exit(1)
	}
}
