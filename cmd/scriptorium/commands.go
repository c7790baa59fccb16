package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/FocuswithJustin/scriptorium/core/citation"
	"github.com/FocuswithJustin/scriptorium/core/corpus"
	"github.com/FocuswithJustin/scriptorium/internal/api"
	"github.com/FocuswithJustin/scriptorium/internal/logging"
	"github.com/FocuswithJustin/scriptorium/internal/mailer"
	"github.com/FocuswithJustin/scriptorium/internal/search"
)

// For testing.
var (
	randIntN = rand.IntN
	now      = time.Now
)

// SearchCmd looks up a citation, or falls back to a free-text search.
type SearchCmd struct {
	Query string `arg:"" help:"Citation or search text"`
	Num   int    `name:"num-matches" short:"n" help:"Maximum number of free-text results (default search.default_limit)"`
	Count bool   `name:"count-matches" short:"c" help:"Print the total number of matching verses first"`
	FTS   bool   `name:"fts" help:"Use the SQLite full-text index instead of a regular expression"`
}

func (c *SearchCmd) Run(a *app) error {
	bom, err := a.corpus()
	if err != nil {
		return err
	}

	var (
		matches []corpus.VerseWithReference
		total   int
	)
	if rc, err := citation.Parse(c.Query); err == nil {
		for v := range bom.VersesMatching(rc) {
			matches = append(matches, v)
		}
		total = len(matches)
	} else {
		limit := c.Num
		if limit <= 0 {
			limit = a.cfg.Search.DefaultLimit
		}
		if c.FTS {
			matches, total, err = ftsSearch(a.ctx, a.cfg.Search.DSN, bom, c.Query, limit)
		} else {
			matches, total, err = search.Regex(bom, c.Query, limit)
		}
		if err != nil {
			return err
		}
	}

	if c.Count {
		fmt.Fprintln(a.out, total)
	}
	if len(matches) > 0 {
		rendered := make([]string, len(matches))
		for i, v := range matches {
			rendered[i] = v.String()
		}
		fmt.Fprintln(a.out, strings.Join(rendered, "\n\n"))
	}
	return nil
}

func ftsSearch(ctx context.Context, dsn string, c *corpus.Corpus, query string, limit int) ([]corpus.VerseWithReference, int, error) {
	ix, err := search.Open(ctx, dsn)
	if err != nil {
		return nil, 0, err
	}
	defer ix.Close()

	if err := ix.Build(ctx, c); err != nil {
		return nil, 0, err
	}
	refs, total, err := ix.Search(ctx, query, limit)
	if err != nil {
		return nil, 0, err
	}
	verses := make([]corpus.VerseWithReference, 0, len(refs))
	for _, ref := range refs {
		if v, ok := c.VerseAt(ref); ok {
			verses = append(verses, v)
		}
	}
	return verses, total, nil
}

// RandomCmd prints one random verse.
type RandomCmd struct{}

func (c *RandomCmd) Run(a *app) error {
	v, err := randomVerse(a)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, v)
	return nil
}

func randomVerse(a *app) (corpus.VerseWithReference, error) {
	bom, err := a.corpus()
	if err != nil {
		return corpus.VerseWithReference{}, err
	}
	n := bom.VerseCount()
	if n == 0 {
		return corpus.VerseWithReference{}, fmt.Errorf("corpus has no verses")
	}
	v, _ := bom.Nth(randIntN(n))
	return v, nil
}

// TextCmd prints the text of every verse.
type TextCmd struct{}

func (c *TextCmd) Run(a *app) error {
	bom, err := a.corpus()
	if err != nil {
		return err
	}
	for v := range bom.All() {
		if _, err := fmt.Fprintln(a.out, v.Text); err != nil {
			return err
		}
	}
	return nil
}

// VerseCmd prints a single verse.
type VerseCmd struct {
	Book    int `arg:"" help:"0-based book index"`
	Chapter int `arg:"" help:"1-based chapter"`
	Verse   int `arg:"" help:"1-based verse"`
}

func (c *VerseCmd) Run(a *app) error {
	bom, err := a.corpus()
	if err != nil {
		return err
	}
	v, ok := bom.VerseAt(corpus.NewVerseReference(bom.Work, c.Book, c.Chapter, c.Verse))
	if !ok {
		return fmt.Errorf("no verse at book %d chapter %d verse %d", c.Book, c.Chapter, c.Verse)
	}
	fmt.Fprintln(a.out, v)
	return nil
}

// CanonicalizeCmd prints the canonical form of a citation and whether it
// exists in the corpus.
type CanonicalizeCmd struct {
	Citation string `arg:"" help:"Citation to canonicalize"`
}

func (c *CanonicalizeCmd) Run(a *app) error {
	rc, err := citation.Parse(c.Citation)
	if err != nil {
		return err
	}
	rc.Canonicalize()

	bom, err := a.corpus()
	if err != nil {
		return err
	}
	validity := "invalid"
	if rc.IsValid(bom) {
		validity = "valid"
	}
	fmt.Fprintln(a.out, rc)
	fmt.Fprintln(a.out, validity)
	return nil
}

// ServeCmd runs the HTTP API until interrupted.
type ServeCmd struct {
	Host    string `help:"Listen host (overrides server.host)"`
	Port    int    `help:"Listen port (overrides server.port when >= 0)" default:"-1"`
	NoIndex bool   `name:"no-index" help:"Do not build the full-text search index"`
}

func (c *ServeCmd) Run(a *app) error {
	cfg := a.cfg
	if c.Host != "" {
		cfg.Server.Host = c.Host
	}
	if c.Port >= 0 {
		cfg.Server.Port = c.Port
	}

	ctx, stop := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load the corpus and prepare the index database concurrently.
	var (
		bom *corpus.Corpus
		ix  *search.Index
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bom, err = a.corpus()
		return err
	})
	if !c.NoIndex {
		g.Go(func() error {
			var err error
			ix, err = search.Open(gctx, cfg.Search.DSN)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		if ix != nil {
			ix.Close()
		}
		return err
	}

	if ix != nil {
		defer ix.Close()
		start := time.Now()
		if err := ix.Build(ctx, bom); err != nil {
			return fmt.Errorf("build search index: %w", err)
		}
		logging.Info("search index built", "fts", ix.FTS(), "duration_ms", time.Since(start).Milliseconds())
	}

	srv, err := api.New(api.Options{
		Version: version,
		Corpus:  bom,
		Index:   ix,
		Server:  cfg.Server,
		Cache:   cfg.Cache,
		Search:  cfg.Search,
	})
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

// MailCmd sends the random-verse email.
type MailCmd struct {
	DryRun bool `name:"dry-run" help:"Print the message instead of sending it"`
}

func (c *MailCmd) Run(a *app) error {
	if !c.DryRun {
		if err := a.cfg.ValidateMail(); err != nil {
			return err
		}
	}

	v, err := randomVerse(a)
	if err != nil {
		return err
	}
	msg, err := mailer.Compose(a.cfg.Mail, v, now())
	if err != nil {
		return err
	}
	logging.MailEvent("composed", msg.ID, "citation", v.Citation())

	if c.DryRun {
		_, err := msg.WriteTo(a.out)
		return err
	}
	if err := mailer.New(a.cfg.Mail).Send(a.ctx, msg); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Email sent successfully!")
	return nil
}

// ConfigCmd prints the effective configuration.
type ConfigCmd struct{}

func (c *ConfigCmd) Run(a *app) error {
	out, err := a.cfg.YAML()
	if err != nil {
		return err
	}
	_, err = a.out.Write(out)
	return err
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run(a *app) error {
	fmt.Fprintf(a.out, "scriptorium version %s\n", version)
	return nil
}
