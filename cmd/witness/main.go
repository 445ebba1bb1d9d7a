// Command witness loads a multi-witness edition and exposes it for
// philological study: concordance search, chapter navigation, unit lookup,
// and a JSON API server for a reading frontend.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/scriptoria/witness/core/concord"
	"github.com/scriptoria/witness/core/edition"
	"github.com/scriptoria/witness/core/locus"
	"github.com/scriptoria/witness/internal/loader"
	"github.com/scriptoria/witness/internal/logging"
	"github.com/scriptoria/witness/internal/server"
)

const version = "0.2.0"

// CLI defines the command-line interface for witness.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log output format"`

	Serve    ServeCmd    `cmd:"" help:"Start the JSON API server"`
	Search   SearchCmd   `cmd:"" help:"Run a concordance search across all witnesses"`
	Show     ShowCmd     `cmd:"" help:"Show the units addressed by a locus reference"`
	Chapters ChaptersCmd `cmd:"" help:"List the chapter navigation index per witness"`
	Inspect  InspectCmd  `cmd:"" help:"Summarize the loaded witnesses"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// SourceFlags configures which witnesses to load. Sources can come from a
// JSON manifest, from repeated --source flags, or both; flag sources are
// appended after manifest sources and the combined order is corpus order.
type SourceFlags struct {
	Manifest string   `name:"manifest" short:"m" type:"existingfile" help:"JSON ingestion manifest"`
	Source   []string `name:"source" short:"s" help:"Witness source as markup[,annotations][,title] (repeatable)"`
	Marker   string   `name:"chapter-marker" help:"Chapter-opening literal for witnesses that configure none"`
}

// sources merges manifest and flag sources in configured order.
func (f *SourceFlags) sources() ([]loader.Source, error) {
	var sources []loader.Source
	if f.Manifest != "" {
		m, err := loader.ReadManifest(f.Manifest)
		if err != nil {
			return nil, err
		}
		sources = m.Sources
	}
	for _, spec := range f.Source {
		parts := strings.SplitN(spec, ",", 3)
		src := loader.Source{MarkupPath: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			src.AnnotationPath = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			src.Title = strings.TrimSpace(parts[2])
		}
		sources = append(sources, src)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no witness sources configured (use --manifest or --source)")
	}
	if f.Marker != "" {
		for i := range sources {
			if sources[i].ChapterMarker == "" {
				sources[i].ChapterMarker = f.Marker
			}
		}
	}
	return sources, nil
}

// load ingests the configured witnesses into a corpus.
func (f *SourceFlags) load(ctx context.Context) (*edition.Corpus, error) {
	sources, err := f.sources()
	if err != nil {
		return nil, err
	}
	corpus := loader.Load(ctx, sources)
	logging.Info("corpus_loaded", "configured", len(sources), "loaded", corpus.Len())
	return corpus, nil
}

// ServeCmd starts the JSON API server.
type ServeCmd struct {
	SourceFlags
	Addr    string   `name:"addr" default:":8744" help:"Listen address"`
	Origins []string `name:"origin" help:"Allowed CORS origins (repeatable; default: any)"`
}

// Run starts the server and blocks until interrupted.
func (c *ServeCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	corpus, err := c.load(ctx)
	if err != nil {
		return err
	}
	srv := server.New(server.Config{
		Addr:           c.Addr,
		AllowedOrigins: c.Origins,
		ChapterMarker:  c.Marker,
	}, corpus)
	return srv.ListenAndServe(ctx)
}

// SearchCmd runs a concordance search from the command line.
type SearchCmd struct {
	SourceFlags
	Query string `arg:"" help:"Query token (case-insensitive substring)"`
	JSON  bool   `name:"json" help:"Emit hits as JSON instead of text"`
}

// Run performs the search and prints hits grouped per witness.
func (c *SearchCmd) Run() error {
	corpus, err := c.load(context.Background())
	if err != nil {
		return err
	}
	hits := concord.NewEngine(corpus, concord.WithLogger(logging.Logger())).Search(c.Query)

	if c.JSON {
		return json.NewEncoder(os.Stdout).Encode(hits)
	}
	if len(hits) == 0 {
		fmt.Printf("no occurrences of %q\n", c.Query)
		return nil
	}
	for _, hit := range hits {
		fmt.Printf("%s (%s): %d occurrence(s)\n", hit.Document.Identifier, hit.Document.Title, hit.Count)
		for _, occ := range hit.Occurrences {
			fmt.Printf("  [%s]  %s  **%s**  %s\n", occ.UnitIndex, occ.LeftContext, occ.Match, occ.RightContext)
		}
	}
	return nil
}

// ShowCmd prints the units addressed by a locus reference.
type ShowCmd struct {
	SourceFlags
	Doc string `name:"doc" required:"" help:"Witness identifier"`
	Ref string `arg:"" help:"Locus reference, e.g. III, III.12, 2:4-7"`
}

// Run resolves the reference against one witness and prints its units.
func (c *ShowCmd) Run() error {
	corpus, err := c.load(context.Background())
	if err != nil {
		return err
	}
	doc := corpus.ByIdentifier(c.Doc)
	if doc == nil {
		return fmt.Errorf("unknown witness %q", c.Doc)
	}
	loc, err := locus.Parse(c.Ref)
	if err != nil {
		return err
	}
	units, err := locus.Resolve(doc, c.Marker, loc)
	if err != nil {
		return err
	}
	for _, u := range units {
		fmt.Printf("[%s] %s\n", u.Index, renderUnit(u))
		if u.Translation != "" {
			fmt.Printf("      %s\n", u.Translation)
		}
	}
	return nil
}

// ChaptersCmd lists the chapter navigation index.
type ChaptersCmd struct {
	SourceFlags
	Doc string `name:"doc" help:"Limit to one witness identifier"`
}

// Run prints the chapter index per witness.
func (c *ChaptersCmd) Run() error {
	corpus, err := c.load(context.Background())
	if err != nil {
		return err
	}
	for _, doc := range corpus.Documents() {
		if c.Doc != "" && doc.Identifier != c.Doc {
			continue
		}
		chapters := edition.Chapters(doc, c.Marker)
		fmt.Printf("%s: %s\n", doc.Identifier, strings.Join(chapters, ", "))
	}
	return nil
}

// InspectCmd summarizes the loaded witnesses.
type InspectCmd struct {
	SourceFlags
}

// Run prints one metadata summary per witness.
func (c *InspectCmd) Run() error {
	corpus, err := c.load(context.Background())
	if err != nil {
		return err
	}
	for _, doc := range corpus.Documents() {
		words := 0
		annotated := 0
		for _, u := range doc.Units {
			words += len(u.Words)
			for _, w := range u.Words {
				if w.Lemma != "" {
					annotated++
				}
			}
		}
		fmt.Printf("%s\n", doc.Identifier)
		fmt.Printf("  title:     %s\n", doc.Title)
		if doc.Editor != "" {
			fmt.Printf("  editor:    %s\n", doc.Editor)
		}
		if doc.Location != "" {
			fmt.Printf("  location:  %s\n", doc.Location)
		}
		if doc.Origin != "" {
			fmt.Printf("  origin:    %s\n", doc.Origin)
		}
		fmt.Printf("  units:     %d\n", len(doc.Units))
		fmt.Printf("  words:     %d (%d lemmatized)\n", words, annotated)
		fmt.Printf("  digest:    %s\n", doc.Digest)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

// Run prints the version.
func (c *VersionCmd) Run() error {
	fmt.Printf("witness %s\n", version)
	return nil
}

// renderUnit prefers the word-level breakdown over the raw source text.
func renderUnit(u *edition.Unit) string {
	if len(u.Words) == 0 {
		return u.SourceText
	}
	forms := make([]string, 0, len(u.Words))
	for _, w := range u.Words {
		forms = append(forms, w.SurfaceForm)
	}
	return strings.Join(forms, " ")
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("witness"),
		kong.Description("Ingestion, reconciliation and concordance engine for a multi-witness edition."),
		kong.UsageOnError(),
	)
	logging.Init(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))
	ctx.FatalIfErrorf(ctx.Run())
}
