// Command rubykit converts ruby-annotated text between inline markup, JSON,
// XHTML and the native annotation layout, and keeps documents in a local
// store.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/FocuswithJustin/rubykit/core/attrtext"
	"github.com/FocuswithJustin/rubykit/core/ctruby"
	"github.com/FocuswithJustin/rubykit/core/ruby"
	"github.com/FocuswithJustin/rubykit/core/sqlite"
	"github.com/FocuswithJustin/rubykit/core/xhtml"
	"github.com/FocuswithJustin/rubykit/internal/logging"
	"github.com/FocuswithJustin/rubykit/internal/store"
)

const version = "0.1.0"

// Standard streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

// Globals holds flags shared by every command.
type Globals struct {
	Config    kong.ConfigFlag `help:"Load flag defaults from a JSON file" type:"path"`
	DB        string          `name:"db" env:"RUBYKIT_DB" default:"rubykit.db" help:"Document store path" type:"path"`
	LogLevel  string          `env:"RUBYKIT_LOG_LEVEL" default:"warn" enum:"debug,info,warn,error" help:"Log level (${enum})"`
	LogFormat string          `env:"RUBYKIT_LOG_FORMAT" default:"text" enum:"text,json" help:"Log format (${enum})"`
}

// CLI defines the command-line interface for rubykit.
type CLI struct {
	Globals

	Parse   ParseCmd   `cmd:"" help:"Parse inline markup and print attributed text as JSON"`
	Convert ConvertCmd `cmd:"" help:"Convert attributed text between formats"`
	Native  NativeCmd  `cmd:"" help:"Show the native annotation runs for a text"`
	HTML    HTMLGroup  `cmd:"" name:"html" help:"XHTML ruby interchange"`
	Store   StoreGroup `cmd:"" help:"Document store operations"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// HTMLGroup contains XHTML conversions.
type HTMLGroup struct {
	Export HTMLExportCmd `cmd:"" help:"Write attributed text as XHTML ruby markup"`
	Import HTMLImportCmd `cmd:"" help:"Read XHTML ruby markup into attributed text"`
}

// StoreGroup contains document store operations.
type StoreGroup struct {
	Put    StorePutCmd    `cmd:"" help:"Store a document"`
	Get    StoreGetCmd    `cmd:"" help:"Print a stored document"`
	List   StoreListCmd   `cmd:"" help:"List stored documents"`
	Delete StoreDeleteCmd `cmd:"" help:"Delete a stored document"`
}

// Input selects where a command reads text from and how to decode it.
type Input struct {
	File string `arg:"" optional:"" default:"-" help:"Input file, or - for standard input"`
	From string `short:"f" enum:"markup,json,html" default:"markup" help:"Input format (${enum})"`
}

func (in Input) load() (*attrtext.String, error) {
	var (
		data []byte
		err  error
	)
	if in.File == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(in.File)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return decode(in.From, data)
}

func decode(format string, data []byte) (*attrtext.String, error) {
	switch format {
	case "json":
		s := &attrtext.String{}
		if err := json.Unmarshal(data, s); err != nil {
			return nil, err
		}
		return s, nil
	case "html":
		return xhtml.Import(data)
	default:
		return attrtext.FromMarkup(string(data))
	}
}

func encode(format string, s *attrtext.String) (string, error) {
	switch format {
	case "markup":
		return attrtext.ToMarkup(s)
	case "html":
		return xhtml.Export(s)
	default:
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func write(format string, s *attrtext.String) error {
	out, err := encode(format, s)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, out)
	return err
}

// ParseCmd parses markup into JSON.
type ParseCmd struct {
	File     string `arg:"" optional:"" default:"-" help:"Markup file, or - for standard input"`
	Vertical bool   `help:"Set the vertical-glyph flag on the whole text"`
}

func (c *ParseCmd) Run() error {
	s, err := Input{File: c.File, From: "markup"}.load()
	if err != nil {
		return err
	}
	if c.Vertical {
		s.SetVerticalGlyphAll(true)
	}
	return write("json", s)
}

// ConvertCmd converts between markup, JSON and XHTML.
type ConvertCmd struct {
	Input
	To string `short:"t" enum:"markup,json,html" default:"json" help:"Output format (${enum})"`
}

func (c *ConvertCmd) Run() error {
	s, err := c.load()
	if err != nil {
		return err
	}
	return write(c.To, s)
}

// NativeCmd exports text to native runs and prints them.
type NativeCmd struct {
	Input
	RoundTrip bool `help:"Import the native runs again and print the result as JSON"`
}

func (c *NativeCmd) Run() error {
	s, err := c.load()
	if err != nil {
		return err
	}
	runs := s.ExportNative()
	defer attrtext.ReleaseNative(runs)

	for _, nr := range runs {
		fmt.Fprintln(stdout, describeRun(nr))
	}
	if !c.RoundTrip {
		return nil
	}
	back, err := attrtext.ImportNative(s.Characters(), runs)
	if err != nil {
		return err
	}
	return write("json", back)
}

func describeRun(nr attrtext.NativeRun) string {
	parts := []string{fmt.Sprintf("{%d, %d}", nr.Range.Location, nr.Range.Length)}
	for _, key := range attrtext.Keys() {
		v, ok := nr.Attributes[key.Native]
		if !ok {
			continue
		}
		if a, ok := v.(*ctruby.Annotation); ok {
			parts = append(parts, key.Native+"="+describeAnnotation(a))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%v", key.Native, v))
	}
	return strings.Join(parts, " ")
}

func describeAnnotation(a *ctruby.Annotation) string {
	var slots []string
	for _, p := range ruby.Positions() {
		if s, ok := a.TextForPosition(uint8(p)); ok {
			slots = append(slots, fmt.Sprintf("%s: %q", p, s))
		}
	}
	return fmt.Sprintf("{%s, alignment: %d, overhang: %d, sizeFactor: %g}",
		strings.Join(slots, ", "), a.Alignment(), a.Overhang(), a.SizeFactor())
}

// HTMLExportCmd writes XHTML.
type HTMLExportCmd struct {
	Input
}

func (c *HTMLExportCmd) Run() error {
	s, err := c.load()
	if err != nil {
		return err
	}
	return write("html", s)
}

// HTMLImportCmd reads XHTML.
type HTMLImportCmd struct {
	File string `arg:"" optional:"" default:"-" help:"XHTML file, or - for standard input"`
	To   string `short:"t" enum:"markup,json" default:"json" help:"Output format (${enum})"`
}

func (c *HTMLImportCmd) Run() error {
	s, err := Input{File: c.File, From: "html"}.load()
	if err != nil {
		return err
	}
	return write(c.To, s)
}

func openStore(g *Globals) (context.Context, *store.Store, error) {
	ctx := logging.WithOperationID(context.Background(), uuid.NewString())
	s, err := store.Open(ctx, g.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	return ctx, s, nil
}

// StorePutCmd stores a document.
type StorePutCmd struct {
	Input
	Name string `required:"" short:"n" help:"Document name"`
}

func (c *StorePutCmd) Run(g *Globals) error {
	text, err := c.load()
	if err != nil {
		return err
	}
	ctx, s, err := openStore(g)
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := s.Put(ctx, c.Name, text)
	if err != nil {
		return fmt.Errorf("failed to store document: %w", err)
	}
	fmt.Fprintf(stdout, "Stored: %s\n", rec.Name)
	fmt.Fprintf(stdout, "  ID: %s\n", rec.ID)
	fmt.Fprintf(stdout, "  BLAKE3: %s\n", rec.Digest)
	fmt.Fprintf(stdout, "  Runs: %d\n", rec.Runs)
	fmt.Fprintf(stdout, "  Size: %d bytes\n", rec.Size)
	return nil
}

// StoreGetCmd prints a stored document.
type StoreGetCmd struct {
	ID string `arg:"" help:"Document ID"`
	To string `short:"t" enum:"markup,json,html" default:"json" help:"Output format (${enum})"`
}

func (c *StoreGetCmd) Run(g *Globals) error {
	ctx, s, err := openStore(g)
	if err != nil {
		return err
	}
	defer s.Close()

	doc, err := s.Get(ctx, c.ID)
	if err != nil {
		return err
	}
	return write(c.To, doc.Text)
}

// StoreListCmd lists stored documents.
type StoreListCmd struct {
	JSON bool `help:"Print records as JSON"`
}

func (c *StoreListCmd) Run(g *Globals) error {
	ctx, s, err := openStore(g)
	if err != nil {
		return err
	}
	defer s.Close()

	recs, err := s.List(ctx)
	if err != nil {
		return err
	}
	if c.JSON {
		if recs == nil {
			recs = []store.Record{}
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}
	if len(recs) == 0 {
		fmt.Fprintln(stdout, "No documents stored")
		return nil
	}
	for _, rec := range recs {
		fmt.Fprintf(stdout, "%s  %-20s  %s  %d runs  %d bytes\n",
			rec.ID, rec.Name, rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.Runs, rec.Size)
	}
	return nil
}

// StoreDeleteCmd deletes a stored document.
type StoreDeleteCmd struct {
	ID string `arg:"" help:"Document ID"`
}

func (c *StoreDeleteCmd) Run(g *Globals) error {
	ctx, s, err := openStore(g)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Delete(ctx, c.ID); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Deleted: %s\n", c.ID)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	info := sqlite.GetInfo()
	fmt.Fprintf(stdout, "rubykit version %s\n", version)
	fmt.Fprintf(stdout, "  SQLite driver: %s (%s)\n", info.DriverName, info.DriverType)

	ctx := context.Background()
	db, err := sqlite.OpenContext(ctx, ":memory:")
	if err != nil {
		return fmt.Errorf("failed to open SQLite: %w", err)
	}
	defer db.Close()
	v, err := sqlite.Version(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to query SQLite version: %w", err)
	}
	fmt.Fprintf(stdout, "  SQLite version: %s\n", v)
	return nil
}

func options(cli *CLI) []kong.Option {
	return []kong.Option{
		kong.Name("rubykit"),
		kong.Description("Ruby annotation tools for Japanese typography"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Configuration(kong.JSON, "/etc/rubykit/config.json", "~/.config/rubykit/config.json"),
		kong.Bind(&cli.Globals),
	}
}

func (g *Globals) initLogging() {
	logging.InitLogger(logging.ParseLevel(g.LogLevel), logging.ParseFormat(g.LogFormat))
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, options(&cli)...)
	cli.initLogging()
	logging.Debug("running command", "command", ctx.Command())
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
