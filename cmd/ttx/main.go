// Command ttx is the CLI tool for working with TTX bilingual documents.
// It provides commands for inspecting files, extracting segments, building
// documents from tab-separated text, and exporting into a translation
// memory store.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/ttx/core/ttx"
	"github.com/FocuswithJustin/ttx/internal/logging"
	"github.com/FocuswithJustin/ttx/internal/tm"
)

// CLI defines the command-line interface for ttx.
var CLI struct {
	// Global flags
	LogLevel string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level"`
	LogJSON  bool   `name:"log-json" help:"Log in JSON format"`

	Info    InfoCmd    `cmd:"" help:"Show header settings and body statistics"`
	Extract ExtractCmd `cmd:"" help:"List segments of a TTX file"`
	Create  CreateCmd  `cmd:"" help:"Build a TTX file from tab-separated source/target rows"`
	TM      TMGroup    `cmd:"" name:"tm" help:"Translation memory store operations"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// TMGroup contains translation-memory store operations.
type TMGroup struct {
	Export TMExportCmd `cmd:"" help:"Export segments of TTX files into a store"`
	Lookup TMLookupCmd `cmd:"" help:"Look up an exact source text"`
	Stats  TMStatsCmd  `cmd:"" help:"Show store statistics"`
}

// InfoCmd shows header settings and body statistics.
type InfoCmd struct {
	Path string `arg:"" help:"Path to TTX file" type:"existingfile"`
}

func (c *InfoCmd) Run() error {
	doc, err := ttx.Load(c.Path)
	if err != nil {
		return err
	}

	fmt.Printf("File:                %s\n", c.Path)
	fmt.Printf("CreationTool:        %s %s\n", doc.CreationTool(), doc.CreationToolVersion())
	fmt.Printf("CreationDate:        %s\n", doc.CreationDate())
	fmt.Printf("SourceLanguage:      %s\n", doc.SourceLanguage())
	fmt.Printf("TargetLanguage:      %s\n", doc.TargetLanguage())
	fmt.Printf("DataType:            %s\n", doc.DataType())
	fmt.Printf("O-Encoding:          %s\n", doc.Encoding())
	if p := doc.SourceDocumentPath(); p != "" {
		fmt.Printf("SourceDocumentPath:  %s\n", p)
	}
	if n := doc.SettingsName(); n != "" {
		fmt.Printf("SettingsName:        %s\n", n)
	}

	counts := map[ttx.Kind]int{}
	for _, item := range doc.ContentElements() {
		counts[item.Type()]++
	}
	fmt.Printf("Body: %d segments, %d text runs, %d marks, %d open/close tags\n",
		counts[ttx.KindSegment], counts[ttx.KindText], counts[ttx.KindMark],
		counts[ttx.KindOpen]+counts[ttx.KindClose])
	return nil
}

// ExtractCmd lists the segments of a TTX file.
type ExtractCmd struct {
	Path string `arg:"" help:"Path to TTX file" type:"existingfile"`
	JSON bool   `help:"Emit JSON instead of tab-separated rows"`
	DB   string `help:"Also export segments into this TM store" type:"path"`
}

// segmentRecord is the JSON shape of one extracted segment.
type segmentRecord struct {
	Source     string `json:"source"`
	Target     string `json:"target"`
	Match      int    `json:"match"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
	Origin     string `json:"origin,omitempty"`
}

func (c *ExtractCmd) Run() error {
	doc, err := ttx.Load(c.Path)
	if err != nil {
		return err
	}

	records, err := collectSegments(doc)
	if err != nil {
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return err
		}
	} else {
		for _, r := range records {
			fmt.Println(segmentRow(r))
		}
	}

	if c.DB != "" {
		store, err := tm.Open(c.DB)
		if err != nil {
			return err
		}
		defer store.Close()
		n, err := store.Export(context.Background(), doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "exported %d segments to %s\n", n, c.DB)
	}
	return nil
}

// collectSegments turns a document's segments into records, in order.
func collectSegments(doc *ttx.Document) ([]segmentRecord, error) {
	var records []segmentRecord
	for _, seg := range doc.Segments() {
		match, err := seg.Match()
		if err != nil {
			return nil, err
		}
		records = append(records, segmentRecord{
			Source:     seg.Source(),
			Target:     seg.Translated(),
			Match:      match,
			SourceLang: seg.SourceLang(),
			TargetLang: seg.TargetLang(),
			Origin:     seg.Origin(),
		})
	}
	return records, nil
}

// segmentRow renders one tab-separated output row. Embedded tabs and
// newlines are flattened so each segment stays one row.
func segmentRow(r segmentRecord) string {
	flatten := func(s string) string {
		s = strings.ReplaceAll(s, "\t", " ")
		s = strings.ReplaceAll(s, "\r\n", " ")
		s = strings.ReplaceAll(s, "\n", " ")
		return s
	}
	return fmt.Sprintf("%d\t%s\t%s", r.Match, flatten(r.Source), flatten(r.Target))
}

// CreateCmd builds a TTX file from tab-separated source/target rows.
type CreateCmd struct {
	Path       string `arg:"" help:"Path to tab-separated input (source<TAB>target per line)" type:"existingfile"`
	Out        string `required:"" help:"Output TTX path" type:"path"`
	SourceLang string `name:"source-lang" default:"DE-DE" help:"Source language tag"`
	TargetLang string `name:"target-lang" default:"EN-US" help:"Target language tag"`
	Match      int    `default:"0" help:"Match percent recorded on every segment"`
}

func (c *CreateCmd) Run() error {
	f, err := os.Open(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc := ttx.New(
		ttx.WithSourceLanguage(c.SourceLang),
		ttx.WithTargetLanguage(c.TargetLang),
		ttx.WithSourceDocumentPath(c.Path),
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	rows := 0
	for scanner.Scan() {
		line++
		source, target, ok, err := parseRow(scanner.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if !ok {
			continue
		}
		doc.AppendSegment(source, target, ttx.SegmentOptions{Match: c.Match})
		doc.AppendText("\n")
		rows++
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := doc.Write(c.Out); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %d segments to %s\n", rows, c.Out)
	return nil
}

// parseRow splits one input line into source and target. Blank lines are
// skipped; a non-blank line without a tab is an error.
func parseRow(line string) (source, target string, ok bool, err error) {
	if strings.TrimSpace(line) == "" {
		return "", "", false, nil
	}
	source, target, found := strings.Cut(line, "\t")
	if !found {
		return "", "", false, fmt.Errorf("no tab separator in %q", line)
	}
	return source, target, true, nil
}

// TMExportCmd exports segments of TTX files into a store.
type TMExportCmd struct {
	DB    string   `required:"" help:"TM store path" type:"path"`
	Paths []string `arg:"" help:"TTX files to export" type:"existingfile"`
}

func (c *TMExportCmd) Run() error {
	store, err := tm.Open(c.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	total := 0
	for _, path := range c.Paths {
		doc, err := ttx.Load(path)
		if err != nil {
			return err
		}
		n, err := store.Export(context.Background(), doc)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		total += n
	}
	fmt.Printf("exported %d segments from %d files\n", total, len(c.Paths))
	return nil
}

// TMLookupCmd looks up an exact source text in a store.
type TMLookupCmd struct {
	DB         string `required:"" help:"TM store path" type:"path"`
	SourceLang string `name:"source-lang" required:"" help:"Source language tag"`
	Text       string `arg:"" help:"Source text to look up"`
}

func (c *TMLookupCmd) Run() error {
	store, err := tm.Open(c.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Lookup(context.Background(), c.SourceLang, c.Text)
	if err != nil {
		return err
	}
	if entry == nil {
		fmt.Println("no exact match")
		return nil
	}
	fmt.Printf("%s\t%d\t%s\n", entry.TargetLang, entry.Match, entry.Target)
	return nil
}

// TMStatsCmd shows store statistics.
type TMStatsCmd struct {
	DB string `required:"" help:"TM store path" type:"path"`
}

func (c *TMStatsCmd) Run() error {
	store, err := tm.Open(c.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.Stats(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("segments: %d\n", stats.Segments)
	for pair, n := range stats.LanguagePairs {
		fmt.Printf("  %s: %d\n", pair, n)
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("ttx %s\n", ttx.Version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("ttx"),
		kong.Description("Read, build and export TTX bilingual documents."),
		kong.UsageOnError(),
	)

	format := logging.FormatText
	if CLI.LogJSON {
		format = logging.FormatJSON
	}
	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), format)

	ctx.FatalIfErrorf(ctx.Run())
}
