package ttx

import (
	"testing"

	"github.com/FocuswithJustin/ttx/core/errors"
	"github.com/FocuswithJustin/ttx/core/xml"
)

// parseTTX wraps an XML body fragment in the TTX skeleton and returns the
// document, for building states the append API cannot produce.
func parseTTX(t *testing.T, rawBody string) *Document {
	t.Helper()
	data := `<?xml version="1.0"?>
<TRADOStag Version="2.0"><FrontMatter>` +
		`<ToolSettings CreationTool="go-ttx" CreationDate="20260830T120000Z" CreationToolVersion="0.1.0"/>` +
		`<UserSettings SourceDocumentPath="" O-Encoding="windows-1252" TargetLanguage="EN-US" PlugInInfo="" SourceLanguage="DE-DE" SettingsPath="" SettingsRelativePath="" DataType="RTF" SettingsName="" TargetDefaultFont=""/>` +
		`</FrontMatter><Body><Raw>` + rawBody + `</Raw></Body></TRADOStag>`

	tree, err := xml.Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	doc, err := FromTree(tree)
	if err != nil {
		t.Fatalf("FromTree failed: %v", err)
	}
	return doc
}

// TestTypeClassification verifies the kind of every freshly appended item.
func TestTypeClassification(t *testing.T) {
	doc := New()

	tests := []struct {
		name string
		item *ContentItem
		want Kind
	}{
		{"text", doc.AppendText("plain"), KindText},
		{"segment", doc.AppendSegment("s", "t", SegmentOptions{}), KindSegment},
		{"mark", doc.AppendMark("m", ""), KindMark},
		{"open", doc.AppendOpenTag("o", ""), KindOpen},
		{"close", doc.AppendCloseTag("c", ""), KindClose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Type(); got != tt.want {
				t.Errorf("Type = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypeUnknown(t *testing.T) {
	doc := parseTTX(t, `<df Font="Arial">styled</df><ut Type="sideways">?</ut>`)

	items := doc.ContentElements()
	if len(items) != 2 {
		t.Fatalf("ContentElements = %d, want 2", len(items))
	}
	for i, item := range items {
		if got := item.Type(); got != KindUnknown {
			t.Errorf("item %d type = %q, want unknown", i, got)
		}
	}
}

// TestTagNoOpKinds verifies the contractual no-op default: text runs and
// segments have no display label.
func TestTagNoOpKinds(t *testing.T) {
	doc := New()
	text := doc.AppendText("plain")
	seg := doc.AppendSegment("s", "t", SegmentOptions{})

	for name, item := range map[string]*ContentItem{"text": text, "segment": seg} {
		if got := item.Tag(); got != "" {
			t.Errorf("%s Tag = %q, want empty", name, got)
		}
		if got := item.Tag("cf"); got != "" {
			t.Errorf("%s Tag set = %q, want empty no-op", name, got)
		}
		if got := item.Tag(); got != "" {
			t.Errorf("%s Tag after attempted set = %q, want empty", name, got)
		}
	}
}

func TestTagSetOnMark(t *testing.T) {
	doc := New()
	mark := doc.AppendMark("payload", "text")

	if got := mark.Tag("comment"); got != "comment" {
		t.Errorf("Tag set = %q, want comment", got)
	}
	if got := mark.Tag(); got != "comment" {
		t.Errorf("Tag after set = %q, want comment", got)
	}
	// The kind is computed, not stored: relabeling does not change it.
	if got := mark.Type(); got != KindMark {
		t.Errorf("Type after relabel = %q, want mark", got)
	}
}

// TestSegmentSingleVariantFallback verifies a segment with only one
// variant returns its text from both Source and Translated.
func TestSegmentSingleVariantFallback(t *testing.T) {
	doc := parseTTX(t, `<Tu MatchPercent="0"><Tuv Lang="DE-DE">nur eins</Tuv></Tu>`)

	segs := doc.Segments()
	if len(segs) != 1 {
		t.Fatalf("Segments = %d, want 1", len(segs))
	}
	if got := segs[0].Source(); got != "nur eins" {
		t.Errorf("Source = %q, want %q", got, "nur eins")
	}
	if got := segs[0].Translated(); got != "nur eins" {
		t.Errorf("Translated = %q, want %q", got, "nur eins")
	}
	if got := segs[0].TargetLang(); got != "DE-DE" {
		t.Errorf("TargetLang fallback = %q, want DE-DE", got)
	}
}

func TestSegmentEmpty(t *testing.T) {
	doc := parseTTX(t, `<Tu MatchPercent="0"></Tu>`)

	seg := doc.Segments()[0]
	if got := seg.Source(); got != "" {
		t.Errorf("Source = %q, want empty", got)
	}
	if got := seg.Translated(); got != "" {
		t.Errorf("Translated = %q, want empty", got)
	}
}

func TestMatchSetOrGet(t *testing.T) {
	doc := New()
	seg := doc.AppendSegment("s", "t", SegmentOptions{Match: 42})

	got, err := seg.Match()
	if err != nil {
		t.Fatalf("Match read failed: %v", err)
	}
	if got != 42 {
		t.Errorf("Match = %d, want 42", got)
	}

	got, err = seg.Match(99)
	if err != nil {
		t.Fatalf("Match write failed: %v", err)
	}
	if got != 99 {
		t.Errorf("Match write returned %d, want 99", got)
	}
	got, _ = seg.Match()
	if got != 99 {
		t.Errorf("Match after write = %d, want 99", got)
	}
}

// TestMatchInvalidAttribute verifies non-numeric match data surfaces an
// error instead of coercing.
func TestMatchInvalidAttribute(t *testing.T) {
	doc := parseTTX(t, `<Tu MatchPercent="fuzzy"><Tuv Lang="DE-DE">a</Tuv><Tuv Lang="EN-US">b</Tuv></Tu>`)

	_, err := doc.Segments()[0].Match()
	if err == nil {
		t.Fatal("Match should fail for non-numeric attribute")
	}
	if !errors.Is(err, errors.ErrInvalidAttribute) {
		t.Errorf("error should match ErrInvalidAttribute, got %v", err)
	}
	var iae *errors.InvalidAttributeError
	if !errors.As(err, &iae) {
		t.Fatalf("error should be *InvalidAttributeError, got %T", err)
	}
	if iae.Value != "fuzzy" {
		t.Errorf("error value = %q, want fuzzy", iae.Value)
	}
}

// TestMatchNonSegment verifies the deliberate type-dispatch default: 0 and
// no write for every non-segment kind.
func TestMatchNonSegment(t *testing.T) {
	doc := New()

	items := map[string]*ContentItem{
		"text":  doc.AppendText("plain"),
		"mark":  doc.AppendMark("m", ""),
		"open":  doc.AppendOpenTag("o", ""),
		"close": doc.AppendCloseTag("c", ""),
	}

	for name, item := range items {
		t.Run(name, func(t *testing.T) {
			got, err := item.Match()
			if err != nil || got != 0 {
				t.Errorf("Match = %d, %v, want 0, nil", got, err)
			}
			got, err = item.Match(75)
			if err != nil || got != 0 {
				t.Errorf("Match(75) = %d, %v, want 0, nil", got, err)
			}
			if item.node.HasAttr("MatchPercent") {
				t.Error("Match set on non-segment must not write")
			}
		})
	}
}

func TestNonSegmentSourceApproximation(t *testing.T) {
	doc := New()
	mark := doc.AppendMark("ttxpath=3 &amp; more", "")

	// Raw content access on non-segments returns the node's own text.
	if got := mark.Source(); got != "ttxpath=3 &amp; more" {
		t.Errorf("Source = %q", got)
	}
	if got := mark.Translated(); got != mark.Source() {
		t.Errorf("Translated = %q, should equal Source for non-segments", got)
	}
}

func TestSegmentLangAccessors(t *testing.T) {
	doc := New()
	seg := doc.AppendSegment("s", "t", SegmentOptions{SourceLang: "DE-DE", TargetLang: "FR-FR"})

	if got := seg.SourceLang(); got != "DE-DE" {
		t.Errorf("SourceLang = %q", got)
	}
	if got := seg.TargetLang(); got != "FR-FR" {
		t.Errorf("TargetLang = %q", got)
	}

	text := doc.AppendText("x")
	if got := text.SourceLang(); got != "" {
		t.Errorf("SourceLang on text = %q, want empty", got)
	}
	if got := text.Origin(); got != "" {
		t.Errorf("Origin on text = %q, want empty", got)
	}
}
