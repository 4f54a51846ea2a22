package ttx

import (
	"strconv"

	"github.com/FocuswithJustin/ttx/core/encoding"
	"github.com/FocuswithJustin/ttx/core/errors"
	"github.com/FocuswithJustin/ttx/core/xml"
)

// Kind classifies a body node.
type Kind string

const (
	// KindText is a plain text run.
	KindText Kind = "text"
	// KindSegment is a translation unit (Tu element).
	KindSegment Kind = "segment"
	// KindMark is an unpaired out-of-band tag (ut with no role).
	KindMark Kind = "mark"
	// KindOpen starts a paired inline span (ut Type="start").
	KindOpen Kind = "open"
	// KindClose ends a paired inline span (ut Type="end").
	KindClose Kind = "close"
	// KindUnknown is anything the content model does not recognize.
	KindUnknown Kind = "unknown"
)

// ContentItem is a typed, non-owning view over one node of the body
// sequence. The kind is computed from the node on every call, never
// stored, so a view stays truthful if the node's attributes change.
type ContentItem struct {
	node *xml.Node
}

// Type classifies the underlying node.
func (c *ContentItem) Type() Kind {
	switch {
	case c.node.IsText():
		return KindText
	case c.node.IsElement():
		switch c.node.Name() {
		case "Tu":
			return KindSegment
		case "ut":
			if !c.node.HasAttr("Type") {
				return KindMark
			}
			switch c.node.Attr("Type") {
			case "start":
				return KindOpen
			case "end":
				return KindClose
			}
		}
	}
	return KindUnknown
}

// Tag is a set-or-get accessor on the display label. Text runs and
// segments carry no label: they read as "" and ignore a set.
func (c *ContentItem) Tag(v ...string) string {
	if !c.node.IsElement() || c.node.Name() == "Tu" {
		return ""
	}
	if len(v) > 0 {
		c.node.SetAttr("DisplayText", v[0])
		return v[0]
	}
	return c.node.Attr("DisplayText")
}

// Source returns the source-language text of a segment. For every other
// kind it returns the node's own text content — an approximation carried
// over from the original contract; use with care on non-segment items.
func (c *ContentItem) Source() string {
	if c.Type() == KindSegment {
		variants := c.variants()
		if len(variants) == 0 {
			return ""
		}
		return encoding.Unescape(variants[0].RawText())
	}
	return encoding.Unescape(c.node.RawText())
}

// Translated returns the target-language text of a segment, falling back
// to the sole variant when the segment was built with only one. For every
// other kind it behaves like Source.
func (c *ContentItem) Translated() string {
	if c.Type() == KindSegment {
		variants := c.variants()
		switch {
		case len(variants) >= 2:
			return encoding.Unescape(variants[1].RawText())
		case len(variants) == 1:
			return encoding.Unescape(variants[0].RawText())
		}
		return ""
	}
	return encoding.Unescape(c.node.RawText())
}

// Match is a set-or-get accessor on the segment's match percent. Reading a
// non-numeric stored value surfaces InvalidAttributeError rather than
// coercing. Non-segment kinds always report 0 and never write.
func (c *ContentItem) Match(v ...int) (int, error) {
	if c.Type() != KindSegment {
		return 0, nil
	}
	if len(v) > 0 {
		c.node.SetAttr("MatchPercent", strconv.Itoa(v[0]))
		return v[0], nil
	}
	raw := c.node.Attr("MatchPercent")
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewInvalidAttribute("MatchPercent", raw, err)
	}
	return n, nil
}

// SourceLang returns the language tag of the segment's source variant,
// or "" for non-segments.
func (c *ContentItem) SourceLang() string {
	variants := c.variants()
	if c.Type() != KindSegment || len(variants) == 0 {
		return ""
	}
	return variants[0].Attr("Lang")
}

// TargetLang returns the language tag of the segment's target variant,
// falling back like Translated, or "" for non-segments.
func (c *ContentItem) TargetLang() string {
	variants := c.variants()
	if c.Type() != KindSegment || len(variants) == 0 {
		return ""
	}
	if len(variants) >= 2 {
		return variants[1].Attr("Lang")
	}
	return variants[0].Attr("Lang")
}

// Origin returns the segment's origin attribute, or "" when unset or for
// non-segments.
func (c *ContentItem) Origin() string {
	if c.Type() != KindSegment {
		return ""
	}
	return c.node.Attr("origin")
}

// variants returns the segment's Tuv children in document order.
func (c *ContentItem) variants() []*xml.Node {
	var out []*xml.Node
	for _, child := range c.node.Children() {
		if child.Name() == "Tuv" {
			out = append(out, child)
		}
	}
	return out
}
