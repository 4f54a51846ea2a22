// Package ttx implements the TTX bilingual document model: the typed view
// over the ordered body sequence of a TRADOStag file, and the load/write
// rules (UTF-16LE with BOM, TagEditor escaping) that give round-trip
// fidelity.
//
// A Document owns the whole parsed tree. ContentItem values handed out by
// ContentElements and Segments are non-owning views over body nodes; they
// never outlive the Document they came from. Access is single-owner: the
// Document has no internal locking and concurrent mutation is undefined.
//
// Invariant carried throughout the package: text node data under Body/Raw
// always holds the markup-escaped form. Appends escape before storing,
// Load re-escapes what the XML engine decoded, the serializer writes text
// verbatim, and accessors unescape on read.
package ttx

import (
	"os"
	"strconv"
	"time"

	"github.com/FocuswithJustin/ttx/core/encoding"
	"github.com/FocuswithJustin/ttx/core/errors"
	"github.com/FocuswithJustin/ttx/core/xml"
	"github.com/FocuswithJustin/ttx/internal/logging"
)

// Version is the library version, written as the default CreationToolVersion.
const Version = "0.1.0"

// defaultCreationTool identifies this library in ToolSettings.
const defaultCreationTool = "go-ttx"

// creationDateFormat is TagEditor's timestamp layout (YYYYMMDDThhmmssZ, UTC).
const creationDateFormat = "20060102T150405Z"

// ToolSettings attribute names.
const (
	attrCreationTool        = "CreationTool"
	attrCreationDate        = "CreationDate"
	attrCreationToolVersion = "CreationToolVersion"
)

// UserSettings attribute names. The original document encoding is stored
// under O-Encoding; the accessor is named Encoding.
const (
	attrSourceDocumentPath   = "SourceDocumentPath"
	attrEncoding             = "O-Encoding"
	attrTargetLanguage       = "TargetLanguage"
	attrPlugInInfo           = "PlugInInfo"
	attrSourceLanguage       = "SourceLanguage"
	attrSettingsPath         = "SettingsPath"
	attrSettingsRelativePath = "SettingsRelativePath"
	attrDataType             = "DataType"
	attrSettingsName         = "SettingsName"
	attrTargetDefaultFont    = "TargetDefaultFont"
)

var userSettingAttrs = []string{
	attrSourceDocumentPath,
	attrEncoding,
	attrTargetLanguage,
	attrPlugInInfo,
	attrSourceLanguage,
	attrSettingsPath,
	attrSettingsRelativePath,
	attrDataType,
	attrSettingsName,
	attrTargetDefaultFont,
}

var toolSettingAttrs = []string{
	attrCreationTool,
	attrCreationDate,
	attrCreationToolVersion,
}

// Document is a TTX document: header settings plus the ordered body
// sequence of text runs, segments and inline tags.
type Document struct {
	tree         *xml.Document
	toolSettings *xml.Node
	userSettings *xml.Node
	raw          *xml.Node

	// sourcePath is set by Load and used as the default write target.
	sourcePath string

	// Memoized copies of SourceLanguage/TargetLanguage. The ok flags make
	// an explicitly empty language cacheable.
	slang   string
	slangOK bool
	tlang   string
	tlangOK bool
}

// New builds a fresh, empty document. Every recognized setting is written
// at construction; options override the defaults, including overriding
// with an explicitly empty value.
func New(opts ...Option) *Document {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	tree := xml.NewDocument()
	root := xml.NewElement("TRADOStag")
	root.SetAttr("Version", "2.0")
	tree.AppendRoot(root)

	front := xml.NewElement("FrontMatter")
	root.AppendChild(front)

	tool := xml.NewElement("ToolSettings")
	tool.SetAttr(attrCreationTool, strOr(o.creationTool, defaultCreationTool))
	tool.SetAttr(attrCreationDate, strOr(o.creationDate, time.Now().UTC().Format(creationDateFormat)))
	tool.SetAttr(attrCreationToolVersion, strOr(o.creationToolVersion, Version))
	front.AppendChild(tool)

	user := xml.NewElement("UserSettings")
	user.SetAttr(attrSourceDocumentPath, strOr(o.sourceDocumentPath, ""))
	user.SetAttr(attrEncoding, strOr(o.encoding, "windows-1252"))
	user.SetAttr(attrTargetLanguage, strOr(o.targetLanguage, "EN-US"))
	user.SetAttr(attrPlugInInfo, strOr(o.plugInInfo, ""))
	user.SetAttr(attrSourceLanguage, strOr(o.sourceLanguage, "DE-DE"))
	user.SetAttr(attrSettingsPath, strOr(o.settingsPath, ""))
	user.SetAttr(attrSettingsRelativePath, strOr(o.settingsRelativePath, ""))
	user.SetAttr(attrDataType, strOr(o.dataType, "RTF"))
	user.SetAttr(attrSettingsName, strOr(o.settingsName, ""))
	user.SetAttr(attrTargetDefaultFont, strOr(o.targetDefaultFont, ""))
	front.AppendChild(user)

	body := xml.NewElement("Body")
	root.AppendChild(body)
	raw := xml.NewElement("Raw")
	body.AppendChild(raw)

	return &Document{
		tree:         tree,
		toolSettings: tool,
		userSettings: user,
		raw:          raw,
	}
}

func strOr(v *string, def string) string {
	if v != nil {
		return *v
	}
	return def
}

// FromTree wraps an already-parsed tree as a Document. Settings are read
// from the tree rather than defaulted; options still override. The tree
// must carry the TRADOStag/FrontMatter/ToolSettings+UserSettings and
// Body/Raw skeleton, else a ParseError is returned.
//
// The engine hands back decoded text; FromTree re-establishes the
// escaped-data convention for every text node under Raw.
func FromTree(tree *xml.Document, opts ...Option) (*Document, error) {
	root := tree.Root()
	if root == nil || root.Name() != "TRADOStag" {
		return nil, errors.NewParse("", "TRADOStag", "root element missing")
	}

	var structural [4]*xml.Node
	for i, expr := range []string{
		"/TRADOStag/FrontMatter/ToolSettings",
		"/TRADOStag/FrontMatter/UserSettings",
		"/TRADOStag/Body",
		"/TRADOStag/Body/Raw",
	} {
		n, err := tree.XPathFirst(expr)
		if err != nil {
			return nil, errors.Wrap(err, "validating structure")
		}
		if n == nil {
			return nil, errors.NewParse("", expr, "element missing")
		}
		structural[i] = n
	}
	tool, user, raw := structural[0], structural[1], structural[3]

	// Keep the all-keys-present invariant for loaded documents too, so
	// every accessor stays get-with-default.
	for _, name := range toolSettingAttrs {
		if !tool.HasAttr(name) {
			tool.SetAttr(name, "")
		}
	}
	for _, name := range userSettingAttrs {
		if !user.HasAttr(name) {
			user.SetAttr(name, "")
		}
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	for name, v := range map[string]*string{
		attrCreationTool:        o.creationTool,
		attrCreationDate:        o.creationDate,
		attrCreationToolVersion: o.creationToolVersion,
	} {
		if v != nil {
			tool.SetAttr(name, *v)
		}
	}
	for name, v := range map[string]*string{
		attrSourceDocumentPath:   o.sourceDocumentPath,
		attrEncoding:             o.encoding,
		attrTargetLanguage:       o.targetLanguage,
		attrPlugInInfo:           o.plugInInfo,
		attrSourceLanguage:       o.sourceLanguage,
		attrSettingsPath:         o.settingsPath,
		attrSettingsRelativePath: o.settingsRelativePath,
		attrDataType:             o.dataType,
		attrSettingsName:         o.settingsName,
		attrTargetDefaultFont:    o.targetDefaultFont,
	} {
		if v != nil {
			user.SetAttr(name, *v)
		}
	}

	raw.WalkText(encoding.EscapeText)

	return &Document{
		tree:         tree,
		toolSettings: tool,
		userSettings: user,
		raw:          raw,
	}, nil
}

// Load reads a TTX file, decodes it per its byte-order mark (UTF-16LE is
// the native form; files without a BOM are taken as UTF-8), and wraps the
// parsed tree. The path is remembered as the default write target.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	text := data
	if encoding.HasUTF16BOM(data) {
		text, err = encoding.DecodeUTF16(data)
		if err != nil {
			var ee *errors.EncodingError
			if errors.As(err, &ee) {
				ee.Path = path
			}
			return nil, err
		}
	}

	tree, err := xml.Parse(text)
	if err != nil {
		return nil, &errors.ParseError{Path: path, Message: "not well-formed XML", Err: err}
	}

	doc, err := FromTree(tree)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	doc.sourcePath = path

	logging.Debug("ttx_loaded", "path", path, "body_items", len(doc.ContentElements()))
	return doc, nil
}

// Write serializes the document to UTF-16LE with BOM at path, or at the
// path remembered by Load when path is empty. Returns NoTargetPathError
// when neither is available.
func (d *Document) Write(path string) error {
	if path == "" {
		path = d.sourcePath
	}
	if path == "" {
		return errors.NewNoTargetPath("write")
	}

	encoded, err := encoding.EncodeUTF16LE(d.tree.Serialize())
	if err != nil {
		var ee *errors.EncodingError
		if errors.As(err, &ee) {
			ee.Path = path
		}
		return err
	}
	if err := os.WriteFile(path, encoded, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	logging.Debug("ttx_written", "path", path, "bytes", len(encoded))
	return nil
}

// SourcePath returns the path the document was loaded from, or "".
func (d *Document) SourcePath() string {
	return d.sourcePath
}

// Header accessors. Each is set-or-get: called with no argument it returns
// the current value, with one argument it sets and returns the value.

// CreationTool accesses the ToolSettings CreationTool attribute.
func (d *Document) CreationTool(v ...string) string {
	return d.setting(d.toolSettings, attrCreationTool, v)
}

// CreationDate accesses the ToolSettings CreationDate attribute.
func (d *Document) CreationDate(v ...string) string {
	return d.setting(d.toolSettings, attrCreationDate, v)
}

// CreationToolVersion accesses the ToolSettings CreationToolVersion attribute.
func (d *Document) CreationToolVersion(v ...string) string {
	return d.setting(d.toolSettings, attrCreationToolVersion, v)
}

// SourceDocumentPath accesses the UserSettings SourceDocumentPath attribute.
func (d *Document) SourceDocumentPath(v ...string) string {
	return d.setting(d.userSettings, attrSourceDocumentPath, v)
}

// Encoding accesses the UserSettings O-Encoding attribute: the encoding of
// the original document, not of the TTX file itself.
func (d *Document) Encoding(v ...string) string {
	return d.setting(d.userSettings, attrEncoding, v)
}

// TargetLanguage accesses the UserSettings TargetLanguage attribute.
// Setting it also refreshes the TLang cache.
func (d *Document) TargetLanguage(v ...string) string {
	if len(v) > 0 {
		d.tlang, d.tlangOK = v[0], true
	}
	return d.setting(d.userSettings, attrTargetLanguage, v)
}

// PlugInInfo accesses the UserSettings PlugInInfo attribute.
func (d *Document) PlugInInfo(v ...string) string {
	return d.setting(d.userSettings, attrPlugInInfo, v)
}

// SourceLanguage accesses the UserSettings SourceLanguage attribute.
// Setting it also refreshes the SLang cache.
func (d *Document) SourceLanguage(v ...string) string {
	if len(v) > 0 {
		d.slang, d.slangOK = v[0], true
	}
	return d.setting(d.userSettings, attrSourceLanguage, v)
}

// SettingsPath accesses the UserSettings SettingsPath attribute.
func (d *Document) SettingsPath(v ...string) string {
	return d.setting(d.userSettings, attrSettingsPath, v)
}

// SettingsRelativePath accesses the UserSettings SettingsRelativePath attribute.
func (d *Document) SettingsRelativePath(v ...string) string {
	return d.setting(d.userSettings, attrSettingsRelativePath, v)
}

// DataType accesses the UserSettings DataType attribute.
func (d *Document) DataType(v ...string) string {
	return d.setting(d.userSettings, attrDataType, v)
}

// SettingsName accesses the UserSettings SettingsName attribute.
func (d *Document) SettingsName(v ...string) string {
	return d.setting(d.userSettings, attrSettingsName, v)
}

// TargetDefaultFont accesses the UserSettings TargetDefaultFont attribute.
func (d *Document) TargetDefaultFont(v ...string) string {
	return d.setting(d.userSettings, attrTargetDefaultFont, v)
}

func (d *Document) setting(node *xml.Node, name string, v []string) string {
	if len(v) > 0 {
		node.SetAttr(name, v[0])
		return v[0]
	}
	return node.Attr(name)
}

// SLang is a memoized SourceLanguage accessor: reads hit the cache after
// the first miss, writes go through SourceLanguage (which refreshes it).
func (d *Document) SLang(v ...string) string {
	if len(v) > 0 {
		return d.SourceLanguage(v[0])
	}
	if !d.slangOK {
		d.slang, d.slangOK = d.userSettings.Attr(attrSourceLanguage), true
	}
	return d.slang
}

// TLang is the memoized TargetLanguage accessor.
func (d *Document) TLang(v ...string) string {
	if len(v) > 0 {
		return d.TargetLanguage(v[0])
	}
	if !d.tlangOK {
		d.tlang, d.tlangOK = d.userSettings.Attr(attrTargetLanguage), true
	}
	return d.tlang
}

// AppendText appends a plain text run, verbatim: the caller supplies any
// line termination. Returns the view over the new node.
func (d *Document) AppendText(s string) *ContentItem {
	n := xml.NewText(encoding.EscapeText(s))
	d.raw.AppendChild(n)
	return &ContentItem{node: n}
}

// SegmentOptions carries the optional arguments of AppendSegment. The zero
// value means match 0, header languages, no origin.
type SegmentOptions struct {
	Match      int
	SourceLang string
	TargetLang string
	Origin     string
}

// AppendSegment appends a translation unit holding source and target
// variants. Language resolution: an explicit language fills an unset
// header language (first write wins as document default); with the header
// already set it applies to this segment only; absent, the header value is
// used. The origin attribute is omitted entirely when unset.
func (d *Document) AppendSegment(source, target string, opts SegmentOptions) *ContentItem {
	srcLang := d.resolveLang(opts.SourceLang, d.SLang)
	tgtLang := d.resolveLang(opts.TargetLang, d.TLang)

	tu := xml.NewElement("Tu")
	tu.SetAttr("MatchPercent", strconv.Itoa(opts.Match))
	if opts.Origin != "" {
		tu.SetAttr("origin", opts.Origin)
	}

	src := xml.NewElement("Tuv")
	src.SetAttr("Lang", srcLang)
	src.AppendChild(xml.NewText(encoding.EscapeText(source)))
	tu.AppendChild(src)

	tgt := xml.NewElement("Tuv")
	tgt.SetAttr("Lang", tgtLang)
	tgt.AppendChild(xml.NewText(encoding.EscapeText(target)))
	tu.AppendChild(tgt)

	d.raw.AppendChild(tu)
	return &ContentItem{node: tu}
}

// resolveLang implements the first-write-wins rule over a memoized
// language accessor.
func (d *Document) resolveLang(explicit string, accessor func(...string) string) string {
	if explicit == "" {
		return accessor()
	}
	if accessor() == "" {
		accessor(explicit)
	}
	return explicit
}

// AppendMark appends an out-of-band mark tag. An empty displayTag defaults
// to "text".
func (d *Document) AppendMark(text, displayTag string) *ContentItem {
	if displayTag == "" {
		displayTag = "text"
	}
	return d.appendUt(text, displayTag, "", "")
}

// AppendOpenTag appends the opening half of a paired inline formatting
// span. An empty displayTag defaults to "cf".
func (d *Document) AppendOpenTag(text, displayTag string) *ContentItem {
	if displayTag == "" {
		displayTag = "cf"
	}
	return d.appendUt(text, displayTag, "start", "LeftEdge")
}

// AppendCloseTag appends the closing half of a paired inline formatting
// span. An empty displayTag defaults to "/cf".
func (d *Document) AppendCloseTag(text, displayTag string) *ContentItem {
	if displayTag == "" {
		displayTag = "/cf"
	}
	return d.appendUt(text, displayTag, "end", "RightEdge")
}

func (d *Document) appendUt(text, displayTag, role, edge string) *ContentItem {
	ut := xml.NewElement("ut")
	ut.SetAttr("DisplayText", displayTag)
	ut.SetAttr("Style", "external")
	if role != "" {
		ut.SetAttr("Type", role)
		ut.SetAttr(edge, "angle")
	}
	ut.AppendChild(xml.NewText(encoding.EscapeText(text)))
	d.raw.AppendChild(ut)
	return &ContentItem{node: ut}
}

// ContentElements returns the full ordered body sequence as views.
// Adjacent text runs appended separately stay separate items.
func (d *Document) ContentElements() []*ContentItem {
	nodes := d.raw.ChildNodes()
	items := make([]*ContentItem, 0, len(nodes))
	for _, n := range nodes {
		items = append(items, &ContentItem{node: n})
	}
	return items
}

// Segments returns only the segment items, in document order. It is a
// filtered projection over the body sequence, not separate storage.
func (d *Document) Segments() []*ContentItem {
	var items []*ContentItem
	for _, item := range d.ContentElements() {
		if item.Type() == KindSegment {
			items = append(items, item)
		}
	}
	return items
}
