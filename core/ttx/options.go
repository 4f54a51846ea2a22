package ttx

// Option overrides one document setting at construction time. Supplying an
// option always wins over the default, even with an empty value — the
// first-write-wins language rule depends on being able to construct a
// document whose languages are explicitly unset.
type Option func(*options)

type options struct {
	creationTool        *string
	creationDate        *string
	creationToolVersion *string

	sourceDocumentPath   *string
	encoding             *string
	targetLanguage       *string
	plugInInfo           *string
	sourceLanguage       *string
	settingsPath         *string
	settingsRelativePath *string
	dataType             *string
	settingsName         *string
	targetDefaultFont    *string
}

// WithCreationTool overrides the ToolSettings CreationTool value.
func WithCreationTool(v string) Option {
	return func(o *options) { o.creationTool = &v }
}

// WithCreationDate overrides the ToolSettings CreationDate value.
// TagEditor expects the YYYYMMDDThhmmssZ layout in UTC.
func WithCreationDate(v string) Option {
	return func(o *options) { o.creationDate = &v }
}

// WithCreationToolVersion overrides the ToolSettings CreationToolVersion value.
func WithCreationToolVersion(v string) Option {
	return func(o *options) { o.creationToolVersion = &v }
}

// WithSourceDocumentPath overrides the UserSettings SourceDocumentPath value.
func WithSourceDocumentPath(v string) Option {
	return func(o *options) { o.sourceDocumentPath = &v }
}

// WithEncoding overrides the UserSettings O-Encoding value (the original
// document's encoding, not the TTX file encoding).
func WithEncoding(v string) Option {
	return func(o *options) { o.encoding = &v }
}

// WithTargetLanguage overrides the UserSettings TargetLanguage value.
func WithTargetLanguage(v string) Option {
	return func(o *options) { o.targetLanguage = &v }
}

// WithPlugInInfo overrides the UserSettings PlugInInfo value.
func WithPlugInInfo(v string) Option {
	return func(o *options) { o.plugInInfo = &v }
}

// WithSourceLanguage overrides the UserSettings SourceLanguage value.
func WithSourceLanguage(v string) Option {
	return func(o *options) { o.sourceLanguage = &v }
}

// WithSettingsPath overrides the UserSettings SettingsPath value.
func WithSettingsPath(v string) Option {
	return func(o *options) { o.settingsPath = &v }
}

// WithSettingsRelativePath overrides the UserSettings SettingsRelativePath value.
func WithSettingsRelativePath(v string) Option {
	return func(o *options) { o.settingsRelativePath = &v }
}

// WithDataType overrides the UserSettings DataType value.
func WithDataType(v string) Option {
	return func(o *options) { o.dataType = &v }
}

// WithSettingsName overrides the UserSettings SettingsName value.
func WithSettingsName(v string) Option {
	return func(o *options) { o.settingsName = &v }
}

// WithTargetDefaultFont overrides the UserSettings TargetDefaultFont value.
func WithTargetDefaultFont(v string) Option {
	return func(o *options) { o.targetDefaultFont = &v }
}
