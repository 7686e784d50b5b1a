package xmltext

import "io"

// Options holds decoder configuration values.
// The zero value means no overrides.
type Options struct {
	charsetReader         func(label string, r io.Reader) (io.Reader, error)
	entityMap             map[string]string
	resolveEntities       bool
	emitComments          bool
	emitPI                bool
	emitDirectives        bool
	trackLineColumn       bool
	coalesceCharData      bool
	maxDepth              int
	maxAttrs              int
	maxTokenSize          int
	maxQNameInternEntries int
	strict                bool
	checkEndNames         bool
	allowUnmatchedEnds    bool
	debugPoisonSpans      bool
	bufferSize            int

	charsetReaderSet         bool
	entityMapSet             bool
	resolveEntitiesSet       bool
	emitCommentsSet          bool
	emitPISet                bool
	emitDirectivesSet        bool
	trackLineColumnSet       bool
	coalesceCharDataSet      bool
	maxDepthSet              bool
	maxAttrsSet              bool
	maxTokenSizeSet          bool
	maxQNameInternEntriesSet bool
	strictSet                bool
	checkEndNamesSet         bool
	allowUnmatchedEndsSet    bool
	debugPoisonSpansSet      bool
	bufferSizeSet            bool
}

// JoinOptions combines multiple option sets into one in declaration order.
// Later options override earlier ones when set.
func JoinOptions(srcs ...Options) Options {
	var merged Options
	for _, src := range srcs {
		merged.merge(src)
	}
	return merged
}

func (opts *Options) merge(src Options) {
	if src.charsetReaderSet {
		opts.charsetReader = src.charsetReader
		opts.charsetReaderSet = true
	}
	if src.entityMapSet {
		opts.entityMap = src.entityMap
		opts.entityMapSet = true
	}
	if src.resolveEntitiesSet {
		opts.resolveEntities = src.resolveEntities
		opts.resolveEntitiesSet = true
	}
	if src.emitCommentsSet {
		opts.emitComments = src.emitComments
		opts.emitCommentsSet = true
	}
	if src.emitPISet {
		opts.emitPI = src.emitPI
		opts.emitPISet = true
	}
	if src.emitDirectivesSet {
		opts.emitDirectives = src.emitDirectives
		opts.emitDirectivesSet = true
	}
	if src.trackLineColumnSet {
		opts.trackLineColumn = src.trackLineColumn
		opts.trackLineColumnSet = true
	}
	if src.coalesceCharDataSet {
		opts.coalesceCharData = src.coalesceCharData
		opts.coalesceCharDataSet = true
	}
	if src.maxDepthSet {
		opts.maxDepth = src.maxDepth
		opts.maxDepthSet = true
	}
	if src.maxAttrsSet {
		opts.maxAttrs = src.maxAttrs
		opts.maxAttrsSet = true
	}
	if src.maxTokenSizeSet {
		opts.maxTokenSize = src.maxTokenSize
		opts.maxTokenSizeSet = true
	}
	if src.maxQNameInternEntriesSet {
		opts.maxQNameInternEntries = src.maxQNameInternEntries
		opts.maxQNameInternEntriesSet = true
	}
	if src.strictSet {
		opts.strict = src.strict
		opts.strictSet = true
	}
	if src.checkEndNamesSet {
		opts.checkEndNames = src.checkEndNames
		opts.checkEndNamesSet = true
	}
	if src.allowUnmatchedEndsSet {
		opts.allowUnmatchedEnds = src.allowUnmatchedEnds
		opts.allowUnmatchedEndsSet = true
	}
	if src.debugPoisonSpansSet {
		opts.debugPoisonSpans = src.debugPoisonSpans
		opts.debugPoisonSpansSet = true
	}
	if src.bufferSizeSet {
		opts.bufferSize = src.bufferSize
		opts.bufferSizeSet = true
	}
}

// WithCharsetReader registers a decoder for non-UTF-8/UTF-16 encodings.
func WithCharsetReader(fn func(label string, r io.Reader) (io.Reader, error)) Options {
	return Options{charsetReader: fn, charsetReaderSet: true}
}

// WithEntityMap configures custom named entity replacements.
func WithEntityMap(values map[string]string) Options {
	if values == nil {
		return Options{entityMapSet: true}
	}
	copyMap := make(map[string]string, len(values))
	for key, value := range values {
		copyMap[key] = value
	}
	return Options{entityMap: copyMap, entityMapSet: true}
}

// ResolveEntities controls whether entity references are expanded.
func ResolveEntities(value bool) Options {
	return Options{resolveEntities: value, resolveEntitiesSet: true}
}

// EmitComments controls whether comment tokens are emitted.
func EmitComments(value bool) Options {
	return Options{emitComments: value, emitCommentsSet: true}
}

// EmitPI controls whether processing instruction tokens are emitted.
func EmitPI(value bool) Options {
	return Options{emitPI: value, emitPISet: true}
}

// EmitDirectives controls whether directive tokens are emitted.
func EmitDirectives(value bool) Options {
	return Options{emitDirectives: value, emitDirectivesSet: true}
}

// TrackLineColumn controls whether line and column tracking is enabled.
func TrackLineColumn(value bool) Options {
	return Options{trackLineColumn: value, trackLineColumnSet: true}
}

// CoalesceCharData merges adjacent text tokens into a single CharData token.
func CoalesceCharData(value bool) Options {
	return Options{coalesceCharData: value, coalesceCharDataSet: true}
}

// MaxDepth limits element nesting depth.
func MaxDepth(value int) Options {
	return Options{maxDepth: value, maxDepthSet: true}
}

// MaxAttrs limits the number of attributes on a start element.
func MaxAttrs(value int) Options {
	return Options{maxAttrs: value, maxAttrsSet: true}
}

// MaxTokenSize limits the maximum size of a single token in bytes.
// Tokens exactly MaxTokenSize bytes long are allowed.
func MaxTokenSize(value int) Options {
	return Options{maxTokenSize: value, maxTokenSizeSet: true}
}

// Strict enables XML declaration validation.
// It enforces version and encoding/standalone ordering and values.
func Strict(value bool) Options {
	return Options{strict: value, strictSet: true}
}

// CheckEndNames controls whether end-tag names are matched against the
// nesting stack. Disabling it pops the stack by depth alone.
func CheckEndNames(value bool) Options {
	return Options{checkEndNames: value, checkEndNamesSet: true}
}

// AllowUnmatchedEnds permits an end tag whose name does not match the open
// element; the mismatch is accepted instead of raised as MismatchedEndError.
func AllowUnmatchedEnds(value bool) Options {
	return Options{allowUnmatchedEnds: value, allowUnmatchedEndsSet: true}
}

// MaxQNameInternEntries limits the number of distinct qualified names kept
// interned at once.
func MaxQNameInternEntries(value int) Options {
	return Options{maxQNameInternEntries: value, maxQNameInternEntriesSet: true}
}

// DebugPoisonSpans makes stale spans panic instead of returning garbage.
// Intended for tests; it adds overhead and should not be enabled in
// production decoders.
func DebugPoisonSpans(value bool) Options {
	return Options{debugPoisonSpans: value, debugPoisonSpansSet: true}
}

// BufferSize sets the initial size of the decoder's read buffer.
func BufferSize(value int) Options {
	return Options{bufferSize: value, bufferSizeSet: true}
}

// CharsetReader reports the configured charset reader, if any.
func (opts Options) CharsetReader() (func(label string, r io.Reader) (io.Reader, error), bool) {
	return opts.charsetReader, opts.charsetReaderSet
}

// EntityMap reports the configured custom entity map, if any.
func (opts Options) EntityMap() (map[string]string, bool) {
	return opts.entityMap, opts.entityMapSet
}

// ResolveEntities reports whether entity expansion was configured.
func (opts Options) ResolveEntities() (bool, bool) {
	return opts.resolveEntities, opts.resolveEntitiesSet
}

// EmitComments reports whether comment emission was configured.
func (opts Options) EmitComments() (bool, bool) {
	return opts.emitComments, opts.emitCommentsSet
}

// EmitPI reports whether processing-instruction emission was configured.
func (opts Options) EmitPI() (bool, bool) {
	return opts.emitPI, opts.emitPISet
}

// EmitDirectives reports whether directive emission was configured.
func (opts Options) EmitDirectives() (bool, bool) {
	return opts.emitDirectives, opts.emitDirectivesSet
}

// TrackLineColumn reports whether line/column tracking was configured.
func (opts Options) TrackLineColumn() (bool, bool) {
	return opts.trackLineColumn, opts.trackLineColumnSet
}

// CoalesceCharData reports whether char-data coalescing was configured.
func (opts Options) CoalesceCharData() (bool, bool) {
	return opts.coalesceCharData, opts.coalesceCharDataSet
}

// MaxDepth reports the configured element nesting depth limit, if any.
func (opts Options) MaxDepth() (int, bool) {
	return opts.maxDepth, opts.maxDepthSet
}

// MaxAttrs reports the configured attribute count limit, if any.
func (opts Options) MaxAttrs() (int, bool) {
	return opts.maxAttrs, opts.maxAttrsSet
}

// MaxTokenSize reports the configured token size limit, if any.
func (opts Options) MaxTokenSize() (int, bool) {
	return opts.maxTokenSize, opts.maxTokenSizeSet
}

// MaxQNameInternEntries reports the configured QName intern table cap, if any.
func (opts Options) MaxQNameInternEntries() (int, bool) {
	return opts.maxQNameInternEntries, opts.maxQNameInternEntriesSet
}

// QNameInternEntries is an alias for MaxQNameInternEntries, matching the
// naming used by callers that treat the cap as a plain entry count.
func (opts Options) QNameInternEntries() (int, bool) {
	return opts.MaxQNameInternEntries()
}

// Strict reports whether strict validation was configured.
func (opts Options) Strict() (bool, bool) {
	return opts.strict, opts.strictSet
}

// CheckEndNames reports whether end-tag name matching was configured.
func (opts Options) CheckEndNames() (bool, bool) {
	return opts.checkEndNames, opts.checkEndNamesSet
}

// AllowUnmatchedEnds reports whether mismatched end tags were configured to
// be tolerated.
func (opts Options) AllowUnmatchedEnds() (bool, bool) {
	return opts.allowUnmatchedEnds, opts.allowUnmatchedEndsSet
}

// DebugPoisonSpans reports whether poison-mode span debugging was configured.
func (opts Options) DebugPoisonSpans() (bool, bool) {
	return opts.debugPoisonSpans, opts.debugPoisonSpansSet
}

// BufferSize reports the configured initial buffer size, if any.
func (opts Options) BufferSize() (int, bool) {
	return opts.bufferSize, opts.bufferSizeSet
}

// GetOption retrieves the value an option constructor would have set on opts,
// along with whether that option was present. It is meant for tests and
// diagnostics that need to inspect a merged Options value generically.
func GetOption[T any](opts Options, constructor func(T) Options) (T, bool) {
	var zero T
	sample := constructor(zero)
	switch {
	case sample.charsetReaderSet:
		return castOption[T](opts.charsetReader, opts.charsetReaderSet)
	case sample.entityMapSet:
		return castOption[T](opts.entityMap, opts.entityMapSet)
	case sample.resolveEntitiesSet:
		return castOption[T](opts.resolveEntities, opts.resolveEntitiesSet)
	case sample.emitCommentsSet:
		return castOption[T](opts.emitComments, opts.emitCommentsSet)
	case sample.emitPISet:
		return castOption[T](opts.emitPI, opts.emitPISet)
	case sample.emitDirectivesSet:
		return castOption[T](opts.emitDirectives, opts.emitDirectivesSet)
	case sample.trackLineColumnSet:
		return castOption[T](opts.trackLineColumn, opts.trackLineColumnSet)
	case sample.coalesceCharDataSet:
		return castOption[T](opts.coalesceCharData, opts.coalesceCharDataSet)
	case sample.maxDepthSet:
		return castOption[T](opts.maxDepth, opts.maxDepthSet)
	case sample.maxAttrsSet:
		return castOption[T](opts.maxAttrs, opts.maxAttrsSet)
	case sample.maxTokenSizeSet:
		return castOption[T](opts.maxTokenSize, opts.maxTokenSizeSet)
	case sample.maxQNameInternEntriesSet:
		return castOption[T](opts.maxQNameInternEntries, opts.maxQNameInternEntriesSet)
	case sample.strictSet:
		return castOption[T](opts.strict, opts.strictSet)
	case sample.checkEndNamesSet:
		return castOption[T](opts.checkEndNames, opts.checkEndNamesSet)
	case sample.allowUnmatchedEndsSet:
		return castOption[T](opts.allowUnmatchedEnds, opts.allowUnmatchedEndsSet)
	case sample.debugPoisonSpansSet:
		return castOption[T](opts.debugPoisonSpans, opts.debugPoisonSpansSet)
	case sample.bufferSizeSet:
		return castOption[T](opts.bufferSize, opts.bufferSizeSet)
	}
	return zero, false
}

func castOption[T any](value any, set bool) (T, bool) {
	var zero T
	if !set {
		return zero, false
	}
	result, ok := value.(T)
	if !ok {
		return zero, false
	}
	return result, true
}

// FastValidation returns a preset tuned for validation throughput.
func FastValidation() Options {
	return JoinOptions(
		TrackLineColumn(false),
		ResolveEntities(false),
		MaxDepth(256),
	)
}
