package xmlpull

import "github.com/sixaxis/xmlpull/pkg/xmlopts"

// Option configures a Reader. Construct one with Strict, ExpandEntities,
// TrimText, CheckEndNames, or AllowUnmatchedEnds.
type Option = xmlopts.Options

type strictOption bool
type expandEntitiesOption bool
type trimTextOption bool
type checkEndNamesOption bool
type allowUnmatchedEndsOption bool

// Strict disables the tokenizer's leniencies (an invalid name-start after
// "<" errors instead of being treated as literal text, among others).
// Default: false.
func Strict(value bool) Option {
	return xmlopts.New(strictOption(value))
}

// ExpandEntities controls whether CharData events have entity and character
// references resolved. When false, Text events retain the raw, unresolved
// span. The tokenizer still checks each entity reference in character data
// against the declared entities, so an undeclared one is reported as an
// error either way. Default: true.
func ExpandEntities(value bool) Option {
	return xmlopts.New(expandEntitiesOption(value))
}

// TrimText strips leading and trailing XML whitespace from CharData events;
// a CharData event that is entirely whitespace after trimming is not
// emitted at all. Default: false.
func TrimText(value bool) Option {
	return xmlopts.New(trimTextOption(value))
}

// CheckEndNames enforces that an end tag's name matches the element it
// closes. Default: true.
func CheckEndNames(value bool) Option {
	return xmlopts.New(checkEndNamesOption(value))
}

// AllowUnmatchedEnds permits an end tag whose name does not match the open
// element; the event is still emitted. Takes effect only when CheckEndNames
// is also in force. Default: false.
func AllowUnmatchedEnds(value bool) Option {
	return xmlopts.New(allowUnmatchedEndsOption(value))
}

type config struct {
	strict             bool
	expandEntities     bool
	trimText           bool
	checkEndNames      bool
	allowUnmatchedEnds bool
}

func defaultConfig() config {
	return config{
		strict:             false,
		expandEntities:     true,
		trimText:           false,
		checkEndNames:      true,
		allowUnmatchedEnds: false,
	}
}

func resolveConfig(opts ...Option) config {
	cfg := defaultConfig()
	joined := xmlopts.JoinOptions(opts...)
	if v, ok := xmlopts.GetOption(joined, strictConstructor); ok {
		cfg.strict = bool(v)
	}
	if v, ok := xmlopts.GetOption(joined, expandEntitiesConstructor); ok {
		cfg.expandEntities = bool(v)
	}
	if v, ok := xmlopts.GetOption(joined, trimTextConstructor); ok {
		cfg.trimText = bool(v)
	}
	if v, ok := xmlopts.GetOption(joined, checkEndNamesConstructor); ok {
		cfg.checkEndNames = bool(v)
	}
	if v, ok := xmlopts.GetOption(joined, allowUnmatchedEndsConstructor); ok {
		cfg.allowUnmatchedEnds = bool(v)
	}
	return cfg
}

// These mirror Strict/ExpandEntities/... exactly; GetOption needs a
// constructor typed in terms of the distinct named bool backing each
// option so reflection can tell otherwise-identical bool options apart.
func strictConstructor(v strictOption) Option                         { return xmlopts.New(v) }
func expandEntitiesConstructor(v expandEntitiesOption) Option         { return xmlopts.New(v) }
func trimTextConstructor(v trimTextOption) Option                     { return xmlopts.New(v) }
func checkEndNamesConstructor(v checkEndNamesOption) Option           { return xmlopts.New(v) }
func allowUnmatchedEndsConstructor(v allowUnmatchedEndsOption) Option { return xmlopts.New(v) }
