// Package xmlpull is the public pull-parser surface: a Reader that wraps
// pkg/xmlstream's namespace-resolving event reader and pkg/xmltext's
// tokenizer, exposing next_event/position/set_config as described by the
// parser's specification.
package xmlpull

import (
	"io"

	"github.com/sixaxis/xmlpull/pkg/xmltext"

	"github.com/sixaxis/xmlpull/pkg/xmlstream"
)

// Reader is a streaming, non-validating XML 1.0 + Namespaces 1.0 pull
// parser. The zero value is not usable; construct one with NewReader.
type Reader struct {
	stream *xmlstream.Reader
	cfg    config
}

// NewReader creates a Reader over src, configured by opts. Namespace
// processing is always enabled; there is no configuration to disable it.
func NewReader(src io.Reader, opts ...Option) (*Reader, error) {
	if src == nil {
		return nil, wrapConstructionError(errNilReader)
	}
	cfg := resolveConfig(opts...)
	stream, err := xmlstream.NewReader(src, streamOptions(cfg)...)
	if err != nil {
		return nil, wrapConstructionError(err)
	}
	stream.SetEntityExpansion(cfg.expandEntities)
	return &Reader{stream: stream, cfg: cfg}, nil
}

// Reset discards the Reader's state and prepares it to read from src,
// reusing its internal buffers. opts replace, rather than merge with, the
// configuration NewReader was called with.
func (r *Reader) Reset(src io.Reader, opts ...Option) error {
	if r == nil {
		return wrapConstructionError(errNilReader)
	}
	if src == nil {
		return wrapConstructionError(errNilReader)
	}
	cfg := resolveConfig(opts...)
	if err := r.stream.Reset(src, streamOptions(cfg)...); err != nil {
		return err
	}
	r.stream.SetEntityExpansion(cfg.expandEntities)
	r.cfg = cfg
	return nil
}

// streamOptions forces the underlying xmlstream.Reader to surface every
// event kind this package's Event model requires (Comment, PI, Decl,
// Directive, and CData kept apart from CharData) — xmlstream's own
// defaults suppress them for callers that decode straight into structs.
func streamOptions(cfg config) []xmlstream.Option {
	return []xmlstream.Option{
		xmltext.EmitComments(true),
		xmltext.EmitPI(true),
		xmltext.EmitDirectives(true),
		xmltext.CoalesceCharData(false),
		xmltext.Strict(cfg.strict),
		xmltext.CheckEndNames(cfg.checkEndNames),
		xmltext.AllowUnmatchedEnds(cfg.allowUnmatchedEnds),
	}
}

// Next advances the reader by one event. Eof is a normal, idempotent
// terminal event returned in place of io.EOF; after a fatal error the
// Reader is poisoned and Next keeps returning that error.
func (r *Reader) Next() (Event, error) {
	if r == nil || r.stream == nil {
		return Event{}, wrapConstructionError(errNilReader)
	}
	for {
		ev, err := r.stream.Next()
		if err != nil {
			return Event{}, err
		}
		if err := checkResolvedDuplicateAttrs(r.stream, ev); err != nil {
			return Event{}, err
		}
		if r.cfg.trimText && ev.Kind == EventCharData {
			trimmed := trimXMLWhitespace(ev.Text)
			if len(trimmed) == 0 {
				continue
			}
			ev.Text = trimmed
		}
		return ev, nil
	}
}

// Position reports the byte offset, line, and column of the most recently
// returned event.
func (r *Reader) Position() (offset int64, line, column int) {
	if r == nil || r.stream == nil {
		return 0, 0, 0
	}
	line, column = r.stream.CurrentPos()
	return r.stream.InputOffset(), line, column
}

func trimXMLWhitespace(b []byte) []byte {
	start := 0
	for start < len(b) && isXMLSpace(b[start]) {
		start++
	}
	end := len(b)
	for end > start && isXMLSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isXMLSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
