package xmlpull

import (
	"github.com/sixaxis/xmlpull/pkg/xmlstream"
	"github.com/sixaxis/xmlpull/pkg/xmltext"
)

// checkResolvedDuplicateAttrs enforces that no two attributes on a start or
// empty element share the same expanded (namespace, local) name once
// prefixes are resolved — a case the raw-name duplicate check in the
// tokenizer cannot see, since two different prefixes can resolve to the
// same namespace URI.
func checkResolvedDuplicateAttrs(stream *xmlstream.Reader, ev Event) error {
	if ev.Kind != EventStartElement && ev.Kind != EventEmptyTag {
		return nil
	}
	for i := range ev.Attrs {
		for j := 0; j < i; j++ {
			if ev.Attrs[j].Name == ev.Attrs[i].Name {
				offset := int64(0)
				if stream != nil {
					offset = stream.InputOffset()
				}
				return &xmltext.SyntaxError{
					Offset: offset,
					Line:   ev.Line,
					Column: ev.Column,
					Err:    &xmltext.DuplicateAttributeError{Name: ev.Attrs[i].Name.String()},
				}
			}
		}
	}
	return nil
}
