package xmlstream

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
)

var errNoStartElement = errors.New("expected start element event")
var errNilUnmarshaler = errors.New("nil Unmarshaler")
var errNilWriter = errors.New("nil subtree writer")

// Unmarshaler is implemented by types that can unmarshal themselves from XML.
type Unmarshaler interface {
	UnmarshalXMLStream(r *Reader, start Event) error
}

// Decode unmarshals the current element subtree into v.
func (r *Reader) Decode(v Unmarshaler) error {
	if v == nil {
		return errNilUnmarshaler
	}
	start, ok := r.consumeStart()
	if !ok {
		return errNoStartElement
	}
	return v.UnmarshalXMLStream(r, start)
}

// DecodeElement unmarshals using the provided start event.
//
//nolint:gocritic // keep value semantics for immutable start events.
func (r *Reader) DecodeElement(v Unmarshaler, start Event) error {
	if v == nil {
		return errNilUnmarshaler
	}
	if start.Kind != EventStartElement {
		return errNoStartElement
	}
	if r != nil && r.lastWasStart && sameStartEvent(r.lastStart, start) {
		r.lastWasStart = false
		r.lastStart = Event{}
	}
	return v.UnmarshalXMLStream(r, start)
}

//nolint:gocritic // keep value semantics for start event comparisons.
func sameStartEvent(a, b Event) bool {
	if a.Kind != EventStartElement {
		return false
	}
	if a.ID != b.ID {
		return false
	}
	return a.Name == b.Name
}

// ReadSubtreeTo writes the current element subtree to w as XML text.
func (r *Reader) ReadSubtreeTo(w io.Writer) (int64, error) {
	if w == nil {
		return 0, errNilWriter
	}
	start, ok := r.consumeStart()
	if !ok {
		return 0, errNoStartElement
	}
	counter := &countingWriter{w: w}
	if err := r.writeSubtree(counter, start); err != nil {
		return counter.n, err
	}
	return counter.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	written, err := c.w.Write(p)
	c.n += int64(written)
	return written, err
}

func (r *Reader) consumeStart() (Event, bool) {
	if r == nil || !r.lastWasStart {
		return Event{}, false
	}
	start := r.lastStart
	if len(start.Attrs) == 0 && len(r.lastRawAttrs) > 0 {
		if cap(r.attrBuf) < len(r.lastRawAttrs) {
			r.attrBuf = make([]Attr, 0, len(r.lastRawAttrs))
		} else {
			r.attrBuf = r.attrBuf[:0]
		}
		for idx, raw := range r.lastRawAttrs {
			info := r.lastRawInfo[idx]
			r.attrBuf = append(r.attrBuf, Attr{
				Name:  r.names.internBytes(info.namespace, info.local),
				Value: raw.Value,
			})
		}
		start.Attrs = r.attrBuf
	}
	r.lastWasStart = false
	r.lastStart = Event{}
	r.lastRawAttrs = nil
	r.lastRawInfo = nil
	return start, true
}

//nolint:gocritic // keep value semantics for subtree start events.
func (r *Reader) writeSubtree(w io.Writer, start Event) error {
	enc := xml.NewEncoder(w)
	if err := encodeEvent(enc, start); err != nil {
		return err
	}
	depth := 1
	for depth > 0 {
		ev, err := r.Next()
		if err != nil {
			return err
		}
		if ev.Kind == EventEOF {
			return io.ErrUnexpectedEOF
		}
		if err := encodeEvent(enc, ev); err != nil {
			return err
		}
		switch ev.Kind {
		case EventStartElement:
			depth++
		case EventEndElement:
			depth--
		}
	}
	return enc.Flush()
}

//nolint:gocritic // keep value semantics for encoded events.
func encodeEvent(enc *xml.Encoder, ev Event) error {
	switch ev.Kind {
	case EventStartElement:
		attrs := make([]xml.Attr, 0, len(ev.Attrs))
		for _, attr := range ev.Attrs {
			attrs = append(attrs, xml.Attr{
				Name:  xml.Name{Space: attr.Name.Namespace, Local: attr.Name.Local},
				Value: string(attr.Value),
			})
		}
		return enc.EncodeToken(xml.StartElement{
			Name: xml.Name{Space: ev.Name.Namespace, Local: ev.Name.Local},
			Attr: attrs,
		})
	case EventEndElement:
		return enc.EncodeToken(xml.EndElement{
			Name: xml.Name{Space: ev.Name.Namespace, Local: ev.Name.Local},
		})
	case EventEmptyTag:
		name := xml.Name{Space: ev.Name.Namespace, Local: ev.Name.Local}
		attrs := make([]xml.Attr, 0, len(ev.Attrs))
		for _, attr := range ev.Attrs {
			attrs = append(attrs, xml.Attr{
				Name:  xml.Name{Space: attr.Name.Namespace, Local: attr.Name.Local},
				Value: string(attr.Value),
			})
		}
		if err := enc.EncodeToken(xml.StartElement{Name: name, Attr: attrs}); err != nil {
			return err
		}
		return enc.EncodeToken(xml.EndElement{Name: name})
	case EventCharData, EventCData:
		return enc.EncodeToken(xml.CharData(ev.Text))
	case EventComment:
		return enc.EncodeToken(xml.Comment(ev.Text))
	case EventDirective:
		return enc.EncodeToken(xml.Directive(ev.Text))
	case EventPI:
		if ev.Name.Local != "" {
			return enc.EncodeToken(xml.ProcInst{Target: ev.Name.Local, Inst: ev.Text})
		}
		target, inst := splitPI(ev.Text)
		return enc.EncodeToken(xml.ProcInst{Target: target, Inst: inst})
	}
	return nil
}

func splitPI(data []byte) (string, []byte) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", nil
	}
	idx := bytes.IndexAny(data, " \t\n\r")
	if idx < 0 {
		return string(data), nil
	}
	target := string(data[:idx])
	inst := bytes.TrimSpace(data[idx:])
	return target, inst
}
