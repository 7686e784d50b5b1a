package xmlstream

// EventKind identifies the kind of streaming XML event.
type EventKind uint8

const (
	EventStartElement EventKind = iota
	EventEndElement
	EventCharData
	EventComment
	EventPI
	EventDirective
	EventEmptyTag
	EventCData
	EventDecl
	EventDocType
	EventEOF
)

func (k EventKind) String() string {
	switch k {
	case EventStartElement:
		return "StartElement"
	case EventEndElement:
		return "EndElement"
	case EventCharData:
		return "CharData"
	case EventComment:
		return "Comment"
	case EventPI:
		return "ProcInst"
	case EventDirective:
		return "Directive"
	case EventEmptyTag:
		return "EmptyTag"
	case EventCData:
		return "CData"
	case EventDecl:
		return "Decl"
	case EventDocType:
		return "DocType"
	case EventEOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// Decl holds the parsed pseudo-attributes of an XML declaration
// ("<?xml version=\"1.0\" ...?>"). It is populated only on an EventDecl
// event. Encoding and Standalone are nil when the pseudo-attribute was
// absent from the declaration.
type Decl struct {
	Version    string
	Encoding   *string
	Standalone *string
}

// ElementID uniquely identifies a start element within a single reader's
// lifetime. IDs are assigned in document order starting at zero.
type ElementID uint64

// QName is an interned, namespace-qualified name. The zero value is the
// unprefixed, unnamespaced name.
type QName struct {
	Namespace string
	Local     string
}

// String returns the Clark-notation form "{namespace}local", or just the
// local name when there is no namespace.
func (q QName) String() string {
	if q.Namespace == "" {
		return q.Local
	}
	return "{" + q.Namespace + "}" + q.Local
}

// RawName is an unresolved qualified name as it appeared in the source
// document. Its slices are valid until the next Next or NextRaw call.
type RawName struct {
	Full   []byte
	Prefix []byte
	Local  []byte
}

// String returns the literal qualified name as it appeared in the document.
func (n RawName) String() string {
	return string(n.Full)
}

// Attr is a namespace-resolved attribute. Value is valid until the next
// call to Next or NextRaw.
type Attr struct {
	Name  QName
	Value []byte
}

// RawAttr is an attribute with an unresolved, prefixed name.
type RawAttr struct {
	Name  RawName
	Value []byte
}

// Event is a namespace-resolved streaming XML event. Name, Attrs, and Text
// reference reader-owned buffers and are valid until the next call to Next
// or NextRaw.
type Event struct {
	Kind       EventKind
	Name       QName
	Attrs      []Attr
	Text       []byte
	Decl       Decl
	Line       int
	Column     int
	ID         ElementID
	ScopeDepth int
}

// Attr returns the value of the attribute with the given namespace URI and
// local name, if present.
func (e Event) Attr(namespace, local string) ([]byte, bool) {
	for _, attr := range e.Attrs {
		if attr.Name.Namespace == namespace && attr.Name.Local == local {
			return attr.Value, true
		}
	}
	return nil, false
}

// RawEvent is a streaming XML event with unresolved, prefixed names.
type RawEvent struct {
	Kind       EventKind
	Name       RawName
	Attrs      []RawAttr
	Text       []byte
	Decl       Decl
	Line       int
	Column     int
	ID         ElementID
	ScopeDepth int
}

// ResolvedAttr is a namespace-resolved attribute flattened to its local
// name, after uniqueness of the expanded name has been enforced.
type ResolvedAttr struct {
	Local string
	Value []byte
}

// ResolvedEvent is a streaming XML event like Event, but flattens element
// and attribute names to their local form. Producing one enforces that no
// two attributes share the same expanded (namespace, local) name.
type ResolvedEvent struct {
	Kind       EventKind
	Local      string
	Attrs      []ResolvedAttr
	Text       []byte
	Decl       Decl
	Line       int
	Column     int
	ID         ElementID
	ScopeDepth int
}
