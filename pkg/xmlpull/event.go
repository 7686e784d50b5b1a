package xmlpull

import "github.com/sixaxis/xmlpull/pkg/xmlstream"

// EventKind identifies the kind of event returned by Reader.Next.
type EventKind = xmlstream.EventKind

const (
	EventStartElement = xmlstream.EventStartElement
	EventEndElement   = xmlstream.EventEndElement
	EventCharData     = xmlstream.EventCharData
	EventComment      = xmlstream.EventComment
	EventPI           = xmlstream.EventPI
	EventDirective    = xmlstream.EventDirective
	EventEmptyTag     = xmlstream.EventEmptyTag
	EventCData        = xmlstream.EventCData
	EventDecl         = xmlstream.EventDecl
	EventDocType      = xmlstream.EventDocType
	EventEOF          = xmlstream.EventEOF
)

// Event is a single namespace-resolved streaming XML event. Name, Attrs,
// and Text reference reader-owned buffers and are valid until the next
// call to Next. For an EventPI event, Name.Local holds the PI target and
// Text holds its data.
type Event = xmlstream.Event

// QName is an interned, namespace-qualified name.
type QName = xmlstream.QName

// Attr is a namespace-resolved attribute.
type Attr = xmlstream.Attr

// Decl holds the parsed pseudo-attributes of an XML declaration, populated
// only on an EventDecl event.
type Decl = xmlstream.Decl
