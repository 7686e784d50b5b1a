package xmltext

import (
	"errors"
	"fmt"
)

var (
	errNilReader           = errors.New("nil XML reader")
	errNilToken            = errors.New("nil token destination")
	errUnexpectedEOF       = errors.New("unexpected EOF")
	errInvalidName         = errors.New("invalid XML name")
	errInvalidEntity       = errors.New("invalid entity reference")
	errInvalidCharRef      = errors.New("invalid character reference")
	errInvalidChar         = errors.New("invalid XML character")
	errInvalidToken        = errors.New("invalid XML token")
	errInvalidComment      = errors.New("invalid XML comment")
	errInvalidPI           = errors.New("invalid XML processing instruction")
	errUnsupportedEncoding = errors.New("unsupported encoding")
	errTokenTooLarge       = errors.New("token exceeds MaxTokenSize")
	errDepthLimit          = errors.New("element depth exceeds MaxDepth")
	errAttrLimit           = errors.New("attribute count exceeds MaxAttrs")
	errDuplicateAttr       = errors.New("duplicate attribute name")
	errMismatchedEndTag    = errors.New("mismatched end element")
	errMultipleRoots       = errors.New("multiple root elements")
	errContentOutsideRoot  = errors.New("content outside root element")
	errMissingRoot         = errors.New("missing root element")
	errMisplacedDirective  = errors.New("directive outside prolog")
	errDuplicateDirective  = errors.New("duplicate directive")
	errMisplacedXMLDecl    = errors.New("XML declaration not at start")
	errDuplicateXMLDecl    = errors.New("duplicate XML declaration")
)

// DuplicateAttributeError reports an attribute name repeated on one tag.
type DuplicateAttributeError struct {
	Name string
}

func (e *DuplicateAttributeError) Error() string {
	return fmt.Sprintf("duplicate attribute %q", e.Name)
}

func (e *DuplicateAttributeError) Unwrap() error { return errDuplicateAttr }

// MismatchedEndError reports an end tag that does not match the open element.
type MismatchedEndError struct {
	Expected string
	Found    string
}

func (e *MismatchedEndError) Error() string {
	return fmt.Sprintf("mismatched end element: expected %q, found %q", e.Expected, e.Found)
}

func (e *MismatchedEndError) Unwrap() error { return errMismatchedEndTag }

// UnknownEntityError reports a general entity reference with no declaration.
type UnknownEntityError struct {
	Name string
}

func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("unknown entity %q", e.Name)
}

func (e *UnknownEntityError) Unwrap() error { return errInvalidEntity }

// RecursiveEntityError reports an entity whose replacement text references
// itself, directly or through another entity, during expansion.
type RecursiveEntityError struct {
	Name string
}

func (e *RecursiveEntityError) Error() string {
	return fmt.Sprintf("recursive entity reference %q", e.Name)
}

func (e *RecursiveEntityError) Unwrap() error { return errInvalidEntity }

// SyntaxError reports a well-formedness error with location context.
type SyntaxError struct {
	Offset  int64
	Line    int
	Column  int
	Path    Path
	Snippet []byte
	Err     error
}

// Error formats the syntax error with location and cause.
func (e *SyntaxError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("xml syntax error at line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("xml syntax error at offset %d: %v", e.Offset, e.Err)
}

// Unwrap exposes the underlying error.
func (e *SyntaxError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
