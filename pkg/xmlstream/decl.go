package xmlstream

import (
	"bytes"
	"errors"
)

var errInvalidXMLDecl = errors.New("invalid XML declaration")

// parseXMLDeclPseudoAttrs parses the Text span of an IsXMLDecl token (the
// PI target "xml" followed by its pseudo-attributes, up to but not
// including "?>") into its version/encoding/standalone parts.
func parseXMLDeclPseudoAttrs(raw []byte) (Decl, error) {
	_, data := scanDeclAttrName(raw)
	var decl Decl
	seenVersion := false
	for {
		data = bytes.TrimLeft(data, " \t\r\n")
		if len(data) == 0 {
			break
		}
		name, rest := scanDeclAttrName(data)
		if len(name) == 0 {
			return Decl{}, errInvalidXMLDecl
		}
		data = bytes.TrimLeft(rest, " \t\r\n")
		if len(data) == 0 || data[0] != '=' {
			return Decl{}, errInvalidXMLDecl
		}
		data = bytes.TrimLeft(data[1:], " \t\r\n")
		if len(data) == 0 {
			return Decl{}, errInvalidXMLDecl
		}
		quote := data[0]
		if quote != '\'' && quote != '"' {
			return Decl{}, errInvalidXMLDecl
		}
		data = data[1:]
		end := bytes.IndexByte(data, quote)
		if end < 0 {
			return Decl{}, errInvalidXMLDecl
		}
		value := string(data[:end])
		data = data[end+1:]

		switch {
		case bytes.Equal(name, []byte("version")):
			decl.Version = value
			seenVersion = true
		case bytes.EqualFold(name, []byte("encoding")):
			v := value
			decl.Encoding = &v
		case bytes.Equal(name, []byte("standalone")):
			switch value {
			case "yes", "no":
				v := value
				decl.Standalone = &v
			default:
				return Decl{}, errInvalidXMLDecl
			}
		default:
			return Decl{}, errInvalidXMLDecl
		}
	}
	if !seenVersion {
		return Decl{}, errInvalidXMLDecl
	}
	return decl, nil
}

// splitPITargetData splits a processing instruction's raw token text (the
// target name immediately followed by its data, as produced by the
// tokenizer for every non-declaration PI) into target and data on the
// first run of whitespace. A PI with no data ("<?target?>") yields an
// empty data slice.
func splitPITargetData(raw []byte) (target, data []byte) {
	i := 0
	for i < len(raw) && !isPIWhitespace(raw[i]) {
		i++
	}
	target = raw[:i]
	for i < len(raw) && isPIWhitespace(raw[i]) {
		i++
	}
	return target, raw[i:]
}

func isPIWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func scanDeclAttrName(data []byte) ([]byte, []byte) {
	if len(data) == 0 || !isNameStartByteLocal(data[0]) {
		return nil, data
	}
	i := 1
	for i < len(data) && isNameByteLocal(data[i]) {
		i++
	}
	return data[:i], data[i:]
}

func isNameStartByteLocal(b byte) bool {
	return b == ':' || b == '_' ||
		(b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isNameByteLocal(b byte) bool {
	return isNameStartByteLocal(b) || b == '-' || b == '.' || (b >= '0' && b <= '9')
}
