package xmltext

import (
	"bytes"
	"unicode/utf8"
)

type entityResolver struct {
	custom       map[string]string
	maxTokenSize int
}

var standardEntities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"apos": "'",
	"quot": "\"",
}

// newEntityResolver builds the resolver a Decoder starts with, seeded
// from a caller-supplied entity map (DecoderOptions.Entity-style maps,
// present before any DOCTYPE internal subset is parsed). A DOCTYPE
// declaration later seen by the decoder adds to this table via
// addCustom, which does not overwrite a name already present here.
func newEntityResolver(seed map[string]string, maxTokenSize int) entityResolver {
	r := entityResolver{maxTokenSize: maxTokenSize}
	if len(seed) > 0 {
		r.custom = make(map[string]string, len(seed))
		for name, value := range seed {
			r.custom[name] = value
		}
	}
	return r
}

// minEntityExpansionDepth bounds recursive expansion of declared entities
// whose replacement text itself contains entity references. An entity
// that (directly or through others) refers back to itself exhausts this
// bound rather than recursing forever.
const minEntityExpansionDepth = 16

func (r *entityResolver) resolve(name string) (value string, ok bool, custom bool) {
	if value, ok := standardEntities[name]; ok {
		return value, true, false
	}
	if r == nil || r.custom == nil {
		return "", false, false
	}
	value, ok = r.custom[name]
	return value, ok, true
}

// addCustom declares a general entity parsed from a DOCTYPE internal
// subset. The first declaration of a given name wins; later ones are
// ignored, matching the well-formedness-independent convention of most
// non-validating parsers.
func (r *entityResolver) addCustom(name, value string) {
	if _, exists := r.custom[name]; exists {
		return
	}
	if r.custom == nil {
		r.custom = make(map[string]string)
	}
	r.custom[name] = value
}

func unescapeInto(dst []byte, data []byte, resolver *entityResolver, maxTokenSize int) ([]byte, error) {
	return unescapeEntitiesInto(dst, data, resolver, maxTokenSize, 0)
}

// unescapeEntitiesInto expands character and entity references in data.
// Replacement text for a declared (custom) entity is itself re-scanned for
// further references, per the "included" construction in the XML
// recommendation; depth bounds that recursion against self-referential
// declarations.
func unescapeEntitiesInto(dst []byte, data []byte, resolver *entityResolver, maxTokenSize int, depth int) ([]byte, error) {
	for i := 0; i < len(data); i++ {
		if data[i] != '&' {
			dst = append(dst, data[i])
			continue
		}
		consumed, name, replacement, isCustom, r, isNumeric, err := parseEntityRef(data, i, resolver)
		if err != nil {
			return nil, err
		}
		switch {
		case isNumeric:
			dst = utf8.AppendRune(dst, r)
		case isCustom:
			if depth >= minEntityExpansionDepth {
				return nil, &RecursiveEntityError{Name: name}
			}
			dst, err = unescapeEntitiesInto(dst, []byte(replacement), resolver, maxTokenSize, depth+1)
			if err != nil {
				return nil, err
			}
		default:
			dst = append(dst, replacement...)
		}
		if maxTokenSize > 0 && len(dst) > maxTokenSize {
			return nil, errTokenTooLarge
		}
		i += consumed - 1
	}
	return dst, nil
}

func parseEntityRef(data []byte, start int, resolver *entityResolver) (consumed int, name string, replacement string, isCustom bool, r rune, isNumeric bool, err error) {
	if start+1 >= len(data) {
		return 0, "", "", false, 0, false, errInvalidEntity
	}
	semi := bytes.IndexByte(data[start+1:], ';')
	if semi < 0 {
		return 0, "", "", false, 0, false, errInvalidEntity
	}
	semi += start + 1
	if semi == start+1 {
		return 0, "", "", false, 0, false, errInvalidEntity
	}
	ref := data[start+1 : semi]
	if ref[0] == '#' {
		rr, err := parseNumericEntity(ref)
		if err != nil {
			return 0, "", "", false, 0, false, err
		}
		return semi - start + 1, "", "", false, rr, true, nil
	}
	refName := string(ref)
	value, ok, custom := resolver.resolve(refName)
	if !ok {
		return 0, "", "", false, 0, false, &UnknownEntityError{Name: refName}
	}
	if err := validateXMLChars([]byte(value)); err != nil {
		return 0, "", "", false, 0, false, err
	}
	return semi - start + 1, refName, value, custom, 0, false, nil
}

func parseNumericEntity(ref []byte) (rune, error) {
	if len(ref) < 2 {
		return 0, errInvalidCharRef
	}
	base := 10
	start := 1
	if ref[1] == 'x' || ref[1] == 'X' {
		base = 16
		start = 2
	}
	if start >= len(ref) {
		return 0, errInvalidCharRef
	}
	var value uint64
	for i := start; i < len(ref); i++ {
		b := ref[i]
		var digit byte
		switch {
		case b >= '0' && b <= '9':
			digit = b - '0'
		case base == 16 && b >= 'a' && b <= 'f':
			digit = b - 'a' + 10
		case base == 16 && b >= 'A' && b <= 'F':
			digit = b - 'A' + 10
		default:
			return 0, errInvalidCharRef
		}
		value = value*uint64(base) + uint64(digit)
		if value > utf8.MaxRune {
			return 0, errInvalidCharRef
		}
	}
	r := rune(value)
	if r == 0 || r > utf8.MaxRune || (r >= 0xD800 && r <= 0xDFFF) {
		return 0, errInvalidCharRef
	}
	if !isValidXMLChar(r) {
		return 0, errInvalidCharRef
	}
	return r, nil
}
