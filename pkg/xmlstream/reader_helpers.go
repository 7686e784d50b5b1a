package xmlstream

import (
	"fmt"

	"github.com/sixaxis/xmlpull/pkg/xmltext"
)

func resolveElementName(names *qnameCache, ns *nsStack, dec *xmltext.Decoder, name []byte, depth, line, column int) (QName, error) {
	prefix, local, hasPrefix := splitQName(name)
	if !hasPrefix {
		namespace, _ := ns.lookup("", depth)
		return names.internBytes(namespace, local), nil
	}
	namespace, ok := ns.lookup(unsafeString(prefix), depth)
	if !ok {
		return QName{}, unboundPrefixError(dec, line, column)
	}
	return names.internBytes(namespace, local), nil
}

func popQName(stack []QName, depth int) (QName, []QName, error) {
	if len(stack) == 0 {
		return QName{}, nil, fmt.Errorf("unexpected end element at depth %d", depth)
	}
	name := stack[len(stack)-1]
	stack = stack[:len(stack)-1]
	return name, stack, nil
}

func decodeAttrValueBytes(dec *xmltext.Decoder, buf, value []byte) ([]byte, []byte, error) {
	start := len(buf)
	next, err := unescapeIntoBuffer(dec, buf, start, value)
	if err != nil {
		if len(next) >= start {
			next = next[:start]
		}
		return next, nil, err
	}
	if len(next) == start {
		return next, nil, nil
	}
	return next, next[start:], nil
}

func decodeNamespaceValueString(dec *xmltext.Decoder, buf, value []byte) ([]byte, string, error) {
	start := len(buf)
	next, err := unescapeIntoBuffer(dec, buf, start, value)
	if err != nil {
		if len(next) >= start {
			next = next[:start]
		}
		return next, "", err
	}
	if len(next) == start {
		return next, "", nil
	}
	return next, unsafeString(next[start:]), nil
}

func appendNamespaceValue(buf, value []byte) ([]byte, string) {
	start := len(buf)
	buf = append(buf, value...)
	if len(buf) == start {
		return buf, ""
	}
	return buf, unsafeString(buf[start:])
}

func decodeTextBytes(dec *xmltext.Decoder, buf, text []byte) ([]byte, []byte, error) {
	start := len(buf)
	next, err := unescapeIntoBuffer(dec, buf, start, text)
	if err != nil {
		if len(next) >= start {
			next = next[:start]
		}
		return next, nil, err
	}
	if len(next) == start {
		return next, nil, nil
	}
	return next, next[start:], nil
}
