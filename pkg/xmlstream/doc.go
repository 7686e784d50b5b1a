// Package xmlstream provides a namespace-aware streaming XML reader built on xmltext.
// It exposes zero-copy event slices with explicit lifetimes and helper APIs for
// subtree copying and streaming unmarshaling.
package xmlstream
