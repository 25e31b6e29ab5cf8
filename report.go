package bencode

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

const reportWidth = 80

// Report renders the decode failure as a multi-line diagnostic: a header
// naming the block type, buffer length, charset and byte range, the reason,
// then the buffer decoded back to text under the error's charset and wrapped
// at 80 columns. Every wrapped line overlapping [From, To] gets a line of
// carets underneath spanning the overlap. Rendering is display-only and is
// never performed while parsing.
func (e *InvalidBlockError) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Invalid %s block in buffer of length %d (%s) at bytes %d..%d:\n", e.Block, len(e.Buf), e.Charset, e.From, e.To)
	fmt.Fprintf(&b, "%s\n", e.Reason)
	runes := []rune(e.bufferText())
	hi := e.To
	if hi > len(runes)-1 {
		hi = len(runes) - 1
	}
	for start := 0; start < len(runes); start += reportWidth {
		end := start + reportWidth
		if end > len(runes) {
			end = len(runes)
		}
		b.WriteString(string(runes[start:end]))
		b.WriteByte('\n')
		lo := e.From
		if lo < start {
			lo = start
		}
		cut := hi
		if cut > end-1 {
			cut = end - 1
		}
		if lo <= cut {
			b.WriteString(strings.Repeat(" ", lo-start))
			b.WriteString(strings.Repeat("^", cut-lo+1))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// bufferText decodes the buffer back to text under the recorded charset,
// falling back to the raw bytes when the charset cannot be resolved.
func (e *InvalidBlockError) bufferText() string {
	enc, err := ianaindex.IANA.Encoding(e.Charset)
	if err != nil || enc == nil {
		return string(e.Buf)
	}
	text, err := enc.NewDecoder().Bytes(e.Buf)
	if err != nil {
		return string(e.Buf)
	}
	return string(text)
}
