// This package implements the bencode serialization format used by the
// BitTorrent protocol: byte strings, arbitrary-precision integers, ordered
// lists and string-keyed dictionaries mapped to and from a compact byte
// encoding.
//
// Unlike most bencode libraries, dictionary keys are not sorted on encode:
// a Dict is emitted in insertion order, a plain map in whatever order its
// range yields. The decoder tracks the byte range of every block it parses,
// so malformed input produces an *InvalidBlockError which can render a
// caret-underlined diagnostic of the offending bytes via Report.
//
// Decoding recurses once per nesting level with no depth cap, so an input
// nested deeply enough can exhaust the stack.
package bencode

const (
	numberStart    = 0x69
	dictStart      = 0x64
	listStart      = 0x6c
	bencodeEnd     = 0x65
	bytesLengthSep = 0x3a
)
