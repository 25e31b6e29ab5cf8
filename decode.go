package bencode

import (
	"fmt"
	"math/big"
	"strconv"

	"golang.org/x/exp/slices"
	"golang.org/x/text/encoding/ianaindex"
)

// DefaultCharset names the text codec assumed by Decode and used by
// DecodeString when callers pass an empty charset name.
const DefaultCharset = "utf-8"

// Decode parses a complete bencode buffer into the value model: []byte for
// byte strings, *big.Int for integers, List for lists and *Dict for
// dictionaries. Exactly one block must span the entire buffer; trailing
// bytes, like every other grammar violation, return a *InvalidBlockError.
func Decode(buf []byte) (any, error) {
	r := &reader{buf: buf, charset: DefaultCharset}
	return r.decode()
}

// DecodeString converts text to bytes under the named charset and parses the
// result. The charset name is resolved through the IANA registry; it is also
// recorded on any decode failure so Report can render the buffer back to
// text under the same codec.
func DecodeString(text, charset string) (any, error) {
	if charset == "" {
		charset = DefaultCharset
	}
	buf, err := charsetBytes(text, charset)
	if err != nil {
		return nil, err
	}
	r := &reader{buf: buf, charset: charset}
	return r.decode()
}

func charsetBytes(text, charset string) ([]byte, error) {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unknown charset %q", charset)
	}
	buf, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("converting text to %s: %w", charset, err)
	}
	return buf, nil
}

type reader struct {
	buf     []byte
	charset string
}

func (r *reader) invalidBlock(block BlockType, from, to int, reason string) *InvalidBlockError {
	return &InvalidBlockError{
		Buf:     slices.Clone(r.buf),
		From:    from,
		To:      to,
		Block:   block,
		Charset: r.charset,
		Reason:  reason,
	}
}

func (r *reader) decode() (any, error) {
	v, to, err := r.readBlock(0)
	if err != nil {
		return nil, err
	}
	if to != len(r.buf)-1 {
		return nil, r.invalidBlock(BlockUnknown, to+1, len(r.buf), "Invalid straw characters.")
	}
	return v, nil
}

// readBlock decodes one block starting at from and returns its value along
// with the offset of the last byte it consumed, so the caller can resume at
// to+1.
func (r *reader) readBlock(from int) (any, int, error) {
	if from >= len(r.buf) {
		return nil, 0, r.invalidBlock(BlockUnknown, from, from, "Invalid straw character.")
	}
	switch c := r.buf[from]; {
	case c == dictStart:
		d, to, err := r.readDict(from)
		return d, to, err
	case c == listStart:
		l, to, err := r.readList(from)
		return l, to, err
	case c == numberStart:
		n, to, err := r.readInteger(from)
		return n, to, err
	case c >= 0x30 && c <= 0x39:
		b, to, err := r.readBytes(from)
		return b, to, err
	default:
		return nil, 0, r.invalidBlock(BlockUnknown, from, from, "Invalid straw character.")
	}
}

// readDict collects blocks until the closing terminator, then pairs them up
// as keys and values in wire order.
func (r *reader) readDict(from int) (*Dict, int, error) {
	var blocks []any
	offset := from + 1
	for {
		if offset >= len(r.buf) {
			return nil, 0, r.invalidBlock(BlockDict, from, len(r.buf), "dict does not end")
		}
		if r.buf[offset] == bencodeEnd {
			break
		}
		v, to, err := r.readBlock(offset)
		if err != nil {
			return nil, 0, err
		}
		blocks = append(blocks, v)
		offset = to + 1
	}
	if len(blocks)%2 != 0 {
		return nil, 0, r.invalidBlock(BlockDict, from, offset, "dict has an odd number of elements")
	}
	d := NewDict()
	for i := 0; i < len(blocks); i += 2 {
		d.Put(blocks[i], blocks[i+1])
	}
	return d, offset, nil
}

func (r *reader) readList(from int) (List, int, error) {
	items := List{}
	offset := from + 1
	for {
		if offset >= len(r.buf) {
			return nil, 0, r.invalidBlock(BlockList, from, len(r.buf), "list does not end")
		}
		if r.buf[offset] == bencodeEnd {
			break
		}
		v, to, err := r.readBlock(offset)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
		offset = to + 1
	}
	return items, offset, nil
}

func (r *reader) readInteger(from int) (*big.Int, int, error) {
	end := from + 1
	for {
		if end >= len(r.buf) {
			return nil, 0, r.invalidBlock(BlockInteger, from, len(r.buf), "Integer block does not end")
		}
		if r.buf[end] == bencodeEnd {
			break
		}
		end++
	}
	n, ok := new(big.Int).SetString(string(r.buf[from+1:end]), 10)
	if !ok {
		return nil, 0, r.invalidBlock(BlockInteger, from, end, "Integer block contains a non-decimal character")
	}
	return n, end, nil
}

func (r *reader) readBytes(from int) ([]byte, int, error) {
	colon := from
	for {
		if colon >= len(r.buf) {
			return nil, 0, r.invalidBlock(BlockString, from, len(r.buf), "String does not contain a colon")
		}
		c := r.buf[colon]
		if c == bytesLengthSep {
			break
		}
		if c < 0x30 || c > 0x39 {
			return nil, 0, r.invalidBlock(BlockString, from, colon, "Length description of string contains a non-decimal character")
		}
		colon++
	}
	length, err := strconv.Atoi(string(r.buf[from:colon]))
	if err != nil || length >= len(r.buf)-colon {
		return nil, 0, r.invalidBlock(BlockString, from, len(r.buf), "Length description of string exceeds length of byte stream")
	}
	return r.buf[colon+1 : colon+1+length], colon + length, nil
}
