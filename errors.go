package bencode

import (
	"fmt"
	"reflect"
)

// Context tags carried by NoConversionError.
const (
	ContextGeneric = "generic"
	ContextDict    = "dict"
)

// NoConversionError is returned by Encode when a value has no bencode
// representation. Context is ContextDict when the offending value was used
// as a dictionary key, ContextGeneric otherwise.
type NoConversionError struct {
	Value   any
	Type    reflect.Type
	Context string
}

func newNoConversionError(v any, context string) *NoConversionError {
	return &NoConversionError{Value: v, Type: reflect.TypeOf(v), Context: context}
}

func (e *NoConversionError) Error() string {
	if e.Context == ContextDict {
		return fmt.Sprintf("cannot use %s value %#v as a dict key, keys must be byte strings", e.typeName(), e.Value)
	}
	return fmt.Sprintf("no conversion to bencode available for %s value %#v", e.typeName(), e.Value)
}

func (e *NoConversionError) typeName() string {
	if e.Type == nil {
		return "nil"
	}
	return e.Type.String()
}

// BlockType identifies the grammar production a decode failure occurred in.
type BlockType int

const (
	BlockUnknown BlockType = iota
	BlockString
	BlockInteger
	BlockList
	BlockDict
)

func (b BlockType) String() string {
	switch b {
	case BlockString:
		return "string"
	case BlockInteger:
		return "integer"
	case BlockList:
		return "list"
	case BlockDict:
		return "dict"
	default:
		return "unknown"
	}
}

// InvalidBlockError is returned by Decode for any grammar violation. It owns
// a copy of the input buffer and the byte range of the offending block, so
// Report can render a full diagnostic later, on demand. To may point one
// past the last index for blocks cut off by the end of the buffer.
type InvalidBlockError struct {
	Buf     []byte
	From    int
	To      int
	Block   BlockType
	Charset string
	Reason  string
}

func (e *InvalidBlockError) Error() string {
	return fmt.Sprintf("invalid %s block at bytes %d..%d: %s", e.Block, e.From, e.To, e.Reason)
}
