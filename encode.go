package bencode

import (
	"bytes"
	"math/big"
	"strconv"

	"golang.org/x/exp/maps"
)

// Encode serializes v to its bencode form. Supported shapes are byte strings
// (string, []byte), integers (the built-in integer kinds, big.Int), ordered
// sequences (List, []any) and dictionaries (*Dict, map[string]any). Anything
// else returns a *NoConversionError and no output. Dictionary keys are
// emitted in the order the dictionary yields them, they are not sorted.
func Encode(v any) ([]byte, error) {
	w := newWriter()
	if err := w.writeValue(v); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

// Compare two values in shortlex-order based on their bencode encoding.
// Return 0 for equal, -1 for a is less than b, and 1 for a is greater than b.
func Compare(a, b any) (int, error) {
	abytes, err := Encode(a)
	if err != nil {
		return 0, err
	}
	bbytes, err := Encode(b)
	if err != nil {
		return 0, err
	}
	if len(abytes) < len(bbytes) {
		return -1, nil
	} else if len(abytes) > len(bbytes) {
		return 1, nil
	}
	return bytes.Compare(abytes, bbytes), nil
}

type writer struct {
	buf bytes.Buffer
}

func newWriter() writer {
	return writer{}
}

func (w *writer) writeByte(b byte) error {
	return w.buf.WriteByte(b)
}

func (w *writer) writeBytes(b []byte) error {
	if _, err := w.buf.WriteString(strconv.Itoa(len(b))); err != nil {
		return err
	}
	if err := w.buf.WriteByte(bytesLengthSep); err != nil {
		return err
	}
	if _, err := w.buf.Write(b); err != nil {
		return err
	}
	return nil
}

func (w *writer) writeInt(n *big.Int) error {
	if err := w.buf.WriteByte(numberStart); err != nil {
		return err
	}
	if _, err := w.buf.WriteString(n.String()); err != nil {
		return err
	}
	return w.writeByte(bencodeEnd)
}

func (w *writer) writeList(items []any) error {
	if err := w.writeByte(listStart); err != nil {
		return err
	}
	for _, item := range items {
		if err := w.writeValue(item); err != nil {
			return err
		}
	}
	return w.writeByte(bencodeEnd)
}

func (w *writer) writeDict(d *Dict) error {
	if err := w.writeByte(dictStart); err != nil {
		return err
	}
	for _, e := range d.entries {
		k, ok := stringKey(e.key)
		if !ok {
			return newNoConversionError(e.key, ContextDict)
		}
		if err := w.writeBytes([]byte(k)); err != nil {
			return err
		}
		if err := w.writeValue(e.value); err != nil {
			return err
		}
	}
	return w.writeByte(bencodeEnd)
}

func (w *writer) writeMap(m map[string]any) error {
	if err := w.writeByte(dictStart); err != nil {
		return err
	}
	for _, k := range maps.Keys(m) {
		if err := w.writeBytes([]byte(k)); err != nil {
			return err
		}
		if err := w.writeValue(m[k]); err != nil {
			return err
		}
	}
	return w.writeByte(bencodeEnd)
}

func (w *writer) writeValue(v any) error {
	switch t := v.(type) {
	case string:
		return w.writeBytes([]byte(t))
	case []byte:
		return w.writeBytes(t)
	case int:
		return w.writeInt(big.NewInt(int64(t)))
	case int8:
		return w.writeInt(big.NewInt(int64(t)))
	case int16:
		return w.writeInt(big.NewInt(int64(t)))
	case int32:
		return w.writeInt(big.NewInt(int64(t)))
	case int64:
		return w.writeInt(big.NewInt(t))
	case uint:
		return w.writeInt(new(big.Int).SetUint64(uint64(t)))
	case uint8:
		return w.writeInt(new(big.Int).SetUint64(uint64(t)))
	case uint16:
		return w.writeInt(new(big.Int).SetUint64(uint64(t)))
	case uint32:
		return w.writeInt(new(big.Int).SetUint64(uint64(t)))
	case uint64:
		return w.writeInt(new(big.Int).SetUint64(t))
	case *big.Int:
		return w.writeInt(t)
	case big.Int:
		return w.writeInt(&t)
	case List:
		return w.writeList(t)
	case []any:
		return w.writeList(t)
	case *Dict:
		return w.writeDict(t)
	case map[string]any:
		return w.writeMap(t)
	default:
		return newNoConversionError(v, ContextGeneric)
	}
}
