// bencode - bencode codec CLI tool
//
// Usage:
//
//	bencode dump [file]       Decode bencode and print the value tree
//	bencode json [file]       Decode bencode and print it as JSON
//	bencode from-json [file]  Parse JSON and print its bencode encoding
//	bencode check [file]      Validate bencode, print a diagnostic on failure
//	bencode version           Print version info
//
// If no file is given, reads from stdin. Input is treated as text in the
// charset given by --charset= (default utf-8).
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/meow-io/go-bencode"
	"github.com/meow-io/go-bencode/config"
	"go.uber.org/zap"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	cmd := os.Args[1]

	conf := config.NewConfig(config.WithLoggingPrefix("bencode"))
	logger := conf.Logger("cli")
	defer func() {
		_ = logger.Sync()
	}()

	charset := conf.Charset
	fileArg := ""
	for _, arg := range os.Args[2:] {
		switch {
		case strings.HasPrefix(arg, "--charset="):
			charset = strings.TrimPrefix(arg, "--charset=")
		default:
			if !strings.HasPrefix(arg, "-") && arg != "-" {
				fileArg = arg
			}
		}
	}

	var input io.Reader = os.Stdin
	if fileArg != "" {
		f, err := os.Open(fileArg)
		if err != nil {
			fatal("open file: %v", err)
		}
		defer f.Close()
		input = f
	}

	switch cmd {
	case "dump":
		cmdDump(input, charset, logger)
	case "json":
		cmdJSON(input, charset, logger)
	case "from-json":
		cmdFromJSON(input, logger)
	case "check":
		cmdCheck(input, charset, logger)
	case "version":
		fmt.Printf("bencode %s\n", version)
	default:
		fmt.Fprintf(os.Stderr, "bencode: unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func decodeInput(input io.Reader, charset string, logger *zap.SugaredLogger) any {
	data, err := io.ReadAll(input)
	if err != nil {
		fatal("read input: %v", err)
	}
	logger.Debugf("read %d bytes", len(data))
	v, err := bencode.DecodeString(string(data), charset)
	if err != nil {
		var blockErr *bencode.InvalidBlockError
		if errors.As(err, &blockErr) {
			fmt.Fprint(os.Stderr, blockErr.Report())
			os.Exit(1)
		}
		fatal("decode: %v", err)
	}
	return v
}

func cmdDump(input io.Reader, charset string, logger *zap.SugaredLogger) {
	v := decodeInput(input, charset, logger)
	writeTree(os.Stdout, v, "")
}

func cmdJSON(input io.Reader, charset string, logger *zap.SugaredLogger) {
	v := decodeInput(input, charset, logger)
	var b strings.Builder
	if err := writeJSON(&b, v); err != nil {
		fatal("render json: %v", err)
	}
	fmt.Println(b.String())
}

func cmdFromJSON(input io.Reader, logger *zap.SugaredLogger) {
	dec := json.NewDecoder(input)
	dec.UseNumber()
	v, err := fromJSONValue(dec)
	if err != nil {
		fatal("parse json: %v", err)
	}
	out, err := bencode.Encode(v)
	if err != nil {
		fatal("encode: %v", err)
	}
	logger.Debugf("encoded %d bytes", len(out))
	os.Stdout.Write(out)
}

func cmdCheck(input io.Reader, charset string, logger *zap.SugaredLogger) {
	data, err := io.ReadAll(input)
	if err != nil {
		fatal("read input: %v", err)
	}
	if _, err := bencode.DecodeString(string(data), charset); err != nil {
		var blockErr *bencode.InvalidBlockError
		if errors.As(err, &blockErr) {
			fmt.Fprint(os.Stderr, blockErr.Report())
			os.Exit(1)
		}
		fatal("decode: %v", err)
	}
	logger.Infof("ok, %d bytes", len(data))
}

func writeTree(w io.Writer, v any, indent string) {
	switch t := v.(type) {
	case []byte:
		fmt.Fprintf(w, "%sstring %q\n", indent, string(t))
	case *big.Int:
		fmt.Fprintf(w, "%sinteger %s\n", indent, t.String())
	case bencode.List:
		fmt.Fprintf(w, "%slist\n", indent)
		for _, item := range t {
			writeTree(w, item, indent+"  ")
		}
	case *bencode.Dict:
		fmt.Fprintf(w, "%sdict\n", indent)
		for _, k := range t.Keys() {
			fmt.Fprintf(w, "%s  key %q\n", indent, k)
			val, _ := t.Get(k)
			writeTree(w, val, indent+"    ")
		}
	default:
		fmt.Fprintf(w, "%s%v\n", indent, t)
	}
}

// writeJSON renders the value model as JSON by hand so dict key order
// survives; encoding/json would re-order keys through a map.
func writeJSON(b *strings.Builder, v any) error {
	switch t := v.(type) {
	case []byte:
		data, err := json.Marshal(string(t))
		if err != nil {
			return err
		}
		b.Write(data)
	case *big.Int:
		b.WriteString(t.String())
	case bencode.List:
		b.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeJSON(b, item); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	case *bencode.Dict:
		b.WriteByte('{')
		first := true
		err := t.Each(func(key, value any) error {
			if !first {
				b.WriteByte(',')
			}
			first = false
			kb, ok := key.([]byte)
			if !ok {
				return fmt.Errorf("non-string dict key %v", key)
			}
			data, err := json.Marshal(string(kb))
			if err != nil {
				return err
			}
			b.Write(data)
			b.WriteByte(':')
			return writeJSON(b, value)
		})
		if err != nil {
			return err
		}
		b.WriteByte('}')
	default:
		return fmt.Errorf("no json rendering for %T", v)
	}
	return nil
}

// fromJSONValue walks json.Decoder tokens instead of unmarshaling into a map
// so object key order survives into the Dict.
func fromJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return fromJSONToken(dec, tok)
}

func fromJSONToken(dec *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			d := bencode.NewDict()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				v, err := fromJSONValue(dec)
				if err != nil {
					return nil, err
				}
				d.Put(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return d, nil
		case '[':
			l := bencode.List{}
			for dec.More() {
				v, err := fromJSONValue(dec)
				if err != nil {
					return nil, err
				}
				l = append(l, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return l, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case string:
		return t, nil
	case json.Number:
		n, ok := new(big.Int).SetString(t.String(), 10)
		if !ok {
			return nil, fmt.Errorf("bencode has no representation for non-integer number %s", t)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("bencode has no representation for %v", tok)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `bencode - bencode codec CLI tool

Usage:
  bencode dump [--charset=NAME] [file]       Decode bencode and print the value tree
  bencode json [--charset=NAME] [file]       Decode bencode and print it as JSON
  bencode from-json [file]                   Parse JSON and print its bencode encoding
  bencode check [--charset=NAME] [file]      Validate bencode, print a diagnostic on failure
  bencode version                            Print version info

If no file is given, reads from stdin.`)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "bencode: "+format+"\n", args...)
	os.Exit(1)
}
