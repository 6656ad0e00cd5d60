package jsonvalue

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/jsonlens/pkg/errors"
)

// Decode reads exactly one JSON value from r.
//
// The decoder walks encoding/json's token stream instead of unmarshaling
// into map[string]any, so object member order survives decoding. Numbers
// are stored as float64; non-finite literals (NaN, Infinity) are not valid
// JSON and are rejected by the tokenizer before they reach this package.
//
// Failures return a structured error from pkg/errors:
//   - EMPTY_INPUT for empty or whitespace-only input
//   - PARSE_ERROR for malformed JSON, with the byte offset in the message
//   - TRAILING_DATA when non-whitespace follows the first value
func Decode(r io.Reader) (*Value, error) {
	dec := json.NewDecoder(r)

	v, err := decodeValue(dec)
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.New(errors.ErrCodeEmptyInput, "input is empty or contains only whitespace")
		}
		return nil, parseError(err)
	}

	// Exactly one value is allowed at the top level.
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, parseError(err)
		}
		return nil, errors.New(errors.ErrCodeTrailingData,
			"unexpected %s after top-level value at offset %d", tokenName(tok), dec.InputOffset())
	}

	return v, nil
}

// DecodeString decodes a JSON document from a string.
func DecodeString(s string) (*Value, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.New(errors.ErrCodeEmptyInput, "input is empty or contains only whitespace")
	}
	return Decode(strings.NewReader(s))
}

// DecodeFile decodes a JSON document from a file path.
func DecodeFile(path string) (*Value, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "file %q not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %q", path)
	}
	defer f.Close()

	v, err := Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "decode %q", path)
	}
	return v, nil
}

// decodeValue consumes one complete value from the token stream.
func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return valueFromToken(dec, tok)
}

// valueFromToken builds a Value from an already-read opening token,
// consuming the remaining tokens of containers.
func valueFromToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			// ']' or '}' here would be a tokenizer bug; Token validates nesting.
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	case nil:
		return &Value{Kind: Null}, nil
	case bool:
		return &Value{Kind: Bool, BoolVal: t}, nil
	case float64:
		return &Value{Kind: Number, NumberVal: t}, nil
	case string:
		return &Value{Kind: String, StringVal: t}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// decodeObject consumes tokens up to and including the closing '}'.
// Member order matches the source; a duplicate key overwrites the value at
// the key's first position (last-write-wins, standard decoder semantics).
func decodeObject(dec *json.Decoder) (*Value, error) {
	v := &Value{Kind: Object}
	var index map[string]int

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
		}

		child, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}

		if index == nil {
			index = make(map[string]int)
		}
		if i, dup := index[key]; dup {
			v.Members[i].Value = child
			continue
		}
		index[key] = len(v.Members)
		v.Members = append(v.Members, Member{Key: key, Value: child})
	}

	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return v, nil
}

// decodeArray consumes tokens up to and including the closing ']'.
func decodeArray(dec *json.Decoder) (*Value, error) {
	v := &Value{Kind: Array}
	for dec.More() {
		child, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		v.Elems = append(v.Elems, child)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return v, nil
}

// parseError maps encoding/json failures onto structured parse errors.
func parseError(err error) error {
	var syntaxErr *json.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return errors.Wrap(errors.ErrCodeParse, err, "syntax error at offset %d", syntaxErr.Offset)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.Wrap(errors.ErrCodeParse, err, "unexpected end of input")
	}
	return errors.Wrap(errors.ErrCodeParse, err, "malformed JSON")
}

// tokenName describes a token for error messages.
func tokenName(tok json.Token) string {
	switch t := tok.(type) {
	case json.Delim:
		return fmt.Sprintf("%q", t.String())
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return "token"
	}
}
