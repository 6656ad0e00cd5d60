package jsonvalue

import (
	"os"
	"strings"
	"testing"

	"github.com/matzehuels/jsonlens/pkg/errors"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func TestDecodeKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind Kind
	}{
		{`null`, Null},
		{`true`, Bool},
		{`false`, Bool},
		{`0`, Number},
		{`-1.5e3`, Number},
		{`""`, String},
		{`"x"`, String},
		{`[]`, Array},
		{`[1,2]`, Array},
		{`{}`, Object},
		{`{"k":null}`, Object},
	}
	for _, tt := range tests {
		v, err := DecodeString(tt.src)
		if err != nil {
			t.Errorf("DecodeString(%q) error: %v", tt.src, err)
			continue
		}
		if v.Kind != tt.kind {
			t.Errorf("DecodeString(%q) kind = %v, want %v", tt.src, v.Kind, tt.kind)
		}
	}
}

func TestDecodePrimitivePayloads(t *testing.T) {
	v, err := DecodeString(`{"b":true,"n":2.5,"s":"hi","z":null}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if b, ok := v.Member("b"); !ok || !b.BoolVal {
		t.Errorf("member b = %+v", b)
	}
	if n, ok := v.Member("n"); !ok || n.NumberVal != 2.5 {
		t.Errorf("member n = %+v", n)
	}
	if s, ok := v.Member("s"); !ok || s.StringVal != "hi" {
		t.Errorf("member s = %+v", s)
	}
	if z, ok := v.Member("z"); !ok || !z.IsNull() {
		t.Errorf("member z = %+v", z)
	}
}

func TestDecodePreservesKeyOrder(t *testing.T) {
	v, err := DecodeString(`{"zebra":1,"apple":2,"mango":3}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := []string{"zebra", "apple", "mango"}
	for i, m := range v.Members {
		if m.Key != want[i] {
			t.Errorf("member %d key = %q, want %q", i, m.Key, want[i])
		}
	}
}

func TestDecodeDuplicateKeys(t *testing.T) {
	// Last write wins; the key keeps its first position.
	v, err := DecodeString(`{"a":1,"b":2,"a":3}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(v.Members) != 2 {
		t.Fatalf("member count = %d, want 2", len(v.Members))
	}
	if v.Members[0].Key != "a" || v.Members[0].Value.NumberVal != 3 {
		t.Errorf("member 0 = %q=%v, want a=3", v.Members[0].Key, v.Members[0].Value.NumberVal)
	}
	if v.Members[1].Key != "b" {
		t.Errorf("member 1 key = %q, want b", v.Members[1].Key)
	}
}

func TestDecodeNested(t *testing.T) {
	v, err := DecodeString(`{"a":[1,{"b":[true,null]}]}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	a, ok := v.Member("a")
	if !ok || a.Kind != Array || len(a.Elems) != 2 {
		t.Fatalf("member a = %+v", a)
	}
	inner, ok := a.Elems[1].Member("b")
	if !ok || inner.Kind != Array {
		t.Fatalf("nested b = %+v", inner)
	}
	if !inner.Elems[1].IsNull() {
		t.Errorf("b[1] = %+v, want null", inner.Elems[1])
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	for _, src := range []string{"", "   ", "\n\t"} {
		_, err := DecodeString(src)
		if !errors.Is(err, errors.ErrCodeEmptyInput) {
			t.Errorf("DecodeString(%q) = %v, want EMPTY_INPUT", src, err)
		}
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	for _, src := range []string{`{`, `{"a":}`, `[1,]`, `nul`, `"unterminated`} {
		_, err := DecodeString(src)
		if err == nil {
			t.Errorf("DecodeString(%q) succeeded, want error", src)
			continue
		}
		if !errors.Is(err, errors.ErrCodeParse) {
			t.Errorf("DecodeString(%q) code = %v, want PARSE_ERROR", src, errors.GetCode(err))
		}
	}
}

func TestDecodeTrailingData(t *testing.T) {
	_, err := DecodeString(`{"a":1} {"b":2}`)
	if !errors.Is(err, errors.ErrCodeTrailingData) {
		t.Errorf("trailing value error = %v, want TRAILING_DATA", err)
	}

	// Trailing whitespace is fine.
	if _, err := DecodeString("{\"a\":1}  \n"); err != nil {
		t.Errorf("trailing whitespace: %v", err)
	}
}

func TestDecodeReader(t *testing.T) {
	v, err := Decode(strings.NewReader(`[1,2,3]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.Len() != 3 {
		t.Errorf("len = %d, want 3", v.Len())
	}
}

func TestDecodeFileNotFound(t *testing.T) {
	_, err := DecodeFile("/nonexistent/path/doc.json")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestDecodeFile(t *testing.T) {
	path := t.TempDir() + "/doc.json"
	if err := writeFile(path, `{"ok":true}`); err != nil {
		t.Fatal(err)
	}
	v, err := DecodeFile(path)
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if b, ok := v.Member("ok"); !ok || !b.BoolVal {
		t.Errorf("member ok = %+v", b)
	}
}
