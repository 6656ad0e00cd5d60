package jsonvalue

import "testing"

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		Null:   "null",
		Bool:   "bool",
		Number: "number",
		String: "string",
		Array:  "array",
		Object: "object",
	}
	for k, want := range tests {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
}

func TestKindIsContainer(t *testing.T) {
	for _, k := range []Kind{Null, Bool, Number, String} {
		if k.IsContainer() {
			t.Errorf("%v should not be a container", k)
		}
	}
	for _, k := range []Kind{Array, Object} {
		if !k.IsContainer() {
			t.Errorf("%v should be a container", k)
		}
	}
}

func TestMemberLookup(t *testing.T) {
	v, err := DecodeString(`{"a":1,"b":2}`)
	if err != nil {
		t.Fatal(err)
	}

	if m, ok := v.Member("b"); !ok || m.NumberVal != 2 {
		t.Errorf("Member(b) = %+v, %v", m, ok)
	}
	if _, ok := v.Member("missing"); ok {
		t.Error("Member(missing) found")
	}
	arr, _ := DecodeString(`[1]`)
	if _, ok := arr.Member("a"); ok {
		t.Error("Member on array found")
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`null`, "null"},
		{`true`, "true"},
		{`42`, "42"},
		{`1.5`, "1.5"},
		{`"hi"`, `"hi"`},
		{`[]`, "[0 items]"},
		{`[1]`, "[1 item]"},
		{`[1,2]`, "[2 items]"},
		{`{}`, "{0 keys}"},
		{`{"a":1}`, "{1 key}"},
		{`{"a":1,"b":2}`, "{2 keys}"},
	}
	for _, tt := range tests {
		v, err := DecodeString(tt.src)
		if err != nil {
			t.Fatalf("decode %q: %v", tt.src, err)
		}
		if got := v.Preview(40); got != tt.want {
			t.Errorf("Preview(%s) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestPreviewTruncatesStrings(t *testing.T) {
	v, _ := DecodeString(`"abcdefghijklmnopqrstuvwxyz"`)
	got := v.Preview(10)
	if len([]rune(got)) != 10 {
		t.Errorf("Preview length = %d (%q), want 10", len([]rune(got)), got)
	}
	if got[0] != '"' {
		t.Errorf("Preview %q should start with a quote", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{42, "42"},
		{-7, "-7"},
		{2.5, "2.5"},
		{1e21, "1e+21"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	docs := []string{
		`null`,
		`true`,
		`42`,
		`"hi"`,
		`{"zebra":1,"apple":[true,null,"x"],"nested":{"k":2.5}}`,
	}
	for _, src := range docs {
		v, err := DecodeString(src)
		if err != nil {
			t.Fatalf("decode %q: %v", src, err)
		}
		out, err := v.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal %q: %v", src, err)
		}
		if string(out) != src {
			t.Errorf("round trip %q = %q", src, out)
		}
	}
}

func TestPath(t *testing.T) {
	tests := []struct {
		steps []string
		want  string
	}{
		{nil, "$"},
		{[]string{"deps"}, "$.deps"},
		{[]string{"deps", "[0]", "name"}, "$.deps[0].name"},
	}
	for _, tt := range tests {
		if got := Path(tt.steps); got != tt.want {
			t.Errorf("Path(%v) = %q, want %q", tt.steps, got, tt.want)
		}
	}
}
