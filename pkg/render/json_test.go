package render

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestMarshalReport(t *testing.T) {
	root, stats := buildTree(t, `{"a":[true,null]}`)

	data, err := MarshalReport(root, stats)
	if err != nil {
		t.Fatalf("MarshalReport: %v", err)
	}

	var decoded Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}

	if decoded.Stats != stats {
		t.Errorf("stats = %+v, want %+v", decoded.Stats, stats)
	}
	if decoded.Tree.Kind != "object" || decoded.Tree.Name != "document" {
		t.Errorf("tree root = %+v", decoded.Tree)
	}
	if len(decoded.Tree.Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(decoded.Tree.Children))
	}
	arr := decoded.Tree.Children[0]
	if arr.Kind != "array" || len(arr.Children) != 2 {
		t.Fatalf("array child = %+v", arr)
	}
	if arr.Children[0].Type != "bool" || arr.Children[0].Value != "true" {
		t.Errorf("bool leaf = %+v", arr.Children[0])
	}
	if arr.Children[1].Type != "null" || !arr.Children[1].LastSibling {
		t.Errorf("null leaf = %+v", arr.Children[1])
	}
}

func TestWriteReport(t *testing.T) {
	root, stats := buildTree(t, `[]`)

	var buf bytes.Buffer
	if err := WriteReport(&buf, root, stats); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Error("WriteReport produced invalid JSON")
	}
}
