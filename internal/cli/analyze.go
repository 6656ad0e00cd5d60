package cli

import (
	"bytes"
	"io"
	"os"

	"github.com/matzehuels/jsonlens/pkg/cache"
	"github.com/matzehuels/jsonlens/pkg/doctree"
	"github.com/matzehuels/jsonlens/pkg/errors"
	"github.com/matzehuels/jsonlens/pkg/jsonvalue"
)

// analysis bundles everything the commands derive from one document.
type analysis struct {
	Value *jsonvalue.Value
	Root  *doctree.Node
	Stats doctree.Stats
	Raw   []byte
	Hash  string
}

// loadDocument reads the document bytes from a file path, or from
// stdin when path is "-".
func loadDocument(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "file %q not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %q", path)
	}
	return data, nil
}

// analyzeDocument decodes raw bytes and builds the tree. The returned
// hash is the cache identity of the document content.
func analyzeDocument(raw []byte) (*analysis, error) {
	value, err := jsonvalue.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	root, stats := doctree.Build(value, rootLabel)
	return &analysis{
		Value: value,
		Root:  root,
		Stats: stats,
		Raw:   raw,
		Hash:  cache.Hash(raw),
	}, nil
}

// analyzeFile is the common load-and-analyze path for commands that
// take a document argument.
func analyzeFile(path string) (*analysis, error) {
	raw, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	return analyzeDocument(raw)
}
