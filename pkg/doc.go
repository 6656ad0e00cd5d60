// Package pkg provides the core libraries for JSONLens document exploration.
//
// # Overview
//
// JSONLens turns arbitrary JSON documents into navigable trees with
// structural statistics. The pkg directory is organized into:
//
//  1. [jsonvalue] - Ordered JSON decoding and value classification
//  2. [doctree] - Tree construction and document statistics
//  3. [render] - Text, JSON, and Graphviz output sinks
//  4. [cache] - Content-addressed analysis caching (file, Redis)
//  5. [store] - Document persistence for the HTTP API (memory, MongoDB)
//  6. [config], [errors], [buildinfo], [observability] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through JSONLens:
//
//	JSON bytes (file, stdin, or HTTP body)
//	         ↓
//	    [jsonvalue] package (decode, preserve key order)
//	         ↓
//	    [doctree] package (build tree + statistics)
//	         ↓
//	    [render] package (text tree, JSON report, DOT/SVG/PNG)
//
// # Quick Start
//
// Decode a document and print its tree:
//
//	import (
//	    "os"
//	    "github.com/matzehuels/jsonlens/pkg/doctree"
//	    "github.com/matzehuels/jsonlens/pkg/jsonvalue"
//	    "github.com/matzehuels/jsonlens/pkg/render"
//	)
//
//	value, err := jsonvalue.DecodeFile("data.json")
//	if err != nil {
//	    return err
//	}
//	root, stats := doctree.Build(value, "document")
//	_ = render.WriteText(os.Stdout, root, render.TextOptions{})
package pkg
