// Package io reads tile sequences and reads and writes layout documents.
//
// # Tile files
//
// Three formats are accepted, chosen by file extension (or by sniffing the
// first byte when reading from a stream):
//
// JSON, either an object with a "tiles" array or a bare array:
//
//	{"tiles": [{"size": "1x2", "color": "#e0a040"}, {"size": "1x2"}]}
//
// TOML, one table per tile:
//
//	[[tiles]]
//	size = "2x1"
//	color = "#80c0ff"
//
// Plain text, sizes separated by commas, whitespace or newlines, with "#"
// starting a comment:
//
//	# hero row
//	2x1
//	1x1, 1x1
//
// Sizes use the canonical forms 1x1, 2x1, 1x2 and 1x0.5, or the long names
// square, full-width, double-height and half-height.
//
// # Layout documents
//
// A [Document] is the serialized form of a computed layout: container width,
// options, content size, segments and frames with each tile's size and
// color. Documents are what the CLI writes with "layout", what the pipeline
// caches, and what the JSON render sink emits. [Document.Snapshot] turns a
// document back into a queryable [layout.Snapshot].
package io
