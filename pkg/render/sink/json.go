package sink

import (
	pkgio "github.com/matzehuels/tilegrid/pkg/io"
)

// RenderJSON encodes doc as indented JSON.
func RenderJSON(doc pkgio.Document) ([]byte, error) {
	return pkgio.MarshalDocument(doc)
}
