// Package xmlsource streams station records out of XML documents.
package xmlsource

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/couchcryptid/station-data-ingest/internal/domain"
)

// DefaultRecordTag is the element wrapping one station record.
const DefaultRecordTag = "MEASUREMENT"

// Node is a generic XML element. It implements domain.Element over its
// direct children.
type Node struct {
	XMLName  xml.Name
	Text     string `xml:",chardata"`
	Children []Node `xml:",any"`
}

// Lookup returns the text of the first direct child named tag.
func (n *Node) Lookup(tag string) (string, bool) {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == tag {
			return n.Children[i].Text, true
		}
	}
	return "", false
}

// Scanner yields every record element in a document, at any depth, in
// document order. Records are decoded one at a time so memory does not grow
// with document size.
type Scanner struct {
	dec       *xml.Decoder
	recordTag string
}

// NewScanner reads records named recordTag from r. An empty recordTag means
// DefaultRecordTag.
func NewScanner(r io.Reader, recordTag string) *Scanner {
	if recordTag == "" {
		recordTag = DefaultRecordTag
	}
	return &Scanner{
		dec:       xml.NewDecoder(r),
		recordTag: recordTag,
	}
}

// Next returns the next record, or io.EOF when the document is exhausted.
// Syntax errors are fatal for the rest of the document.
func (s *Scanner) Next(ctx context.Context) (domain.Element, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tok, err := s.dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("read xml: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != s.recordTag {
			continue
		}

		var n Node
		if err := s.dec.DecodeElement(&n, &start); err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.recordTag, err)
		}
		return &n, nil
	}
}

// InputOffset reports the byte offset just past the last record returned.
func (s *Scanner) InputOffset() int64 {
	return s.dec.InputOffset()
}
