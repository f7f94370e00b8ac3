package core

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Header is the optional structured block at the top of a note file.
// It is a short run of "key: value" lines terminated by a blank line;
// everything after the blank line is the body. Export and editor
// collaborators share this on-disk format.
type Header struct {
	Title string `yaml:"title,omitempty"`
	ID    string `yaml:"id,omitempty"`
	Date  string `yaml:"date,omitempty"`
}

// IsZero reports whether no header field is set.
func (h Header) IsZero() bool {
	return h.Title == "" && h.ID == "" && h.Date == ""
}

// Document is a parsed note file: the header block plus the body text.
type Document struct {
	Header Header
	Body   string
}

// ParseDocument reads a stream and splits it into header and body.
// A file without a recognizable header block is all body; the header is
// only accepted when the leading lines form a mapping carrying at least
// one of the known keys. Parsing never fails on plain text.
func ParseDocument(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := &Document{}

	head, body, found := splitHeaderBlock(data)
	if !found {
		doc.Body = string(data)
		return doc, nil
	}

	var h Header
	if err := yaml.Unmarshal(head, &h); err != nil || h.IsZero() {
		// Not a header block after all. Keep the file verbatim.
		doc.Body = string(data)
		return doc, nil
	}

	doc.Header = h
	doc.Body = string(body)
	return doc, nil
}

// splitHeaderBlock cuts the input at the first blank line.
func splitHeaderBlock(data []byte) (head, body []byte, found bool) {
	for _, sep := range []string{"\n\n", "\r\n\r\n"} {
		if i := bytes.Index(data, []byte(sep)); i >= 0 {
			return data[:i], data[i+len(sep):], true
		}
	}
	return nil, nil, false
}

// String serializes the document back to its on-disk form.
func (d *Document) String() (string, error) {
	if d.Header.IsZero() {
		return d.Body, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(d.Header); err != nil {
		return "", fmt.Errorf("failed to serialize header: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	buf.WriteString("\n")
	buf.WriteString(d.Body)
	return buf.String(), nil
}

// DisplayName derives a note's display name from its filename,
// stripping the extension when present.
func DisplayName(filename string) string {
	if i := strings.LastIndex(filename, "."); i > 0 {
		return filename[:i]
	}
	return filename
}
