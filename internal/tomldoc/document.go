package tomldoc

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/creachadair/tomledit"
	"github.com/creachadair/tomledit/parser"
)

const bom = "\ufeff"

// Document is an editable TOML document. Statements that were not edited are
// written back exactly as they were read.
type Document struct {
	doc *tomledit.Document

	src     string
	bom     string
	trailer string

	spans  map[parser.Item]*span
	edited map[*parser.KeyValue]bool
	// tail holds the lead text of removed key/values that no later statement
	// of their section could take over.
	tail map[*tomledit.Section]string
}

// New returns an empty document.
func New() *Document {
	return &Document{
		doc:    &tomledit.Document{Global: new(tomledit.Section)},
		spans:  map[parser.Item]*span{},
		edited: map[*parser.KeyValue]bool{},
		tail:   map[*tomledit.Section]string{},
	}
}

// Parse parses text into a Document. Malformed input yields a *ParseError.
func Parse(text string) (*Document, error) {
	var raw map[string]interface{}
	if _, err := toml.Decode(text, &raw); err != nil {
		return nil, newParseError(err)
	}

	d := New()
	if strings.HasPrefix(text, bom) {
		d.bom = bom
		text = text[len(bom):]
	}
	d.src = text

	doc, err := tomledit.Parse(strings.NewReader(text))
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if doc.Global == nil {
		doc.Global = new(tomledit.Section)
	}
	d.doc = doc

	spans, trailer, err := statements(text)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	d.trailer = trailer

	next := 0
	bind := func(item parser.Item, header bool) error {
		if next >= len(spans) || spans[next].header != header {
			return &ParseError{Err: fmt.Errorf("statement %d does not match the parsed document", next+1)}
		}
		d.spans[item] = spans[next]
		next++
		return nil
	}
	for _, sec := range d.sections() {
		if sec.Heading != nil {
			if err := bind(sec.Heading, true); err != nil {
				return nil, err
			}
		}
		for _, kv := range keyValues(sec) {
			if err := bind(kv, false); err != nil {
				return nil, err
			}
		}
	}
	if next != len(spans) {
		return nil, &ParseError{Err: fmt.Errorf("%d statements were not parsed", len(spans)-next)}
	}

	return d, nil
}

// Format writes the document to w. New headers and key/values are rendered
// with tomledit.Formatter; everything else is copied from the source.
func (d *Document) Format(w io.Writer) error {
	var out writer
	out.WriteString(d.bom)
	out.start = out.n

	for _, sec := range d.sections() {
		if sec.Heading != nil {
			if sp, ok := d.spans[sec.Heading]; ok {
				out.WriteString(sp.lead)
				out.WriteString(d.src[sp.start:sp.end])
			} else {
				text, err := render(sec.Heading)
				if err != nil {
					return err
				}
				out.newline()
				if out.n > out.start {
					out.WriteString("\n")
				}
				out.WriteString(text)
			}
		}

		for _, kv := range keyValues(sec) {
			sp, ok := d.spans[kv]
			if !ok {
				text, err := render(kv)
				if err != nil {
					return err
				}
				out.newline()
				out.WriteString(text)
				continue
			}

			out.WriteString(sp.lead)
			if d.edited[kv] {
				out.WriteString(d.src[sp.start:sp.valueStart])
				out.WriteString(kv.Value.String())
				out.WriteString(d.src[sp.valueEnd:sp.end])
			} else {
				out.WriteString(d.src[sp.start:sp.end])
			}
		}
		out.WriteString(d.tail[sec])
	}
	out.WriteString(d.trailer)

	_, err := io.WriteString(w, out.String())
	return err
}

func (d *Document) sections() []*tomledit.Section {
	return append([]*tomledit.Section{d.doc.Global}, d.doc.Sections...)
}

func keyValues(sec *tomledit.Section) []*parser.KeyValue {
	var kvs []*parser.KeyValue
	for _, item := range sec.Items {
		if kv, ok := item.(*parser.KeyValue); ok {
			kvs = append(kvs, kv)
		}
	}
	return kvs
}

// render formats a single header or key/value on its own line.
func render(item parser.Item) (string, error) {
	var buf strings.Builder
	doc := &tomledit.Document{Global: &tomledit.Section{Items: []parser.Item{item}}}
	if err := tomledit.Format(&buf, doc); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// writer tracks the last byte written so new statements start on a fresh line.
type writer struct {
	strings.Builder
	start int
	n     int
	last  byte
}

func (w *writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.Builder.WriteString(s)
	w.n += len(s)
	w.last = s[len(s)-1]
}

func (w *writer) newline() {
	if w.n > w.start && w.last != '\n' {
		w.WriteString("\n")
	}
}
