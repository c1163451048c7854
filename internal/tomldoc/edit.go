package tomldoc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/creachadair/tomledit"
	"github.com/creachadair/tomledit/parser"
	"github.com/creachadair/tomledit/scanner"
)

// Kind is the kind of node stored at a key.
type Kind int

const (
	KindNone Kind = iota
	// KindValue is a key/value. Arrays and inline tables are values too.
	KindValue
	// KindTable is a table with a [header], one defined through dotted keys,
	// or one that only exists as the parent of other tables.
	KindTable
	KindArrayOfTables
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindTable:
		return "table"
	case KindArrayOfTables:
		return "array of tables"
	default:
		return "none"
	}
}

// Kind reports what is stored at key. Keys inside inline tables are not
// looked at. The empty key is the root table.
func (d *Document) Kind(key ...string) Kind {
	want := parser.Key(key)
	if len(want) == 0 {
		return KindTable
	}

	var table, array bool
	for _, sec := range d.sections() {
		base := sec.TableName()
		switch {
		case base.Equals(want):
			if sec.IsArray {
				array = true
			} else {
				table = true
			}
		case want.IsPrefixOf(base):
			table = true
		}

		for _, kv := range keyValues(sec) {
			full := join(base, kv.Name)
			if full.Equals(want) {
				return KindValue
			}
			if want.IsPrefixOf(full) {
				table = true
			}
		}
	}

	switch {
	case array:
		return KindArrayOfTables
	case table:
		return KindTable
	default:
		return KindNone
	}
}

// StringValue returns the value stored at key when it is a string.
func (d *Document) StringValue(key ...string) (string, bool) {
	_, kv := d.find(key)
	if kv == nil {
		return "", false
	}

	var decoded map[string]interface{}
	if _, err := toml.Decode("v = "+kv.Value.String(), &decoded); err != nil {
		return "", false
	}
	s, ok := decoded["v"].(string)
	return s, ok
}

// SetString stores value as a string at key. An existing key/value is
// replaced in place and keeps its key text and trailing comment. Anything
// else at key is removed first. The parent of key must be a table, or not
// exist at all: tables without a header get one when they receive their
// first key, unless dotted keys already define them.
func (d *Document) SetString(key []string, value string) error {
	if len(key) == 0 {
		return errors.New("empty key")
	}
	v, err := parser.ParseValue(formatString(value))
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", value, err)
	}

	if _, kv := d.find(key); kv != nil {
		v.Trailer = kv.Value.Trailer
		kv.Value = v
		d.edited[kv] = true
		return nil
	}
	d.Remove(key...)

	last := len(key) - 1
	sec, rel := d.placement(parser.Key(key[:last]))
	sec.Items = append(sec.Items, &parser.KeyValue{
		Name:  append(rel, key[last]),
		Value: v,
	})
	return nil
}

// Remove deletes the key/value, table or array of tables at key, with all of
// its subtables, and reports whether anything was removed.
func (d *Document) Remove(key ...string) bool {
	want := parser.Key(key)
	if len(want) == 0 {
		return false
	}

	removed := false
	kept := d.doc.Sections[:0]
	for _, sec := range d.doc.Sections {
		if want.IsPrefixOf(sec.TableName()) {
			delete(d.tail, sec)
			removed = true
			continue
		}
		kept = append(kept, sec)
	}
	d.doc.Sections = kept

	for _, sec := range d.sections() {
		if d.removeKeyValues(sec, want) {
			removed = true
		}
	}
	return removed
}

// removeKeyValues drops the key/values of sec under want. Their lead text
// moves to the next statement of the section so comments stay in place.
func (d *Document) removeKeyValues(sec *tomledit.Section, want parser.Key) bool {
	base := sec.TableName()
	removed := false
	var lead string

	items := sec.Items[:0]
	for _, item := range sec.Items {
		kv, ok := item.(*parser.KeyValue)
		if ok && want.IsPrefixOf(join(base, kv.Name)) {
			if sp, ok := d.spans[kv]; ok {
				lead += sp.lead
			}
			delete(d.edited, kv)
			removed = true
			continue
		}
		if ok && lead != "" {
			if sp, found := d.spans[kv]; found {
				sp.lead = lead + sp.lead
				lead = ""
			}
		}
		items = append(items, item)
	}
	sec.Items = items
	d.tail[sec] = lead + d.tail[sec]
	return removed
}

// find returns the key/value stored at key and its section.
func (d *Document) find(key []string) (*tomledit.Section, *parser.KeyValue) {
	want := parser.Key(key)
	for _, sec := range d.sections() {
		base := sec.TableName()
		for _, kv := range keyValues(sec) {
			if join(base, kv.Name).Equals(want) {
				return sec, kv
			}
		}
	}
	return nil, nil
}

// placement returns the section a new key of the table at parent goes to,
// and the key of that table relative to the section.
func (d *Document) placement(parent parser.Key) (*tomledit.Section, parser.Key) {
	if len(parent) == 0 {
		return d.doc.Global, nil
	}

	var found *tomledit.Section
	for _, sec := range d.doc.Sections {
		if sec.TableName().Equals(parent) {
			found = sec
		}
	}
	if found != nil {
		return found, nil
	}

	if host := d.host(parent); host != nil {
		return host, append(parser.Key(nil), parent[len(host.TableName()):]...)
	}
	return d.insertSection(parent), nil
}

// host returns the section defining parent through dotted keys, as
// [a] followed by b.c = 1 defines a.b.
func (d *Document) host(parent parser.Key) *tomledit.Section {
	for _, sec := range d.sections() {
		base := sec.TableName()
		if len(base) >= len(parent) || !base.IsPrefixOf(parent) {
			continue
		}
		for _, kv := range keyValues(sec) {
			full := join(base, kv.Name)
			if len(full) > len(parent) && parent.IsPrefixOf(full) {
				return sec
			}
		}
	}
	return nil
}

// insertSection adds an empty [name] section. It goes before the headers of
// its own subtables, otherwise after the last header under its closest
// ancestor, otherwise at the end.
func (d *Document) insertSection(name parser.Key) *tomledit.Section {
	sec := &tomledit.Section{Heading: &parser.Heading{Name: name}}

	at := len(d.doc.Sections)
	if i := d.firstUnder(name); i >= 0 {
		at = i
	} else {
		for n := len(name) - 1; n > 0; n-- {
			if i := d.lastUnder(name[:n]); i >= 0 {
				at = i + 1
				break
			}
		}
	}

	d.doc.Sections = append(d.doc.Sections[:at], append([]*tomledit.Section{sec}, d.doc.Sections[at:]...)...)
	return sec
}

func (d *Document) firstUnder(prefix parser.Key) int {
	for i, sec := range d.doc.Sections {
		if prefix.IsPrefixOf(sec.TableName()) {
			return i
		}
	}
	return -1
}

func (d *Document) lastUnder(prefix parser.Key) int {
	for i := len(d.doc.Sections) - 1; i >= 0; i-- {
		if prefix.IsPrefixOf(d.doc.Sections[i].TableName()) {
			return i
		}
	}
	return -1
}

func join(base, name parser.Key) parser.Key {
	full := make(parser.Key, 0, len(base)+len(name))
	full = append(full, base...)
	return append(full, name...)
}

// formatString renders s as a TOML string. Literal strings are used when
// they avoid escaping quotes or backslashes.
func formatString(s string) string {
	if strings.ContainsAny(s, `"\`) && !strings.ContainsRune(s, '\'') && !hasControl(s) {
		return "'" + s + "'"
	}
	escaped := strings.ReplaceAll(string(scanner.Escape(s)), "\x7f", `\u007f`)
	return `"` + escaped + `"`
}

func hasControl(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return true
		}
	}
	return false
}
