// Package tomldoc edits TOML documents in place without disturbing the
// formatting of untouched regions.
//
// # Usage
//
//	doc, err := tomldoc.Parse(text)
//	if err != nil {
//	    return err
//	}
//	if err := doc.SetString([]string{"profiles", "my.team", "model"}, "gpt-5"); err != nil {
//	    return err
//	}
//	var buf bytes.Buffer
//	err = doc.Format(&buf)
//
// # Model
//
// Input is validated with github.com/BurntSushi/toml and parsed into a
// github.com/creachadair/tomledit document, whose sections and key/values
// carry the structure. The tomledit lexer also locates every header and
// key/value statement in the source, so untouched statements, blank lines
// and comments are copied from the input when the document is formatted.
// Formatting a document that was never modified reproduces its input byte
// for byte.
//
// Keys are slices of literal segments. A segment is never split on dots.
//
// # Edits
//
// A replaced value keeps its key text and trailing comment. A new key is
// appended after the last key/value of its section, or as a dotted key to
// the section whose dotted keys define its table. A table without a header
// of its own stays implicit until it receives a key; its [header] is then
// placed before the headers of its subtables, or after the last header under
// its closest ancestor. New statements are rendered with tomledit.Formatter.
package tomldoc
