package tomldoc

import (
	"io"
	"strings"

	"github.com/creachadair/tomledit/scanner"
)

// span locates a header or key/value statement in the source. The statement
// is src[start:end], line break included. lead holds the blank and comment
// lines between the previous statement and this one.
type span struct {
	lead       string
	start, end int
	header     bool

	// valueStart and valueEnd bound the value of a key/value statement.
	// valueStart is -1 between the equals sign and the first value token.
	valueStart, valueEnd int
}

// statements splits src into statement spans in source order and returns the
// text following the last statement.
func statements(src string) ([]*span, string, error) {
	sc := scanner.New(strings.NewReader(src))

	var (
		spans     []*span
		cur       *span
		depth     int
		lineStart int
		prevEnd   int
	)
	endLine := func(end int) {
		if cur != nil {
			cur.end = end
			spans = append(spans, cur)
			prevEnd = end
			cur = nil
		}
		lineStart = end
	}

	for {
		if err := sc.Next(); err == io.EOF {
			break
		} else if err != nil {
			return nil, "", err
		}
		tok, loc := sc.Token(), sc.Span()

		// Comments swallow their line break.
		if depth == 0 && (tok == scanner.Newline || tok == scanner.Comment) {
			endLine(loc.End)
			continue
		}

		if cur == nil {
			cur = &span{
				lead:   src[prevEnd:lineStart],
				start:  lineStart,
				header: tok == scanner.LBracket,
			}
		}

		switch tok {
		case scanner.LBracket, scanner.LInline:
			depth++
		case scanner.RBracket, scanner.RInline:
			depth--
		}
		if cur.header {
			continue
		}

		switch {
		case tok == scanner.Equal && depth == 0 && cur.valueStart == 0:
			cur.valueStart = -1
		case cur.valueStart != 0 && tok != scanner.Newline && tok != scanner.Comment:
			if cur.valueStart < 0 {
				cur.valueStart = loc.Pos
			}
			cur.valueEnd = loc.End
		}
	}
	endLine(len(src))

	return spans, src[prevEnd:], nil
}
