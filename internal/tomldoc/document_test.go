package tomldoc

import (
	"errors"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/google/go-cmp/cmp"
)

func format(t *testing.T, doc *Document) string {
	t.Helper()
	var buf strings.Builder
	if err := doc.Format(&buf); err != nil {
		t.Fatalf("Format() failed: %v", err)
	}
	return buf.String()
}

func TestParse_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "single key", input: "a = 1\n"},
		{name: "no trailing newline", input: "a = 1"},
		{name: "trailing spaces without newline", input: "a = 1   "},
		{name: "only comments", input: "# one\n\n# two\n"},
		{name: "compact", input: "a=1\nb  =  'x'#c\n"},
		{
			name:  "crlf line endings",
			input: "# c\r\na = 1\r\n\r\n[t]\r\nb = 'x' # trailing\r\n",
		},
		{
			name:  "byte order mark",
			input: "\ufeffa = 1\n",
		},
		{
			name:  "indented tables",
			input: "  [t]\n    k = 1   \n\t[u]\n\tk = 2\n",
		},
		{
			name:  "dotted keys",
			input: "site.\"google.com\" = true\n\n[a]\nb.c = 1 # dotted\nb.d = 2\n",
		},
		{
			name:  "spaced header",
			input: "[ a . \"b c\" ] # header\nk = 1\n",
		},
		{
			name: "multi-line values",
			input: `s = """
line "one"
"""
lit = '''
raw \n'''
arr = [
  1, # one
  2,
]
inline = { x = 1, y = [1, 2] }
dt = 1979-05-27 07:32:00Z
`,
		},
		{
			name: "arrays of tables",
			input: `[[fruit]]
name = "apple"

[fruit.physical]
color = "red"

[[fruit]]
name = "banana"
`,
		},
		{
			name: "blank lines and comments between keys",
			input: `# Profile settings
[profiles.o3]
# keep me
existing = "keep"


other = 1
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.input, format(t, doc)); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unclosed array", input: "invalid = [unclosed"},
		{name: "duplicate key", input: "a = 1\na = 2\n"},
		{name: "duplicate table", input: "[t]\n[t]\n"},
		{name: "garbage", input: "not valid toml ==="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatal("expected error but got none")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			var terr toml.ParseError
			if !errors.As(err, &terr) {
				t.Errorf("expected wrapped toml.ParseError, got %v", err)
			}
		})
	}
}

func TestDocument_Edits(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		edit     func(t *testing.T, doc *Document)
		expected string
	}{
		{
			name:  "replace keeps key text and comment",
			input: "model   =  \"a\" # pick one\n",
			edit: func(t *testing.T, doc *Document) {
				setString(t, doc, "b", "model")
			},
			expected: "model   =  \"b\" # pick one\n",
		},
		{
			name:  "replace keeps crlf",
			input: "a = 1\r\nb = 2\r\n",
			edit: func(t *testing.T, doc *Document) {
				setString(t, doc, "x", "a")
			},
			expected: "a = \"x\"\r\nb = 2\r\n",
		},
		{
			name:  "append before trailing comments",
			input: "a = 1\n\n# end\n",
			edit: func(t *testing.T, doc *Document) {
				setString(t, doc, "x", "b")
			},
			expected: "a = 1\nb = \"x\"\n\n# end\n",
		},
		{
			name:  "append after line without newline",
			input: "a = 1",
			edit: func(t *testing.T, doc *Document) {
				setString(t, doc, "x", "b")
			},
			expected: "a = 1\nb = \"x\"\n",
		},
		{
			name:  "append inside header section",
			input: "[x]\nk = 1\n\n[y]\nk = 2\n",
			edit: func(t *testing.T, doc *Document) {
				setString(t, doc, "v", "x", "m")
			},
			expected: "[x]\nk = 1\nm = \"v\"\n\n[y]\nk = 2\n",
		},
		{
			name:  "append to dotted table",
			input: "[p]\na.b = 1\n",
			edit: func(t *testing.T, doc *Document) {
				if got := doc.Kind("p", "a"); got != KindTable {
					t.Fatalf("Kind(p.a) = %v, want table", got)
				}
				setString(t, doc, "x", "p", "a", "c")
			},
			expected: "[p]\na.b = 1\na.c = \"x\"\n",
		},
		{
			name:  "quoted header for new table",
			input: "",
			edit: func(t *testing.T, doc *Document) {
				setString(t, doc, "o3", "profiles", "my.team name", "model")
			},
			expected: "[profiles.\"my.team name\"]\nmodel = \"o3\"\n",
		},
		{
			name:  "header for implicit parent precedes its children",
			input: "[profiles.a]\nmodel = \"x\"\n",
			edit: func(t *testing.T, doc *Document) {
				if got := doc.Kind("profiles"); got != KindTable {
					t.Errorf("Kind(profiles) = %v, want table", got)
				}
				setString(t, doc, "v", "profiles", "k")
			},
			expected: "[profiles]\nk = \"v\"\n[profiles.a]\nmodel = \"x\"\n",
		},
		{
			name:  "value replaces table and its subtables",
			input: "a = 1\n\n[t]\nk = 1\n\n[t.sub]\nz = 2\n",
			edit: func(t *testing.T, doc *Document) {
				setString(t, doc, "flat", "t")
			},
			expected: "a = 1\nt = \"flat\"\n",
		},
		{
			name:  "table replaces array of tables",
			input: "[[srv]]\nname = \"a\"\n[[srv]]\nname = \"b\"\n",
			edit: func(t *testing.T, doc *Document) {
				if got := doc.Kind("srv"); got != KindArrayOfTables {
					t.Fatalf("Kind(srv) = %v, want array of tables", got)
				}
				if !doc.Remove("srv") {
					t.Fatal("Remove(srv) removed nothing")
				}
				setString(t, doc, "x", "srv", "host")
			},
			expected: "[srv]\nhost = \"x\"\n",
		},
		{
			name:  "table replaces inline table",
			input: "p = { model = \"x\" }\nq = 1\n",
			edit: func(t *testing.T, doc *Document) {
				if got := doc.Kind("p"); got != KindValue {
					t.Fatalf("Kind(p) = %v, want value", got)
				}
				doc.Remove("p")
				setString(t, doc, "y", "p", "model")
			},
			expected: "q = 1\n\n[p]\nmodel = \"y\"\n",
		},
		{
			name:  "new table goes after preceding table, before trailing comments",
			input: "[a]\nk = 1\n\n# before b\n[b]\nk = 2\n",
			edit: func(t *testing.T, doc *Document) {
				setString(t, doc, "3", "a", "sub", "k")
			},
			expected: "[a]\nk = 1\n\n[a.sub]\nk = \"3\"\n\n# before b\n[b]\nk = 2\n",
		},
		{
			name:  "removed key hands its comment to the next key",
			input: "# note\nfoo = 1\nbar = 2\n",
			edit: func(t *testing.T, doc *Document) {
				doc.Remove("foo")
			},
			expected: "# note\nbar = 2\n",
		},
		{
			name:  "removed last key keeps its comment in the section",
			input: "a = 1\n# note\nfoo = 1\n\n[t]\nx = 1\n",
			edit: func(t *testing.T, doc *Document) {
				doc.Remove("foo")
			},
			expected: "a = 1\n# note\n\n[t]\nx = 1\n",
		},
		{
			name:  "bom is kept",
			input: "\ufeffa = 1\n",
			edit: func(t *testing.T, doc *Document) {
				setString(t, doc, "x", "t", "k")
			},
			expected: "\ufeffa = 1\n\n[t]\nk = \"x\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.edit(t, doc)
			got := format(t, doc)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
			if _, err := Parse(got); err != nil {
				t.Errorf("edited document does not parse: %v", err)
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "gpt-5", expected: `"gpt-5"`},
		{input: "", expected: `""`},
		{input: `say "hi"`, expected: `'say "hi"'`},
		{input: `C:\models`, expected: `'C:\models'`},
		{input: `it's "x"`, expected: `"it's \"x\""`},
		{input: "a\nb", expected: `"a\nb"`},
		{input: "bell\a", expected: `"bell\u0007"`},
		{input: "del\x7f", expected: `"del\u007f"`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := formatString(tt.input)
			if got != tt.expected {
				t.Errorf("formatString(%q) = %s, want %s", tt.input, got, tt.expected)
			}

			doc := New()
			setString(t, doc, tt.input, "v")
			reparsed, err := Parse(format(t, doc))
			if err != nil {
				t.Fatalf("rendered value does not parse: %v", err)
			}
			decoded, ok := reparsed.StringValue("v")
			if !ok || decoded != tt.input {
				t.Errorf("decoded %q (ok=%v), want %q", decoded, ok, tt.input)
			}
		})
	}
}

func TestDocument_StringValue(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{name: "basic", input: `profile = "o3"`, want: "o3", wantOK: true},
		{name: "literal", input: `profile = 'o3'`, want: "o3", wantOK: true},
		{name: "escaped", input: `profile = "my.team\tname"`, want: "my.team\tname", wantOK: true},
		{name: "multi-line", input: "profile = \"\"\"\nabc\"\"\"", want: "abc", wantOK: true},
		{name: "integer", input: `profile = 1`, wantOK: false},
		{name: "array", input: `profile = ["a"]`, wantOK: false},
		{name: "table", input: "[profile]\nname = \"p\"\n", wantOK: false},
		{name: "absent", input: "model = \"o3\"\n", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, ok := doc.StringValue("profile")
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("StringValue() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestDocument_Kind(t *testing.T) {
	doc, err := Parse(`top = 1
dotted.key = 2

[profiles.a]
model = "x"

[profiles."b.c"]
model = "y"

[[servers]]
name = "s1"

[servers.tls]
on = true
`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		key  []string
		want Kind
	}{
		{key: nil, want: KindTable},
		{key: []string{"top"}, want: KindValue},
		{key: []string{"dotted"}, want: KindTable},
		{key: []string{"dotted", "key"}, want: KindValue},
		{key: []string{"profiles"}, want: KindTable},
		{key: []string{"profiles", "a"}, want: KindTable},
		{key: []string{"profiles", "b.c"}, want: KindTable},
		{key: []string{"profiles", "b.c", "model"}, want: KindValue},
		{key: []string{"profiles", "b", "c", "model"}, want: KindNone},
		{key: []string{"servers"}, want: KindArrayOfTables},
		{key: []string{"servers", "tls"}, want: KindTable},
		{key: []string{"missing"}, want: KindNone},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.key, "/"), func(t *testing.T) {
			if got := doc.Kind(tt.key...); got != tt.want {
				t.Errorf("Kind(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func setString(t *testing.T, doc *Document, value string, key ...string) {
	t.Helper()
	if err := doc.SetString(key, value); err != nil {
		t.Fatalf("SetString(%q) failed: %v", key, err)
	}
}
