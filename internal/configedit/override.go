package configedit

import (
	"github.com/codex-tools/codexcfg/internal/conf"
	"github.com/codex-tools/codexcfg/internal/tomldoc"
)

// Override is a string value to write at an exact key path. Segments are
// matched as literal keys.
type Override struct {
	Segments []string
	Value    string
}

// target returns the path the override is written to under profile.
func (o Override) target(profile string, hasProfile bool) []string {
	if !hasProfile || (len(o.Segments) > 0 && o.Segments[0] == conf.KeyProfiles) {
		return o.Segments
	}
	path := make([]string, 0, len(o.Segments)+2)
	path = append(path, conf.KeyProfiles, profile)
	return append(path, o.Segments...)
}

// resolveProfile returns the explicit profile when given, otherwise the
// string value of the top-level profile key.
func resolveProfile(doc *tomldoc.Document, explicit *string) (string, bool) {
	if explicit != nil {
		return *explicit, true
	}
	return doc.StringValue(conf.KeyProfile)
}

// applyOverride writes value at segments. A value or array of tables found
// where a table is needed is removed; the table replacing it stays implicit
// until SetString gives it a key.
func applyOverride(doc *tomldoc.Document, segments []string, value string) error {
	if len(segments) == 0 {
		return nil
	}

	for i := 1; i < len(segments); i++ {
		if prefix := segments[:i]; doc.Kind(prefix...) != tomldoc.KindTable {
			doc.Remove(prefix...)
		}
	}

	return doc.SetString(segments, value)
}
