// Package configedit persists default model settings into config.toml
// without disturbing the rest of the file.
//
// # Usage
//
//	err := configedit.SetDefaultModel(home, "gpt-5")
//	err = configedit.SetDefaultEffortForProfile(home, "team", conf.ReasoningEffortHigh)
//
// # Profiles
//
// Every persist call resolves one effective profile: the explicit profile
// argument when given, otherwise the string value of the top-level profile
// key. When a profile is in effect, overrides are written under
// [profiles.NAME] unless their path already starts with "profiles". Profile
// names are single keys; dots and spaces in them are never treated as path
// separators.
//
// # Writes
//
// The file is read (a missing file is an empty document), edited through
// package tomldoc, and written with github.com/creachadair/atomicfile: a
// temporary file in the same directory replaces config.toml with a rename. A malformed file aborts the
// call before anything is written. Editor.Lock additionally serializes
// concurrent callers with an advisory lock.
package configedit
