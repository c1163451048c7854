// Package conf describes the codexcfg configuration file and reads its
// effective settings.
//
// # Usage
//
//	cs := &conf.ConfigSource{Home: "/home/user/.codex"}
//	config, err := cs.Read()
//	if err != nil {
//	    return err
//	}
//	fmt.Println(config.Model, config.ReasoningEffort)
//
// # Load Order
//
// Settings are applied in three layers:
//
//  1. In-memory defaults embedded from defaults.toml
//  2. Top-level keys of HOME/config.toml
//  3. Keys of [profiles.NAME] for the effective profile
//
// The effective profile is ConfigSource.Profile when set, otherwise the
// top-level profile key of the file.
//
// # Internal Architecture
//
//   - configDTO: internal struct with pointer fields for TOML parsing.
//     Pointers allow distinguishing "not set" (nil) from "set to zero value".
//
//   - Config: public struct with value fields. Has Update() method
//     to apply settingsDTO values.
//
//   - ConfigSource: resolves the profile and merges the layers.
//
// Writing settings back is done by package configedit, which edits the file
// without reformatting it.
package conf
