package configedit

import (
	"github.com/codex-tools/codexcfg/internal/conf"
)

// SetDefaultModel persists model at the top level, or under the profile
// named by the file's profile key.
func (e *Editor) SetDefaultModel(model string) error {
	return e.Persist(nil, modelOverride(model))
}

// SetDefaultModelForProfile persists model under [profiles.<profile>].
func (e *Editor) SetDefaultModelForProfile(profile, model string) error {
	return e.Persist(&profile, modelOverride(model))
}

// SetDefaultEffort persists the reasoning effort at the top level, or under
// the profile named by the file's profile key.
func (e *Editor) SetDefaultEffort(effort conf.ReasoningEffort) error {
	return e.Persist(nil, effortOverride(effort))
}

// SetDefaultEffortForProfile persists the reasoning effort under
// [profiles.<profile>].
func (e *Editor) SetDefaultEffortForProfile(profile string, effort conf.ReasoningEffort) error {
	return e.Persist(&profile, effortOverride(effort))
}

// SetDefaultModel persists model into home/config.toml. See Editor.SetDefaultModel.
func SetDefaultModel(home, model string) error {
	return (&Editor{Home: home}).SetDefaultModel(model)
}

// SetDefaultModelForProfile persists model under [profiles.<profile>] in home/config.toml.
func SetDefaultModelForProfile(home, profile, model string) error {
	return (&Editor{Home: home}).SetDefaultModelForProfile(profile, model)
}

// SetDefaultEffort persists effort into home/config.toml. See Editor.SetDefaultEffort.
func SetDefaultEffort(home string, effort conf.ReasoningEffort) error {
	return (&Editor{Home: home}).SetDefaultEffort(effort)
}

// SetDefaultEffortForProfile persists effort under [profiles.<profile>] in home/config.toml.
func SetDefaultEffortForProfile(home, profile string, effort conf.ReasoningEffort) error {
	return (&Editor{Home: home}).SetDefaultEffortForProfile(profile, effort)
}

func modelOverride(model string) Override {
	return Override{Segments: []string{conf.KeyModel}, Value: model}
}

func effortOverride(effort conf.ReasoningEffort) Override {
	return Override{Segments: []string{conf.KeyReasoningEffort}, Value: effort.String()}
}
