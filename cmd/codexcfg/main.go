package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/codex-tools/codexcfg/internal/conf"
	"github.com/codex-tools/codexcfg/internal/configedit"
	"github.com/codex-tools/codexcfg/internal/l10n"
	"github.com/codex-tools/codexcfg/internal/logging"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, paint(os.Stderr, color.FgRed, l10n.T("error: %v", err)))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "codexcfg",
		Usage: l10n.T("persist default model settings in config.toml"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "home",
				Usage:   l10n.T("directory holding config.toml"),
				EnvVars: []string{"CODEX_HOME"},
				Value:   defaultHome(),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   l10n.T("log level (DEBUG, INFO, WARN, ERROR)"),
				EnvVars: []string{"CODEXCFG_LOG_LEVEL"},
				Value:   "INFO",
			},
			&cli.BoolFlag{
				Name:  "lock",
				Usage: l10n.T("hold an advisory lock on config.toml while writing"),
			},
		},
		Before: func(c *cli.Context) error {
			level, err := logging.ParseLevel(c.String("log-level"))
			if err != nil {
				return err
			}
			slog.SetDefault(logging.NewLogger(level, c.App.ErrWriter))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "set-model",
				Usage:     l10n.T("persist the default model"),
				ArgsUsage: "MODEL",
				Flags:     []cli.Flag{profileFlag()},
				Action:    setModelAction,
			},
			{
				Name:      "set-effort",
				Usage:     l10n.T("persist the default reasoning effort"),
				ArgsUsage: "LEVEL",
				Flags:     []cli.Flag{profileFlag()},
				Action:    setEffortAction,
			},
			{
				Name:   "show",
				Usage:  l10n.T("print the effective settings"),
				Flags:  []cli.Flag{profileFlag()},
				Action: showAction,
			},
		},
	}
}

func profileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   l10n.T("profile to write under instead of the active one"),
	}
}

func setModelAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf(l10n.T("expected exactly one MODEL argument, got %d"), c.NArg())
	}
	model := c.Args().First()

	editor := newEditor(c)
	var err error
	if profile := selectedProfile(c); profile != nil {
		err = editor.SetDefaultModelForProfile(*profile, model)
	} else {
		err = editor.SetDefaultModel(model)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, paint(c.App.Writer, color.FgGreen, l10n.T("Default model set to %s", model)))
	return nil
}

func setEffortAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf(l10n.T("expected exactly one LEVEL argument, got %d"), c.NArg())
	}
	effort, err := conf.ParseReasoningEffort(c.Args().First())
	if err != nil {
		return err
	}

	editor := newEditor(c)
	if profile := selectedProfile(c); profile != nil {
		err = editor.SetDefaultEffortForProfile(*profile, effort)
	} else {
		err = editor.SetDefaultEffort(effort)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, paint(c.App.Writer, color.FgGreen, l10n.T("Default reasoning effort set to %s", effort)))
	return nil
}

func showAction(c *cli.Context) error {
	source := &conf.ConfigSource{Home: c.String("home"), Profile: selectedProfile(c)}
	config, err := source.Read()
	if err != nil {
		return err
	}

	profile := config.Profile
	if profile == "" {
		profile = l10n.T("(none)")
	}
	fmt.Fprintf(c.App.Writer, "%s = %s\n", conf.KeyProfile, profile)
	fmt.Fprintf(c.App.Writer, "%s = %s\n", conf.KeyModel, config.Model)
	fmt.Fprintf(c.App.Writer, "%s = %s\n", conf.KeyReasoningEffort, config.ReasoningEffort)
	return nil
}

func newEditor(c *cli.Context) *configedit.Editor {
	return &configedit.Editor{
		Home:   c.String("home"),
		Lock:   c.Bool("lock"),
		Logger: slog.Default(),
	}
}

// selectedProfile returns the --profile value, or nil when the flag was not
// given. An empty --profile is a valid profile name.
func selectedProfile(c *cli.Context) *string {
	if !c.IsSet("profile") {
		return nil
	}
	profile := c.String("profile")
	return &profile
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".codex"
	}
	return filepath.Join(home, ".codex")
}

// paint colors s when w is a terminal.
func paint(w io.Writer, attr color.Attribute, s string) string {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return s
	}
	return color.New(attr).Sprint(s)
}
