package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"echopaint/internal/app"
	"echopaint/internal/config"
	"echopaint/internal/system"
	"echopaint/internal/ui"
)

type rootFlags struct {
	debug      bool
	logFile    string
	importFile string
}

// NewRootCmd builds the echopaint command tree.
func NewRootCmd() *cobra.Command {
	var f rootFlags
	root := &cobra.Command{
		Use:   "echopaint [TEXT]",
		Short: "echopaint – paint terminal text and export it as an echo command",
		Long: "echopaint opens a small editor where text can be typed, coloured and styled with " +
			"keyboard or mouse, then exported as a shell echo command that reproduces it.",
		Args: cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			system.SetDebug(f.debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default action: launch the TUI
			opts, err := tuiOptions(cmd, args, f.importFile)
			if err != nil {
				return err
			}
			return app.Start(opts, f.logFile)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&f.debug, "debug", false, "log at debug level")
	root.PersistentFlags().StringVar(&f.logFile, "log-file", "", "write TUI logs to this file")
	root.Flags().StringVar(&f.importFile, "import", "", "start from ANSI text or an echo command in FILE (- for stdin)")

	root.AddCommand(
		newRenderCmd(),
		newImportCmd(),
		newPaletteCmd(),
		newConfigCmd(),
		newSettingsCmd(),
		newKeysCmd(),
		newVersionCmd(),
	)
	return root
}

// tuiOptions gathers the initial document and settings for the painter.
func tuiOptions(cmd *cobra.Command, args []string, importFile string) (ui.Options, error) {
	s, path, err := config.LoadDefault()
	if err != nil {
		system.Logger.Warn("settings not loaded, using defaults", "err", err)
	}
	opts := ui.Options{
		Text:         strings.Join(args, " "),
		Settings:     s,
		SettingsPath: path,
	}
	if importFile != "" {
		in, err := readInput(cmd, importFile)
		if err != nil {
			return opts, err
		}
		opts.Import = in
	}
	return opts, nil
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
