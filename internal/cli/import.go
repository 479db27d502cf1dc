package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"echopaint/internal/export"
	"echopaint/internal/system"
)

// readInput reads name, or stdin for "-".
func readInput(cmd *cobra.Command, name string) (string, error) {
	var (
		b   []byte
		err error
	)
	if name == "-" {
		b, err = io.ReadAll(cmd.InOrStdin())
	} else {
		b, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

func newImportCmd() *cobra.Command {
	var (
		format string
		runs   bool
	)
	cmd := &cobra.Command{
		Use:   "import [FILE|-]",
		Short: "Decode ANSI text or an echo command",
		Long: "import reads ANSI styled text, or an echo command as produced by render, and " +
			"prints its styled runs (--runs) or re-exports it in the chosen format.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "-"
			if len(args) == 1 {
				name = args[0]
			}
			in, err := readInput(cmd, name)
			if err != nil {
				return err
			}
			body, wrapped := export.Unwrap(in)
			text, rs := export.Decode(body)
			system.Logger.Debug("import", "source", name, "wrapped", wrapped, "chars", len([]rune(text)), "runs", len(rs))
			out := cmd.OutOrStdout()
			if runs {
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "START\tEND\tTEXT\tSTYLE")
				r := []rune(text)
				for _, run := range rs {
					fmt.Fprintf(tw, "%d\t%d\t%q\t%s\n", run.Start, run.End, string(r[run.Start:run.End]), run.Attrs)
				}
				return tw.Flush()
			}
			f, err := formatFlag(cmd, format)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, export.Command(text, rs, f))
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "raw", "command format: raw or escaped")
	cmd.Flags().BoolVar(&runs, "runs", false, "list the styled runs instead of a command")
	return cmd
}
