package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"echopaint/internal/config"
	"echopaint/internal/doc"
	"echopaint/internal/export"
	"echopaint/internal/style"
	"echopaint/internal/system"
)

// styleSpec is one --style value: a patch over [start, end).
type styleSpec struct {
	start, end int
	patch      style.Patch
}

// parseStyleSpec reads START:END:PATCH. END may be empty for "to the end"
// of a text of length n.
func parseStyleSpec(s string, n int) (styleSpec, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return styleSpec{}, fmt.Errorf("style %q: want START:END:PATCH", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return styleSpec{}, fmt.Errorf("style %q: start: %w", s, err)
	}
	end := n
	if e := strings.TrimSpace(parts[1]); e != "" {
		if end, err = strconv.Atoi(e); err != nil {
			return styleSpec{}, fmt.Errorf("style %q: end: %w", s, err)
		}
	}
	p, err := style.ParsePatch(parts[2])
	if err != nil {
		return styleSpec{}, fmt.Errorf("style %q: %w", s, err)
	}
	return styleSpec{start: start, end: end, patch: p}, nil
}

// formatFlag resolves --format, falling back to the settings file.
func formatFlag(cmd *cobra.Command, value string) (export.Format, error) {
	if cmd.Flags().Changed("format") {
		return export.ParseFormat(value)
	}
	s, _, err := config.LoadDefault()
	if err != nil {
		system.Logger.Debug("settings not loaded", "err", err)
	}
	return s.Format(), nil
}

// paint builds a document from text and style specs. Unsupported attribute
// values are clamped and reported as warnings.
func paint(text string, specs []string) (*doc.Document, error) {
	d := doc.New(text)
	for _, raw := range specs {
		sp, err := parseStyleSpec(raw, d.Len())
		if err != nil {
			return nil, err
		}
		err = d.ApplyStyle(sp.start, sp.end, sp.patch)
		switch {
		case errors.Is(err, style.ErrUnsupportedAttribute):
			system.Logger.Warn("style clamped", "style", raw, "err", err)
		case errors.Is(err, doc.ErrEmptyRange):
			system.Logger.Warn("empty style range ignored", "style", raw)
		case err != nil:
			return nil, err
		}
	}
	return d, nil
}

func newRenderCmd() *cobra.Command {
	var (
		styles []string
		format string
		body   bool
	)
	cmd := &cobra.Command{
		Use:   "render TEXT",
		Short: "Print the echo command for styled text",
		Long: "render applies --style START:END:PATCH spans to TEXT and prints the shell command " +
			"that reproduces it. PATCH is a comma separated list such as fg=red,bold,dim=2; " +
			"an empty END means the end of the text.",
		Example: "  echopaint render 'hello world' --style 0:5:fg=green,bold --style 6::underline",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatFlag(cmd, format)
			if err != nil {
				return err
			}
			d, err := paint(args[0], styles)
			if err != nil {
				return err
			}
			snap := d.Snapshot()
			system.Logger.Debug("render", "chars", d.Len(), "runs", len(snap.Runs), "format", f)
			out := export.Snapshot(snap, f)
			if body {
				out = export.Encode(snap.Text, snap.Runs)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&styles, "style", "s", nil, "style span START:END:PATCH (repeatable, later wins)")
	cmd.Flags().StringVarP(&format, "format", "f", "raw", "command format: raw or escaped")
	cmd.Flags().BoolVar(&body, "ansi", false, "print the escaped text without the echo wrapper")
	return cmd
}
