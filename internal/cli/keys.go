package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"echopaint/internal/ui"
)

func newKeysCmd() *cobra.Command {
	var (
		raw   bool
		width int
	)
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Show the key reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			md := ui.KeyReference()
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			out, err := ui.RenderMarkdown(md, width)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "markdown", false, "print the markdown source")
	cmd.Flags().IntVar(&width, "width", 80, "wrap width")
	return cmd
}
