package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"echopaint/internal/style"
)

func newPaletteCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "palette [QUERY]",
		Short: "List the colour palette",
		Long:  "palette lists the swatch colours with their SGR codes. QUERY filters names fuzzily, best match first.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			colors := style.FindColors(query)
			if len(colors) == 0 {
				return fmt.Errorf("no colour matches %q", query)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tFG\tBG\tSWATCH")
			for _, c := range colors {
				sample := "    "
				if i := c.ANSIIndex(); i >= 0 && !plain {
					sample = lipgloss.NewStyle().Background(lipgloss.Color(strconv.Itoa(i))).Render(sample)
				}
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n", int(c), c, c.FgCode(), c.BgCode(), sample)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "omit colour samples")
	return cmd
}
