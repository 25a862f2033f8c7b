package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/waabox/buildboard/internal/status"
)

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify STATUS [RESULT]",
		Short: "Print the display category of a status and result",
		Long: "With one argument the value is classified as a test status. " +
			"With two, as a pipeline node status and result.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var c status.Category
			if len(args) == 1 {
				c = status.OfTest(status.Parse(args[0]))
			} else {
				c = status.Classify(status.Parse(args[0]), status.Parse(args[1]))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", c, c.Color(), c.Icon(), c.Label())
			return nil
		},
	}
}
