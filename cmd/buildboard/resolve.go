package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/waabox/buildboard/internal/route"
)

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve PATH",
		Short: "Print the view and parameters a dashboard path resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := route.Default().Resolve(args[0])
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "path:   %s\n", res.Path)
			fmt.Fprintf(out, "view:   %s\n", res.View)
			if res.Layout != "" {
				fmt.Fprintf(out, "layout: %s\n", res.Layout)
			}
			if res.RedirectedFrom != "" {
				fmt.Fprintf(out, "from:   %s\n", res.RedirectedFrom)
			}
			names := make([]string, 0, len(res.Params))
			for name := range res.Params {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(out, "param:  %s=%s\n", name, res.Params[name])
			}
			return nil
		},
	}
}
