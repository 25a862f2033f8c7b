package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/waabox/buildboard/internal/tui"
)

func listCmd(g *globalOptions) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of pipelines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load(false)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			src, _, err := e.source()
			if err != nil {
				return err
			}
			result, err := src.ListPipelines(cmd.Context(), page, e.cfg.PageSizeOrDefault())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(result.Items))
			for _, p := range result.Items {
				rows = append(rows, []string{p.ID, p.Name, p.Head, tui.StatusLabel(p.Category()), p.Duration().String()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), pipelineTable(rows))
			fmt.Fprintf(cmd.OutOrStdout(), "page %d of %d\n", result.PageNum, result.TotalPages)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number, starting at 1")
	return cmd
}

func pipelineTable(rows [][]string) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers("ID", "NAME", "HEAD", "STATUS", "DURATION").
		Rows(rows...).
		String()
}
