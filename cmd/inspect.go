package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <request.json>",
	Short: "Show the scored sentence clusters for a request",
	Long: `Runs the pipeline up to the clustering stage and prints each taste's
cluster as a ranked table. Useful for tuning scoring weights.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		req, err := readRequestFile(args[0])
		if err != nil {
			return err
		}

		clusters, err := appInstance.Tailor.Clusters(cmd.Context(), req.Results, &req.UserProfile)
		if err != nil {
			return err
		}
		if len(clusters) == 0 {
			fmt.Println("No clusters: nothing survived filtering.")
			return nil
		}

		header := color.New(color.Bold, color.FgCyan)
		for _, c := range clusters {
			header.Printf("\n[%s] %d sentences\n", c.Taste, len(c.Sentences))
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Score", "Doc", "Pos", "Sentence"})
			table.SetColWidth(80)
			for _, s := range c.Sentences {
				table.Append([]string{
					fmt.Sprintf("%.4f", s.Scores[c.Taste]),
					fmt.Sprintf("%d", s.DocumentID),
					fmt.Sprintf("%d", s.Position),
					truncate(s.Text, 100),
				})
			}
			table.Render()
		}
		return nil
	},
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
