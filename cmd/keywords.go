package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords <taste>...",
	Short: "Expand tastes into retrieval keywords",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		expansion := appInstance.Tailor.ExpandKeywords(args)
		out, err := json.MarshalIndent(expansion, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keywordsCmd)
}
