package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/SmartAppUnipi/ArtGuide/internal/models"
)

var tailorNoTransitions bool

// requestFile is the on-disk shape of a pipeline request, matching the JSON
// the back-end posts to /tailored_text.
type requestFile struct {
	UserProfile models.UserProfile `json:"userProfile"`
	Results     []models.RawResult `json:"results"`
}

func readRequestFile(path string) (*requestFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	var req requestFile
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("parsing request file: %w", err)
	}
	return &req, nil
}

var tailorCmd = &cobra.Command{
	Use:   "tailor <request.json>",
	Short: "Run the tailoring pipeline over a request file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		req, err := readRequestFile(args[0])
		if err != nil {
			return err
		}

		text, err := appInstance.Tailor.Tailor(cmd.Context(), req.Results, &req.UserProfile, !tailorNoTransitions)
		if err != nil {
			return err
		}

		color.New(color.Bold).Println("--- Tailored result ---")
		fmt.Println(text)
		return nil
	},
}

func init() {
	tailorCmd.Flags().BoolVar(&tailorNoTransitions, "no-transitions", false, "skip transition phrases between paragraphs")
	rootCmd.AddCommand(tailorCmd)
}
