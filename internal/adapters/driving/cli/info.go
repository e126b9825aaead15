package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoJSON bool

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show document information",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoJSON, "json", false, "output information as JSON")
	rootCmd.AddCommand(infoCmd)
}

// infoOutput is the JSON output of the info command.
type infoOutput struct {
	Path       string  `json:"path"`
	PageCount  int     `json:"page_count"`
	PageWidth  float64 `json:"page_width"`
	PageHeight float64 `json:"page_height"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	viewer, err := openDocument(cmd.Context(), args[0], 0, ViewerOptions{})
	if err != nil {
		return err
	}
	defer closeViewer(viewer)

	doc := viewer.Document()
	output := infoOutput{Path: doc.Path, PageCount: doc.PageCount}
	if doc.PageCount > 0 {
		size, err := viewer.PageSize(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read page size: %w", err)
		}
		output.PageWidth = size.Width
		output.PageHeight = size.Height
	}

	if infoJSON {
		return printJSON(cmd, output)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Path:  %s\n", output.Path)
	fmt.Fprintf(out, "Pages: %d\n", output.PageCount)
	if output.PageCount > 0 {
		fmt.Fprintf(out, "Size:  %.0f x %.0f pt (first page)\n", output.PageWidth, output.PageHeight)
	}
	return nil
}
