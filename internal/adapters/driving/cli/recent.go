package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	recentLimit int
	recentClear bool
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently viewed documents",
	Long: `Lists the documents opened in the viewer, most recent first, with the
page and zoom they were left at. 'lasso view' resumes from there.`,
	Args: cobra.NoArgs,
	RunE: runRecent,
}

func init() {
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 10, "maximum number of documents")
	recentCmd.Flags().BoolVar(&recentClear, "clear", false, "forget all recent documents")
	rootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, _ []string) error {
	if recentService == nil {
		return errors.New("recent service not configured")
	}

	if recentClear {
		if err := recentService.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear recent documents: %w", err)
		}
		cmd.Println("Recent documents cleared.")
		return nil
	}

	docs, err := recentService.List(cmd.Context(), recentLimit)
	if err != nil {
		return fmt.Errorf("failed to list recent documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No recent documents.")
		return nil
	}

	for i := range docs {
		doc := &docs[i]
		cmd.Printf("%2d. %s\n", i+1, doc.Path)
		cmd.Printf("    page %d/%d at %.0f%%, %s\n",
			doc.LastPage+1, doc.PageCount, doc.Zoom*100, doc.OpenedAt.Format(time.DateTime))
	}
	return nil
}
