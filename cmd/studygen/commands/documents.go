// ABOUTME: CLI commands to list and remove library documents
// ABOUTME: Tabular or JSON output of the persisted snapshot
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewDocumentsCmd creates the documents command
func NewDocumentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "documents",
		Short: "List documents in the study library",
		Long: `List all documents currently in the study library.

Examples:
  studygen documents
  studygen documents --format json`,
		RunE: runDocuments,
	}

	return cmd
}

func runDocuments(cmd *cobra.Command, args []string) error {
	eng, err := newEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer eng.close()

	docs := eng.library.Documents()

	if outputFormat == "json" {
		type docSummary struct {
			Name       string `json:"name"`
			Format     string `json:"format"`
			Chars      int    `json:"chars"`
			UploadedAt string `json:"uploaded_at"`
		}
		summaries := make([]docSummary, 0, len(docs))
		for _, doc := range docs {
			summaries = append(summaries, docSummary{
				Name:       doc.DisplayName,
				Format:     string(doc.SourceFormat),
				Chars:      doc.CharCount(),
				UploadedAt: doc.UploadedAt.Format("2006-01-02 15:04:05"),
			})
		}
		data, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(docs) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "The library is empty. Use 'studygen ingest' to add documents.")
		}
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFORMAT\tCHARS\tUPLOADED")
	for _, doc := range docs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
			truncate(doc.DisplayName, 40), doc.SourceFormat, doc.CharCount(), formatTime(doc.UploadedAt))
	}
	return w.Flush()
}

// NewRemoveCmd creates the remove command
func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a document from the study library",
		Long: `Remove a document from the study library by filename.

Examples:
  studygen remove lecture-notes.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: runRemove,
	}

	return cmd
}

func runRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	eng, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.close()

	if err := eng.library.RemoveDocument(ctx, args[0]); err != nil {
		return err
	}
	if err := eng.save(); err != nil {
		return fmt.Errorf("saving library: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%d document(s) remaining)\n", args[0], eng.library.DocumentCount())
	}
	return nil
}
