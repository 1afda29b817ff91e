// ABOUTME: CLI command to ingest study documents into the library
// ABOUTME: Loads files, chunks and embeds them, and persists the snapshot
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harper/studygen/internal/loader"
	"github.com/spf13/cobra"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Add documents to the study library",
		Long: `Add one or more documents to the study library.

Supported formats: PDF, DOCX, and plain text (.txt, .md). A document
with the same filename replaces the previous version wholesale.

Examples:
  studygen ingest lecture-notes.pdf
  studygen ingest chapter1.docx chapter2.docx
  studygen ingest notes.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIngest,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	eng, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.close()

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		doc, err := loader.Load(filepath.Base(path), data)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}

		if err := eng.library.AddDocument(ctx, doc); err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}

		if !quiet {
			chunkCount := 0
			for _, chunk := range eng.library.Chunks() {
				if chunk.DocumentID == doc.ID {
					chunkCount++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ingested %s (%s, %d chars, %d chunks)\n",
				doc.DisplayName, doc.SourceFormat, doc.CharCount(), chunkCount)
		}
	}

	if err := eng.save(); err != nil {
		return fmt.Errorf("saving library: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Library now holds %d document(s)\n", eng.library.DocumentCount())
	}
	return nil
}
