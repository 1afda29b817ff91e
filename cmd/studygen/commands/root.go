// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines the studygen banner and shared output settings
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
███████╗████████╗██╗   ██╗██████╗ ██╗   ██╗ ██████╗ ███████╗███╗   ██╗
██╔════╝╚══██╔══╝██║   ██║██╔══██╗╚██╗ ██╔╝██╔════╝ ██╔════╝████╗  ██║
███████╗   ██║   ██║   ██║██║  ██║ ╚████╔╝ ██║  ███╗█████╗  ██╔██╗ ██║
╚════██║   ██║   ██║   ██║██║  ██║  ╚██╔╝  ██║   ██║██╔══╝  ██║╚██╗██║
███████║   ██║   ╚██████╔╝██████╔╝   ██║   ╚██████╔╝███████╗██║ ╚████║
╚══════╝   ╚═╝    ╚═════╝ ╚═════╝    ╚═╝    ╚═════╝ ╚══════╝╚═╝  ╚═══╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "studygen",
		Short: "Generate study content from your own documents",
		Long: banner + `
Studygen turns your study documents into answers, notes, flashcards,
quizzes, and mind maps. Every piece of generated content is grounded in
the documents you ingest; nothing comes from the model's own knowledge.

Ingest PDF, DOCX, or plain text files, then ask questions or generate
study artifacts about any topic they cover.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, text, or json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewDocumentsCmd())
	cmd.AddCommand(NewRemoveCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
