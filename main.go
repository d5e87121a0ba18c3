package main

import (
	"os"

	"github.com/spf13/cobra"

	"inspectbot/internal/app"
	"inspectbot/internal/config"
)

func main() {
	var docPath string

	root := &cobra.Command{
		Use:   "inspectbot",
		Short: "Turn technician utterances into structured inspection results and repair quotes",
	}

	replayCmd := &cobra.Command{
		Use:   "replay [transcript]",
		Short: "Feed transcribed utterances through the engine and print the summary and quote",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			transcript := ""
			if len(args) == 1 {
				transcript = args[0]
			}
			return app.Replay(cfg, docPath, transcript)
		},
	}
	replayCmd.Flags().StringVar(&docPath, "document", "", "inspection document JSON (defaults to the built-in template)")

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Build quote lines for a document's fail/recommend items",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			return app.Quote(cfg, docPath)
		},
	}
	quoteCmd.Flags().StringVar(&docPath, "document", "", "inspection document JSON (defaults to the built-in template)")

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the shop catalog store",
	}
	catalogCmd.AddCommand(&cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Import a YAML catalog into the sqlite store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			return app.ImportCatalog(cfg, args[0])
		},
	})

	root.AddCommand(replayCmd, quoteCmd, catalogCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
