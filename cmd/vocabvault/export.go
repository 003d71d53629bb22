package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phrazzld/vocabvault/internal/config"
	"github.com/phrazzld/vocabvault/internal/platform/logger"
)

var exportOutput string

// exportCmd represents the export command. It writes the collection as the
// same JSON document the file driver keeps on disk, which makes the export
// directly usable as a file-driver database or as import input.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the vocabulary collection as a JSON document",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log := logger.Setup(cfg.Server.LogLevel)
		ctx := cmd.Context()

		st, cleanup, err := openStore(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer cleanup()

		collection, err := st.Load(ctx)
		if err != nil {
			return fmt.Errorf("load collection: %w", err)
		}

		data, err := json.MarshalIndent(collection, "", "  ")
		if err != nil {
			return fmt.Errorf("encode collection: %w", err)
		}
		data = append(data, '\n')

		if exportOutput == "" || exportOutput == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}

		if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOutput, err)
		}

		log.Info("collection exported",
			"output", exportOutput,
			"items", collection.TotalItems())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
}
