package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/phrazzld/vocabvault/internal/config"
	"github.com/phrazzld/vocabvault/internal/domain"
	"github.com/phrazzld/vocabvault/internal/platform/logger"
)

// importCmd represents the import command. It replaces the configured store's
// collection with the document read from a file or stdin. Items without a
// stable ID get one assigned, and invalid records abort the import before
// anything is written.
var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the vocabulary collection from a JSON document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		log := logger.Setup(cfg.Server.LogLevel)
		ctx := cmd.Context()

		var data []byte
		if len(args) == 0 || args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		var collection domain.Collection
		if err := json.Unmarshal(data, &collection); err != nil {
			return fmt.Errorf("parse collection document: %w", err)
		}

		for category, items := range collection {
			for i, item := range items {
				if item == nil {
					return fmt.Errorf("category %q: item %d is null", category, i)
				}
				if item.ID == uuid.Nil {
					item.ID = uuid.New()
				}
				if err := item.Validate(); err != nil {
					return fmt.Errorf("category %q: item %d: %w", category, i, err)
				}
			}
		}
		collection.Normalize(cfg.Vocab.Categories)

		st, cleanup, err := openStore(ctx, cfg, log)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer cleanup()

		if err := st.Save(ctx, collection); err != nil {
			return fmt.Errorf("save collection: %w", err)
		}

		log.Info("collection imported",
			"items", collection.TotalItems())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
