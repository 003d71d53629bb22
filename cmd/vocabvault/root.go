package main

import (
	"github.com/spf13/cobra"
)

// configFile is the --config flag value shared by all subcommands. Empty
// means "use ./vocabvault.yaml when present, defaults otherwise".
var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "vocabvault",
	Short:         "Personal vocabulary trainer",
	Long:          "vocabvault stores vocabulary items in scored categories and drills them with flashcard and matching practice.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./vocabvault.yaml)")
}
