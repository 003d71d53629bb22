// Command vocabvault is the vocabulary trainer: an HTTP API over a personal
// collection of terms and definitions, with flashcard and matching drills,
// plus backup tooling for the collection document.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
