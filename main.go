// ragask – terminal client for a question-answering (RAG) backend.
//
// Entry point: initializes the Cobra root command and launches
// the Bubble Tea form by default (no subcommand required).
package main

import (
	"os"

	"github.com/DachengChen/ragask/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
