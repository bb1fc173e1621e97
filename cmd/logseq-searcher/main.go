// Command logseq-searcher indexes and searches a Logseq Markdown vault.
package main

import (
	"fmt"
	"os"

	"github.com/romilly/logseq-searcher/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
