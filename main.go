package main

import (
	"fmt"
	"os"

	"github.com/riskibarqy/go-commitsuggest/internal/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.DefaultApp()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
