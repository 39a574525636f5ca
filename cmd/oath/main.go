package main

import (
	"os"

	"github.com/sensa-ai-tech/OATH/internal/cli"
)

const appName = "oath"

func main() {
	if err := cli.RootCommand(appName).Execute(); err != nil {
		os.Exit(1)
	}
}
