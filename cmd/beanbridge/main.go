package main

import (
	"os"

	"github.com/beanbridge-dev/beanbridge/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
