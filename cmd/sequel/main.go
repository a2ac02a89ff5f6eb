package main

import (
	"os"

	"github.com/simonhull/sequel/internal/commands"
	"github.com/simonhull/sequel/internal/kit/output"
)

func main() {
	if err := commands.NewApp().Execute(); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
