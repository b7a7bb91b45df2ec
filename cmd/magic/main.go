package main

import (
	"os"

	"github.com/magicframe/magic"
	"github.com/magicframe/magic/internal/commands"
	"github.com/magicframe/magic/output"
)

func main() {
	registry, err := commands.DefaultRegistry()
	if err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}

	kernel := commands.NewKernel(registry, magic.Version)
	os.Exit(kernel.Handle(os.Args[1:]))
}
