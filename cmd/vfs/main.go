package main

import (
	"fmt"
	"os"

	"github.com/gobeaver/vfs"
	"github.com/gobeaver/vfs/driver/native"
	"github.com/gobeaver/vfs/factory"
	"github.com/gobeaver/vfs/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := vfs.GetConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "vfs: load config: %v\n", err)
		return 1
	}
	f, err := factory.NewFromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vfs: %v\n", err)
		return 1
	}

	stdout := native.Stdout()
	defer stdout.Close()

	root := cli.NewRootCommand(f)
	root.SetOut(stdout)
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}
