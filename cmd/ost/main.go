// Command ost builds opportunity solution trees from a terminal UI, an
// interactive shell or command scripts.
package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/ost/internal/cli"
	"github.com/alexanderramin/ost/internal/config"
	"github.com/mattn/go-isatty"
)

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func main() {
	app := &cli.App{
		Config:        config.LoadConfig(),
		IsInteractive: stdinIsTerminal,
	}
	err := cli.NewRootCmd(app).Execute()
	app.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
