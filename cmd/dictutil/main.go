// dictutil inspects and queries dictvoice archives without going through the
// HTTP layer.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Inspect and query pronunciation dictionary archives.",
		Commands: []*cli.Command{
			listCommand(),
			queryCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
