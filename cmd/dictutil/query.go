package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ekazakov/dictvoice/internal/stardict"
)

func queryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "Look up a key in one archive",
		ArgsUsage: "IFO KEY",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "fold",
				Usage:   "case-insensitive lookup",
				Aliases: []string{"f"},
			},
			&cli.StringFlag{
				Name:    "out",
				Usage:   "write the first payload to `FILE` instead of describing matches",
				Aliases: []string{"o"},
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return errors.New("expected IFO and KEY arguments")
			}
			ifoPath := c.Args().Get(0)
			key := c.Args().Get(1)

			a, err := stardict.Open(ifoPath)
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.Lookup(c.Context, key, c.Bool("fold"))
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("no entry for %q in %s", key, a.Name())
			}

			if out := c.String("out"); out != "" {
				return os.WriteFile(out, records[0].Data, 0o644)
			}

			for _, rec := range records {
				fmt.Printf("%s\t%d bytes\n", rec.Key, len(rec.Data))
			}
			return nil
		},
	}
}
