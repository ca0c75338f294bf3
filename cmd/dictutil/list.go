package main

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ekazakov/dictvoice/internal/stardict"
)

func listCommand() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "List archives under a directory",
		ArgsUsage: "DIR",
		Action: func(c *cli.Context) error {
			dir := c.Args().Get(0)
			if dir == "" {
				dir = "."
			}

			tbl := table.New("Bookname", "Version", "Keys", "Data size")

			err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".ifo") {
					return nil
				}
				a, err := stardict.Open(path)
				if err != nil {
					return err
				}
				defer a.Close()
				tbl.AddRow(a.Name(), a.Version(), a.WordCount(), humanize.Bytes(uint64(a.DataSize())))
				return nil
			})
			if err != nil {
				return err
			}

			tbl.Print()
			return nil
		},
	}
}
