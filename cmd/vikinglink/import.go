package main

import (
	"fmt"

	"github.com/streamplay/vikinglink"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	var imported int
	for _, path := range c.Paths {
		file, err := deps.FileStore.ReadOxxFile(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", path, vikinglink.ErrorMessage(err))
			return err
		}

		if err := deps.Files.CreateOxxFile(deps.Ctx, file); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", path, vikinglink.ErrorMessage(err))
			return err
		}
		imported++
	}

	fmt.Fprintf(deps.Stdout, "Imported %d records\n", imported)
	return nil
}
