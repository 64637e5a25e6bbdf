package main

import (
	"fmt"

	"github.com/streamplay/vikinglink"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	file, err := deps.Files.FindOxxFileByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vikinglink.ErrorMessage(err))
		return err
	}

	fmt.Fprint(deps.Stdout, vikinglink.FormatOxxFile(file))
	return nil
}
