package main

import (
	"encoding/json"
	"fmt"

	"github.com/streamplay/vikinglink"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	file, err := deps.Files.FindOxxFileByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vikinglink.ErrorMessage(err))
		return err
	}

	if c.Output != "" {
		if err := deps.FileStore.WriteOxxFile(file, c.Output); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", vikinglink.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Wrote %s\n", c.Output)
		return nil
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(file)
}
