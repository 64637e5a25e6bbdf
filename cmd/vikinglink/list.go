package main

import (
	"fmt"

	"github.com/streamplay/vikinglink"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := vikinglink.OxxFileFilter{
		Offset: c.Offset,
		Limit:  c.Limit,
	}
	if c.WithVikingLink {
		t := true
		filter.HasVikingLink = &t
	}
	if c.ConversionFailed {
		t := true
		filter.VikingConversionFailed = &t
	}
	if c.Status != "" {
		filter.Status = &c.Status
	}

	files, err := deps.Files.FindOxxFiles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vikinglink.ErrorMessage(err))
		return err
	}

	if len(files) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'vikinglink import' or 'vikinglink extract --save' to create one.")
		return nil
	}

	for _, f := range files {
		viking := "-"
		if f.HasVikingLink() {
			viking = *f.VikingLink
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s  %s\n",
			f.ID, f.Code, f.FileName, f.Status, viking)
	}

	return nil
}
