package main

import (
	"encoding/json"
	"fmt"

	"github.com/streamplay/vikinglink"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	files, err := deps.Files.FindOxxFiles(deps.Ctx, vikinglink.OxxFileFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vikinglink.ErrorMessage(err))
		return err
	}

	stats := vikinglink.ComputeVikingStats(files)

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Fprintf(deps.Stdout, "Total files:            %d\n", stats.TotalFiles)
	fmt.Fprintf(deps.Stdout, "With viking link:       %d\n", stats.FilesWithVikingLink)
	fmt.Fprintf(deps.Stdout, "Conversion failures:    %d\n", stats.VikingConversionFailures)
	fmt.Fprintf(deps.Stdout, "Success rate:           %.1f%%\n", stats.SuccessRate)
	return nil
}
