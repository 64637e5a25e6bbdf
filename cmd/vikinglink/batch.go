package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/streamplay/vikinglink"
	"github.com/streamplay/vikinglink/extract"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	urls, err := readURLFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintln(deps.Stderr, "no URLs to extract")
		return nil
	}

	progress := func(event extract.ProgressEvent) {
		switch event.Type {
		case extract.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "Extracting %d URLs\n", event.Total)
		case extract.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] failed %s: %s\n",
				event.Completed, event.Total, event.URL, vikinglink.ErrorMessage(event.Error))
		case extract.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s\n", event.Completed, event.Total, event.URL)
		}
	}

	items, err := deps.Extractor.ExtractAll(deps.Ctx, urls, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	out, closeOut, err := openOutput(deps.Stdout, c.Output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer closeOut()

	// Per-URL failures were already reported as progress; the batch
	// itself succeeds with whatever was extracted. The slice starts
	// empty rather than nil so JSON output renders [] when every URL
	// failed.
	infos := []*vikinglink.VikingFileInfo{}
	for _, item := range items {
		if item.Err != nil {
			continue
		}
		if item.Result.Partial() {
			fmt.Fprintf(deps.Stderr, "warning: fetch failed for %s: %s\n",
				item.URL, vikinglink.ErrorMessage(item.Result.FetchErr))
		}
		infos = append(infos, item.Result.Info)
	}

	if c.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	for _, info := range infos {
		fmt.Fprintln(out, vikinglink.FormatFileInfo(info))
	}
	return nil
}

// readURLFile returns the non-empty lines of a URL list file.
func readURLFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			urls = append(urls, line)
		}
	}
	return urls, nil
}
