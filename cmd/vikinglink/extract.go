package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/streamplay/vikinglink"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	result, err := deps.Extractor.Extract(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", vikinglink.ErrorMessage(err))
		return err
	}

	// A failed fetch is a warning, not a failure: the partial result
	// still identifies the file.
	if result.Partial() {
		fmt.Fprintf(deps.Stderr, "warning: fetch failed: %s\n", vikinglink.ErrorMessage(result.FetchErr))
	}

	out, closeOut, err := openOutput(deps.Stdout, c.Output)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer closeOut()

	if err := writeResult(out, result.Info, c.JSON); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if c.Save {
		file := recordFromInfo(result.Info)
		if err := deps.Files.CreateOxxFile(deps.Ctx, file); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", vikinglink.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved record %s\n", file.ID)
	}

	return nil
}

// writeResult renders one extraction result as JSON or text.
func writeResult(out io.Writer, info *vikinglink.VikingFileInfo, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	_, err := fmt.Fprint(out, vikinglink.FormatFileInfo(info))
	return err
}

// openOutput returns the destination writer for a command, either
// stdout or a freshly created file.
func openOutput(stdout io.Writer, path string) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// recordFromInfo builds a storable OxxFile from an extraction result.
// The page URL becomes the viking link; the service assigns the ID.
func recordFromInfo(info *vikinglink.VikingFileInfo) *vikinglink.OxxFile {
	file := &vikinglink.OxxFile{
		Code:      info.FileID,
		FileName:  info.FileName,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Status:    "active",
	}
	if info.PageURL != "" {
		pageURL := info.PageURL
		file.VikingLink = &pageURL
	}
	if size, ok := vikinglink.ParseFileSize(info.FileSize); ok {
		file.Size = size
	}
	return file
}
