package main

import (
	"context"
	"io"
	"time"

	"github.com/streamplay/vikinglink"
	"github.com/streamplay/vikinglink/extract"
	"github.com/streamplay/vikinglink/fs"
	"github.com/streamplay/vikinglink/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Files     vikinglink.OxxFileService
	FileStore *fs.Store
	Extractor *extract.Service
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract ExtractCmd `cmd:"" help:"Extract download links from a viking file page"`
	Batch   BatchCmd   `cmd:"" help:"Extract download links for every URL in a file"`
	Import  ImportCmd  `cmd:"" help:"Load OxxFile JSON files into the store"`
	Export  ExportCmd  `cmd:"" help:"Write a stored record as JSON"`
	Show    ShowCmd    `cmd:"" help:"Show a stored record with all hosting links"`
	List    ListCmd    `cmd:"" help:"List stored records"`
	Stats   StatsCmd   `cmd:"" help:"Show viking link statistics over the store"`

	Verbose bool `short:"v" help:"Enable verbose logging"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL      string        `arg:"" help:"Viking file page URL"`
	JSON     bool          `help:"Emit structured JSON instead of human-readable output"`
	Output   string        `short:"o" help:"Write output to a file instead of stdout"`
	Timeout  time.Duration `default:"10s" help:"Page fetch timeout"`
	Retries  int           `default:"0" help:"Fetch retry attempts"`
	NoCache  bool          `help:"Bypass the page cache"`
	CacheDir string        `help:"Page cache directory"`
	Save     bool          `help:"Persist an OxxFile record built from the result"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	File        string        `arg:"" help:"File with one page URL per line"`
	JSON        bool          `help:"Emit structured JSON instead of human-readable output"`
	Output      string        `short:"o" help:"Write output to a file instead of stdout"`
	Timeout     time.Duration `default:"10s" help:"Page fetch timeout"`
	Retries     int           `default:"0" help:"Fetch retry attempts"`
	NoCache     bool          `help:"Bypass the page cache"`
	CacheDir    string        `help:"Page cache directory"`
	Concurrency int           `short:"c" default:"5" help:"Concurrent fetch limit"`
	RPS         float64       `default:"1" help:"Requests per second per domain"`
	Burst       int           `default:"1" help:"Back-to-back requests allowed per domain"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Paths []string `arg:"" help:"OxxFile JSON files to import"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	ID     string `arg:"" help:"Record ID"`
	Output string `short:"o" help:"Write to a file instead of stdout"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Record ID"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	WithVikingLink   bool   `help:"Only records that have a viking link"`
	ConversionFailed bool   `help:"Only records whose viking conversion failed"`
	Status           string `help:"Filter by status"`
	Limit            int    `help:"Maximum number of records"`
	Offset           int    `help:"Number of records to skip"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	JSON bool `help:"Emit structured JSON instead of human-readable output"`
}
