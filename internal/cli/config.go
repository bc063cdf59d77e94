package cli

import "fmt"

// ColorMode controls when colored output is used.
type ColorMode int

const (
	ColorAuto   ColorMode = iota // color when stdout is a terminal
	ColorAlways                  // always use color
	ColorNever                   // never use color
)

// Config holds all configuration for an ingestion run.
type Config struct {
	Root        string // input file or directory
	Verbose     bool   // debug-level logging
	Quiet       bool   // errors only
	ExcludeFrom string // gitignore-syntax exclude pattern file
	HexdumpLen  int    // dump the first N mapped bytes of each file at debug level
	OutDir      string // copy each mapped view into this directory
	Color       ColorMode
}

// Validate checks that the config is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("no input file/dir specified")
	}
	if c.Verbose && c.Quiet {
		return fmt.Errorf("cannot use --verbose and --quiet together")
	}
	if c.HexdumpLen < 0 {
		return fmt.Errorf("invalid hexdump length: %d", c.HexdumpLen)
	}
	return nil
}
