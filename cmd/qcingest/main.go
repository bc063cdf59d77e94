package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ab/qcingest/internal/cli"
)

func main() {
	var cfg cli.Config
	var colorMode string

	root := &cobra.Command{
		Use:   "qcingest <file|dir>",
		Short: "Collect and memory-map candidate image files for analysis",
		Long: `qcingest walks an input path, collects regular non-empty files, and
memory-maps each one for the downstream image parsers. A single explicitly
named file is ingested as-is, without filtering.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Root = args[0]
			switch colorMode {
			case "auto":
				cfg.Color = cli.ColorAuto
			case "always":
				cfg.Color = cli.ColorAlways
			case "never":
				cfg.Color = cli.ColorNever
			default:
				return fmt.Errorf("invalid color mode %q (want auto, always, or never)", colorMode)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			os.Exit(cli.Run(cfg))
			return nil
		},
	}

	root.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "debug-level logging")
	root.Flags().BoolVarP(&cfg.Quiet, "quiet", "q", false, "errors only")
	root.Flags().StringVar(&cfg.ExcludeFrom, "exclude-from", "", "file with gitignore-syntax exclude patterns")
	root.Flags().IntVar(&cfg.HexdumpLen, "hexdump", 0, "dump the first N bytes of each mapped file at debug level")
	root.Flags().StringVarP(&cfg.OutDir, "out", "o", "", "copy each mapped file into DIR")
	root.Flags().StringVar(&colorMode, "color", "auto", "colored output: auto, always, never")

	// Default arguments from ~/.qcingest come before the real command line
	// so explicit flags win.
	args := append(cli.LoadConfigArgs(), os.Args[1:]...)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "qcingest:", err)
		os.Exit(2)
	}
}
