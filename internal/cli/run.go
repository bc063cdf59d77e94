package cli

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/unix"

	"github.com/ab/qcingest/internal/alloc"
	"github.com/ab/qcingest/internal/collect"
	"github.com/ab/qcingest/internal/fsutil"
	"github.com/ab/qcingest/internal/hexdump"
	"github.com/ab/qcingest/internal/mapped"
	"github.com/ab/qcingest/internal/output"
)

// Run executes an ingestion pass with the given config.
// Returns exit code: 0 = ok, 1 = no usable input files, 2 = error.
func Run(cfg Config) int {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}
	if cfg.Quiet {
		level = log.ErrorLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level: level,
	})

	allocator := alloc.New(logger)
	collector := collect.New(logger, allocator)
	if cfg.ExcludeFrom != "" {
		if err := collector.ExcludeFrom(cfg.ExcludeFrom); err != nil {
			logger.Error("invalid exclude file", "path", cfg.ExcludeFrom, "err", err)
			return 2
		}
	}

	set, err := collector.Collect(cfg.Root)
	if err != nil {
		var cerr *collect.Error
		if errors.As(err, &cerr) && cerr.Kind == collect.KindEmptyResult {
			return 1
		}
		return 2
	}

	if cfg.OutDir != "" {
		if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
			logger.Error("couldn't create output directory", "path", cfg.OutDir, "err", err)
			return 2
		}
		if !fsutil.IsDir(logger, cfg.OutDir) {
			return 2
		}
	}

	useColor := false
	switch cfg.Color {
	case ColorAlways:
		useColor = true
	case ColorNever:
		useColor = false
	case ColorAuto:
		useColor = output.StdoutIsTerminal()
	}
	var styles output.Styles
	if useColor {
		styles = output.NewStyles()
	} else {
		styles = output.NoStyles()
	}
	formatter := output.NewListFormatter(styles)
	w := output.NewWriter()

	var buf []byte
	var total int64
	mappedCnt := 0
	for _, path := range set.Paths {
		v, err := mapped.Open(logger, path)
		if err != nil {
			continue // already logged at the failing stage
		}

		if cfg.HexdumpLen > 0 {
			n := cfg.HexdumpLen
			if int64(n) > v.Size {
				n = int(v.Size)
			}
			hexdump.Dump(logger, fsutil.Basename(path), v.Data, n)
		}

		if cfg.OutDir != "" {
			if err := extract(cfg.OutDir, path, v.Data); err != nil {
				logger.Error("couldn't extract file", "path", path, "err", err)
			}
		}

		buf = formatter.AppendEntry(buf, path, v.Size)
		total += v.Size
		mappedCnt++
		v.Close()
	}

	buf = formatter.AppendSummary(buf, mappedCnt, total)
	w.Write(buf)

	if mappedCnt == 0 {
		logger.Error("no input files could be mapped", "root", cfg.Root)
		return 1
	}
	return 0
}

// extract copies one mapped view into outDir under its basename.
func extract(outDir, srcPath string, data []byte) error {
	dst := filepath.Join(outDir, fsutil.Basename(srcPath))
	fd, err := unix.Open(dst, unix.O_WRONLY|unix.O_CREAT|unix.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer unix.Close(fd)
	return mapped.WriteAll(fd, data)
}
