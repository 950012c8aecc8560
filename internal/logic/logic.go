// Package logic implements the command logic of xtea3.
package logic

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Varbin/xtea3/internal/config"
	"github.com/Varbin/xtea3/internal/encryption"
)

// Run encrypts or decrypts the configured files.
func Run(cfg *config.Config) error {
	start := time.Now()

	proc, err := encryption.NewProcessor(cfg)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	stats, err := proc.ProcessFiles()

	if cfg.Stats {
		printStats(os.Stderr, stats, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	return nil
}

func printStats(w io.Writer, stats encryption.Stats, duration time.Duration) {
	fmt.Fprintf(w, "\nStats\n")
	fmt.Fprintf(w, "  Processed: %d\n", stats.Processed)
	fmt.Fprintf(w, "  Errors:    %d\n", stats.Errored)
	//nolint:gosec // sizes are sums of file sizes
	fmt.Fprintf(w, "  Read:      %s\n", humanize.IBytes(uint64(max(0, stats.InputSize))))
	//nolint:gosec // sizes are sums of file sizes
	fmt.Fprintf(w, "  Written:   %s\n", humanize.IBytes(uint64(max(0, stats.OutputSize))))
	fmt.Fprintf(w, "  Duration:  %s\n", duration.Round(time.Millisecond))
	fmt.Fprintf(w, "  Rate:      %s/s\n", humanize.IBytes(throughput(stats.InputSize, duration)))
}

// throughput returns bytes per second, or 0 for an empty interval.
func throughput(size int64, duration time.Duration) uint64 {
	if duration <= 0 || size <= 0 {
		return 0
	}

	return uint64(float64(size) / duration.Seconds())
}
