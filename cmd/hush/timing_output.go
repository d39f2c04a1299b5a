package main

import (
	"fmt"
	"io"
	"time"

	"hush/internal/observ"
)

func printTimings(out io.Writer, report *observ.Report) {
	if out == nil || report == nil {
		return
	}
	fmt.Fprint(out, report.Summary())
}

func printBatchTiming(out io.Writer, files int, elapsed time.Duration) {
	if out == nil {
		return
	}
	fmt.Fprintf(out, "transformed %d file(s) in %.1f ms\n", files, toMillis(elapsed))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
