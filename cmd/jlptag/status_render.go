package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"jlptag/internal/preflight"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
)

// renderCheckLine formats one preflight result as a pass/fail line.
func renderCheckLine(result preflight.Result, colorize bool) string {
	mark := "FAIL"
	color := ansiRed
	if result.Passed {
		mark = " ok "
		color = ansiGreen
	}
	if colorize {
		mark = color + mark + ansiReset
	}
	return fmt.Sprintf("  [%s] %-22s %s", mark, result.Name, result.Detail)
}

func printCheckResults(out io.Writer, results []preflight.Result) (failed int) {
	colorize := shouldColorize(out)
	for _, result := range results {
		fmt.Fprintln(out, renderCheckLine(result, colorize))
		if !result.Passed {
			failed++
		}
	}
	return failed
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
