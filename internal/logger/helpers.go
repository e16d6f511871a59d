package logger

import (
	"io"
	"os"
)

// ConsoleOptions maps CLI flags to logger options.
func ConsoleOptions(verbose bool, out io.Writer) Options {
	if out == nil {
		out = os.Stdout
	}
	level := "info"
	if verbose {
		level = "debug"
	}
	return Options{
		Level: level,
		JSON:  false,
		Color: true,
		Out:   out,
	}
}

// HandlerOptions is used by the scheduled entry point: JSON lines, no colors.
func HandlerOptions(verbose bool, out io.Writer) Options {
	opts := ConsoleOptions(verbose, out)
	opts.JSON = true
	opts.Color = false
	return opts
}
