package buildinfo

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/MrSnakeDoc/listsite/internal/buildinfo.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// GoVersion reports the toolchain the binary was built with.
func GoVersion() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi.GoVersion != "" {
		return bi.GoVersion
	}
	return runtime.Version()
}

func Print(w io.Writer) {
	fmt.Fprintln(w, "listsite - static list site publisher")
	fmt.Fprintf(w, "  %-12s %s\n", "Version:", Version)
	fmt.Fprintf(w, "  %-12s %s\n", "Go Version:", GoVersion())
	fmt.Fprintf(w, "  %-12s %s\n", "Git Commit:", Commit)
	fmt.Fprintf(w, "  %-12s %s\n", "Built:", Date)
	fmt.Fprintf(w, "  %-12s %s/%s\n", "OS/Arch:", runtime.GOOS, runtime.GOARCH)
}
