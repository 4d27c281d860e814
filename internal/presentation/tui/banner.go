package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the Balance ASCII banner to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"  ____        _", "#34d399"},
		{" | __ )  __ _| | __ _ _ __   ___ ___", "#2dd4bf"},
		{" |  _ \\ / _` | |/ _` | '_ \\ / __/ _ \\", "#22d3ee"},
		{" | |_) | (_| | | (_| | | | | (_|  __/", "#38bdf8"},
		{" |____/ \\__,_|_|\\__,_|_| |_|\\___\\___|", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, out.String("  v"+version+"  do the same thing to both sides").Faint())
	}
	fmt.Fprintln(w)
}
