package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the portcfg banner to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"                    _            __ ", "#38bdf8"},
		{"  _ __   ___  _ __| |_ ___ ___ / _| __ _ ", "#22d3ee"},
		{" | '_ \\ / _ \\| '__| __/ __/ _ \\ |_ / _` |", "#2dd4bf"},
		{" | |_) | (_) | |  | || (_| (_) |  _| (_| |", "#34d399"},
		{" | .__/ \\___/|_|   \\__\\___\\___/|_|  \\__, |", "#4ade80"},
		{" |_|                                 |___/ ", "#a3e635"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  port configuration editor "+version).Faint())
	fmt.Fprintln(w)
}
