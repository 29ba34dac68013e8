package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/muesli/termenv"
)

// Dialog renders editor notices, errors and refresh digests to a terminal.
// It implements ports.NoticePresenter, ports.ErrorHandler and ports.Notifier.
type Dialog struct {
	mu      sync.Mutex
	out     *termenv.Output
	render  func(string) (string, error)
	digests int
}

// DialogOption configures a Dialog.
type DialogOption func(*Dialog)

// WithProfile forces a color profile, e.g. termenv.Ascii for plain output.
func WithProfile(p termenv.Profile) DialogOption {
	return func(d *Dialog) {
		d.out = termenv.NewOutput(d.out.Writer(), termenv.WithProfile(p))
	}
}

// WithRenderer replaces the markdown renderer.
func WithRenderer(render func(string) (string, error)) DialogOption {
	return func(d *Dialog) {
		d.render = render
	}
}

// NewDialog creates a dialog writing to w.
func NewDialog(w io.Writer, opts ...DialogOption) *Dialog {
	d := &Dialog{
		out: termenv.NewOutput(w),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.render == nil {
		d.render = NewRenderer("")
	}
	return d
}

// ShowOkDialog prints a notice. A single message is printed as is; several are
// rendered as a bulleted list.
func (d *Dialog) ShowOkDialog(ctx context.Context, notice domain.Notice) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprintln(d.out, d.out.String(notice.Header).Bold().Foreground(d.out.Color("#f59e0b")))
	if !notice.Itemized() {
		if len(notice.Messages) == 1 {
			fmt.Fprintln(d.out, notice.Messages[0])
		}
		return
	}

	var md strings.Builder
	for _, m := range notice.Messages {
		md.WriteString("- ")
		md.WriteString(m)
		md.WriteString("\n")
	}
	rendered, err := d.render(md.String())
	if err != nil {
		rendered = md.String()
	}
	fmt.Fprint(d.out, rendered)
}

// HandleError prints a failed update.
func (d *Dialog) HandleError(ctx context.Context, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprintf(d.out, "%s %v\n", d.out.String("✗").Foreground(d.out.Color("#ef4444")), err)

	var rerr *domain.RequestError
	if errors.As(err, &rerr) && rerr.IsConflict() {
		fmt.Fprintln(d.out, d.out.String("  The port changed since it was opened. Reopen it to load the latest revision.").Faint())
	}
}

// Digest acknowledges that the flow view should refresh.
func (d *Dialog) Digest(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.digests++
	fmt.Fprintln(d.out, d.out.String("✓ Port configuration applied").Foreground(d.out.Color("#22c55e")))
}

// Digests returns how many refreshes were requested.
func (d *Dialog) Digests() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.digests
}
