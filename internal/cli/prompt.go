package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/portcfg/pkg/domain"
	"golang.org/x/term"
)

// IsInteractive reports whether r is a terminal.
func IsInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Prompter asks line-based questions.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading answers from in.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return SanitizeAnswer(strings.TrimRight(line, "\r\n"))
}

// Ask prompts for a value. An empty answer keeps current.
func (p *Prompter) Ask(label, current string) (string, error) {
	fmt.Fprintf(p.out, "%s [%s]: ", label, current)
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(answer) == "" {
		return current, nil
	}
	return answer, nil
}

// AskToggle prompts for a checkbox. "-" clears it to indeterminate.
func (p *Prompter) AskToggle(label string, current domain.Toggle) (domain.Toggle, error) {
	for {
		fmt.Fprintf(p.out, "%s (y/n/-) [%s]: ", label, current)
		answer, err := p.readLine()
		if err != nil {
			return current, err
		}
		t, ok, err := ParseToggle(answer)
		if err != nil {
			fmt.Fprintln(p.out, err)
			continue
		}
		if !ok {
			return current, nil
		}
		return t, nil
	}
}

// Confirm asks a yes/no question. Anything but yes is no.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s (y/N): ", question)
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// ParseToggle reads a checkbox answer. ok is false for an empty answer.
func ParseToggle(raw string) (t domain.Toggle, ok bool, err error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return domain.ToggleIndeterminate, false, nil
	case "y", "yes", "true", "on", "checked":
		return domain.ToggleChecked, true, nil
	case "n", "no", "false", "off", "unchecked":
		return domain.ToggleUnchecked, true, nil
	case "-", "indeterminate":
		return domain.ToggleIndeterminate, true, nil
	}
	return domain.ToggleIndeterminate, false, fmt.Errorf("invalid answer %q (want y, n or -)", raw)
}
