package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/portcfg/internal/presentation/tui"
	"github.com/aretw0/portcfg/pkg/domain"
	"github.com/aretw0/portcfg/pkg/editor"
	"github.com/aretw0/portcfg/pkg/selection"
)

// ErrRejected is returned when the service rejects an edit that cannot be retried.
var ErrRejected = errors.New("port configuration rejected")

// ErrCancelled is returned when the operator abandons the edit.
var ErrCancelled = errors.New("port configuration cancelled")

// ConfigureOptions holds the edits for one configure run.
// Nil fields keep the value loaded from the service.
type ConfigureOptions struct {
	Kind domain.ComponentType
	ID   string

	Name            *string
	Comments        *string
	ConcurrentTasks *string
	Enabled         *domain.Toggle
	RemoteAccess    *domain.Toggle

	// Interactive prompts for every field and retries after a rejection.
	Interactive bool
	Format      string

	In     io.Reader
	Out    io.Writer
	Dialog *tui.Dialog
}

// RunConfigure opens the editor on a port, applies the edits and prints the result.
func RunConfigure(ctx context.Context, app *App, opts ConfigureOptions) error {
	entity, err := app.FetchPort(ctx, opts.Kind, opts.ID)
	if err != nil {
		return fmt.Errorf("failed to load port %s: %w", opts.ID, err)
	}
	if err := app.Store.Set(ctx, entity); err != nil {
		return fmt.Errorf("failed to cache port %s: %w", opts.ID, err)
	}

	sel, err := selection.FromEntity(entity)
	if err != nil {
		return err
	}

	dialog := opts.Dialog
	if dialog == nil {
		dialog = tui.NewDialog(opts.Out)
	}
	ed := app.NewEditor(
		editor.WithNotifier(dialog),
		editor.WithNoticePresenter(dialog),
		editor.WithErrorHandler(dialog),
	)
	if !ed.ShowConfiguration(ctx, sel) {
		return fmt.Errorf("%s is not a configurable port", opts.ID)
	}

	if err := applyEdits(ed, opts); err != nil {
		return err
	}

	var prompter *Prompter
	if opts.Interactive {
		prompter = NewPrompter(opts.In, opts.Out)
		if err := promptEdits(ed, prompter); err != nil {
			_ = ed.Cancel(ctx)
			return err
		}
	}

	for {
		outcome, err := ed.Apply(ctx)
		if err != nil {
			return err
		}

		switch outcome.Kind {
		case editor.OutcomeApplied:
			return WritePort(opts.Out, outcome.Entity, opts.Format)
		case editor.OutcomeFailed:
			return outcome.Err
		}

		// Rejected: the dialog is still open with the operator's values.
		if prompter == nil {
			_ = ed.Cancel(ctx)
			return fmt.Errorf("%w: %v", ErrRejected, outcome.Err)
		}
		retry, err := prompter.Confirm("Edit and retry?")
		if err != nil || !retry {
			_ = ed.Cancel(ctx)
			if err != nil {
				return err
			}
			return ErrCancelled
		}
		if err := promptEdits(ed, prompter); err != nil {
			_ = ed.Cancel(ctx)
			return err
		}
	}
}

func applyEdits(ed *editor.Editor, opts ConfigureOptions) error {
	var errs []error
	if opts.Name != nil {
		errs = append(errs, ed.SetName(*opts.Name))
	}
	if opts.Comments != nil {
		errs = append(errs, ed.SetComments(*opts.Comments))
	}
	if opts.ConcurrentTasks != nil {
		errs = append(errs, ed.SetConcurrentTasks(*opts.ConcurrentTasks))
	}
	if opts.Enabled != nil {
		errs = append(errs, ed.SetEnabled(*opts.Enabled))
	}
	if opts.RemoteAccess != nil {
		errs = append(errs, ed.SetAllowRemoteAccess(*opts.RemoteAccess))
	}
	return errors.Join(errs...)
}

func promptEdits(ed *editor.Editor, p *Prompter) error {
	s, ok := ed.Session()
	if !ok {
		return domain.ErrNotOpen
	}

	name, err := p.Ask("Name", s.Name)
	if err != nil {
		return err
	}
	comments, err := p.Ask("Comments", s.Comments)
	if err != nil {
		return err
	}
	tasks := s.ConcurrentTasks
	if s.ConcurrentTasksVisible {
		if tasks, err = p.Ask("Concurrent tasks", s.ConcurrentTasks); err != nil {
			return err
		}
	}
	enabled, err := p.AskToggle("Enabled", s.Enabled)
	if err != nil {
		return err
	}
	remote, err := p.AskToggle("Allow remote access", s.AllowRemoteAccess)
	if err != nil {
		return err
	}

	return applyEdits(ed, ConfigureOptions{
		Name:            &name,
		Comments:        &comments,
		ConcurrentTasks: &tasks,
		Enabled:         &enabled,
		RemoteAccess:    &remote,
	})
}
