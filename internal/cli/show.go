package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/portcfg/pkg/domain"
)

// RunShow prints a port. With cached set it reads the Port Model Store instead of
// the service.
func RunShow(ctx context.Context, app *App, w io.Writer, kind domain.ComponentType, id string, cached bool, format string) error {
	var (
		entity *domain.PortEntity
		err    error
	)
	if cached {
		entity, err = app.Store.Get(ctx, id)
		if errors.Is(err, domain.ErrPortNotFound) {
			return fmt.Errorf("port %s is not cached", id)
		}
	} else {
		entity, err = app.FetchPort(ctx, kind, id)
	}
	if err != nil {
		return err
	}
	return WritePort(w, entity, format)
}

// RunList prints every cached port id.
func RunList(ctx context.Context, app *App, w io.Writer) error {
	ids, err := app.Store.List(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		printSystemMessage(w, "No cached ports.")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintln(w, id)
	}
	return nil
}
