package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aretw0/portcfg/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// WritePort renders an entity in the requested format.
func WritePort(w io.Writer, entity *domain.PortEntity, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entity)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entity); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		return writePortText(w, entity)
	}
	return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
}

func writePortText(w io.Writer, entity *domain.PortEntity) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(k string, v any) {
		fmt.Fprintf(tw, "%s:\t%v\n", k, v)
	}

	row("ID", entity.ID)
	row("URI", entity.URI)
	row("Revision", entity.Revision)
	if c := entity.Component; c != nil {
		row("Type", c.Type)
		row("Name", c.Name)
		row("State", c.State)
		row("Remote Access", c.AllowRemoteAccess)
		if entity.AllowRemoteAccess {
			row("Concurrent Tasks", c.ConcurrentlySchedulableTaskCount)
		}
		row("Comments", c.Comments)
	}
	return tw.Flush()
}
