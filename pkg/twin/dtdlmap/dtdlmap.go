// Package dtdlmap derives thing draft entries from a DTDL interface
// summary, for the auto-fill workflow.
package dtdlmap

import (
	"github.com/ems-iodt/twinscale-api-types/dtdl"
	"github.com/ems-iodt/twinscale-api-types/things"
)

// MapSummary converts a summary's detail lists into draft properties
// and commands.
//
// The returned slices are for the caller to APPEND onto the draft:
// auto-fill is additive by contract, running it twice doubles the
// entries and nothing deduplicates by name.
func MapSummary(summary dtdl.Summary) ([]things.Property, []things.Command) {
	properties := make(
		[]things.Property, 0,
		len(summary.PropertyDetails)+len(summary.TelemetryDetails),
	)

	for _, d := range summary.PropertyDetails {
		properties = append(properties, mapProperty(d))
	}
	for _, d := range summary.TelemetryDetails {
		properties = append(properties, mapTelemetry(d))
	}

	commands := make([]things.Command, 0, len(summary.CommandDetails))
	for _, d := range summary.CommandDetails {
		commands = append(commands, things.Command{
			Name:        d.Name,
			Description: d.Description,
		})
	}

	return properties, commands
}

func mapProperty(d dtdl.ContentDetail) things.Property {
	typ := d.Type
	if typ == "" {
		typ = "string"
	}

	// absent writable means true; explicit false stays false.
	writable := d.Writable == nil || *d.Writable

	return things.Property{
		Name:        d.Name,
		Schema:      things.Schema{Type: typ},
		Description: d.Description,
		Writable:    writable,
		Unit:        d.Unit,
	}
}

func mapTelemetry(d dtdl.ContentDetail) things.Property {
	typ := d.Type
	if typ == "" {
		typ = "float"
	}

	return things.Property{
		Name:        d.Name,
		Schema:      things.Schema{Type: typ},
		Description: d.Description,
		// telemetry is read-only no matter what the model says.
		Writable: false,
		Unit:     d.Unit,
	}
}
