package fill

import (
	"context"
	"fmt"
	"log"

	"github.com/ems-iodt/twinscale/cmd/twinctl/env"
	"github.com/ems-iodt/twinscale/cmd/twinctl/rest"
	"github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/common"
	"github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/internal/draft"
	"github.com/ems-iodt/twinscale/pkg/twin/dtdlmap"
	"github.com/youta-t/flarc"
	"gopkg.in/yaml.v3"
)

const ARG_DTMI = "DTMI"

type Flag struct {
	File string `flag:"" alias:"f" metavar:"path/to/thing.yaml" help:"Draft file to fill. \"-\" reads stdin and writes the result to stdout."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Fill a draft with the contents of a DTDL interface.",
		Flag{File: "-"},
		flarc.Args{
			{
				Name: ARG_DTMI, Required: true,
				Help: "DTMI of the interface to take properties and commands from.",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Fetch a DTDL interface and append its properties, telemetry and
commands to a draft.

	{{ .Command }} dtmi:com:example:Thermostat;1 -f thing.yaml

Entries are appended as-is: running the command twice appends twice.
Telemetry becomes read-only properties.
`),
	)
}

func Task() common.Task[Flag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		twinEnv env.TwinEnv,
		client rest.TwinClient,
		cl flarc.Commandline[Flag],
		params []any,
	) error {
		dtmi := cl.Args()[ARG_DTMI][0]
		file := cl.Flags().File

		spec, err := draft.Load(file, cl.Stdin())
		if err != nil {
			return err
		}

		summary, err := client.GetDTDLSummary(ctx, dtmi)
		if err != nil {
			return fmt.Errorf("%w: dtmi: %s", err, dtmi)
		}

		props, commands := dtdlmap.MapSummary(summary)
		spec.Properties = append(spec.Properties, props...)
		spec.Commands = append(spec.Commands, commands...)

		iface := summary.Ref()
		spec.DTDLInterface = &iface
		spec.DTDLSummary = &summary

		if file == "-" {
			enc := yaml.NewEncoder(cl.Stdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(spec)
		}

		if err := draft.Save(file, spec); err != nil {
			return err
		}
		logger.Printf(
			"%s: added %d properties and %d commands from %s",
			file, len(props), len(commands), dtmi,
		)
		return nil
	}
}
