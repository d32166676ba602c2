package convert

import (
	"context"
	"fmt"
	"log"

	"github.com/ems-iodt/twinscale/cmd/twinctl/env"
	"github.com/ems-iodt/twinscale/cmd/twinctl/rest"
	"github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/common"
	"github.com/youta-t/flarc"
	"gopkg.in/yaml.v3"
)

const ARG_DTMI = "DTMI"

type Flag struct {
	Name string `flag:"" alias:"n" help:"id to give the generated draft. Defaults to a name derived from the DTMI."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Generate a draft from a DTDL interface.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_DTMI, Required: true,
				Help: "DTMI of the interface to convert.",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Turn a catalog interface into a ready-to-edit draft.

	{{ .Command }} dtmi:com:example:Thermostat;1 -n my-thermostat > thing.yaml
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

		spec, err := client.ConvertToTwin(ctx, dtmi, cl.Flags().Name)
		if err != nil {
			return fmt.Errorf("%w: dtmi: %s", err, dtmi)
		}

		enc := yaml.NewEncoder(cl.Stdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(spec)
	}
}
