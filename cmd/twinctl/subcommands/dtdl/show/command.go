package show

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ems-iodt/twinscale/cmd/twinctl/env"
	"github.com/ems-iodt/twinscale/cmd/twinctl/rest"
	"github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/common"
	"github.com/youta-t/flarc"
)

const ARG_DTMI = "DTMI"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Show the contents of a DTDL interface.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_DTMI, Required: true,
				Help: "DTMI of the interface, e.g. dtmi:com:example:Thermostat;1",
			},
		},
		common.NewTask(Task()),
	)
}

func Task() common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		twinEnv env.TwinEnv,
		client rest.TwinClient,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		dtmi := cl.Args()[ARG_DTMI][0]
		summary, err := client.GetDTDLSummary(ctx, dtmi)
		if err != nil {
			return fmt.Errorf("%w: dtmi: %s", err, dtmi)
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(summary); err != nil {
			logger.Panicf("fail to dump the summary")
		}
		return nil
	}
}
