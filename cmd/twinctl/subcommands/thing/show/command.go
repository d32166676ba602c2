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

const ARG_INTERFACE_NAME = "INTERFACE_NAME"

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Return details of the specified twin interface.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_INTERFACE_NAME, Required: true,
				Help: "Canonical name of the interface (as listed by `thing find`).",
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
		name := cl.Args()[ARG_INTERFACE_NAME][0]
		detail, err := client.GetInterface(ctx, name)
		if err != nil {
			return fmt.Errorf("%w: interface: %s", err, name)
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(detail); err != nil {
			logger.Panicf("fail to dump the interface")
		}
		return nil
	}
}
