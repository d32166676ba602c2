package rm

import (
	"context"
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
		"Delete a twin interface and its instance.",
		struct{}{},
		flarc.Args{
			{
				Name: ARG_INTERFACE_NAME, Required: true,
				Help: "Canonical name of the interface to delete.",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Delete a twin. Both YAML documents and the named graph in the triple
store are removed. There is no undo.
`),
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
		if err := client.DeleteInterface(ctx, name); err != nil {
			return fmt.Errorf("%w: interface: %s", err, name)
		}
		fmt.Fprintln(cl.Stdout(), name)
		return nil
	}
}
