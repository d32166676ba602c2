package find

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ems-iodt/twinscale/cmd/twinctl/env"
	"github.com/ems-iodt/twinscale/cmd/twinctl/rest"
	"github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/common"
	"github.com/youta-t/flarc"
)

type Flag struct {
	Name  string `flag:"" alias:"n" help:"Substring to filter interface names."`
	Limit int    `flag:"" help:"Maximum number of interfaces to return. 0 means server default."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Find stored twin interfaces.",
		Flag{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Find twin interfaces stored for your tenant.

	{{ .Command }}
	{{ .Command }} -n temp --limit 10

Results are printed to stdout as JSON.
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
		flags := cl.Flags()
		found, err := client.FindInterfaces(ctx, flags.Name, flags.Limit)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(found); err != nil {
			logger.Panicf("fail to dump found interfaces")
		}
		return nil
	}
}
