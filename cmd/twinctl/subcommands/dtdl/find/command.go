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
	ThingType string   `flag:"thing-type" help:"Filter by thing type (device, sensor, component)."`
	Domain    string   `flag:"" help:"Filter by domain (hvac, energy, ...)."`
	Category  string   `flag:"" help:"Filter by category."`
	Tags      []string `flag:"" help:"Filter by tag. Repeatable."`
	Keyword   string   `flag:"" alias:"k" help:"Free text search over names and descriptions."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Browse the DTDL interface catalog.",
		Flag{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Browse the catalog of DTDL interfaces known to the server.

	{{ .Command }} --thing-type sensor --domain hvac
	{{ .Command }} -k temperature

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
		found, err := client.FindDTDLInterfaces(ctx, rest.CatalogFilter{
			ThingType: flags.ThingType,
			Domain:    flags.Domain,
			Category:  flags.Category,
			Tags:      flags.Tags,
			Keyword:   flags.Keyword,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(found); err != nil {
			logger.Panicf("fail to dump catalog entries")
		}
		return nil
	}
}
