package match

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ems-iodt/twinscale/cmd/twinctl/env"
	"github.com/ems-iodt/twinscale/cmd/twinctl/rest"
	"github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/common"
	"github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/internal/draft"
	"github.com/youta-t/flarc"
)

type Flag struct {
	File  string `flag:"" alias:"f" metavar:"path/to/thing.yaml" help:"Draft file to match. \"-\" means stdin."`
	Limit int    `flag:"" help:"Maximum number of matches to return. 0 means server default."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Rank catalog interfaces by fit to a draft.",
		Flag{File: "-"},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Ask the server which DTDL interfaces fit a draft best.

	{{ .Command }} -f thing.yaml --limit 5

Each match combines a validation score with a metadata score.
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

		spec, err := draft.Load(flags.File, cl.Stdin())
		if err != nil {
			return err
		}
		spec = draft.ApplyEnvDefaults(spec, twinEnv)

		matches, err := client.FindBestMatch(ctx, spec, flags.Limit)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cl.Stdout())
		enc.SetIndent("", "    ")
		if err := enc.Encode(matches); err != nil {
			logger.Panicf("fail to dump matches")
		}
		return nil
	}
}
