package create

import (
	"context"
	"fmt"
	"log"

	"github.com/ems-iodt/twinscale/cmd/twinctl/env"
	"github.com/ems-iodt/twinscale/cmd/twinctl/rest"
	"github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/common"
	"github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/internal/draft"
	"github.com/ems-iodt/twinscale/pkg/twin/names"
	"github.com/youta-t/flarc"
)

type Flag struct {
	File  string `flag:"" alias:"f" metavar:"path/to/thing.yaml" help:"Draft file to register. \"-\" means stdin."`
	Quiet bool   `flag:"" alias:"q" help:"Print only the stored interface name."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Register a thing definition on the server.",
		Flag{File: "-"},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Register a draft as a digital twin.

	{{ .Command }} -f thing.yaml

The server renders both twin documents, stores them and loads them into
the triple store. The stored documents are printed back to stdout.
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
		spec, err := draft.Load(cl.Flags().File, cl.Stdin())
		if err != nil {
			return err
		}
		spec = draft.ApplyEnvDefaults(spec, twinEnv)

		if spec.ID == "" || spec.Name == "" {
			return fmt.Errorf("%w: the draft needs both id and name", flarc.ErrUsage)
		}
		if client.Tenant() == "" {
			return fmt.Errorf(
				"%w: the selected profile has no tenant. Add `tenant:` to your twinprofile and retry",
				flarc.ErrUsage,
			)
		}

		result, err := client.CreateThing(ctx, spec)
		if err != nil {
			return err
		}

		if !result.StoredInRDF {
			logger.Printf(
				"the documents are saved, but loading them into the triple store failed. `twinctl thing find` will not list %s",
				result.InterfaceName,
			)
		}

		if cl.Flags().Quiet {
			fmt.Fprintln(cl.Stdout(), result.InterfaceName)
			return nil
		}

		logger.Printf("registered: %s (canonical name of %s)", result.InterfaceName, names.Normalize(spec.ID).CleanID)

		out := cl.Stdout()
		if _, err := out.Write([]byte(result.InterfaceYAML)); err != nil {
			return err
		}
		if _, err := out.Write([]byte("---\n")); err != nil {
			return err
		}
		_, err = out.Write([]byte(result.InstanceYAML))
		return err
	}
}
