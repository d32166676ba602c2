package preview

import (
	"context"
	"fmt"
	"log"

	prof "github.com/ems-iodt/twinscale/cmd/twinctl/config/profiles"
	"github.com/ems-iodt/twinscale/cmd/twinctl/env"
	"github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/common"
	"github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/internal/draft"
	"github.com/ems-iodt/twinscale/pkg/twin/projection"
	"github.com/youta-t/flarc"
)

type Flag struct {
	File string `flag:"" alias:"f" metavar:"path/to/thing.yaml" help:"Draft file to render. \"-\" means stdin."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Render the twin documents of a draft locally.",
		Flag{File: "-"},
		flarc.Args{},
		common.NewTaskWithCommonFlag(Task()),
		flarc.WithDescription(`
Render the TwinInterface and TwinInstance YAML documents a draft would
produce, without contacting the server.

	{{ .Command }} -f thing.yaml

The documents are printed to stdout, interface first, separated by
"---". This is exactly what "thing create" would store.
`),
	)
}

func Task() common.TwinTaskWithCommonFlag[Flag] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		cf common.CommonFlags,
		cl flarc.Commandline[Flag],
		params []any,
	) error {
		spec, err := draft.Load(cl.Flags().File, cl.Stdin())
		if err != nil {
			return err
		}

		// Preview does not need a server, but it still honors the
		// twinenv defaults of the working directory.
		twinEnv, err := env.LoadTwinEnv(cf.Env)
		if err != nil {
			return err
		}
		spec = draft.ApplyEnvDefaults(spec, *twinEnv)

		if spec.ID == "" || spec.Name == "" {
			return fmt.Errorf("%w: the draft needs both id and name", flarc.ErrUsage)
		}

		tenant := tenantOf(cf)

		iface, instance, err := projection.Documents(spec, tenant)
		if err != nil {
			return err
		}

		out := cl.Stdout()
		if _, err := out.Write([]byte(iface)); err != nil {
			return err
		}
		if _, err := out.Write([]byte("---\n")); err != nil {
			return err
		}
		_, err = out.Write([]byte(instance))
		return err
	}
}

// tenantOf reads the tenant from the selected profile. Preview works
// even without any profile store; the tenant label is just omitted.
func tenantOf(cf common.CommonFlags) string {
	store, err := prof.LoadProfileStore(cf.ProfileStore)
	if err != nil {
		return ""
	}
	if p, ok := store[cf.Profile]; ok {
		return p.Tenant
	}
	return ""
}
