package validate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/ems-iodt/twinscale-api-types/dtdl"
	"github.com/ems-iodt/twinscale/cmd/twinctl/env"
	"github.com/ems-iodt/twinscale/cmd/twinctl/rest"
	"github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/common"
	"github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/internal/draft"
	"github.com/ems-iodt/twinscale/pkg/utils/debounce"
	"github.com/ems-iodt/twinscale/pkg/utils/filewatch"
	"github.com/youta-t/flarc"
)

const ARG_DTMI = "DTMI"

type Flag struct {
	File   string `flag:"" alias:"f" metavar:"path/to/thing.yaml" help:"Draft file to validate. \"-\" means stdin."`
	Strict bool   `flag:"" help:"Count warnings as failures."`
	Watch  bool   `flag:"" alias:"w" help:"Keep watching the draft file and re-validate on change."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Validate a draft against a DTDL interface.",
		Flag{File: "-"},
		flarc.Args{
			{
				Name: ARG_DTMI, Required: true,
				Help: "DTMI of the interface to validate against.",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Check how well a draft covers a DTDL interface.

	{{ .Command }} dtmi:com:example:Thermostat;1 -f thing.yaml

With --watch, the draft is re-validated half a second after the last
edit, so an editor session gets a report per save burst, not per write.
Reports of outdated file contents are never printed over newer ones.

	{{ .Command }} dtmi:com:example:Thermostat;1 -f thing.yaml --watch
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
		dtmi := cl.Args()[ARG_DTMI][0]

		if !flags.Watch {
			result, err := validateOnce(ctx, client, twinEnv, flags.File, cl.Stdin(), dtmi, flags.Strict)
			if err != nil {
				return err
			}
			if err := report(cl.Stdout(), result); err != nil {
				return err
			}
			if !result.IsCompatible {
				return errors.New("the draft is not compatible")
			}
			return nil
		}

		if flags.File == "-" {
			return fmt.Errorf("%w: --watch needs a draft file, not stdin", flarc.ErrUsage)
		}

		return watch(ctx, logger, client, twinEnv, flags.File, cl, dtmi, flags.Strict)
	}
}

func validateOnce(
	ctx context.Context,
	client rest.TwinClient,
	twinEnv env.TwinEnv,
	file string,
	stdin io.Reader,
	dtmi string,
	strict bool,
) (dtdl.ValidationResult, error) {
	spec, err := draft.Load(file, stdin)
	if err != nil {
		return dtdl.ValidationResult{}, err
	}
	spec = draft.ApplyEnvDefaults(spec, twinEnv)
	return client.ValidateThing(ctx, spec, dtmi, strict)
}

func watch(
	ctx context.Context,
	logger *log.Logger,
	client rest.TwinClient,
	twinEnv env.TwinEnv,
	file string,
	cl flarc.Commandline[Flag],
	dtmi string,
	strict bool,
) error {
	events, err := filewatch.Modified(ctx, file)
	if err != nil {
		return err
	}

	deb := debounce.New(debounce.DefaultQuiet)
	defer deb.Stop()

	// out is shared between the first run and debounced reruns.
	var out sync.Mutex

	run := func(token uint64) {
		result, err := validateOnce(ctx, client, twinEnv, file, cl.Stdin(), dtmi, strict)

		// A newer edit happened while we were talking to the server.
		// Its own run will report; this result is stale.
		if !deb.Current(token) {
			return
		}

		out.Lock()
		defer out.Unlock()
		if err != nil {
			logger.Printf("validation failed: %s", err)
			return
		}
		if err := report(cl.Stdout(), result); err != nil {
			logger.Printf("cannot write report: %s", err)
		}
	}

	logger.Printf("watching %s (stop with Ctrl-C)", file)
	run(0)

	for range events {
		deb.Trigger(run)
	}
	return ctx.Err()
}

func report(out io.Writer, result dtdl.ValidationResult) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "    ")
	return enc.Encode(result)
}
