package export

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ems-iodt/twinscale/cmd/twinctl/env"
	"github.com/ems-iodt/twinscale/cmd/twinctl/rest"
	"github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/common"
	"github.com/youta-t/flarc"
)

const ARG_INTERFACE_NAME = "INTERFACE_NAME"

type Flag struct {
	Output string `flag:"" alias:"o" metavar:"path/to/archive.zip" help:"Write the archive here instead of stdout."`
}

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Download the twin documents of a thing as a ZIP archive.",
		Flag{},
		flarc.Args{
			{
				Name: ARG_INTERFACE_NAME, Required: true,
				Help: "Canonical name of the thing to export.",
			},
		},
		common.NewTask(Task()),
		flarc.WithDescription(`
Download the TwinInterface and TwinInstance YAML of a thing, zipped.

	{{ .Command }} ems-iodt2-my-thing-01 -o my-thing.zip
	{{ .Command }} ems-iodt2-my-thing-01 > my-thing.zip
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
		name := cl.Args()[ARG_INTERFACE_NAME][0]

		var sink io.Writer = cl.Stdout()
		if out := cl.Flags().Output; out != "" {
			f, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(0644))
			if err != nil {
				return fmt.Errorf("cannot open output file: %s: %w", out, err)
			}
			defer f.Close()
			sink = f
		}

		return client.ExportZip(ctx, name, func(r io.Reader) error {
			_, err := io.Copy(sink, r)
			return err
		})
	}
}
