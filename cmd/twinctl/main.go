package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/common"
	subdtdl "github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/dtdl"
	subinit "github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/init"
	"github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/logger"
	subthing "github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/thing"
	subver "github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/version"
	"github.com/ems-iodt/twinscale/pkg/utils/try"
	"github.com/youta-t/flarc"
)

func main() {
	name := path.Base(os.Args[0])
	logger := logger.Default()
	logger.SetPrefix(fmt.Sprintf("[%s] ", name))

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, os.Kill,
	)
	defer cancel()

	cf := try.To(common.Flags(".")).OrFatal(logger)
	init := try.To(subinit.New()).OrFatal(logger)
	thing := try.To(subthing.New()).OrFatal(logger)
	dtdl := try.To(subdtdl.New()).OrFatal(logger)
	version := try.To(subver.New()).OrFatal(logger)

	twinctl := try.To(
		flarc.NewCommandGroup(
			"twinscale commandline interface",
			cf,
			flarc.WithSubcommand("init", init),
			flarc.WithSubcommand("thing", thing),
			flarc.WithSubcommand("dtdl", dtdl),
			flarc.WithSubcommand("version", version),
		),
	).OrFatal(logger)

	os.Exit(flarc.Run(ctx, twinctl, flarc.WithHelp(true)))
}
