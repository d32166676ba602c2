package dtdl

import (
	dtdl_convert "github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/dtdl/convert"
	dtdl_fill "github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/dtdl/fill"
	dtdl_find "github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/dtdl/find"
	dtdl_match "github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/dtdl/match"
	dtdl_show "github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/dtdl/show"
	dtdl_validate "github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/dtdl/validate"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {

	find, err := dtdl_find.New()
	if err != nil {
		return nil, err
	}

	show, err := dtdl_show.New()
	if err != nil {
		return nil, err
	}

	fill, err := dtdl_fill.New()
	if err != nil {
		return nil, err
	}

	validate, err := dtdl_validate.New()
	if err != nil {
		return nil, err
	}

	match, err := dtdl_match.New()
	if err != nil {
		return nil, err
	}

	convert, err := dtdl_convert.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Work with the DTDL interface catalog.",
		struct{}{},
		flarc.WithSubcommand("find", find),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("fill", fill),
		flarc.WithSubcommand("validate", validate),
		flarc.WithSubcommand("match", match),
		flarc.WithSubcommand("convert", convert),
	)

}
