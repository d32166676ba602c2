package thing

import (
	thing_create "github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/thing/create"
	thing_export "github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/thing/export"
	thing_find "github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/thing/find"
	thing_preview "github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/thing/preview"
	thing_query "github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/thing/query"
	thing_rm "github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/thing/rm"
	thing_show "github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/thing/show"
	thing_template "github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/thing/template"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {

	template, err := thing_template.New()
	if err != nil {
		return nil, err
	}

	preview, err := thing_preview.New()
	if err != nil {
		return nil, err
	}

	create, err := thing_create.New()
	if err != nil {
		return nil, err
	}

	find, err := thing_find.New()
	if err != nil {
		return nil, err
	}

	show, err := thing_show.New()
	if err != nil {
		return nil, err
	}

	rm, err := thing_rm.New()
	if err != nil {
		return nil, err
	}

	export, err := thing_export.New()
	if err != nil {
		return nil, err
	}

	query, err := thing_query.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate digital twins.",
		struct{}{},
		flarc.WithSubcommand("template", template),
		flarc.WithSubcommand("preview", preview),
		flarc.WithSubcommand("create", create),
		flarc.WithSubcommand("find", find),
		flarc.WithSubcommand("show", show),
		flarc.WithSubcommand("rm", rm),
		flarc.WithSubcommand("export", export),
		flarc.WithSubcommand("query", query),
	)

}
