package template

import (
	"context"
	"log"

	"github.com/ems-iodt/twinscale/cmd/twinctl/env"
	"github.com/ems-iodt/twinscale/cmd/twinctl/rest"
	"github.com/ems-iodt/twinscale/cmd/twinctl/subcommands/common"
	y "github.com/ems-iodt/twinscale/pkg/utils/yamler"
	"github.com/youta-t/flarc"
	"gopkg.in/yaml.v3"
)

func New() (flarc.Command, error) {
	return flarc.NewCommand(
		"Generate an annotated thing definition draft.",
		struct{}{},
		flarc.Args{},
		common.NewTask(Task()),
		flarc.WithDescription(`
Generate a draft file to be edited and passed to "thing create".

	{{ .Command }} > thing.yaml

The draft carries every field a definition can have, with comments
explaining them. Defaults from your twinenv file (thing type,
coordinates) are applied.
`),
	)
}

func Task() common.Task[struct{}] {
	return func(
		ctx context.Context,
		logger *log.Logger,
		twinEnv env.TwinEnv,
		client rest.TwinClient,
		cl flarc.Commandline[struct{}],
		params []any,
	) error {
		thingType := "device"
		if twinEnv.ThingType != "" {
			thingType = twinEnv.ThingType.String()
		}
		lat, lon := twinEnv.Coordinates()

		doc := y.Map(
			y.Entry(
				y.Text("id", y.WithHeadComment(`ID of the thing. Required.
A namespace prefix up to the first ":" is dropped; the rest is
slugified into the stored name.`)),
				y.QText("acme:my-thing-01"),
			),
			y.Entry(
				y.Text("name", y.WithHeadComment("Display name. Required.")),
				y.QText("My Thing"),
			),
			y.Entry(y.Text("description"), y.QText("")),
			y.Entry(
				y.Text("thingType", y.WithHeadComment(`one of: device, sensor, component`)),
				y.Text(thingType),
			),
			y.Entry(y.Text("manufacturer"), y.QText("")),
			y.Entry(y.Text("model"), y.QText("")),
			y.Entry(y.Text("serialNumber"), y.QText("")),
			y.Entry(y.Text("firmwareVersion"), y.QText("")),
			y.Entry(
				y.Text("properties", y.WithHeadComment(`state the thing holds. schema is a type name
("string", "float", ...) or a mapping with type/minimum/maximum.`)),
				y.Seq(
					y.Map(
						y.Entry(y.Text("name"), y.QText("status")),
						y.Entry(y.Text("schema"), y.QText("string")),
						y.Entry(y.Text("writable"), y.Bool(true)),
					),
				),
			),
			y.Entry(
				y.Text("relationships", y.WithHeadComment("links to other interfaces.")),
				y.Seq(),
			),
			y.Entry(
				y.Text("commands", y.WithHeadComment("operations the thing accepts.")),
				y.Seq(),
			),
			y.Entry(y.Text("latitude"), y.Number(lat)),
			y.Entry(y.Text("longitude"), y.Number(lon)),
		)

		enc := yaml.NewEncoder(cl.Stdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(doc)
	}
}
