package catalog

import (
	"fmt"
	"strings"

	"github.com/ems-iodt/twinscale-api-types/things"
	"github.com/ems-iodt/twinscale/pkg/twin/dtdlmap"
)

// ToThingSpec converts a catalog interface into a thing draft
// template. thingName may be empty, then a name is derived from the
// interface display name. The draft carries its DTDL binding and the
// summary it was derived from, so auto-fill provenance survives a
// round trip through the draft file.
func (lib *Library) ToThingSpec(dtmi string, thingName string) (things.ThingSpec, error) {
	doc, err := lib.Get(dtmi)
	if err != nil {
		return things.ThingSpec{}, err
	}

	name := thingName
	if name == "" {
		name = strings.ReplaceAll(strings.ToLower(doc.DisplayName), " ", "-")
	}
	if name == "" {
		return things.ThingSpec{}, fmt.Errorf("interface %s has no display name; pass a thing name", dtmi)
	}

	summary := doc.Summarize()
	properties, commands := dtdlmap.MapSummary(summary)

	ref := summary.Ref()
	if meta, err := lib.Ref(dtmi); err == nil {
		ref = meta
	}

	spec := things.ThingSpec{
		ID:            name,
		Name:          doc.DisplayName,
		Description:   doc.Description,
		Properties:    properties,
		Relationships: []things.Relationship{},
		Commands:      commands,
		DTDLInterface: &ref,
		DTDLSummary:   &summary,
	}
	if err := spec.ThingType.Parse(ref.ThingType); err != nil {
		spec.ThingType = things.Device
	}
	return spec, nil
}
