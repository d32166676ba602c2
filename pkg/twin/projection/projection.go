// Package projection renders a thing definition into its two YAML
// documents, TwinInterface and TwinInstance.
//
// Both renderers are pure: the same spec and tenant always yield
// byte-identical output. Downstream tooling quotes the literal YAML,
// so field order and quoting here are a compatibility contract.
package projection

import (
	"bytes"

	"github.com/ems-iodt/twinscale-api-types/things"
	"github.com/ems-iodt/twinscale/pkg/twin/names"
	"github.com/ems-iodt/twinscale/pkg/utils/yamler"
	"gopkg.in/yaml.v3"
)

const (
	APIVersion    = "dtd.twinscale/v0"
	KindInterface = "TwinInterface"
	KindInstance  = "TwinInstance"
)

// Interface renders the TwinInterface document.
//
// Callers should only invoke this once the spec's ID and Name are both
// non-empty; that guard lives at the caller, not here.
func Interface(spec things.ThingSpec, tenantID string) (string, error) {
	name := names.CanonicalName(spec.ID)

	properties := []*yaml.Node{}
	for _, p := range spec.Properties {
		properties = append(properties, propertyNode(p))
	}

	relationships := []*yaml.Node{}
	for _, r := range spec.Relationships {
		// Relationship.Description is accepted on the type but not
		// rendered here. Existing output asymmetry, kept for
		// compatibility.
		relationships = append(relationships, yamler.Map(
			yamler.Entry(yamler.Text("name"), yamler.Text(r.Name)),
			yamler.Entry(yamler.Text("interface"), yamler.Text(r.TargetInterface)),
		))
	}

	commands := []*yaml.Node{}
	for _, c := range spec.Commands {
		commands = append(commands, yamler.Map(
			yamler.Entry(yamler.Text("name"), yamler.Text(c.Name)),
			yamler.Entry(yamler.Text("description"), stringNode(c.Description)),
		))
	}

	doc := yamler.Map(
		yamler.Entry(yamler.Text("apiVersion"), yamler.Text(APIVersion)),
		yamler.Entry(yamler.Text("kind"), yamler.Text(KindInterface)),
		yamler.Entry(yamler.Text("metadata"), metadataNode(spec, tenantID, name, true)),
		yamler.Entry(yamler.Text("spec"), yamler.Map(
			yamler.Entry(yamler.Text("name"), yamler.Text(name)),
			yamler.Entry(yamler.Text("properties"), yamler.Seq(properties...)),
			yamler.Entry(yamler.Text("relationships"), yamler.Seq(relationships...)),
			yamler.Entry(yamler.Text("commands"), yamler.Seq(commands...)),
		)),
	)

	return encode(doc)
}

// Instance renders the TwinInstance document. The instance always
// binds itself to the interface of the same canonical name, and its
// relationship list is always empty in this generation path.
func Instance(spec things.ThingSpec, tenantID string) (string, error) {
	name := names.CanonicalName(spec.ID)

	doc := yamler.Map(
		yamler.Entry(yamler.Text("apiVersion"), yamler.Text(APIVersion)),
		yamler.Entry(yamler.Text("kind"), yamler.Text(KindInstance)),
		yamler.Entry(yamler.Text("metadata"), metadataNode(spec, tenantID, name, false)),
		yamler.Entry(yamler.Text("spec"), yamler.Map(
			yamler.Entry(yamler.Text("name"), yamler.Text(name)),
			yamler.Entry(yamler.Text("interface"), yamler.Text(name)),
			yamler.Entry(yamler.Text("twinInstanceRelationships"), yamler.Seq()),
		)),
	)

	return encode(doc)
}

// Documents renders both projections of one spec.
func Documents(spec things.ThingSpec, tenantID string) (iface, instance string, err error) {
	if iface, err = Interface(spec, tenantID); err != nil {
		return "", "", err
	}
	if instance, err = Instance(spec, tenantID); err != nil {
		return "", "", err
	}
	return iface, instance, nil
}

func metadataNode(spec things.ThingSpec, tenantID, name string, withAnnotations bool) *yaml.Node {
	entries := []yamler.MapEntry{
		yamler.Entry(yamler.Text("name"), yamler.Text(name)),
		yamler.Entry(yamler.Text("labels"), labelsNode(spec, tenantID)),
	}

	if withAnnotations {
		if a := annotationsNode(spec); a != nil {
			entries = append(entries, yamler.Entry(yamler.Text("annotations"), a))
		}
	}

	return yamler.Map(entries...)
}

func labelsNode(spec things.ThingSpec, tenantID string) *yaml.Node {
	entries := []yamler.MapEntry{}
	if tenantID != "" {
		entries = append(entries, yamler.Entry(yamler.Text("tenant"), yamler.Text(tenantID)))
	}
	entries = append(entries, yamler.Entry(
		yamler.Text("thing-type"), yamler.Text(spec.ThingType.String()),
	))
	return yamler.Map(entries...)
}

// annotationsNode returns nil when every annotation source field is
// empty; the whole metadata.annotations key is omitted then.
func annotationsNode(spec things.ThingSpec) *yaml.Node {
	entries := []yamler.MapEntry{}

	for _, a := range []struct {
		key   string
		value string
	}{
		{"manufacturer", spec.Manufacturer},
		{"model", spec.Model},
		{"serialNumber", spec.SerialNumber},
		{"firmwareVersion", spec.FirmwareVersion},
	} {
		if a.value == "" {
			continue
		}
		entries = append(entries, yamler.Entry(
			yamler.Text(a.key), yamler.QText(a.value),
		))
	}

	if len(entries) == 0 {
		return nil
	}
	return yamler.Map(entries...)
}

func propertyNode(p things.Property) *yaml.Node {
	return yamler.Map(
		yamler.Entry(yamler.Text("name"), yamler.Text(p.Name)),
		yamler.Entry(yamler.Text("type"), stringNode(p.Schema.Type)),
		yamler.Entry(yamler.Text("description"), stringNode(p.Description)),
		yamler.Entry(yamler.Text("x-writable"), yamler.Bool(p.Writable)),
	)
}

// stringNode renders a string field that may be empty. An empty plain
// scalar would read back as null, so empty values are double quoted.
func stringNode(v string) *yaml.Node {
	if v == "" {
		return yamler.QText(v)
	}
	return yamler.Text(v)
}

func encode(doc *yaml.Node) (string, error) {
	buf := bytes.NewBuffer(nil)
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
