// Package catalog serves the DTDL interface library: a directory of
// DTDL v2 documents indexed by a registry file. It answers searches,
// summarizes interfaces, validates thing drafts against them, ranks
// best matches and converts interfaces into draft templates.
package catalog

import (
	"encoding/json"

	"github.com/ems-iodt/twinscale-api-types/dtdl"
)

// Schema is a DTDL content schema: either a primitive type name or a
// complex schema object (Enum, Object, Array).
type Schema struct {
	Primitive string
	Complex   *ComplexSchema
}

type ComplexSchema struct {
	Type       string      `json:"@type"`
	EnumValues []EnumValue `json:"enumValues,omitempty"`
}

type EnumValue struct {
	Name      string `json:"name"`
	EnumValue any    `json:"enumValue"`
}

func (s *Schema) UnmarshalJSON(b []byte) error {
	prim := new(string)
	if err := json.Unmarshal(b, prim); err == nil {
		*s = Schema{Primitive: *prim}
		return nil
	}
	c := new(ComplexSchema)
	if err := json.Unmarshal(b, c); err != nil {
		return err
	}
	*s = Schema{Complex: c}
	return nil
}

func (s Schema) MarshalJSON() ([]byte, error) {
	if s.Complex != nil {
		return json.Marshal(s.Complex)
	}
	return json.Marshal(s.Primitive)
}

// TwinType maps this schema onto a thing property type. Unknown
// schemas degrade to string.
func (s Schema) TwinType() string {
	if s.Complex != nil {
		switch s.Complex.Type {
		case "Object":
			return "object"
		case "Array":
			return "array"
		default:
			// Enum and anything else carry string values.
			return "string"
		}
	}
	switch s.Primitive {
	case "boolean", "double", "float", "integer", "long", "string":
		return s.Primitive
	case "date", "dateTime", "duration", "time":
		return "string"
	default:
		return "string"
	}
}

// Content is one entry of an interface's contents array.
type Content struct {
	Type        string `json:"@type"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`
	Schema      Schema `json:"schema,omitempty"`
	Writable    bool   `json:"writable,omitempty"`
	Unit        string `json:"unit,omitempty"`
}

// Document is a parsed DTDL v2 interface file.
type Document struct {
	Context     any       `json:"@context,omitempty"`
	ID          string    `json:"@id"`
	Type        string    `json:"@type"`
	DisplayName string    `json:"displayName,omitempty"`
	Description string    `json:"description,omitempty"`
	Extends     []string  `json:"extends,omitempty"`
	Contents    []Content `json:"contents,omitempty"`
}

func (d *Document) UnmarshalJSON(b []byte) error {
	type plain Document
	p := struct {
		*plain
		Extends json.RawMessage `json:"extends,omitempty"`
	}{plain: (*plain)(d)}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	if len(p.Extends) != 0 {
		// extends is a single DTMI or an array of them.
		single := new(string)
		if err := json.Unmarshal(p.Extends, single); err == nil {
			d.Extends = []string{*single}
		} else if err := json.Unmarshal(p.Extends, &d.Extends); err != nil {
			return err
		}
	}
	return nil
}

func (d Document) contentsOfType(typ string) []Content {
	found := []Content{}
	for _, c := range d.Contents {
		if c.Type == typ {
			found = append(found, c)
		}
	}
	return found
}

func (d Document) Telemetry() []Content  { return d.contentsOfType("Telemetry") }
func (d Document) Properties() []Content { return d.contentsOfType("Property") }
func (d Document) Commands() []Content   { return d.contentsOfType("Command") }
func (d Document) Components() []Content { return d.contentsOfType("Component") }

// Summarize denormalizes the document into the summary form served to
// clients and used for auto-fill.
func (d Document) Summarize() dtdl.Summary {
	summary := dtdl.Summary{
		DTMI:             d.ID,
		DisplayName:      d.DisplayName,
		Description:      d.Description,
		TelemetryDetails: []dtdl.ContentDetail{},
		PropertyDetails:  []dtdl.ContentDetail{},
		CommandDetails:   []dtdl.ContentDetail{},
	}

	for _, c := range d.Telemetry() {
		summary.TelemetryDetails = append(summary.TelemetryDetails, dtdl.ContentDetail{
			Name:        c.Name,
			DisplayName: displayNameOf(c),
			Description: c.Description,
			Schema:      c.Schema.Primitive,
			Type:        c.Schema.TwinType(),
			Unit:        c.Unit,
		})
	}
	for _, c := range d.Properties() {
		writable := c.Writable
		summary.PropertyDetails = append(summary.PropertyDetails, dtdl.ContentDetail{
			Name:        c.Name,
			DisplayName: displayNameOf(c),
			Description: c.Description,
			Schema:      c.Schema.Primitive,
			Type:        c.Schema.TwinType(),
			Writable:    &writable,
			Unit:        c.Unit,
		})
	}
	for _, c := range d.Commands() {
		summary.CommandDetails = append(summary.CommandDetails, dtdl.ContentDetail{
			Name:        c.Name,
			DisplayName: displayNameOf(c),
			Description: c.Description,
		})
	}

	summary.TelemetryCount = len(summary.TelemetryDetails)
	summary.PropertyCount = len(summary.PropertyDetails)
	summary.CommandCount = len(summary.CommandDetails)
	summary.ComponentCount = len(d.Components())
	return summary
}

func displayNameOf(c Content) string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}
