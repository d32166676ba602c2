package things

import (
	"encoding/json"
	"fmt"

	"github.com/ems-iodt/twinscale-api-types/dtdl"
	"github.com/ems-iodt/twinscale-api-types/internal/utils/cmp"
	"gopkg.in/yaml.v3"
)

// Fallback coordinates used until a draft sets its own location.
const (
	DefaultLatitude  = 39.9334
	DefaultLongitude = 32.8597
)

type ThingType string

const (
	Device    ThingType = "device"
	Sensor    ThingType = "sensor"
	Component ThingType = "component"
)

// Parse reads a thing type expression. Empty means Device.
func (tt *ThingType) Parse(s string) error {
	switch ThingType(s) {
	case "":
		*tt = Device
	case Device, Sensor, Component:
		*tt = ThingType(s)
	default:
		return fmt.Errorf(`unknown thing type (device, sensor or component): "%s"`, s)
	}
	return nil
}

func (tt *ThingType) UnmarshalJSON(b []byte) error {
	expr := new(string)
	if err := json.Unmarshal(b, expr); err != nil {
		return err
	}
	return tt.Parse(*expr)
}

func (tt *ThingType) UnmarshalYAML(node *yaml.Node) error {
	expr := new(string)
	if err := node.Decode(expr); err != nil {
		return err
	}
	return tt.Parse(*expr)
}

func (tt ThingType) String() string {
	if tt == "" {
		return string(Device)
	}
	return string(tt)
}

// Schema is the value type of a property: either a bare scalar type
// name (string, integer, float, boolean, object, array) or a bounded
// numeric range.
//
// On the wire it is either a plain string or a mapping with "type" and
// optional "minimum"/"maximum", so both forms round-trip.
type Schema struct {
	Type    string   `json:"type" yaml:"type"`
	Minimum *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
}

// IsRange reports whether this schema carries numeric bounds.
func (s Schema) IsRange() bool {
	return s.Minimum != nil || s.Maximum != nil
}

func (s Schema) Equal(o Schema) bool {
	return s.Type == o.Type &&
		cmp.DerefEqual(s.Minimum, o.Minimum) &&
		cmp.DerefEqual(s.Maximum, o.Maximum)
}

func (s Schema) MarshalJSON() ([]byte, error) {
	if !s.IsRange() {
		return json.Marshal(s.Type)
	}
	type plain Schema
	return json.Marshal(plain(s))
}

func (s *Schema) UnmarshalJSON(b []byte) error {
	expr := new(string)
	if err := json.Unmarshal(b, expr); err == nil {
		*s = Schema{Type: *expr}
		return nil
	}
	type plain Schema
	p := new(plain)
	if err := json.Unmarshal(b, p); err != nil {
		return err
	}
	*s = Schema(*p)
	return nil
}

func (s Schema) MarshalYAML() (interface{}, error) {
	if !s.IsRange() {
		return yaml.Node{Kind: yaml.ScalarNode, Value: s.Type}, nil
	}
	type plain Schema
	return plain(s), nil
}

func (s *Schema) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		expr := new(string)
		if err := node.Decode(expr); err != nil {
			return err
		}
		*s = Schema{Type: *expr}
		return nil
	}
	type plain Schema
	p := new(plain)
	if err := node.Decode(p); err != nil {
		return err
	}
	*s = Schema(*p)
	return nil
}

type Property struct {
	Name        string `json:"name" yaml:"name"`
	Schema      Schema `json:"schema" yaml:"schema"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Writable    bool   `json:"writable" yaml:"writable"`
	Unit        string `json:"unit,omitempty" yaml:"unit,omitempty"`
}

func (p Property) Equal(o Property) bool {
	return p.Name == o.Name &&
		p.Schema.Equal(o.Schema) &&
		p.Description == o.Description &&
		p.Writable == o.Writable &&
		p.Unit == o.Unit
}

type Relationship struct {
	Name            string `json:"name" yaml:"name"`
	TargetInterface string `json:"target_interface" yaml:"targetInterface"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
}

func (r Relationship) Equal(o Relationship) bool {
	return r.Name == o.Name &&
		r.TargetInterface == o.TargetInterface &&
		r.Description == o.Description
}

type Command struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

func (c Command) Equal(o Command) bool {
	return c.Name == o.Name && c.Description == o.Description
}

// ThingSpec is the full definition of a thing as drafted by an
// operator and sent to POST /api/twin/create.
//
// IncludeServiceSpec and StoreInRDF are pointers so that an omitted
// field defaults to true; use the accessor methods when reading.
type ThingSpec struct {
	ID                 string            `json:"id" yaml:"id"`
	Name               string            `json:"name" yaml:"name"`
	Description        string            `json:"description,omitempty" yaml:"description,omitempty"`
	ThingType          ThingType         `json:"thing_type,omitempty" yaml:"thingType,omitempty"`
	Manufacturer       string            `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	Model              string            `json:"model,omitempty" yaml:"model,omitempty"`
	SerialNumber       string            `json:"serial_number,omitempty" yaml:"serialNumber,omitempty"`
	FirmwareVersion    string            `json:"firmware_version,omitempty" yaml:"firmwareVersion,omitempty"`
	Properties         []Property        `json:"properties" yaml:"properties"`
	Relationships      []Relationship    `json:"relationships" yaml:"relationships"`
	Commands           []Command         `json:"commands" yaml:"commands"`
	Latitude           *float64          `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude          *float64          `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	IncludeServiceSpec *bool             `json:"include_service_spec,omitempty" yaml:"includeServiceSpec,omitempty"`
	StoreInRDF         *bool             `json:"store_in_rdf,omitempty" yaml:"storeInRdf,omitempty"`
	DTDLInterface      *dtdl.InterfaceRef `json:"dtdl_interface,omitempty" yaml:"dtdlInterface,omitempty"`
	DTDLSummary        *dtdl.Summary      `json:"dtdl_interface_summary,omitempty" yaml:"dtdlInterfaceSummary,omitempty"`
}

func (ts ThingSpec) Equal(o ThingSpec) bool {
	return ts.ID == o.ID &&
		ts.Name == o.Name &&
		ts.Description == o.Description &&
		ts.ThingType == o.ThingType &&
		ts.Manufacturer == o.Manufacturer &&
		ts.Model == o.Model &&
		ts.SerialNumber == o.SerialNumber &&
		ts.FirmwareVersion == o.FirmwareVersion &&
		cmp.SliceEqual(ts.Properties, o.Properties) &&
		cmp.SliceEqual(ts.Relationships, o.Relationships) &&
		cmp.SliceEqual(ts.Commands, o.Commands) &&
		cmp.DerefEqual(ts.Latitude, o.Latitude) &&
		cmp.DerefEqual(ts.Longitude, o.Longitude) &&
		cmp.DerefEqual(ts.IncludeServiceSpec, o.IncludeServiceSpec) &&
		cmp.DerefEqual(ts.StoreInRDF, o.StoreInRDF) &&
		cmp.PointerEqual(ts.DTDLInterface, o.DTDLInterface) &&
		cmp.PointerEqual(ts.DTDLSummary, o.DTDLSummary)
}

// Coordinates yields the draft location, falling back to the fixed
// default when unset.
func (ts ThingSpec) Coordinates() (lat, lon float64) {
	lat, lon = DefaultLatitude, DefaultLongitude
	if ts.Latitude != nil {
		lat = *ts.Latitude
	}
	if ts.Longitude != nil {
		lon = *ts.Longitude
	}
	return
}

func (ts ThingSpec) ShouldIncludeServiceSpec() bool {
	return ts.IncludeServiceSpec == nil || *ts.IncludeServiceSpec
}

func (ts ThingSpec) ShouldStoreInRDF() bool {
	return ts.StoreInRDF == nil || *ts.StoreInRDF
}

// Summary is one row of an interface listing.
type Summary struct {
	Name        string    `json:"name" yaml:"name"`
	DisplayName string    `json:"display_name,omitempty" yaml:"displayName,omitempty"`
	ThingType   ThingType `json:"thing_type,omitempty" yaml:"thingType,omitempty"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
}

func (s Summary) Equal(o Summary) bool {
	return s.Name == o.Name &&
		s.DisplayName == o.DisplayName &&
		s.ThingType == o.ThingType &&
		s.Description == o.Description
}

// Detail is the full stored view of one interface.
type Detail struct {
	Summary
	// props in Summary are flattened in json.

	Properties    []Property     `json:"properties" yaml:"properties"`
	Relationships []Relationship `json:"relationships" yaml:"relationships"`
	Commands      []Command      `json:"commands" yaml:"commands"`
}

func (d Detail) Equal(o Detail) bool {
	return d.Summary.Equal(o.Summary) &&
		cmp.SliceEqual(d.Properties, o.Properties) &&
		cmp.SliceEqual(d.Relationships, o.Relationships) &&
		cmp.SliceEqual(d.Commands, o.Commands)
}

// CreateResult is the response of POST /api/twin/create.
type CreateResult struct {
	InterfaceName string `json:"interface_name" yaml:"interfaceName"`
	InstanceName  string `json:"instance_name" yaml:"instanceName"`
	InterfaceYAML string `json:"interface_yaml" yaml:"interfaceYaml"`
	InstanceYAML  string `json:"instance_yaml" yaml:"instanceYaml"`
	StoredInRDF   bool   `json:"stored_in_rdf" yaml:"storedInRdf"`
}

func (c CreateResult) Equal(o CreateResult) bool {
	return c.InterfaceName == o.InterfaceName &&
		c.InstanceName == o.InstanceName &&
		c.InterfaceYAML == o.InterfaceYAML &&
		c.InstanceYAML == o.InstanceYAML &&
		c.StoredInRDF == o.StoredInRDF
}
