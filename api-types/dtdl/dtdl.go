package dtdl

import (
	"slices"

	"github.com/ems-iodt/twinscale-api-types/internal/utils/cmp"
)

// InterfaceRef identifies a catalog interface without its contents.
type InterfaceRef struct {
	DTMI        string   `json:"dtmi" yaml:"dtmi"`
	DisplayName string   `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	ThingType   string   `json:"thingType,omitempty" yaml:"thingType,omitempty"`
	Domain      string   `json:"domain,omitempty" yaml:"domain,omitempty"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

func (r InterfaceRef) Equal(o InterfaceRef) bool {
	return r.DTMI == o.DTMI &&
		r.DisplayName == o.DisplayName &&
		r.Description == o.Description &&
		r.ThingType == o.ThingType &&
		r.Domain == o.Domain &&
		r.Category == o.Category &&
		slices.Equal(r.Tags, o.Tags)
}

// ContentDetail describes one telemetry, property or command entry of
// an interface summary.
//
// Writable is a pointer so that "the model does not say" (nil) can be
// told apart from an explicit false.
type ContentDetail struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      string `json:"schema,omitempty" yaml:"schema,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Writable    *bool  `json:"writable,omitempty" yaml:"writable,omitempty"`
	Unit        string `json:"unit,omitempty" yaml:"unit,omitempty"`
}

func (d ContentDetail) Equal(o ContentDetail) bool {
	return d.Name == o.Name &&
		d.DisplayName == o.DisplayName &&
		d.Description == o.Description &&
		d.Schema == o.Schema &&
		d.Type == o.Type &&
		cmp.DerefEqual(d.Writable, o.Writable) &&
		d.Unit == o.Unit
}

// Summary is the denormalized view of an interface's contents, as
// served by GET /api/dtdl/interfaces/:dtmi/summary.
type Summary struct {
	DTMI             string          `json:"dtmi" yaml:"dtmi"`
	DisplayName      string          `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Description      string          `json:"description,omitempty" yaml:"description,omitempty"`
	TelemetryCount   int             `json:"telemetryCount" yaml:"telemetryCount"`
	PropertyCount    int             `json:"propertyCount" yaml:"propertyCount"`
	CommandCount     int             `json:"commandCount" yaml:"commandCount"`
	ComponentCount   int             `json:"componentCount" yaml:"componentCount"`
	TelemetryDetails []ContentDetail `json:"telemetryDetails" yaml:"telemetryDetails"`
	PropertyDetails  []ContentDetail `json:"propertyDetails" yaml:"propertyDetails"`
	CommandDetails   []ContentDetail `json:"commandDetails" yaml:"commandDetails"`
}

// Ref shrinks a Summary down to its identifying InterfaceRef.
func (s Summary) Ref() InterfaceRef {
	return InterfaceRef{
		DTMI:        s.DTMI,
		DisplayName: s.DisplayName,
		Description: s.Description,
	}
}

func (s Summary) Equal(o Summary) bool {
	return s.DTMI == o.DTMI &&
		s.DisplayName == o.DisplayName &&
		s.Description == o.Description &&
		s.TelemetryCount == o.TelemetryCount &&
		s.PropertyCount == o.PropertyCount &&
		s.CommandCount == o.CommandCount &&
		s.ComponentCount == o.ComponentCount &&
		cmp.SliceEqual(s.TelemetryDetails, o.TelemetryDetails) &&
		cmp.SliceEqual(s.PropertyDetails, o.PropertyDetails) &&
		cmp.SliceEqual(s.CommandDetails, o.CommandDetails)
}

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

type Issue struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
}

func (i Issue) Equal(o Issue) bool {
	return i.Severity == o.Severity && i.Message == o.Message
}

// ValidationResult reports how well a thing definition fits an
// interface. CompatibilityScore runs 0 to 100.
type ValidationResult struct {
	IsCompatible       bool     `json:"isCompatible" yaml:"isCompatible"`
	CompatibilityScore float64  `json:"compatibilityScore" yaml:"compatibilityScore"`
	MatchedProperties  []string `json:"matchedProperties" yaml:"matchedProperties"`
	MissingProperties  []string `json:"missingProperties" yaml:"missingProperties"`
	MatchedTelemetry   []string `json:"matchedTelemetry" yaml:"matchedTelemetry"`
	MissingTelemetry   []string `json:"missingTelemetry" yaml:"missingTelemetry"`
	ExtraFields        []string `json:"extraFields" yaml:"extraFields"`
	Issues             []Issue  `json:"issues" yaml:"issues"`
}

func (v ValidationResult) Equal(o ValidationResult) bool {
	return v.IsCompatible == o.IsCompatible &&
		v.CompatibilityScore == o.CompatibilityScore &&
		slices.Equal(v.MatchedProperties, o.MatchedProperties) &&
		slices.Equal(v.MissingProperties, o.MissingProperties) &&
		slices.Equal(v.MatchedTelemetry, o.MatchedTelemetry) &&
		slices.Equal(v.MissingTelemetry, o.MissingTelemetry) &&
		slices.Equal(v.ExtraFields, o.ExtraFields) &&
		cmp.SliceEqual(v.Issues, o.Issues)
}

// Match is one row of a best-match ranking.
type Match struct {
	Interface       InterfaceRef     `json:"interface" yaml:"interface"`
	ValidationScore float64          `json:"validationScore" yaml:"validationScore"`
	MetadataScore   float64          `json:"metadataScore" yaml:"metadataScore"`
	CombinedScore   float64          `json:"combinedScore" yaml:"combinedScore"`
	Validation      ValidationResult `json:"validation" yaml:"validation"`
}

func (m Match) Equal(o Match) bool {
	return m.Interface.Equal(o.Interface) &&
		m.ValidationScore == o.ValidationScore &&
		m.MetadataScore == o.MetadataScore &&
		m.CombinedScore == o.CombinedScore &&
		m.Validation.Equal(o.Validation)
}
