package catalog

import (
	"fmt"

	"github.com/ems-iodt/twinscale-api-types/dtdl"
	"github.com/ems-iodt/twinscale-api-types/things"
)

// Validate scores how well a thing draft fits the interface bound to
// dtmi. An unknown DTMI is not an error of this call: it comes back
// as an incompatible result with a single error issue, so callers can
// render it like any other report.
//
// Scoring: matched fields over all interface fields, times 100; each
// extra field costs 2 points, each error-severity issue costs 10;
// clamped to 0..100. Compatible means 60 or better with no errors.
func (lib *Library) Validate(spec things.ThingSpec, dtmi string, strict bool) dtdl.ValidationResult {
	doc, err := lib.Get(dtmi)
	if err != nil {
		return dtdl.ValidationResult{
			IsCompatible:       false,
			CompatibilityScore: 0,
			MatchedProperties:  []string{},
			MissingProperties:  []string{},
			MatchedTelemetry:   []string{},
			MissingTelemetry:   []string{},
			ExtraFields:        []string{},
			Issues: []dtdl.Issue{{
				Severity: dtdl.SeverityError,
				Message:  fmt.Sprintf("interface not found: %s", dtmi),
			}},
		}
	}
	return validate(spec, doc, strict)
}

func validate(spec things.ThingSpec, doc Document, strict bool) dtdl.ValidationResult {
	result := dtdl.ValidationResult{
		MatchedProperties: []string{},
		MissingProperties: []string{},
		MatchedTelemetry:  []string{},
		MissingTelemetry:  []string{},
		ExtraFields:       []string{},
		Issues:            []dtdl.Issue{},
	}

	drafted := map[string]things.Property{}
	for _, p := range spec.Properties {
		drafted[p.Name] = p
	}
	claimed := map[string]bool{}

	for _, tel := range doc.Telemetry() {
		p, ok := drafted[tel.Name]
		if !ok {
			result.MissingTelemetry = append(result.MissingTelemetry, tel.Name)
			result.Issues = append(result.Issues, dtdl.Issue{
				Severity: dtdl.SeverityWarning,
				Message:  fmt.Sprintf("missing telemetry: %s", tel.Name),
			})
			continue
		}
		claimed[tel.Name] = true
		if issue, mismatch := typeMismatch("telemetry", tel, p); mismatch {
			result.Issues = append(result.Issues, issue)
		} else {
			result.MatchedTelemetry = append(result.MatchedTelemetry, tel.Name)
		}
	}

	for _, prop := range doc.Properties() {
		p, ok := drafted[prop.Name]
		if !ok {
			// A writable property is something the twin is expected
			// to accept. Leaving it out blocks compatibility.
			severity := dtdl.SeverityWarning
			if prop.Writable {
				severity = dtdl.SeverityError
			}
			result.MissingProperties = append(result.MissingProperties, prop.Name)
			result.Issues = append(result.Issues, dtdl.Issue{
				Severity: severity,
				Message:  fmt.Sprintf("missing property: %s", prop.Name),
			})
			continue
		}
		claimed[prop.Name] = true
		if issue, mismatch := typeMismatch("property", prop, p); mismatch {
			result.Issues = append(result.Issues, issue)
		} else {
			result.MatchedProperties = append(result.MatchedProperties, prop.Name)
		}
	}

	for _, p := range spec.Properties {
		if claimed[p.Name] {
			continue
		}
		severity := dtdl.SeverityInfo
		if strict {
			severity = dtdl.SeverityError
		}
		result.ExtraFields = append(result.ExtraFields, "property."+p.Name)
		result.Issues = append(result.Issues, dtdl.Issue{
			Severity: severity,
			Message:  fmt.Sprintf("extra field not defined in the interface: %s", p.Name),
		})
	}

	errorCount := 0
	for _, issue := range result.Issues {
		if issue.Severity == dtdl.SeverityError {
			errorCount += 1
		}
	}

	result.CompatibilityScore = score(
		len(result.MatchedTelemetry)+len(result.MatchedProperties),
		len(result.MissingTelemetry)+len(result.MissingProperties),
		len(result.ExtraFields),
		errorCount,
	)
	result.IsCompatible = 60 <= result.CompatibilityScore && errorCount == 0
	return result
}

// typeMismatch compares a draft property's declared type with the
// interface content's expected twin type. An undeclared type is not
// checked (the draft form may not be filled in yet), and integer is
// accepted where a floating type is expected.
func typeMismatch(kind string, c Content, p things.Property) (dtdl.Issue, bool) {
	expected := c.Schema.TwinType()
	actual := p.Schema.Type
	if actual == "" || actual == expected {
		return dtdl.Issue{}, false
	}
	if actual == "integer" && (expected == "float" || expected == "double") {
		return dtdl.Issue{}, false
	}
	return dtdl.Issue{
		Severity: dtdl.SeverityWarning,
		Message: fmt.Sprintf(
			"type mismatch on %s %s: expected %s, got %s",
			kind, c.Name, expected, actual,
		),
	}, true
}

func score(matched, missing, extra, errors int) float64 {
	total := matched + missing
	s := 100.0
	if 0 < total {
		s = float64(matched) / float64(total) * 100.0
	}
	s -= float64(extra) * 2
	s -= float64(errors) * 10
	return max(0.0, min(100.0, s))
}
