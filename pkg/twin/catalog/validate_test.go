package catalog_test

import (
	"slices"
	"strings"
	"testing"

	"github.com/ems-iodt/twinscale-api-types/dtdl"
	"github.com/ems-iodt/twinscale-api-types/things"
)

func prop(name, typ string) things.Property {
	return things.Property{Name: name, Schema: things.Schema{Type: typ}}
}

func TestValidate(t *testing.T) {
	lib := testLibrary(t)
	const dtmi = "dtmi:iodt2:TemperatureSensor;1"

	t.Run("a fully matching draft scores 100 and is compatible", func(t *testing.T) {
		spec := things.ThingSpec{
			ID: "acme:x", Name: "x",
			Properties: []things.Property{
				prop("temperature", "double"),
				prop("humidity", "double"),
				prop("samplingInterval", "integer"),
				prop("firmwareVersion", "string"),
			},
		}

		result := lib.Validate(spec, dtmi, false)

		if !result.IsCompatible {
			t.Error("the draft should be compatible")
		}
		if result.CompatibilityScore != 100 {
			t.Errorf("score unmatch: %f", result.CompatibilityScore)
		}
		if !slices.Equal(result.MatchedTelemetry, []string{"temperature", "humidity"}) {
			t.Errorf("matched telemetry unmatch: %v", result.MatchedTelemetry)
		}
		if !slices.Equal(result.MatchedProperties, []string{"samplingInterval", "firmwareVersion"}) {
			t.Errorf("matched properties unmatch: %v", result.MatchedProperties)
		}
		if len(result.Issues) != 0 {
			t.Errorf("no issues are expected: %v", result.Issues)
		}
	})

	t.Run("a missing writable property is an error and blocks compatibility", func(t *testing.T) {
		spec := things.ThingSpec{
			ID: "acme:x", Name: "x",
			Properties: []things.Property{
				prop("temperature", "double"),
				prop("humidity", "double"),
				prop("firmwareVersion", "string"),
			},
		}

		result := lib.Validate(spec, dtmi, false)

		if result.IsCompatible {
			t.Error("the draft should not be compatible")
		}
		if !slices.Equal(result.MissingProperties, []string{"samplingInterval"}) {
			t.Errorf("missing properties unmatch: %v", result.MissingProperties)
		}
		// 3 of 4 matched (75), minus 10 for the error.
		if result.CompatibilityScore != 65 {
			t.Errorf("score unmatch: %f", result.CompatibilityScore)
		}
		if !hasIssue(result.Issues, dtdl.SeverityError, "samplingInterval") {
			t.Errorf("error issue is expected: %v", result.Issues)
		}
	})

	t.Run("a missing read-only property is only a warning", func(t *testing.T) {
		spec := things.ThingSpec{
			ID: "acme:x", Name: "x",
			Properties: []things.Property{
				prop("temperature", "double"),
				prop("humidity", "double"),
				prop("samplingInterval", "integer"),
			},
		}

		result := lib.Validate(spec, dtmi, false)

		if !result.IsCompatible {
			t.Error("the draft should stay compatible")
		}
		if result.CompatibilityScore != 75 {
			t.Errorf("score unmatch: %f", result.CompatibilityScore)
		}
		if !hasIssue(result.Issues, dtdl.SeverityWarning, "firmwareVersion") {
			t.Errorf("warning issue is expected: %v", result.Issues)
		}
	})

	t.Run("extra fields cost 2 points each, 10 more as errors when strict", func(t *testing.T) {
		spec := things.ThingSpec{
			ID: "acme:x", Name: "x",
			Properties: []things.Property{
				prop("temperature", "double"),
				prop("humidity", "double"),
				prop("samplingInterval", "integer"),
				prop("firmwareVersion", "string"),
				prop("color", "string"),
			},
		}

		relaxed := lib.Validate(spec, dtmi, false)
		if relaxed.CompatibilityScore != 98 {
			t.Errorf("score unmatch: %f", relaxed.CompatibilityScore)
		}
		if !relaxed.IsCompatible {
			t.Error("an extra field alone should not block compatibility")
		}
		if !slices.Equal(relaxed.ExtraFields, []string{"property.color"}) {
			t.Errorf("extra fields unmatch: %v", relaxed.ExtraFields)
		}

		strict := lib.Validate(spec, dtmi, true)
		if strict.CompatibilityScore != 88 {
			t.Errorf("strict score unmatch: %f", strict.CompatibilityScore)
		}
		if strict.IsCompatible {
			t.Error("strict mode should block compatibility on extra fields")
		}
	})

	t.Run("a type mismatch is a warning and the field does not count as matched", func(t *testing.T) {
		spec := things.ThingSpec{
			ID: "acme:x", Name: "x",
			Properties: []things.Property{
				prop("temperature", "boolean"),
				prop("humidity", "double"),
				prop("samplingInterval", "integer"),
				prop("firmwareVersion", "string"),
			},
		}

		result := lib.Validate(spec, dtmi, false)

		if slices.Contains(result.MatchedTelemetry, "temperature") {
			t.Errorf("mismatched field should not be matched: %v", result.MatchedTelemetry)
		}
		if !hasIssue(result.Issues, dtdl.SeverityWarning, "temperature") {
			t.Errorf("warning issue is expected: %v", result.Issues)
		}
	})

	t.Run("integer is accepted where double is expected", func(t *testing.T) {
		spec := things.ThingSpec{
			ID: "acme:x", Name: "x",
			Properties: []things.Property{
				prop("temperature", "integer"),
				prop("humidity", "double"),
				prop("samplingInterval", "integer"),
				prop("firmwareVersion", "string"),
			},
		}

		result := lib.Validate(spec, dtmi, false)

		if !slices.Contains(result.MatchedTelemetry, "temperature") {
			t.Errorf("integer should match a double slot: %v", result.MatchedTelemetry)
		}
	})

	t.Run("an undeclared type is not checked", func(t *testing.T) {
		spec := things.ThingSpec{
			ID: "acme:x", Name: "x",
			Properties: []things.Property{
				prop("temperature", ""),
				prop("humidity", "double"),
				prop("samplingInterval", "integer"),
				prop("firmwareVersion", "string"),
			},
		}

		result := lib.Validate(spec, dtmi, false)

		if !slices.Contains(result.MatchedTelemetry, "temperature") {
			t.Errorf("an empty type should pass: %v", result.MatchedTelemetry)
		}
	})

	t.Run("an unknown dtmi is an incompatible zero-score result", func(t *testing.T) {
		result := lib.Validate(things.ThingSpec{ID: "acme:x", Name: "x"}, "dtmi:iodt2:NoSuch;1", false)

		if result.IsCompatible || result.CompatibilityScore != 0 {
			t.Errorf("result unmatch: %+v", result)
		}
		if !hasIssue(result.Issues, dtdl.SeverityError, "dtmi:iodt2:NoSuch;1") {
			t.Errorf("error issue is expected: %v", result.Issues)
		}
	})
}

func hasIssue(issues []dtdl.Issue, severity dtdl.Severity, substr string) bool {
	for _, i := range issues {
		if i.Severity == severity && strings.Contains(i.Message, substr) {
			return true
		}
	}
	return false
}
