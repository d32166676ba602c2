package catalog_test

import (
	"testing"

	"github.com/ems-iodt/twinscale-api-types/things"
)

func TestBestMatches(t *testing.T) {
	lib := testLibrary(t)

	t.Run("the closest interface ranks first", func(t *testing.T) {
		spec := things.ThingSpec{
			ID: "acme:x", Name: "x",
			ThingType: things.Sensor,
			Properties: []things.Property{
				prop("temperature", "double"),
				prop("humidity", "double"),
				prop("samplingInterval", "integer"),
				prop("firmwareVersion", "string"),
			},
		}

		matches := lib.BestMatches(spec, 5)

		if len(matches) != 2 {
			t.Fatalf("unexpected length: %d", len(matches))
		}
		if matches[0].Interface.DTMI != "dtmi:iodt2:TemperatureSensor;1" {
			t.Errorf("ranking unmatch: %s", matches[0].Interface.DTMI)
		}
		if matches[1].CombinedScore > matches[0].CombinedScore {
			t.Errorf(
				"scores are not descending: %f, %f",
				matches[0].CombinedScore, matches[1].CombinedScore,
			)
		}
	})

	t.Run("a thing-type match is worth 10 metadata points", func(t *testing.T) {
		spec := things.ThingSpec{
			ID: "acme:x", Name: "x",
			ThingType: things.Sensor,
			Properties: []things.Property{
				prop("temperature", "double"),
				prop("humidity", "double"),
				prop("samplingInterval", "integer"),
				prop("firmwareVersion", "string"),
			},
		}

		matches := lib.BestMatches(spec, 5)

		if matches[0].MetadataScore != 10 {
			t.Errorf("metadata score unmatch: %f", matches[0].MetadataScore)
		}
		// 0.8 x 100 validation + 0.2 x 10 metadata.
		if matches[0].CombinedScore != 82 {
			t.Errorf("combined score unmatch: %f", matches[0].CombinedScore)
		}
	})

	t.Run("limit caps the ranking", func(t *testing.T) {
		spec := things.ThingSpec{ID: "acme:x", Name: "x"}

		if matches := lib.BestMatches(spec, 1); len(matches) != 1 {
			t.Errorf("unexpected length: %d", len(matches))
		}
	})
}
