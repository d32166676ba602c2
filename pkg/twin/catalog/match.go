package catalog

import (
	"sort"

	"github.com/ems-iodt/twinscale-api-types/dtdl"
	"github.com/ems-iodt/twinscale-api-types/things"
)

// BestMatches validates the draft against every catalog interface and
// ranks the results. The combined score weighs the validation score
// at 0.8 and a metadata affinity at 0.2; metadata gives 10 points for
// a thing-type match and 10 more when the draft already binds an
// interface from the same domain.
func (lib *Library) BestMatches(spec things.ThingSpec, limit int) []dtdl.Match {
	if limit <= 0 {
		limit = 5
	}

	draftDomain := ""
	if spec.DTDLInterface != nil {
		draftDomain = spec.DTDLInterface.Domain
	}

	candidates := lib.Search(Filter{})
	matches := make([]dtdl.Match, 0, len(candidates))
	for _, ref := range candidates {
		validation := lib.Validate(spec, ref.DTMI, false)

		metadata := 0.0
		if ref.ThingType != "" && ref.ThingType == spec.ThingType.String() {
			metadata += 10
		}
		if draftDomain != "" && ref.Domain == draftDomain {
			metadata += 10
		}

		matches = append(matches, dtdl.Match{
			Interface:       ref,
			ValidationScore: validation.CompatibilityScore,
			MetadataScore:   metadata,
			CombinedScore:   validation.CompatibilityScore*0.8 + metadata*0.2,
			Validation:      validation,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[j].CombinedScore < matches[i].CombinedScore
	})
	if limit < len(matches) {
		matches = matches[:limit]
	}
	return matches
}
