package locations

import (
	"maps"

	"github.com/ems-iodt/twinscale-api-types/internal/utils/cmp"
)

// Info is the best-effort result of a reverse-geocode lookup.
// Every field may be absent: lookups that fail leave their part nil
// rather than erroring.
type Info struct {
	Address    string            `json:"address,omitempty" yaml:"address,omitempty"`
	Altitude   *float64          `json:"altitude,omitempty" yaml:"altitude,omitempty"`
	Components map[string]string `json:"components,omitempty" yaml:"components,omitempty"`
}

func (i Info) Equal(o Info) bool {
	return i.Address == o.Address &&
		cmp.DerefEqual(i.Altitude, o.Altitude) &&
		maps.Equal(i.Components, o.Components)
}
