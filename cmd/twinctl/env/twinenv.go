package env

import (
	"os"

	"github.com/ems-iodt/twinscale-api-types/things"
	"gopkg.in/yaml.v3"
)

// TwinEnv holds per-directory defaults for twinctl, loaded from a twinenv file
// next to the profile. A missing file is not an error; everything falls back
// to zero values.
type TwinEnv struct {
	// ThingType applied to drafts which do not declare one.
	ThingType things.ThingType `yaml:"thingType"`

	// Latitude and Longitude used when a draft has no coordinates.
	Latitude  *float64 `yaml:"latitude"`
	Longitude *float64 `yaml:"longitude"`
}

func New() *TwinEnv {
	return new(TwinEnv)
}

// Coordinates returns the fallback coordinates of this environment.
// When unset, the platform defaults are used.
func (te *TwinEnv) Coordinates() (lat, lon float64) {
	lat, lon = things.DefaultLatitude, things.DefaultLongitude
	if te.Latitude != nil {
		lat = *te.Latitude
	}
	if te.Longitude != nil {
		lon = *te.Longitude
	}
	return lat, lon
}

func LoadTwinEnv(filepath string) (*TwinEnv, error) {

	env := TwinEnv{}

	content, err := os.ReadFile(filepath)
	if err != nil {
		return &env, nil
	}

	err = yaml.Unmarshal(content, &env)
	if err != nil {
		return nil, err
	}

	return &env, nil
}
