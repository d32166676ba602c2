// Package draft loads thing definition drafts for subcommands.
package draft

import (
	"fmt"
	"io"
	"os"

	"github.com/ems-iodt/twinscale-api-types/things"
	"github.com/ems-iodt/twinscale/cmd/twinctl/env"
	"gopkg.in/yaml.v3"
)

// Load reads a ThingSpec draft from path. "-" means stdin.
func Load(path string, stdin io.Reader) (things.ThingSpec, error) {
	var source io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return things.ThingSpec{}, fmt.Errorf("cannot open draft file: %s: %w", path, err)
		}
		defer f.Close()
		source = f
	}

	buf, err := io.ReadAll(source)
	if err != nil {
		return things.ThingSpec{}, err
	}

	spec := things.ThingSpec{}
	if err := yaml.Unmarshal(buf, &spec); err != nil {
		return things.ThingSpec{}, fmt.Errorf("cannot parse draft: %w", err)
	}
	return spec, nil
}

// ApplyEnvDefaults fills gaps in a draft from the twinenv defaults.
func ApplyEnvDefaults(spec things.ThingSpec, twinEnv env.TwinEnv) things.ThingSpec {
	if spec.ThingType == "" && twinEnv.ThingType != "" {
		spec.ThingType = twinEnv.ThingType
	}
	if spec.Latitude == nil && twinEnv.Latitude != nil {
		spec.Latitude = twinEnv.Latitude
	}
	if spec.Longitude == nil && twinEnv.Longitude != nil {
		spec.Longitude = twinEnv.Longitude
	}
	return spec
}

// Save writes a draft back to path as yaml. "-" is not allowed here.
func Save(path string, spec things.ThingSpec) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(0644))
	if err != nil {
		return fmt.Errorf("cannot write draft file: %s: %w", path, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(spec)
}
