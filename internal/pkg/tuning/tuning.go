// Package tuning loads named drone limit profiles from YAML.
//
// A profiles file looks like:
//
//	version: 1
//	default: standard
//	profiles:
//	  standard:
//	    max_capacity: 2
//	    autonomy_ratio: 10
//	  heavy:
//	    max_capacity: 4
//	    autonomy_ratio: 10
//
// The empty-drone distance is not part of a profile: every scenario carries its own.
package tuning

import (
	"fmt"
	"os"
	"sort"

	"dronedelivery/internal/core/domain/model/kernel"
	"dronedelivery/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

// Version is the only profiles file format understood.
const Version = 1

// DefaultProfileName names the built-in profile.
const DefaultProfileName = "standard"

// Profile holds the payload settings shared by every drone of a delivery.
type Profile struct {
	MaxCapacity   int `yaml:"max_capacity"`
	AutonomyRatio int `yaml:"autonomy_ratio"`
}

// Profiles is a parsed profiles file.
type Profiles struct {
	Version  int                `yaml:"version"`
	Default  string             `yaml:"default"`
	Profiles map[string]Profile `yaml:"profiles"`
}

// Builtin returns the profiles used when no file is configured.
func Builtin() Profiles {
	return Profiles{
		Version: Version,
		Default: DefaultProfileName,
		Profiles: map[string]Profile{
			DefaultProfileName: {MaxCapacity: 2, AutonomyRatio: 10},
			"heavy":            {MaxCapacity: 4, AutonomyRatio: 10},
		},
	}
}

// Load reads and validates a profiles file.
func Load(path string) (Profiles, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Profiles{}, err
	}
	p, err := Parse(raw)
	if err != nil {
		return Profiles{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates profiles from YAML.
func Parse(raw []byte) (Profiles, error) {
	var p Profiles
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Profiles{}, errs.NewValueIsInvalidErrorWithCause("profiles", err)
	}
	if err := p.Validate(); err != nil {
		return Profiles{}, err
	}
	return p, nil
}

// Validate checks the version, the default name and every profile's limits.
func (p Profiles) Validate() error {
	if p.Version != Version {
		return errs.NewVersionIsInvalidErrorWithCause("version",
			fmt.Errorf("%d is not supported, expected %d", p.Version, Version))
	}
	if len(p.Profiles) == 0 {
		return errs.NewValueIsRequiredError("profiles")
	}
	if _, ok := p.Profiles[p.Default]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("default",
			fmt.Errorf("profile %q is not defined", p.Default))
	}
	for _, name := range p.Names() {
		if _, err := p.Profiles[name].Limits(); err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}
	}
	return nil
}

// Names returns the profile names in alphabetical order.
func (p Profiles) Names() []string {
	names := make([]string, 0, len(p.Profiles))
	for name := range p.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the named profile, or the default one for an empty name.
func (p Profiles) Lookup(name string) (Profile, error) {
	if name == "" {
		name = p.Default
	}
	profile, ok := p.Profiles[name]
	if !ok {
		return Profile{}, errs.NewObjectNotFoundError("profile", name)
	}
	return profile, nil
}

// Limits converts the profile into kernel limits with a zero base distance.
// Deliveries replace the distance with the scenario's own.
func (pr Profile) Limits() (kernel.Limits, error) {
	return kernel.NewLimits(pr.MaxCapacity, pr.AutonomyRatio, 0)
}
