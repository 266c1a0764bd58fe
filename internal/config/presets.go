package config

// Presets are ready-made run configurations keyed by pumping profile
// and scenario name. Each value is a full config; unset fields keep
// their zero value on purpose so presets stay explicit.
var Presets = map[string]map[string]*Config{
	"gaussian": {
		"default": defaultGaussian(),
		"quick": merge(defaultGaussian(), func(c *Config) {
			c.Grid.Nodes = 200
			c.Time.Steps = 5000
		}),
		"strong": merge(defaultGaussian(), func(c *Config) {
			c.Pumping.Power = 10.0
		}),
		"wide": merge(defaultGaussian(), func(c *Config) {
			c.Pumping.Variation = 25.0
		}),
	},
	"uniform": {
		"default": merge(defaultGaussian(), func(c *Config) {
			c.Pumping = PumpingConfig{Profile: "uniform", Power: DefaultPower}
		}),
	},
	"ring": {
		"narrow": merge(defaultGaussian(), func(c *Config) {
			c.Pumping = PumpingConfig{Profile: "ring", Power: 5.0, Radius: 10.0, Width: 1.0}
		}),
		"broad": merge(defaultGaussian(), func(c *Config) {
			c.Pumping = PumpingConfig{Profile: "ring", Power: 5.0, Radius: 10.0, Width: 4.0}
		}),
	},
}

func defaultGaussian() *Config { return DefaultConfig() }

func merge(base *Config, mod func(*Config)) *Config {
	c := *base
	mod(&c)
	return &c
}

func GetPreset(profile, name string) *Config {
	group, ok := Presets[profile]
	if !ok {
		return nil
	}
	return group[name]
}

func ListPresets(profile string) []string {
	group, ok := Presets[profile]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
