package tessa

import (
	_ "embed"
	"fmt"

	"github.com/gur-shatz/tessa/internal/digest"
	"github.com/gur-shatz/tessa/pkg/config"
)

// DefaultConfigFilename is searched for in the working directory and next to
// the executable when no -c flag is given.
const DefaultConfigFilename = "tessa.yaml"

// Settings is the tessa.yaml configuration.
type Settings struct {
	Defaults DefaultsSettings `mapstructure:"defaults"`
	Output   OutputSettings   `mapstructure:"output"`
}

// DefaultsSettings holds fallback values for flags the user didn't pass.
type DefaultsSettings struct {
	Algorithm string `mapstructure:"algorithm"`
}

// OutputSettings controls presentation.
type OutputSettings struct {
	Color  string `mapstructure:"color" validate:"omitempty,oneof=auto always never"`
	Mascot bool   `mapstructure:"mascot"`
}

// LoadSettings reads tessa.yaml. An empty path searches the default
// locations; an absent config file yields the built-in defaults.
func LoadSettings(path string) (Settings, error) {
	settings := Settings{
		Defaults: DefaultsSettings{Algorithm: digest.Default},
		Output:   OutputSettings{Color: "auto", Mascot: true},
	}

	cfg, err := config.Load(path, DefaultConfigFilename)
	if err != nil {
		return settings, err
	}
	if len(cfg) == 0 {
		return settings, nil
	}

	if err := cfg.GetInto("", &settings, config.WithValidation()); err != nil {
		return settings, err
	}

	if !digest.IsSupported(settings.Defaults.Algorithm) {
		return settings, fmt.Errorf("config: %w", &digest.UnknownAlgorithmError{Name: settings.Defaults.Algorithm})
	}
	return settings, nil
}

// DefaultConfigYAML is the commented starter YAML for `tessa init`.
//
//go:embed tessa.default.yaml
var DefaultConfigYAML string
