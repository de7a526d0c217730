package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"ranktrack/internal/models"
)

// MappingConfig is the optional YAML file for per-deployment resolution
// settings. It only extends the engine's static tables; it cannot
// override them.
type MappingConfig struct {
	// ServiceTypeAliases maps extra campaign service-type tags to a
	// keyword type name, e.g. "smartstore: shopping".
	ServiceTypeAliases map[string]string `yaml:"service_type_aliases"`
}

// knownKeywordTypes gates alias targets to the closed type set.
var knownKeywordTypes = map[string]models.KeywordType{
	string(models.TypeShopping):     models.TypeShopping,
	string(models.TypePlace):        models.TypePlace,
	string(models.TypeCoupang):      models.TypeCoupang,
	string(models.TypeAutocomplete): models.TypeAutocomplete,
	string(models.TypeBrand):        models.TypeBrand,
}

// LoadMappingConfig loads the YAML mapping configuration file. Path is
// determined by the MAPPING_CONFIG_FILE env var, defaulting to
// "mapping.yaml". Returns nil without error if the file doesn't exist.
func LoadMappingConfig() (*MappingConfig, error) {
	path := getEnv("MAPPING_CONFIG_FILE", "mapping.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read mapping config: %w", err)
	}

	var cfg MappingConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse mapping config: %w", err)
	}
	return &cfg, nil
}

// KeywordTypeAliases converts the raw alias map into keyword types. An
// alias naming an unknown type is returned as an error rather than
// silently dropped, so a typo fails loudly at startup.
func (c *MappingConfig) KeywordTypeAliases() (map[string]models.KeywordType, error) {
	aliases := make(map[string]models.KeywordType, len(c.ServiceTypeAliases))
	for serviceType, typeName := range c.ServiceTypeAliases {
		t, ok := knownKeywordTypes[typeName]
		if !ok {
			return nil, fmt.Errorf("unknown keyword type %q for service type alias %q", typeName, serviceType)
		}
		aliases[serviceType] = t
	}
	return aliases, nil
}
