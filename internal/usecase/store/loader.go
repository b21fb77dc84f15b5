package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"regent/internal/classification/models"
)

// registryFile is the on-disk YAML shape of the use-case registry.
type registryFile struct {
	UseCases []models.UseCase `yaml:"use_cases"`
}

// LoadRegistry reads usecases.yaml from dir and validates it: every entry
// needs a unique ID, a valid base risk when one is fixed, and context
// decisions must reference known profile fields so a catalogue typo cannot
// silently never match.
func LoadRegistry(dir string) ([]models.UseCase, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "usecases.yaml"))
	if err != nil {
		return nil, fmt.Errorf("read use-case registry: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse use-case registry: %w", err)
	}

	seen := make(map[string]struct{}, len(file.UseCases))
	for i, uc := range file.UseCases {
		if uc.ID == "" {
			return nil, fmt.Errorf("use-case registry: entry %d has no id", i)
		}
		if _, dup := seen[uc.ID]; dup {
			return nil, fmt.Errorf("use-case registry: duplicate id %q", uc.ID)
		}
		seen[uc.ID] = struct{}{}

		if uc.BaseRisk != "" && !uc.BaseRisk.IsValid() {
			return nil, fmt.Errorf("use-case registry: %q has unknown base risk %q", uc.ID, uc.BaseRisk)
		}
		if uc.Decision != nil {
			if uc.Decision.DefaultTier != "" && !uc.Decision.DefaultTier.IsValid() {
				return nil, fmt.Errorf("use-case registry: %q has unknown default tier %q", uc.ID, uc.Decision.DefaultTier)
			}
			for _, f := range uc.Decision.Factors {
				if _, ok := models.LookupBoolField(f.Field); !ok {
					return nil, fmt.Errorf("use-case registry: %q references unknown field %q", uc.ID, f.Field)
				}
				if !f.Tier.IsValid() {
					return nil, fmt.Errorf("use-case registry: %q factor %q has unknown tier %q", uc.ID, f.Field, f.Tier)
				}
			}
		}
	}
	return file.UseCases, nil
}

// HydrateFromDir loads the registry into an in-memory store, replacing its
// current contents.
func HydrateFromDir(s *InMemory, dir string) error {
	useCases, err := LoadRegistry(dir)
	if err != nil {
		return err
	}
	s.Replace(useCases)
	return nil
}
