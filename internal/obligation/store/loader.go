package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"regent/internal/obligation"
)

// catalogueFile is the on-disk YAML shape of the obligation catalogue.
type catalogueFile struct {
	Milestones []obligation.Milestone `yaml:"milestones"`
	Buckets    map[string][]Entry     `yaml:"buckets"`
}

// LoadCatalogue reads obligations.yaml from dir and validates it: every
// bucket key must be a known regulation, every entry must carry an ID unique
// within its bucket, and every entry's source must match its bucket.
func LoadCatalogue(dir string) (map[obligation.Regulation][]Entry, []obligation.Milestone, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "obligations.yaml"))
	if err != nil {
		return nil, nil, fmt.Errorf("read obligation catalogue: %w", err)
	}

	var file catalogueFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, nil, fmt.Errorf("parse obligation catalogue: %w", err)
	}

	buckets := make(map[obligation.Regulation][]Entry, len(file.Buckets))
	for key, entries := range file.Buckets {
		reg := obligation.Regulation(key)
		if !reg.IsValid() {
			return nil, nil, fmt.Errorf("obligation catalogue: unknown bucket %q", key)
		}
		seen := make(map[string]struct{}, len(entries))
		for i, e := range entries {
			if e.ID == "" {
				return nil, nil, fmt.Errorf("obligation catalogue: bucket %q entry %d has no id", key, i)
			}
			if _, dup := seen[e.ID]; dup {
				return nil, nil, fmt.Errorf("obligation catalogue: bucket %q has duplicate id %q", key, e.ID)
			}
			seen[e.ID] = struct{}{}
			if e.Source != reg {
				return nil, nil, fmt.Errorf("obligation catalogue: entry %q declares source %q in bucket %q", e.ID, e.Source, key)
			}
		}
		buckets[reg] = entries
	}
	return buckets, file.Milestones, nil
}

// HydrateFromDir loads the catalogue into an in-memory store, replacing its
// current contents.
func HydrateFromDir(s *InMemory, dir string) error {
	buckets, milestones, err := LoadCatalogue(dir)
	if err != nil {
		return err
	}
	s.Replace(buckets, milestones)
	return nil
}
