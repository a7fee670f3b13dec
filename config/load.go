package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileOptions is the on-disk shape of an Options YAML file: lowercase,
// snake-ish keys.
type fileOptions struct {
	RoaringBackend          *bool `yaml:"roaring_backend"`
	TombstoneResetThreshold int   `yaml:"tombstone_reset_threshold"`
	RadixSortThreshold      int   `yaml:"radix_sort_threshold"`
	ParallelMaterializeMin  int   `yaml:"parallel_materialize_min"`
}

// LoadOptions reads an Options YAML file from path. An empty path returns
// the defaults rather than failing.
func LoadOptions(path string) (Options, error) {
	if path == "" {
		return Default(), nil
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var fo fileOptions
	if err := yaml.Unmarshal(buf, &fo); err != nil {
		return Options{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	opts := Options{
		RoaringBackend:          true,
		TombstoneResetThreshold: fo.TombstoneResetThreshold,
		RadixSortThreshold:      fo.RadixSortThreshold,
		ParallelMaterializeMin:  fo.ParallelMaterializeMin,
	}
	if fo.RoaringBackend != nil {
		opts.RoaringBackend = *fo.RoaringBackend
	}
	return opts.WithDefaults(), nil
}
