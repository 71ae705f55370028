package sources

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed sources.yml
var embeddedSeed []byte

type seedFile struct {
	Sources []Rating `yaml:"sources"`
}

// LoadSeed reads source ratings from the YAML file at path, or from the
// embedded seed when path is empty. Invalid entries fail the whole load so
// a broken seed file is caught at startup instead of silently shrinking
// the registry.
func LoadSeed(path string) ([]Rating, error) {
	data := embeddedSeed
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read sources file: %w", err)
		}
		data = fileData
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}
	if len(seed.Sources) == 0 {
		return nil, fmt.Errorf("sources file contains no entries")
	}

	for i := range seed.Sources {
		entry := &seed.Sources[i]
		entry.Domain = NormalizeDomain(entry.Domain)
		if entry.Domain == "" {
			return nil, fmt.Errorf("sources entry %d: missing domain", i)
		}
		if entry.Score < 0 || entry.Score > 100 {
			return nil, fmt.Errorf("sources entry %q: score %d out of range", entry.Domain, entry.Score)
		}
		switch entry.Bias {
		case "Left", "Center", "Right":
		case "":
			entry.Bias = DefaultBias
		default:
			return nil, fmt.Errorf("sources entry %q: unknown bias %q", entry.Domain, entry.Bias)
		}
		if entry.Category == "" {
			entry.Category = "news"
		}
	}

	return seed.Sources, nil
}
