package analysis

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
)

//go:embed model.json
var embeddedModel []byte

type vocabEntry struct {
	Term string  `json:"term"`
	IDF  float64 `json:"idf"`
}

type stumpSpec struct {
	Feature   string  `json:"feature"`
	Threshold float64 `json:"threshold"`
	Below     float64 `json:"below"`
	Above     float64 `json:"above"`
}

type credibilitySpec struct {
	ModelWeight  float64     `json:"model_weight"`
	SourceWeight float64     `json:"source_weight"`
	Stumps       []stumpSpec `json:"stumps"`
}

type biasSpec struct {
	Epsilon        float64                       `json:"epsilon"`
	DefaultLogProb float64                       `json:"default_log_prob"`
	Priors         map[string]float64            `json:"priors"`
	Likelihoods    map[string]map[string]float64 `json:"likelihoods"`
}

type modelArtifact struct {
	Version     string          `json:"version"`
	Vocabulary  []vocabEntry    `json:"vocabulary"`
	Credibility credibilitySpec `json:"credibility"`
	Bias        biasSpec        `json:"bias"`
}

// Vocabulary is the fixed term index established at training time. Terms
// map to dense indices so feature vectors can use integer keys.
type Vocabulary struct {
	indexes map[string]int
	idf     []float64
}

// Index returns the dense index for a term.
func (v *Vocabulary) Index(term string) (int, bool) {
	index, ok := v.indexes[term]
	return index, ok
}

// IDF returns the inverse-document-frequency weight for a term index.
func (v *Vocabulary) IDF(index int) float64 {
	return v.idf[index]
}

// Size returns the number of vocabulary terms.
func (v *Vocabulary) Size() int {
	return len(v.idf)
}

// Models bundles the trained artifacts shared by all requests. Loaded once
// at startup and read-only afterwards, so concurrent use needs no locking.
type Models struct {
	Version     string
	Vocabulary  *Vocabulary
	Credibility *CredibilityModel
	Bias        *BiasModel
}

// LoadModels parses and validates the embedded model artifact. Any defect
// is returned as a ModelUnavailableError; the caller is expected to treat
// it as fatal.
func LoadModels() (*Models, error) {
	return loadModels(embeddedModel)
}

func loadModels(data []byte) (*Models, error) {
	var artifact modelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, &ModelUnavailableError{Reason: fmt.Sprintf("failed to parse model artifact: %v", err)}
	}

	if artifact.Version == "" {
		return nil, &ModelUnavailableError{Reason: "model artifact has no version"}
	}
	if len(artifact.Vocabulary) == 0 {
		return nil, &ModelUnavailableError{Reason: "model artifact has an empty vocabulary"}
	}

	vocab := &Vocabulary{
		indexes: make(map[string]int, len(artifact.Vocabulary)),
		idf:     make([]float64, len(artifact.Vocabulary)),
	}
	for i, entry := range artifact.Vocabulary {
		if entry.Term == "" {
			return nil, &ModelUnavailableError{Reason: fmt.Sprintf("vocabulary entry %d has an empty term", i)}
		}
		if _, exists := vocab.indexes[entry.Term]; exists {
			return nil, &ModelUnavailableError{Reason: fmt.Sprintf("vocabulary term %q is duplicated", entry.Term)}
		}
		if entry.IDF <= 0 || math.IsNaN(entry.IDF) {
			return nil, &ModelUnavailableError{Reason: fmt.Sprintf("vocabulary term %q has invalid idf %v", entry.Term, entry.IDF)}
		}
		vocab.indexes[entry.Term] = i
		vocab.idf[i] = entry.IDF
	}

	credibility, err := newCredibilityModel(artifact.Credibility, vocab)
	if err != nil {
		return nil, err
	}

	bias, err := newBiasModel(artifact.Bias, vocab)
	if err != nil {
		return nil, err
	}

	return &Models{
		Version:     artifact.Version,
		Vocabulary:  vocab,
		Credibility: credibility,
		Bias:        bias,
	}, nil
}
