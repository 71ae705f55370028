package sources

import (
	"sort"
	"strings"
)

// Defaults applied to domains missing from the registry.
const (
	DefaultScore    = 50
	DefaultBias     = "Center"
	DefaultCategory = "unknown"
)

// NormalizeDomain lowercases a hostname and strips a leading "www." so
// lookups match seed entries regardless of how the URL was written.
func NormalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	return strings.TrimPrefix(domain, "www.")
}

// Registry is an immutable in-memory index of source ratings. Lookups on
// unknown domains fall back to a neutral default instead of failing.
type Registry struct {
	ratings map[string]Rating
	ordered []Rating
}

// NewRegistry builds a registry from rating rows. Domains are normalized
// and later duplicates replace earlier ones.
func NewRegistry(ratings []Rating) *Registry {
	index := make(map[string]Rating, len(ratings))
	for _, rating := range ratings {
		rating.Domain = NormalizeDomain(rating.Domain)
		if rating.Domain == "" {
			continue
		}
		index[rating.Domain] = rating
	}

	ordered := make([]Rating, 0, len(index))
	for _, rating := range index {
		ordered = append(ordered, rating)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Domain < ordered[j].Domain
	})

	return &Registry{ratings: index, ordered: ordered}
}

// Lookup returns the rating for a domain. Unknown domains get a neutral
// default entry; the second return reports whether the domain was found.
func (r *Registry) Lookup(domain string) (Rating, bool) {
	domain = NormalizeDomain(domain)
	if rating, ok := r.ratings[domain]; ok {
		return rating, true
	}

	return Rating{
		Domain:   domain,
		Score:    DefaultScore,
		Bias:     DefaultBias,
		Category: DefaultCategory,
	}, false
}

// All returns every rating sorted by domain.
func (r *Registry) All() []Rating {
	out := make([]Rating, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Count returns the number of registered domains.
func (r *Registry) Count() int {
	return len(r.ordered)
}
