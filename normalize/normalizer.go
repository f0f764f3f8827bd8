package normalize

import (
	"github.com/civiclens/civiclens/core"
)

// Normalizer converts one raw feed record into a canonical Document.
// Implementations never return partial documents: a record that cannot be
// normalized yields (nil, error) and the rest of the batch proceeds.
type Normalizer interface {
	// Source returns the feed tag written into every produced document.
	Source() string

	// Normalize maps a single raw record into a Document. Missing textual
	// fields are replaced with placeholders; only structurally unusable
	// records produce an error.
	Normalize(rec core.RawRecord) (*core.Document, error)
}

// Registry holds the known normalizers keyed by source tag.
type Registry struct {
	normalizers map[string]Normalizer
	order       []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{normalizers: make(map[string]Normalizer)}
}

// Register adds a normalizer. A later registration for the same source
// replaces the earlier one.
func (r *Registry) Register(n Normalizer) {
	if _, exists := r.normalizers[n.Source()]; !exists {
		r.order = append(r.order, n.Source())
	}
	r.normalizers[n.Source()] = n
}

// Lookup returns the normalizer for a source tag.
func (r *Registry) Lookup(source string) (Normalizer, bool) {
	n, ok := r.normalizers[source]
	return n, ok
}

// Sources returns registered source tags in registration order.
func (r *Registry) Sources() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// DefaultRegistry returns a registry with every supported feed registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewLegislationNormalizer())
	r.Register(NewPermitNormalizer())
	r.Register(NewLicenseNormalizer())
	r.Register(NewMeetingNormalizer())
	r.Register(NewInspectionNormalizer())
	r.Register(NewViolationNormalizer())
	return r
}
