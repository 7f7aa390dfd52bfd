// Package vocab defines the controlled-vocabulary lookup contract
// consumed by vocabulary-dependent rules. Remote lookup clients live
// outside the core; this package only carries the interface and an
// in-memory implementation for tests and offline sessions.
package vocab

// Provider exposes membership-style lookups over named vocabularies.
//
// Implementations should treat an unknown or unavailable vocabulary
// as an error; rules consuming a Provider are expected to fail open
// (report zero issues) when lookups error out.
type Provider interface {
	// Contains reports whether value is a member of the named vocabulary.
	Contains(vocabulary, value string) (bool, error)

	// Values returns all members of the named vocabulary.
	Values(vocabulary string) ([]string, error)
}

// Static is an in-memory Provider backed by a fixed map.
type Static struct {
	vocabularies map[string][]string
	sets         map[string]map[string]struct{}
}

// NewStatic builds a Static provider from vocabulary name to members.
func NewStatic(vocabularies map[string][]string) *Static {
	sets := make(map[string]map[string]struct{}, len(vocabularies))
	for name, values := range vocabularies {
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[v] = struct{}{}
		}
		sets[name] = set
	}
	return &Static{vocabularies: vocabularies, sets: sets}
}

// Contains implements Provider.
func (s *Static) Contains(vocabulary, value string) (bool, error) {
	set, ok := s.sets[vocabulary]
	if !ok {
		return false, &UnknownVocabularyError{Name: vocabulary}
	}
	_, member := set[value]
	return member, nil
}

// Values implements Provider.
func (s *Static) Values(vocabulary string) ([]string, error) {
	values, ok := s.vocabularies[vocabulary]
	if !ok {
		return nil, &UnknownVocabularyError{Name: vocabulary}
	}
	return append([]string(nil), values...), nil
}

// UnknownVocabularyError signals a lookup against a vocabulary the
// provider does not know.
type UnknownVocabularyError struct {
	Name string
}

func (e *UnknownVocabularyError) Error() string {
	return "unknown vocabulary: " + e.Name
}
