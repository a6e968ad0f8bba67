package domain

import "strings"

// Topic is a named grouping under which content items are organised.
// The name is the unique key; items reference it by name, not identity.
type Topic struct {
	// Name is the unique, human-readable key (e.g. "Economy").
	Name string

	// Tag is an optional display badge (e.g. "NEW").
	Tag string
}

// Validate checks that the topic carries a usable name.
func (t Topic) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrInvalidInput
	}
	return nil
}
