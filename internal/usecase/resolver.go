package usecase

import (
	"fmt"
	"strings"

	"paperflow/internal/domain"
	"paperflow/internal/port"
)

// AuthorResolver maps free-text author names to stable relational IDs
// within one batch session. Names compare case-insensitively after
// trimming; names seen earlier in the pass resolve from an in-memory
// cache without another store round-trip, so at most one author row is
// created per distinct normalized name per run.
type AuthorResolver struct {
	session port.RelationalSession
	cache   map[string]int64
	created int
}

// NewAuthorResolver creates a resolver bound to one batch session.
func NewAuthorResolver(session port.RelationalSession) *AuthorResolver {
	return &AuthorResolver{
		session: session,
		cache:   make(map[string]int64),
	}
}

// Resolve returns the ID of the author with the given name, creating the
// row on first sighting. An empty name after trimming is a validation
// error.
func (r *AuthorResolver) Resolve(fullName, title string) (int64, error) {
	name := strings.TrimSpace(fullName)
	if name == "" {
		return 0, fmt.Errorf("%w: empty author name", domain.ErrValidation)
	}

	key := strings.ToLower(name)
	if id, ok := r.cache[key]; ok {
		return id, nil
	}

	id, found, err := r.session.FindAuthor(name)
	if err != nil {
		return 0, err
	}
	if !found {
		id, err = r.session.InsertAuthor(name, strings.TrimSpace(title))
		if err != nil {
			return 0, err
		}
		r.created++
	}

	r.cache[key] = id
	return id, nil
}

// Created returns how many author rows this resolver inserted.
func (r *AuthorResolver) Created() int {
	return r.created
}
