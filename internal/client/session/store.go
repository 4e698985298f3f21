// Package session keeps the client's access token between requests and
// runs, and interprets how the server reacted to it.
package session

import (
	"context"

	"github.com/dmitrijs2005/expensetracker/internal/client/repositories/metadata"
)

const tokenKey = "token"

// Store is durable token storage. Load returns "" when nothing is stored.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MetadataStore keeps the token in the local metadata table.
type MetadataStore struct {
	repo metadata.Repository
}

func NewMetadataStore(repo metadata.Repository) *MetadataStore {
	return &MetadataStore{repo: repo}
}

func (s *MetadataStore) Load(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, tokenKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *MetadataStore) Save(ctx context.Context, token string) error {
	return s.repo.Set(ctx, tokenKey, []byte(token))
}

func (s *MetadataStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, tokenKey)
}
