package store

import (
	"fmt"

	"github.com/talentscout-ai/talentscout/internal/model"
)

// NopStore discards all sessions. Used in offline mode so dry runs leave no
// trace on disk.
type NopStore struct{}

// NewNopStore returns a NopStore.
func NewNopStore() *NopStore {
	return &NopStore{}
}

// SaveSession discards the record.
func (n *NopStore) SaveSession(model.SessionRecord) error {
	return nil
}

// ListSessions always returns an empty list.
func (n *NopStore) ListSessions() ([]model.SessionSummary, error) {
	return nil, nil
}

// GetSession always reports not found.
func (n *NopStore) GetSession(id string) (model.SessionRecord, error) {
	return model.SessionRecord{}, fmt.Errorf("session %s not found", id)
}
