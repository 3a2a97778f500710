// Package models defines client-side data models used by the notekeeper CLI.
package models

import (
	"encoding/json"
	"time"
)

// Note is a single entry of the remote note collection.
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// noteWire mirrors the service payload. Mongo-backed services emit "_id".
type noteWire struct {
	ID        string `json:"id"`
	MongoID   string `json:"_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// UnmarshalJSON accepts either "id" or "_id" and tolerates a missing or
// unparseable createdAt, leaving CreatedAt zero.
func (n *Note) UnmarshalJSON(b []byte) error {
	var w noteWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	n.ID = w.ID
	if n.ID == "" {
		n.ID = w.MongoID
	}
	n.Content = w.Content
	n.CreatedAt = time.Time{}
	if w.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339Nano, w.CreatedAt); err == nil {
			n.CreatedAt = t
		}
	}
	return nil
}
