// Package persistence saves the timeline dataset to a key/value backend.
//
// The dataset is stored as five JSON documents, one per collection, under
// fixed keys that share a configurable prefix.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/palemoky/dynasty-timeline/internal/model"
)

// ErrNotFound is returned by backends when a key has no stored value
var ErrNotFound = errors.New("persistence: key not found")

// DefaultPrefix is prepended to every stored key
const DefaultPrefix = "timeline_"

// Collection names, before the prefix is applied
const (
	KeyDynasties  = "dynasties"
	KeyKings      = "kings"
	KeyEvents     = "events"
	KeyWars       = "wars"
	KeyUISettings = "uiSettings"
)

// Keys lists every collection name in write order
var Keys = []string{KeyDynasties, KeyKings, KeyEvents, KeyWars, KeyUISettings}

// Backend is a flat key/value store for JSON documents
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// batchPutter is implemented by backends that can write several keys atomically
type batchPutter interface {
	PutMany(ctx context.Context, entries map[string][]byte) error
}

// Encode serializes each collection of st, keyed by collection name
func Encode(st model.State) (map[string][]byte, error) {
	st.Normalize()
	values := map[string]any{
		KeyDynasties:  st.Dynasties,
		KeyKings:      st.Kings,
		KeyEvents:     st.Events,
		KeyWars:       st.Wars,
		KeyUISettings: st.UISettings,
	}

	out := make(map[string][]byte, len(values))
	for key, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		out[key] = data
	}
	return out, nil
}

// Decode rebuilds a state from collection documents. Missing collections stay empty.
func Decode(docs map[string][]byte) (model.State, error) {
	st := model.NewState()
	targets := map[string]any{
		KeyDynasties:  &st.Dynasties,
		KeyKings:      &st.Kings,
		KeyEvents:     &st.Events,
		KeyWars:       &st.Wars,
		KeyUISettings: &st.UISettings,
	}
	for _, key := range Keys {
		data, ok := docs[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(data, targets[key]); err != nil {
			return model.State{}, fmt.Errorf("failed to decode %s: %w", key, err)
		}
	}
	st.Normalize()
	return st, nil
}

// readAll fetches every collection document present in the backend
func readAll(ctx context.Context, b Backend, prefix string) (map[string][]byte, error) {
	docs := make(map[string][]byte, len(Keys))
	for _, key := range Keys {
		data, err := b.Get(ctx, prefix+key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", prefix+key, err)
		}
		docs[key] = data
	}
	return docs, nil
}

// Load reads the dataset from the backend. The boolean reports whether any
// collection was stored at all, so callers can seed a fresh installation.
func Load(ctx context.Context, b Backend, prefix string) (model.State, bool, error) {
	docs, err := readAll(ctx, b, prefix)
	if err != nil {
		return model.State{}, false, err
	}
	st, err := Decode(docs)
	if err != nil {
		return model.State{}, false, err
	}
	return st, len(docs) > 0, nil
}

// Save writes every collection of st to the backend
func Save(ctx context.Context, b Backend, prefix string, st model.State) error {
	docs, err := Encode(st)
	if err != nil {
		return err
	}
	return putAll(ctx, b, prefix, docs)
}

// Purge deletes every collection key from the backend
func Purge(ctx context.Context, b Backend, prefix string) error {
	for _, key := range Keys {
		if err := b.Delete(ctx, prefix+key); err != nil {
			return fmt.Errorf("failed to delete %s: %w", prefix+key, err)
		}
	}
	return nil
}

func putAll(ctx context.Context, b Backend, prefix string, docs map[string][]byte) error {
	if len(docs) == 0 {
		return nil
	}
	prefixed := make(map[string][]byte, len(docs))
	for key, data := range docs {
		prefixed[prefix+key] = data
	}
	if bp, ok := b.(batchPutter); ok {
		return bp.PutMany(ctx, prefixed)
	}
	for _, key := range Keys {
		data, ok := prefixed[prefix+key]
		if !ok {
			continue
		}
		if err := b.Put(ctx, prefix+key, data); err != nil {
			return fmt.Errorf("failed to write %s: %w", prefix+key, err)
		}
	}
	return nil
}
