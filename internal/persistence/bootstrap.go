package persistence

import (
	"context"

	"github.com/palemoky/dynasty-timeline/internal/model"
	"github.com/palemoky/dynasty-timeline/internal/store"
)

// BootstrapOptions controls how a store is filled on startup
type BootstrapOptions struct {
	Prefix string
	// SeedSample loads the sample dataset when the backend holds nothing
	SeedSample bool
	// DefaultLevel applies when no settings were stored yet
	DefaultLevel model.ValidationLevel
	StoreOptions []store.Option
}

// Bootstrap creates a store holding the dataset saved in b.
// The boolean reports whether the backend held any data.
func Bootstrap(ctx context.Context, b Backend, opts BootstrapOptions) (*store.Store, bool, error) {
	docs, err := readAll(ctx, b, opts.Prefix)
	if err != nil {
		return nil, false, err
	}
	st, err := Decode(docs)
	if err != nil {
		return nil, false, err
	}

	s := store.New(opts.StoreOptions...)
	found := len(docs) > 0
	if !found && opts.SeedSample {
		if err := s.ResetToSample(); err != nil {
			return nil, false, err
		}
	} else {
		s.Restore(st)
	}

	if _, ok := docs[KeyUISettings]; !ok && opts.DefaultLevel != "" {
		_, err := s.UpdateSettings(func(us *model.UISettings) error {
			us.ValidationLevel = opts.DefaultLevel
			return nil
		})
		if err != nil {
			return nil, false, err
		}
	}
	return s, found, nil
}
