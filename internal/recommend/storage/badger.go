// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const manifestKeyPrefix = "manifest:"

// DefaultRetain is the number of manifests kept when Options.Retain is zero.
const DefaultRetain = 50

// Options configures a BadgerStore.
type Options struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps the database in memory only.
	InMemory bool

	// Retain is the number of manifests kept. Older ones are pruned on Save.
	Retain int
}

// BadgerStore implements ManifestStore on BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	retain int
	logger zerolog.Logger
}

var _ ManifestStore = (*BadgerStore)(nil)

// Open opens or creates a manifest store.
func Open(opts Options, logger zerolog.Logger) (*BadgerStore, error) {
	logger = logger.With().Str("component", "manifest_store").Logger()

	var bopts badger.Options
	if opts.InMemory || opts.Path == "" {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		bopts = badger.DefaultOptions(opts.Path)
	}
	bopts = bopts.WithLogger(&badgerLogger{logger: logger})

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	retain := opts.Retain
	if retain <= 0 {
		retain = DefaultRetain
	}

	logger.Info().
		Str("path", opts.Path).
		Bool("in_memory", opts.InMemory || opts.Path == "").
		Int("retain", retain).
		Msg("manifest store opened")

	return &BadgerStore{db: db, retain: retain, logger: logger}, nil
}

func manifestKey(m *Manifest) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", manifestKeyPrefix, m.BuiltAt.UnixNano(), m.ID))
}

// Save stores m and prunes manifests beyond the retention count.
func (s *BadgerStore) Save(ctx context.Context, m *Manifest) error {
	if m.ID == "" {
		return errors.New("manifest id is required")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(manifestKey(m), data)
	}); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}

	pruned, err := s.prune()
	if err != nil {
		return fmt.Errorf("prune manifests: %w", err)
	}
	if pruned > 0 {
		s.logger.Debug().Int("pruned", pruned).Msg("pruned old manifests")
	}
	return nil
}

// List returns up to limit manifests, newest first. limit <= 0 returns all.
func (s *BadgerStore) List(ctx context.Context, limit int) ([]*Manifest, error) {
	var out []*Manifest

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(manifestKeyPrefix)
		seek := append([]byte(manifestKeyPrefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var m Manifest
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &m)
			}); err != nil {
				return fmt.Errorf("decode manifest: %w", err)
			}
			out = append(out, &m)
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list manifests: %w", err)
	}
	if out == nil {
		out = []*Manifest{}
	}
	return out, nil
}

// Latest returns the newest manifest.
func (s *BadgerStore) Latest(ctx context.Context) (*Manifest, error) {
	list, err := s.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrNoManifest
	}
	return list[0], nil
}

// prune deletes manifests older than the retention window.
func (s *BadgerStore) prune() (int, error) {
	var stale [][]byte

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(manifestKeyPrefix)
		seen := 0
		for it.Seek(append([]byte(manifestKeyPrefix), 0xFF)); it.ValidForPrefix(prefix); it.Next() {
			seen++
			if seen > s.retain {
				stale = append(stale, it.Item().KeyCopy(nil))
			}
		}
		return nil
	})
	if err != nil || len(stale) == 0 {
		return 0, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		for _, key := range stale {
			if err := txn.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(stale), nil
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// badgerLogger routes badger's internal logging to zerolog.
type badgerLogger struct {
	logger zerolog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msgf(format, args...)
}
