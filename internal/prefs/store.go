// Package prefs persists the browser's preference toggles as string pairs
// in an embedded badger database.
package prefs

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/davidpaquet/sekai-chart-browser/internal/locale"
	"github.com/davidpaquet/sekai-chart-browser/internal/logging"
)

// ErrClosed is returned by every operation after Close
var ErrClosed = errors.New("preference store closed")

const keyPrefix = "pref:"

// Preference keys
const (
	KeyLanguage       = "language"
	KeyBackground     = "background"
	KeyOpacity        = "opacity"
	KeyUseWebP        = "useWebP"
	KeyMirror         = "mirror"
	KeyChoseongSearch = "choseongSearch"
	KeyHideSpoilers   = "hideSpoilers"
)

// Preferences is the typed view of the stored toggles
type Preferences struct {
	Language       locale.Locale
	Background     string
	Opacity        float64
	UseWebP        bool
	Mirror         bool
	ChoseongSearch bool
	HideSpoilers   bool
}

// Defaults returns the value of every preference that was never stored
func Defaults() Preferences {
	return Preferences{
		Language:       locale.Korean,
		Background:     "default",
		Opacity:        0.5,
		UseWebP:        true,
		Mirror:         false,
		ChoseongSearch: true,
		HideSpoilers:   false,
	}
}

// Store is a string key/value store. There are no transactional
// guarantees across keys.
type Store struct {
	mu     sync.RWMutex
	db     *badger.DB
	closed bool
}

// Open opens the store under dir, or purely in memory
func Open(dir string, inMemory bool) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening preference store: %w", err)
	}
	return &Store{db: db}, nil
}

// Get returns the stored value of key
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}

	var value string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key
func (s *Store) Set(key, value string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// SetBool stores a boolean toggle
func (s *Store) SetBool(key string, v bool) error {
	return s.Set(key, strconv.FormatBool(v))
}

// SetFloat stores a numeric preference
func (s *Store) SetFloat(key string, v float64) error {
	return s.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
}

// Load reads every preference once, substituting the default for keys that
// are absent or hold something unparseable.
func (s *Store) Load() (Preferences, error) {
	p := Defaults()

	str := func(key string, dst *string) error {
		v, ok, err := s.Get(key)
		if err != nil {
			return err
		}
		if ok && v != "" {
			*dst = v
		}
		return nil
	}
	boolean := func(key string, dst *bool) error {
		v, ok, err := s.Get(key)
		if err != nil || !ok {
			return err
		}
		b, perr := strconv.ParseBool(v)
		if perr != nil {
			logging.Warn().Str("key", key).Str("value", v).Msg("ignoring invalid preference")
			return nil
		}
		*dst = b
		return nil
	}

	var lang string
	if err := str(KeyLanguage, &lang); err != nil {
		return p, err
	}
	if lang != "" {
		p.Language = locale.Parse(lang)
	}
	if err := str(KeyBackground, &p.Background); err != nil {
		return p, err
	}

	v, ok, err := s.Get(KeyOpacity)
	if err != nil {
		return p, err
	}
	if ok {
		if f, perr := strconv.ParseFloat(v, 64); perr == nil && f >= 0 && f <= 1 {
			p.Opacity = f
		}
	}

	for key, dst := range map[string]*bool{
		KeyUseWebP:        &p.UseWebP,
		KeyMirror:         &p.Mirror,
		KeyChoseongSearch: &p.ChoseongSearch,
		KeyHideSpoilers:   &p.HideSpoilers,
	} {
		if err := boolean(key, dst); err != nil {
			return p, err
		}
	}
	return p, nil
}

// Save writes every preference
func (s *Store) Save(p Preferences) error {
	writes := []struct {
		key   string
		value string
	}{
		{KeyLanguage, string(p.Language)},
		{KeyBackground, p.Background},
		{KeyOpacity, strconv.FormatFloat(p.Opacity, 'f', -1, 64)},
		{KeyUseWebP, strconv.FormatBool(p.UseWebP)},
		{KeyMirror, strconv.FormatBool(p.Mirror)},
		{KeyChoseongSearch, strconv.FormatBool(p.ChoseongSearch)},
		{KeyHideSpoilers, strconv.FormatBool(p.HideSpoilers)},
	}
	for _, w := range writes {
		if err := s.Set(w.key, w.value); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the database
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
