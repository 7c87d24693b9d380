// Package catalog loads the song catalog from the provider and derives the
// per-catalog global ranges.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/davidpaquet/sekai-chart-browser/internal/logging"
	"github.com/davidpaquet/sekai-chart-browser/internal/model"
)

var (
	// ErrFetch is returned when the provider cannot be reached
	ErrFetch = errors.New("catalog fetch failed")
	// ErrStatus is returned for a non-success HTTP status
	ErrStatus = errors.New("catalog provider returned an error status")
	// ErrDecode is returned when the body is not a JSON array of records
	ErrDecode = errors.New("catalog is not a JSON array")
)

// Report summarizes what ingestion absorbed
type Report struct {
	Records  int
	Skipped  int
	Degraded int
}

// Decode parses a catalog body. Each record is decoded on its own so a
// malformed record is skipped without affecting the others; only a body
// that is not an array fails.
func Decode(r io.Reader) ([]model.Song, Report, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, Report{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	rep := Report{Records: len(raw)}
	songs := make([]model.Song, 0, len(raw))
	for i, msg := range raw {
		var rec model.Record
		if err := json.Unmarshal(msg, &rec); err != nil {
			rep.Skipped++
			logging.Warn().Err(err).Int("record", i).Msg("skipping malformed record")
			continue
		}
		song, issues, err := rec.ToSong(len(songs))
		if err != nil {
			rep.Skipped++
			logging.Warn().Err(err).Int("record", i).Msg("skipping record")
			continue
		}
		if len(issues) > 0 {
			rep.Degraded++
			for _, is := range issues {
				logging.Debug().
					Str("song", song.ID).
					Str("field", is.Field).
					Str("value", is.Value).
					Msg(is.Reason)
			}
		}
		songs = append(songs, song)
	}
	return songs, rep, nil
}

// DecodeBytes is Decode over an in-memory body
func DecodeBytes(data []byte) ([]model.Song, Report, error) {
	return Decode(bytes.NewReader(data))
}

// LoadFile reads a catalog from a local JSON file
func LoadFile(path string) ([]model.Song, Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Report{}, fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
