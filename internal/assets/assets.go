// Package assets builds deep links to the hosted cover art and chart files.
// Nothing here fetches anything.
package assets

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/davidpaquet/sekai-chart-browser/internal/model"
)

// DefaultBaseURL is the public asset host
const DefaultBaseURL = "https://asset.rilaksekai.com"

// Format selects how charts are rendered by the host
type Format int

const (
	// FormatPage is the interactive chart page
	FormatPage Format = iota
	// FormatSVG is the raw vector image
	FormatSVG
)

func (f Format) category() string {
	if f == FormatSVG {
		return "svg"
	}
	return "charts"
}

func (f Format) ext() string {
	if f == FormatSVG {
		return "svg"
	}
	return "html"
}

// FormatFor maps the stored format preference to a Format
func FormatFor(useWebP bool) Format {
	if useWebP {
		return FormatPage
	}
	return FormatSVG
}

// Host builds URLs under one base
type Host struct {
	base string
}

// NewHost creates a host; an empty base uses DefaultBaseURL
func NewHost(base string) Host {
	if base == "" {
		base = DefaultBaseURL
	}
	return Host{base: strings.TrimRight(base, "/")}
}

// PaddedID zero-pads numeric ids to three digits. Other ids pass through.
func PaddedID(id string) string {
	if n, err := strconv.Atoi(id); err == nil && n >= 0 {
		return fmt.Sprintf("%03d", n)
	}
	return id
}

// cacheBuster returns the query suffix for an asset version; versions ""
// and "0" add none.
func cacheBuster(ver string) string {
	if ver == "" || ver == "0" {
		return ""
	}
	return "?v=" + url.QueryEscape(ver)
}

// Cover returns the cover art URL of a song
func (h Host) Cover(s *model.Song) string {
	return h.base + "/cover/" + PaddedID(s.ID) + ".jpg" + cacheBuster(s.AssetVersion)
}

// Chart returns the URL of one difficulty's chart. Mirrored charts carry
// a "_mirror" suffix on the file name.
func (h Host) Chart(s *model.Song, tier model.Tier, format Format, mirror bool) string {
	name := string(tier)
	if mirror {
		name += "_mirror"
	}
	return fmt.Sprintf("%s/%s/%s/%s.%s%s",
		h.base, format.category(), url.PathEscape(s.ID), name, format.ext(), cacheBuster(s.AssetVersion))
}

// Charts returns the chart URL of every tier the song has, in tier order
func (h Host) Charts(s *model.Song, format Format, mirror bool) []Link {
	links := make([]Link, 0, len(model.Tiers))
	for _, t := range model.Tiers {
		lv, ok := s.Level(t)
		if !ok {
			continue
		}
		links = append(links, Link{Tier: t, Level: lv, URL: h.Chart(s, t, format, mirror)})
	}
	return links
}

// Link is one chart deep link
type Link struct {
	Tier  model.Tier
	Level int
	URL   string
}
