package browse

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/davidpaquet/sekai-chart-browser/internal/catalog"
	"github.com/davidpaquet/sekai-chart-browser/internal/logging"
	"github.com/davidpaquet/sekai-chart-browser/internal/model"
	"github.com/davidpaquet/sekai-chart-browser/internal/phonetic"
)

// LoadedMsg carries the outcome of a catalog fetch
type LoadedMsg struct {
	Songs  []model.Song
	Report catalog.Report
	Err    error
}

// AnnotatedMsg carries the annotated copy of a catalog generation
type AnnotatedMsg struct {
	Generation uint64
	Songs      []model.Song
	Elapsed    time.Duration
}

// LoadCmd fetches the catalog once
func LoadCmd(ctx context.Context, src catalog.Source) tea.Cmd {
	return func() tea.Msg {
		songs, report, err := src.Load(ctx)
		if err != nil {
			logging.Err(err).Msg("Catalog load failed")
			return LoadedMsg{Err: err}
		}
		logging.Info().
			Int("records", report.Records).
			Int("skipped", report.Skipped).
			Int("degraded", report.Degraded).
			Msg("Catalog fetched")
		return LoadedMsg{Songs: songs, Report: report}
	}
}

// AnnotateCmd runs the phonetic indexer over a catalog generation after the
// first unannotated render. The input slice is not modified.
func AnnotateCmd(gen uint64, songs []model.Song, ix *phonetic.Indexer) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		annotated := ix.Annotate(songs)
		elapsed := time.Since(start)
		logging.Debug().
			Uint64("generation", gen).
			Int("songs", len(annotated)).
			Dur("elapsed", elapsed).
			Msg("Catalog annotated")
		return AnnotatedMsg{Generation: gen, Songs: annotated, Elapsed: elapsed}
	}
}
