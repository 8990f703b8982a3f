package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/handiism/podcast-archiver/internal/audio"
	"github.com/handiism/podcast-archiver/internal/catalog"
	"github.com/handiism/podcast-archiver/internal/config"
	"github.com/handiism/podcast-archiver/internal/feed"
	"github.com/handiism/podcast-archiver/internal/http"
	ioutils "github.com/handiism/podcast-archiver/internal/io"
	"github.com/handiism/podcast-archiver/internal/model"
	"github.com/handiism/podcast-archiver/internal/reconcile"
)

// CatalogStore persists the catalog.
type CatalogStore interface {
	Save(c *catalog.Catalog) error
}

// Option configures a Manager.
type Option func(*Manager)

// WithDryRun makes Run plan and log without downloading or saving.
func WithDryRun(dryRun bool) Option {
	return func(m *Manager) { m.dryRun = dryRun }
}

// WithSource replaces the HTTP feed source.
func WithSource(source feed.Source) Option {
	return func(m *Manager) { m.source = source }
}

// WithRunID sets the run identifier attached to every log line.
func WithRunID(id string) Option {
	return func(m *Manager) { m.runID = id }
}

// Manager runs the archiving pipeline over every configured podcast.
type Manager struct {
	settings     *config.Settings
	store        CatalogStore
	source       feed.Source
	fetcher      *Fetcher
	engine       *reconcile.Engine
	tagger       *audio.Tagger
	playlist     *audio.PlaylistCreator
	imageService *ioutils.ImageService

	dryRun bool
	runID  string
	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error
}

// NewManager creates a Manager. store receives the catalog after every
// committed episode.
func NewManager(settings *config.Settings, store CatalogStore, logger *slog.Logger, opts ...Option) *Manager {
	client := http.NewClient(settings.ToHTTPOptions())

	m := &Manager{
		settings:     settings,
		store:        store,
		source:       feed.NewParser(client),
		engine:       &reconcile.Engine{RepeatLimit: settings.Reconcile.RepeatLimit, Episode: settings.ToEpisodeOptions()},
		tagger:       audio.NewTagger(settings.ToTagConfig()),
		imageService: ioutils.NewImageService(),
		runID:        uuid.NewString(),
		sleep:        sleepContext,
	}
	if settings.Playlist.Create {
		m.playlist = audio.NewPlaylistCreator(settings.PlaylistFormat())
	}
	for _, opt := range opts {
		opt(m)
	}

	m.logger = logger.With("run_id", m.runID)
	m.fetcher = NewFetcher(client, settings.Download.MaxAttempts, m.logger)
	return m
}

// RunID returns the identifier of this manager's run.
func (m *Manager) RunID() string {
	return m.runID
}

// podcastRun is the state of one podcast being processed.
type podcastRun struct {
	podcast *model.Podcast
	folder  string

	// record is nil until the first episode is committed for a podcast the
	// catalog has never seen.
	record *catalog.Podcast

	logger *slog.Logger
}

// recordIn returns the catalog record, adding it to cat on first use.
func (r *podcastRun) recordIn(cat *catalog.Catalog) *catalog.Podcast {
	if r.record == nil {
		r.record = cat.Add(catalog.NewPodcast(r.podcast))
	}
	return r.record
}

// Run processes every configured podcast in order. It returns a non-nil
// error only when ctx is cancelled; per-podcast failures are in the Report.
func (m *Manager) Run(ctx context.Context, cat *catalog.Catalog) (*Report, error) {
	report := &Report{RunID: m.runID, DryRun: m.dryRun}

	m.logger.Info("run started",
		"podcasts", len(m.settings.Podcasts),
		"dry_run", m.dryRun,
	)

	for _, ps := range m.settings.Podcasts {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		pr := m.runPodcast(ctx, cat, ps)
		report.Podcasts = append(report.Podcasts, pr)

		if err := ctx.Err(); err != nil {
			return report, err
		}
	}

	added, repeats, skipped, failed := report.Totals()
	m.logger.Info("run finished",
		"new", added,
		"repeats", repeats,
		"skipped", skipped,
		"failed", failed,
		"failed_podcasts", report.FailedPodcasts(),
	)
	return report, nil
}

func (m *Manager) runPodcast(ctx context.Context, cat *catalog.Catalog, ps config.PodcastSettings) PodcastReport {
	pr := PodcastReport{Key: ps.Key}
	logger := m.logger.With("podcast", ps.Key)

	doc, err := m.source.Fetch(ctx, ps.Feed)
	if err != nil {
		pr.Err = err
		logger.Error("feed fetch failed", "feed", ps.Feed, "err", err)
		return pr
	}

	p := model.NewPodcast(ps.Feed, doc, ps.Overrides())
	pr.Name = p.Name
	logger = m.logger.With("podcast", p.Name)

	run := &podcastRun{
		podcast: p,
		folder:  filepath.Join(m.settings.Path, ioutils.SanitizeFileName(p.FolderName())),
		record:  cat.Find(p.Name),
		logger:  logger,
	}

	var history reconcile.History
	if run.record != nil {
		history = run.record
	}

	plan, err := m.engine.Reconcile(p, doc.Entries, history)
	if err != nil {
		pr.Err = err
		logger.Error("reconciliation failed", "err", err)
		return pr
	}

	pr.Repeats = len(plan.Repeats)
	pr.Skipped = len(plan.Skipped)
	for _, skip := range plan.Skipped {
		logger.Error("episode skipped", "index", skip.Index, "title", skip.Title, "err", skip.Err)
	}
	logger.Info("feed reconciled",
		"entries", len(doc.Entries),
		"keep", p.Keep,
		"first_run", plan.FirstRun,
		"scanned", plan.Scanned,
		"new", len(plan.Episodes),
		"repeats", len(plan.Repeats),
		"stopped", plan.Stopped,
	)

	if m.dryRun {
		pr.Planned = plan.Episodes
		for _, ep := range plan.Episodes {
			logger.Info("would download", "track", ep.TrackNum, "title", ep.Title, "url", ep.DownloadURL)
		}
		return pr
	}

	if len(plan.Episodes) == 0 {
		return pr
	}

	if err := ioutils.EnsureDir(run.folder); err != nil {
		pr.Err = err
		logger.Error("cannot create podcast folder", "folder", run.folder, "err", err)
		return pr
	}

	committed := 0
	for i, ep := range plan.Episodes {
		epLogger := logger.With("title", ep.Title, "track", ep.TrackNum)

		if err := m.downloadAndTag(ctx, run, ep, epLogger); err != nil {
			if ctx.Err() != nil {
				pr.Err = ctx.Err()
				return pr
			}
			pr.Failed++
			epLogger.Error("episode not committed", "err", err)
			continue
		}

		run.recordIn(cat).Insert(committed, ep)
		committed++
		if err := m.store.Save(cat); err != nil {
			pr.Err = fmt.Errorf("persist catalog: %w", err)
			epLogger.Error("catalog save failed", "err", err)
			return pr
		}
		pr.New++
		epLogger.Info("episode committed")

		// The courtesy pause follows a commit only.
		if i < len(plan.Episodes)-1 {
			if err := m.sleep(ctx, m.settings.Download.EpisodeDelay); err != nil {
				pr.Err = err
				return pr
			}
		}
	}

	if committed > 0 && m.playlist != nil {
		m.writePlaylist(run)
	}
	return pr
}

// downloadAndTag fetches the episode's assets into the podcast folder and
// tags the audio file. Only a tag failure is returned; a failed download is
// logged and the pipeline continues.
func (m *Manager) downloadAndTag(ctx context.Context, run *podcastRun, ep model.Episode, logger *slog.Logger) error {
	audioPath := filepath.Join(run.folder, ep.Filename)
	if _, err := m.fetcher.Fetch(ctx, ep.DownloadURL, audioPath); err != nil {
		logger.Error("audio download failed", "err", err)
	}

	var cover []byte
	if ep.HasImage() {
		cover = m.downloadCover(ctx, run, ep, logger)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return m.tagger.WriteTags(audioPath, ep, cover)
}

func (m *Manager) downloadCover(ctx context.Context, run *podcastRun, ep model.Episode, logger *slog.Logger) []byte {
	imagePath := filepath.Join(run.folder, ep.ImageFilename)
	if _, err := m.fetcher.Fetch(ctx, ep.ImageURL, imagePath); err != nil {
		logger.Warn("image download failed, tagging without cover", "err", err)
		return nil
	}

	data, err := os.ReadFile(imagePath)
	if err != nil {
		logger.Warn("cannot read image, tagging without cover", "err", err)
		return nil
	}

	cover, err := m.imageService.PrepareCover(data, m.settings.Tagging.CoverArtMaxSize)
	if err != nil {
		logger.Warn("cover art left unprocessed", "err", err)
		return data
	}
	return cover
}

func (m *Manager) writePlaylist(run *podcastRun) {
	path := filepath.Join(run.folder, m.playlist.FileName(run.record))
	content := m.playlist.CreatePlaylist(run.record)
	if err := ioutils.WriteFileAtomic(path, []byte(content)); err != nil {
		run.logger.Warn("playlist not written", "path", path, "err", err)
		return
	}
	run.logger.Debug("playlist written", "path", path)
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsInterrupted reports whether err stems from context cancellation.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
