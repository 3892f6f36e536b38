package cli

import (
	"time"

	"github.com/spf13/afero"

	"github.com/PWbio/gliacloud-video-highlight-tool/internal/adapters/aiproc"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/adapters/cache"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/adapters/ffprobe"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/application"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/config"
	"github.com/PWbio/gliacloud-video-highlight-tool/internal/ports"
)

// App holds all application dependencies
type App struct {
	Config  *config.Config
	Cache   ports.CacheStore
	Indexes ports.IndexCache
	Prober  *ffprobe.Prober
	Source  ports.TranscriptSource
	TTL     time.Duration

	SessionSvc *application.SessionService
	CacheSvc   *application.CacheService
}

// NewApp creates and wires up all dependencies
func NewApp() (*App, error) {
	// Ensure directories exist
	if err := config.EnsureDirs(); err != nil {
		return nil, err
	}

	// Load config
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}

	// Parse cache TTL
	ttl, err := cfg.GetCacheTTL()
	if err != nil {
		ttl = 7 * 24 * time.Hour // Default
	}

	// Create adapters
	cacheStore := cache.NewFileCache(afero.NewOsFs(), config.CacheDir(), ttl)
	indexes, err := cache.NewIndexCache(cfg.Cache.IndexEntries)
	if err != nil {
		return nil, err
	}
	prober := ffprobe.NewProber(cfg.Paths.FFprobe)
	source := transcriptSource(cfg)

	app := &App{
		Config:   cfg,
		Cache:    cacheStore,
		Indexes:  indexes,
		Prober:   prober,
		Source:   source,
		TTL:      ttl,
		CacheSvc: application.NewCacheService(cacheStore),
	}
	app.rebuildSession()
	return app, nil
}

// transcriptSource picks the configured AI processing endpoint, falling back
// to the offline generator when none is set.
func transcriptSource(cfg *config.Config) ports.TranscriptSource {
	if cfg.Source.Endpoint != "" {
		return aiproc.NewClient(cfg.Source.Endpoint)
	}
	return aiproc.NewGenerator(cfg.Source.Seed)
}

// rebuildSession recreates the session service from the current fields.
// Called again after command-line flags override Source or TTL.
func (a *App) rebuildSession() {
	a.SessionSvc = application.NewSessionService(a.Prober, a.Source, a.Cache, a.Indexes, a.TTL)
}

var globalApp *App

// GetApp returns the global app instance, creating it if needed
func GetApp() (*App, error) {
	if globalApp == nil {
		app, err := NewApp()
		if err != nil {
			return nil, err
		}
		globalApp = app
	}
	return globalApp, nil
}
