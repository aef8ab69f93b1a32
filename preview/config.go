package preview

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/eringen/entrykit"
)

// Config holds all configuration for a preview host.
type Config struct {
	SiteName string `koanf:"site_name"` // Site name (default "Preview")
	SiteURL  string `koanf:"site_url"`  // Canonical URL (default "http://localhost:3000")

	Addr         string `koanf:"addr"`          // Listen address (default ":3000")
	DatabasePath string `koanf:"database_path"` // SQLite path (default "data/entries.db")
	UploadsDir   string `koanf:"uploads_dir"`   // Original thumbnail images (default "uploads")

	SessionSecret string `koanf:"session_secret"` // Required: session encryption secret
	CookieSecure  bool   `koanf:"cookie_secure"`  // Set true for HTTPS

	CacheTTL time.Duration `koanf:"cache_ttl"` // Entry cache TTL (default 5min)
	PerPage  int           `koanf:"per_page"`  // Entries per listing page (default 10)

	// ImageSizes maps thumbnail size names to their maximum width in pixels.
	// "full" is always the original image.
	ImageSizes map[string]int `koanf:"image_sizes"`
}

func (c *Config) setDefaults() {
	if c.SiteName == "" {
		c.SiteName = "Preview"
	}
	if c.SiteURL == "" {
		c.SiteURL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/entries.db"
	}
	if c.UploadsDir == "" {
		c.UploadsDir = "uploads"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.PerPage <= 0 {
		c.PerPage = 10
	}
	if len(c.ImageSizes) == 0 {
		c.ImageSizes = map[string]int{"post-thumbnail": 800, "thumbnail": 150}
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithRenderOptions passes extra options to entrykit.New.
func WithRenderOptions(opts ...entrykit.Option) Option {
	return func(a *App) {
		a.renderOpts = append(a.renderOpts, opts...)
	}
}

// WithLogger sets the logger used for request logs and render warnings.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}
