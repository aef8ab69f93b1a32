package entrykit

import "strconv"

// Config holds the settings shared by every render pass. It must not change
// while renders are in flight.
type Config struct {
	Locale            string `koanf:"locale"`              // Default label locale (default "en")
	DateFormat        string `koanf:"date_format"`         // Go layout for human-readable dates (default "January 2, 2006")
	AvatarSize        int    `koanf:"avatar_size"`         // Avatar edge in pixels (default 60)
	ListingImageSize  string `koanf:"listing_image_size"`  // Thumbnail size name in listings (default "post-thumbnail")
	SingularImageSize string `koanf:"singular_image_size"` // Thumbnail size name on singular pages (default "full")

	// LenientLabels substitutes the raw key for a missing translation
	// instead of failing the render.
	LenientLabels bool `koanf:"lenient_labels"`

	// Labels adds or overrides labels per locale, e.g. Labels["de"]["featured"].
	Labels map[string]map[string]string `koanf:"labels"`
}

// machineDateFormat matches the W3C datetime profile of ISO 8601.
const machineDateFormat = "2006-01-02T15:04:05-07:00"

func (c *Config) setDefaults() {
	if c.Locale == "" {
		c.Locale = "en"
	}
	if c.DateFormat == "" {
		c.DateFormat = "January 2, 2006"
	}
	if c.AvatarSize == 0 {
		c.AvatarSize = 60
	}
	if c.ListingImageSize == "" {
		c.ListingImageSize = "post-thumbnail"
	}
	if c.SingularImageSize == "" {
		c.SingularImageSize = "full"
	}
}

func (c *Config) validate() error {
	if c.AvatarSize < 0 {
		return &ConfigurationError{Key: "avatar_size", Reason: "must be positive, got " + strconv.Itoa(c.AvatarSize)}
	}
	return nil
}

// Option configures additional Renderer behavior.
type Option func(*Renderer)

// WithEscaper replaces the default HTMLEscaper.
func WithEscaper(e Escaper) Option {
	return func(r *Renderer) {
		r.esc = e
	}
}

// WithTranslator replaces the Catalog built from Config.Labels.
func WithTranslator(t Translator) Option {
	return func(r *Renderer) {
		r.tr = t
	}
}

// WithFooter replaces the footer block ComposeEntry places after the body.
// The default is Renderer.EntryFooter.
func WithFooter(fn FragmentFunc) Option {
	return func(r *Renderer) {
		r.footer = fn
	}
}

// WithLenientLabels turns on Config.LenientLabels.
func WithLenientLabels() Option {
	return func(r *Renderer) {
		r.cfg.LenientLabels = true
	}
}
