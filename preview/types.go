package preview

import (
	"time"

	"github.com/eringen/entrykit"
)

// Record is an entry as the preview host stores it. It is turned into an
// entrykit.Entry plus RenderContext at render time.
type Record struct {
	Slug         string             `yaml:"slug"`
	Title        string             `yaml:"title"`
	Type         entrykit.EntryType `yaml:"type"`
	PublishedAt  time.Time          `yaml:"published_at"`
	ModifiedAt   time.Time          `yaml:"modified_at"`
	AuthorID     string             `yaml:"author_id"`
	AuthorName   string             `yaml:"author_name"`
	Categories   []string           `yaml:"categories"`
	Tags         []string           `yaml:"tags"`
	CommentCount int                `yaml:"comment_count"`
	CommentsOpen bool               `yaml:"comments_open"`
	Sticky       bool               `yaml:"sticky"`
	Password     string             `yaml:"password,omitempty"`
	Thumbnail    string             `yaml:"thumbnail,omitempty"` // file name under Config.UploadsDir
	Body         string             `yaml:"body"`                // markdown, pages split by <!--nextpage-->

	// Participants are the email addresses of everyone in the discussion,
	// in the order they first commented.
	Participants []string `yaml:"participants,omitempty"`
}

// Link is the record's path on the preview site.
func (r Record) Link() string {
	return "/entry/" + r.Slug + "/"
}
