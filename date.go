package entrykit

import (
	"strings"
	"time"
)

// DateDisplay is the shape of an entry's date block: a SingleDate or a
// DateRange.
type DateDisplay interface {
	isDateDisplay()
}

// SingleDate is shown when an entry was never modified after publishing.
type SingleDate struct {
	Published time.Time
}

// DateRange is shown when the modified time differs from the published time.
type DateRange struct {
	Published time.Time
	Modified  time.Time
}

func (SingleDate) isDateDisplay() {}
func (DateRange) isDateDisplay()  {}

// DateDisplayFor compares the entry's timestamps to the second. An entry
// without a modification time shows its publish date only.
func DateDisplayFor(e Entry) DateDisplay {
	if e.ModifiedAt.IsZero() {
		return SingleDate{Published: e.PublishedAt}
	}
	published := e.PublishedAt.Truncate(time.Second)
	modified := e.ModifiedAt.Truncate(time.Second)
	if published.Equal(modified) {
		return SingleDate{Published: e.PublishedAt}
	}
	return DateRange{Published: e.PublishedAt, Modified: e.ModifiedAt}
}

// formatDates renders the <time> elements for d.
func (r *Renderer) formatDates(d DateDisplay) string {
	var b strings.Builder
	switch d := d.(type) {
	case SingleDate:
		r.writeTime(&b, d.Published)
	case DateRange:
		r.writeTime(&b, d.Published)
		r.writeTime(&b, d.Modified)
	}
	return b.String()
}

func (r *Renderer) writeTime(b *strings.Builder, t time.Time) {
	b.WriteString(`<time datetime="`)
	b.WriteString(r.esc.EscapeAttribute(t.Format(machineDateFormat)))
	b.WriteString(`">`)
	b.WriteString(r.esc.EscapeText(t.Format(r.cfg.DateFormat)))
	b.WriteString(`</time>`)
}
