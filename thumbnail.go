package entrykit

import "context"

// Thumbnail renders the entry's featured image. Singular views get the full
// image in a figure; listings get the smaller listing size wrapped in a
// decorative link that assistive technology and the tab order skip, since
// the title already links to the entry.
func (r *Renderer) Thumbnail(_ context.Context, e Entry, rc RenderContext) (Fragment, error) {
	tp := r.hosts.Thumbnails
	if tp == nil || !e.HasThumbnail || !tp.IsEligible(e) {
		return "", nil
	}

	if rc.ViewMode == Singular {
		img, err := tp.ImageMarkup(e, r.cfg.SingularImageSize)
		if err != nil {
			return "", err
		}
		return Fragment(`<figure class="post-thumbnail">` + string(img) + `</figure>`), nil
	}

	img, err := tp.ImageMarkup(e, r.cfg.ListingImageSize)
	if err != nil {
		return "", err
	}
	link, err := r.permalink(e)
	if err != nil {
		return "", err
	}
	href := r.esc.EscapeURL(link)
	if href == "" {
		return Fragment(`<figure class="post-thumbnail">` + string(img) + `</figure>`), nil
	}
	return Fragment(`<figure class="post-thumbnail"><a href="` + href +
		`" aria-hidden="true" tabindex="-1">` + string(img) + `</a></figure>`), nil
}
