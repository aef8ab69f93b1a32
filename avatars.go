package entrykit

import (
	"context"
	"strings"
)

// AvatarMarkup renders one participant's avatar at the configured size.
func (r *Renderer) AvatarMarkup(_ context.Context, ref AvatarRef) (Fragment, error) {
	if r.hosts.Avatars == nil {
		return "", nil
	}
	img, err := r.hosts.Avatars.ImageMarkup(ref, r.cfg.AvatarSize)
	if err != nil {
		return "", err
	}
	return Fragment(`<div class="vcard">` + string(img) + `</div>`), nil
}

// AvatarList renders the participants of a discussion as an ordered list,
// in the order given. Duplicates are rendered as many times as they appear;
// callers that want one avatar per participant should pass the refs through
// DedupeAvatars first. An empty list renders nothing at all.
func (r *Renderer) AvatarList(ctx context.Context, refs []AvatarRef) (Fragment, error) {
	if len(refs) == 0 {
		return "", nil
	}
	var b strings.Builder
	b.WriteString("<ol>\n")
	for _, ref := range refs {
		item, err := r.AvatarMarkup(ctx, ref)
		if err != nil {
			return "", err
		}
		b.WriteString("<li>")
		b.WriteString(string(item))
		b.WriteString("</li>\n")
	}
	b.WriteString("</ol>\n")
	return Fragment(b.String()), nil
}

// DedupeAvatars drops repeated refs, keeping the first occurrence of each.
func DedupeAvatars(refs []AvatarRef) []AvatarRef {
	seen := make(map[AvatarRef]struct{}, len(refs))
	var out []AvatarRef
	for _, ref := range refs {
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	return out
}
