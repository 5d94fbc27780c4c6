package sitegen

import (
	"html"
	"strings"
)

// PostsIndex renders the {{ posts }} replacement: one block per post,
// in the order given, each linking to the post's output URL.
// Only post records are ever passed in, never pages.
func PostsIndex(root string, posts []*ContentRecord) (string, error) {
	var b strings.Builder
	b.WriteString(`<div class="posts">`)

	for _, p := range posts {
		url, err := URL(root, p.path)
		if err != nil {
			return "", err
		}

		meta := p.metadata
		b.WriteString("<div class=\"post\">\n")
		b.WriteString("<div class=\"post-heading\">\n")
		Fprintf(&b, "<a href=\"%s\">%s</a>\n", html.EscapeString(url), html.EscapeString(meta.Title))
		b.WriteString("</div>\n")
		b.WriteString("<div class=\"post-desc\">\n")
		Fprintf(&b, "%s\n", html.EscapeString(meta.Description))
		b.WriteString("</div>\n")
		b.WriteString("</div>\n")
	}

	b.WriteString(`</div>`)
	return b.String(), nil
}
