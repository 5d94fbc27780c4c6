package sitegen

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
)

var tocParagraph = []byte("<p>" + MarkerTOC + "</p>")

type tocHeading struct {
	level int
	id    string
	text  string
}

// InsertTOC replaces every paragraph consisting only of [TOC] in doc
// with a nested list linking to the document's headings that have ids.
func InsertTOC(doc []byte) ([]byte, error) {
	if !bytes.Contains(doc, tocParagraph) {
		return doc, nil
	}
	headings, err := collectHeadings(doc)
	if err != nil {
		return nil, err
	}
	return bytes.ReplaceAll(doc, tocParagraph, []byte(tocHTML(headings))), nil
}

func collectHeadings(doc []byte) ([]tocHeading, error) {
	z := html.NewTokenizer(bytes.NewReader(doc))

	var (
		headings []tocHeading
		current  *tocHeading
		text     strings.Builder
	)

	for {
		switch z.Next() {
		case html.ErrorToken:
			err := z.Err()
			if errors.Is(err, io.EOF) {
				return headings, nil
			}
			return nil, err

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			level := headingLevel(name)
			if level == 0 || current != nil {
				continue
			}
			var id string
			for hasAttr {
				var k, v []byte
				k, v, hasAttr = z.TagAttr()
				if string(k) == "id" {
					id = string(v)
				}
			}
			if id == "" {
				continue
			}
			current = &tocHeading{level: level, id: id}
			text.Reset()

		case html.TextToken:
			if current != nil {
				text.Write(z.Text())
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			if current == nil || headingLevel(name) != current.level {
				continue
			}
			current.text = strings.TrimSpace(text.String())
			headings = append(headings, *current)
			current = nil
		}
	}
}

func headingLevel(tag []byte) int {
	if len(tag) != 2 || tag[0] != 'h' {
		return 0
	}
	if tag[1] < '1' || tag[1] > '6' {
		return 0
	}
	return int(tag[1] - '0')
}

// tocHTML nests headings by level. Each open level holds one
// unclosed <ul> and one unclosed <li>.
func tocHTML(headings []tocHeading) string {
	var b strings.Builder
	b.WriteString("<div class=\"toc\">\n")

	var open []int
	for _, h := range headings {
		for len(open) > 0 && h.level < open[len(open)-1] {
			b.WriteString("</li>\n</ul>\n")
			open = open[:len(open)-1]
		}
		if len(open) == 0 || h.level > open[len(open)-1] {
			b.WriteString("<ul>\n")
			open = append(open, h.level)
		} else {
			b.WriteString("</li>\n")
		}
		Fprintf(&b, "<li><a href=\"#%s\">%s</a>", html.EscapeString(h.id), html.EscapeString(h.text))
	}
	for range open {
		b.WriteString("</li>\n</ul>\n")
	}

	b.WriteString("</div>\n")
	return b.String()
}
