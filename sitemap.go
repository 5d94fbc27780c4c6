package sitegen

import (
	"bytes"
	"html"
	"path/filepath"
	"strings"
	"time"
)

const SitemapFileName = "sitemap.xml"

// SitemapOutput returns ${dst}/sitemap.xml listing the HTML files among outputs.
func SitemapOutput(dst, url string, modTime time.Time, outputs []OutputFile) (OutputFile, error) {
	sitemap, err := Sitemap(dst, url, modTime, outputs)
	if err != nil {
		return OutputFile{}, err
	}
	return Output(filepath.Join(dst, SitemapFileName), "", []byte(sitemap), 0o644), nil
}

// Sitemap returns content of ${dst}/sitemap.xml
func Sitemap(
	dst string,
	url string,
	modTime time.Time,
	outputs []OutputFile,
) (
	string,
	error,
) {
	url = strings.TrimSuffix(url, "/")
	dateStr := modTime.Format(time.DateOnly)
	sm := bytes.NewBufferString(`<?xml version="1.0" encoding="UTF-8"?>
<urlset
xmlns:xsi="https://www.w3.org/2001/XMLSchema-instance"
xsi:schemaLocation="https://www.sitemaps.org/schemas/sitemap/0.9
https://www.sitemaps.org/schemas/sitemap/0.9/sitemap.xsd"
xmlns="https://www.sitemaps.org/schemas/sitemap/0.9">
`)
	for i := range outputs {
		o := &outputs[i]
		if filepath.Ext(o.target) != ExtHtml {
			continue
		}
		target, err := filepath.Rel(dst, o.target)
		if err != nil {
			return sm.String(), err
		}
		target = filepath.ToSlash(target)

		// some/path/index.html is listed as some/path/,
		// any other page with its full path.
		loc := url + "/"
		switch filepath.Base(target) {
		case "index.html":
			d := filepath.ToSlash(filepath.Dir(target))
			if d != "." {
				loc += d + "/"
			}
		default:
			loc += target
		}

		Fprintf(sm, "<url><loc>%s</loc>", html.EscapeString(loc))
		Fprintf(sm, "<lastmod>%s</lastmod><priority>1.0</priority></url>\n", dateStr)
	}

	sm.WriteString("</urlset>\n")
	return sm.String(), nil
}
