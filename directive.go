package sitegen

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	KeywordTitle = "title"
	KeywordDesc  = "desc"
	KeywordPosts = "posts"

	tokenOpen  = "{{"
	tokenClose = "}}"

	// MarkerTOC is where the renderers insert a table of contents.
	MarkerTOC = "[TOC]"
)

var (
	keywords = []string{KeywordTitle, KeywordDesc, KeywordPosts}

	markerTOCAnyCase = regexp.MustCompile(`(?i)\[toc\]`)

	// quoteClose ends a quoted argument together with its token.
	quoteClose = regexp.MustCompile(`"[ \t\r]*}}`)
)

// Directive is one well-formed {{ keyword [arg] }} token.
// Start and End are byte offsets of the whole token, braces included.
type Directive struct {
	Keyword string
	Arg     string
	Start   int
	End     int
}

// ScanDirectives returns every directive token in md, in document order.
//
// A token is {{, optional blanks, a keyword, optional blanks and arguments,
// optional blanks and }}, all on one line. title and desc take exactly one
// double-quoted string, which may be empty and ends at the first quote
// followed by the closing braces, so {{ title "a}}b" }} has the argument
// a}}b; posts takes nothing. Braces followed by any other word are plain
// text. A known keyword with a bad argument list or without closing braces
// on its line is a *DirectiveError.
func ScanDirectives(md string) ([]Directive, error) {
	if !strings.Contains(md, tokenOpen) {
		return nil, nil
	}

	var directives []Directive
	for i := 0; i < len(md); {
		n := strings.Index(md[i:], tokenOpen)
		if n < 0 {
			break
		}
		start := i + n
		d, ok, err := scanDirective(md, start)
		if err != nil {
			return nil, err
		}
		if !ok {
			i = start + 1
			continue
		}
		directives = append(directives, d)
		i = d.End
	}

	return directives, nil
}

func scanDirective(md string, start int) (Directive, bool, error) {
	pos := skipBlanks(md, start+len(tokenOpen))
	keyword := matchKeyword(md[pos:])
	if keyword == "" {
		return Directive{}, false, nil
	}
	pos += len(keyword)

	line := md[pos:]
	if nl := strings.IndexByte(line, '\n'); nl >= 0 {
		line = line[:nl]
	}
	end := strings.Index(line, tokenClose)
	if end < 0 {
		return Directive{}, false, &DirectiveError{
			Keyword: keyword,
			Offset:  start,
			Reason:  "missing closing " + tokenClose,
		}
	}

	d := Directive{
		Keyword: keyword,
		Start:   start,
		End:     pos + end + len(tokenClose),
	}
	args := strings.Trim(line[:end], " \t\r")

	switch keyword {
	case KeywordPosts:
		if args != "" {
			return Directive{}, false, &DirectiveError{
				Keyword: keyword,
				Offset:  start,
				Reason:  "takes no arguments",
			}
		}

	default:
		var loc []int
		q := skipBlanks(line, 0)
		if q < len(line) && line[q] == '"' {
			loc = quoteClose.FindStringIndex(line[q+1:])
		}
		if loc == nil {
			return Directive{}, false, &DirectiveError{
				Keyword: keyword,
				Offset:  start,
				Reason:  "expecting exactly one double-quoted argument",
			}
		}
		d.Arg = line[q+1 : q+1+loc[0]]
		d.End = pos + q + 1 + loc[1]
	}

	return d, true, nil
}

func matchKeyword(s string) string {
	for _, kw := range keywords {
		if !strings.HasPrefix(s, kw) {
			continue
		}
		rest := s[len(kw):]
		if rest == "" {
			return kw
		}
		switch rest[0] {
		case ' ', '\t', '\r', '\n', '"', '}':
			return kw
		}
	}
	return ""
}

func skipBlanks(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

// Preprocessor resolves directives against the posts known so far.
type Preprocessor struct {
	Root  string
	Posts []*ContentRecord
}

// Process returns md with its directives resolved, and the metadata
// they carried. On error md is returned unchanged with empty metadata.
//
// Only the first title, desc and posts token is applied; repeated
// tokens of the same keyword are left in the text untouched, which
// keeps existing sources that depend on first-match behavior working.
func (p *Preprocessor) Process(md string) (string, Metadata, error) {
	directives, err := ScanDirectives(md)
	if err != nil {
		return md, Metadata{}, err
	}

	var (
		meta     Metadata
		hasTitle bool
		applied  = make(Set)
		last     int
		b        strings.Builder
	)

	for i := range directives {
		d := &directives[i]
		if applied.Insert(d.Keyword) {
			continue
		}

		b.WriteString(md[last:d.Start])
		last = d.End

		switch d.Keyword {
		case KeywordTitle:
			meta.Title = d.Arg
			hasTitle = true

		case KeywordDesc:
			meta.Description = d.Arg

		case KeywordPosts:
			index, err := PostsIndex(p.Root, p.Posts)
			if err != nil {
				return md, Metadata{}, err
			}
			b.WriteString(index)
		}
	}
	b.WriteString(md[last:])

	out := b.String()
	if hasTitle {
		out = "# " + meta.Title + "\n" + out
	}
	if strings.Contains(strings.ToLower(out), "[toc]") {
		out = markerTOCAnyCase.ReplaceAllLiteralString(out, MarkerTOC)
	}

	return strings.TrimSpace(out), meta, nil
}

// Record preprocesses r and moves it to StagePreprocessed.
// r is left untouched on failure.
func (p *Preprocessor) Record(r *ContentRecord) error {
	md, meta, err := p.Process(r.markdown)
	if err != nil {
		return newBuildError(ErrMalformedDirective, r.path, err)
	}
	return r.preprocess(md, meta)
}

// Preprocess runs the directive pass over state in two phases.
//
// Phase one handles every post, one at a time in discovery order,
// so their titles and descriptions exist. Phase two starts only after
// phase one has finished, and handles pages concurrently: pages only
// read post metadata, which no longer changes.
func Preprocess(ctx context.Context, state *BuildState, root string, limit int) error {
	p := &Preprocessor{Root: root, Posts: state.Posts}

	for _, post := range state.Posts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Record(post); err != nil {
			return err
		}
	}

	if limit <= 0 {
		limit = 1
	}

	group, groupctx := errgroup.WithContext(ctx)
	group.SetLimit(limit)
	for i := range state.Pages {
		page := state.Pages[i]
		group.Go(func() error {
			if err := groupctx.Err(); err != nil {
				return err
			}
			return p.Record(page)
		})
	}

	return group.Wait()
}
