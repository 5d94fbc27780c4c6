package sitegen

import "fmt"

// Collection is fixed when a file is discovered.
type Collection uint8

const (
	Page Collection = iota
	Post
)

func (c Collection) String() string {
	switch c {
	case Post:
		return "post"
	case Page:
		return "page"
	}
	return fmt.Sprintf("collection(%d)", uint8(c))
}

// Stage is the lifecycle position of a ContentRecord.
// Records only ever move one stage forward.
type Stage uint8

const (
	StageDiscovered Stage = iota
	StageLoaded
	StagePreprocessed
	StageRendered
	StageAssembled
)

func (s Stage) String() string {
	switch s {
	case StageDiscovered:
		return "discovered"
	case StageLoaded:
		return "loaded"
	case StagePreprocessed:
		return "preprocessed"
	case StageRendered:
		return "rendered"
	case StageAssembled:
		return "assembled"
	}
	return fmt.Sprintf("stage(%d)", uint8(s))
}

// Metadata is extracted from the title and desc directives.
type Metadata struct {
	Title       string
	Description string
}

// ContentRecord is one discovered content file.
//
// Its fields are only written by the build stages, each exactly once;
// other packages read them through the getters.
type ContentRecord struct {
	path       string
	collection Collection
	stage      Stage
	metadata   Metadata
	markdown   string
	rendered   []byte
	html       []byte
}

func newRecord(path string, c Collection) *ContentRecord {
	return &ContentRecord{
		path:       path,
		collection: c,
		stage:      StageDiscovered,
	}
}

func (r *ContentRecord) Path() string           { return r.path }
func (r *ContentRecord) Collection() Collection { return r.collection }
func (r *ContentRecord) Stage() Stage           { return r.stage }
func (r *ContentRecord) Metadata() Metadata     { return r.metadata }
func (r *ContentRecord) Markdown() string       { return r.markdown }
func (r *ContentRecord) HTML() []byte           { return r.html }

func (r *ContentRecord) advance(to Stage) error {
	if r.stage+1 != to {
		return newBuildError(ErrStage, r.path, fmt.Errorf("%s -> %s", r.stage, to))
	}
	r.stage = to
	return nil
}

func (r *ContentRecord) load(markdown string) error {
	if err := r.advance(StageLoaded); err != nil {
		return err
	}
	r.markdown = markdown
	return nil
}

func (r *ContentRecord) preprocess(markdown string, m Metadata) error {
	if err := r.advance(StagePreprocessed); err != nil {
		return err
	}
	r.markdown = markdown
	r.metadata = m
	return nil
}

func (r *ContentRecord) render(html []byte) error {
	if err := r.advance(StageRendered); err != nil {
		return err
	}
	r.rendered = html
	return nil
}

func (r *ContentRecord) assemble(html []byte) error {
	if err := r.advance(StageAssembled); err != nil {
		return err
	}
	r.html = html
	r.rendered = nil
	return nil
}

// BuildState is owned by a single build and discarded afterwards.
// Posts and Pages keep discovery order.
type BuildState struct {
	Posts         []*ContentRecord
	Pages         []*ContentRecord
	IncludeBefore string
	IncludeAfter  string
}

func NewBuildState() *BuildState {
	return &BuildState{}
}

func (s *BuildState) add(r *ContentRecord) {
	switch r.collection {
	case Post:
		s.Posts = append(s.Posts, r)
	default:
		s.Pages = append(s.Pages, r)
	}
}

// Records returns pages followed by posts, the order outputs are produced in.
func (s *BuildState) Records() []*ContentRecord {
	all := make([]*ContentRecord, 0, len(s.Pages)+len(s.Posts))
	all = append(all, s.Pages...)
	return append(all, s.Posts...)
}
