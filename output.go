package sitegen

import (
	"io/fs"
	"sort"
)

// OutputFile is one file to be written under the destination.
//
// Its values are not supposed to be changed by other packages,
// and thus the only ways other packages can work with OutputFile
// is via the constructor [Output] and the type's getter methods.
type OutputFile struct {
	target     string
	originator string
	data       []byte
	perm       fs.FileMode
}

func Output(target string, originator string, data []byte, perm fs.FileMode) OutputFile {
	return OutputFile{
		target:     target,
		originator: originator,
		data:       data,
		perm:       perm,
	}
}

func (o *OutputFile) Target() string {
	return o.target
}

func (o *OutputFile) Originator() string {
	return o.originator
}

func (o *OutputFile) Data() []byte {
	return o.data
}

func (o *OutputFile) Perm() fs.FileMode {
	if o.perm == fs.FileMode(0) {
		return 0o644
	}
	return o.perm
}

// RecordOutputs maps every assembled record of state to its target under dst.
func RecordOutputs(state *BuildState, src, dst string) ([]OutputFile, error) {
	records := state.Records()
	outputs := make([]OutputFile, 0, len(records))
	for _, r := range records {
		if r.stage != StageAssembled {
			return nil, newBuildError(ErrStage, r.path, nil)
		}
		target, err := OutputPath(src, dst, r.path)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, Output(target, r.path, r.html, 0o644))
	}
	return outputs, nil
}

func sortOutputs(outputs []OutputFile) {
	sort.Slice(outputs, func(i, j int) bool {
		return outputs[i].target < outputs[j].target
	})
}
