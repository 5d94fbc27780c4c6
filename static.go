package sitegen

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// StaticOutputs reads every file under ${src}/${c.StaticSrc} and maps it,
// byte for byte, to ${dst}/${c.StaticDest}. It returns nothing if no
// static source is configured.
func StaticOutputs(fs afero.Fs, src, dst string, c Config) ([]OutputFile, error) {
	if c.StaticSrc == "" {
		return nil, nil
	}

	from := filepath.Join(src, c.StaticSrc)
	to := filepath.Join(dst, c.StaticDest)

	stat, err := fs.Stat(from)
	if err != nil {
		return nil, newBuildError(ErrFilesystem, from, err)
	}
	if !stat.IsDir() {
		return nil, newBuildError(ErrFilesystem, from, fmt.Errorf("static src is not a directory"))
	}

	var outputs []OutputFile
	err = afero.Walk(fs, from, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return newBuildError(ErrFilesystem, path, err)
		}
		if info.IsDir() {
			return nil
		}
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return newBuildError(ErrRead, path, err)
		}
		target, err := mirrorPath(from, to, path)
		if err != nil {
			return err
		}
		outputs = append(outputs, Output(target, path, data, info.Mode().Perm()))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return outputs, nil
}
