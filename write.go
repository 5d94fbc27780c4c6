package sitegen

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// WriteOutSlice blocks and writes concurrently from writes to their output locations.
// Missing parent directories are created and existing files overwritten.
// Each written target is printed to w if w is non-nil.
func WriteOutSlice(fs afero.Fs, writes []OutputFile, concurrent int, w io.Writer) error {
	if concurrent <= 0 {
		concurrent = 1
	}

	wg := new(sync.WaitGroup)
	errs := make(chan error)
	guard := make(chan struct{}, concurrent)
	mut := new(sync.Mutex)

	go func() {
		for i := range writes {
			guard <- struct{}{}
			wg.Add(1)

			go func(o *OutputFile) {
				defer func() {
					<-guard
					wg.Done()
				}()

				err := fs.MkdirAll(filepath.Dir(o.target), os.ModePerm)
				if err != nil {
					errs <- errorWrite{
						err:        err,
						target:     o.target,
						originator: o.originator,
					}
					return
				}
				err = afero.WriteFile(fs, o.target, o.data, o.Perm())
				if err != nil {
					errs <- errorWrite{
						err:        err,
						target:     o.target,
						originator: o.originator,
					}
					return
				}

				if w != nil {
					mut.Lock()
					defer mut.Unlock()
					Fprintln(w, o.target)
				}
			}(&writes[i])
		}

		wg.Wait()
		close(errs)
	}()

	var wErrs []error
	for err := range errs { // Blocks here until errs is closed
		wErrs = append(wErrs, err)
	}
	if len(wErrs) > 0 {
		return errors.Join(wErrs...)
	}

	return nil
}
