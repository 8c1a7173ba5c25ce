package pbmlabel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/pbmlabel/pbm"
)

const (
	numWorkers = 10
	// Ignore any file greater than 16 MB
	maxFileSize = 16 << (10 * 2)
)

var errNoDB = errors.New("pbmlabel: scan needs a result database")

func isImage(file string) bool {
	return strings.EqualFold(filepath.Ext(file), ".pbm")
}

func (l *Labeler) findImages(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	info, err := os.Stat(base)
	if err != nil {
		return nil, nil, err
	}
	if !info.IsDir() {
		return nil, nil, errors.New("not a directory")
	}

	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() || !isImage(file) {
				return nil
			}

			if info.Size() > maxFileSize {
				l.logger.Printf("Skipping \"%s\", too large\n", file)
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (l *Labeler) imageWorker(ctx context.Context, scan string, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			r, err := l.Open(file)
			if err != nil {
				// A broken image shouldn't stop the scan
				var fe pbm.FormatError
				if errors.As(err, &fe) || errors.Is(err, pbm.ErrShortData) {
					l.logger.Printf("Skipping %v\n", err)
					continue
				}
				errc <- err
				return
			}

			if err := l.db.Record(scan, r); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			// Stop the walk so the remaining workers drain and exit
			cancel()
			for range errc {
			}
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks the directory tree at path labelling every .pbm file found and
// records the results in the database. Files that aren't valid P4 images are
// logged and skipped.
func (l *Labeler) Scan(path string) (string, Summary, error) {
	if l.db == nil {
		return "", Summary{}, errNoDB
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return "", Summary{}, err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	scan, err := l.db.NewScan(dir)
	if err != nil {
		return "", Summary{}, err
	}

	var errcList []<-chan error

	files, errc, err := l.findImages(ctx, dir)
	if err != nil {
		return "", Summary{}, err
	}
	errcList = append(errcList, errc)

	for i := 0; i < numWorkers; i++ {
		errc, err := l.imageWorker(ctx, scan, files)
		if err != nil {
			return "", Summary{}, err
		}
		errcList = append(errcList, errc)
	}

	if err := waitForPipeline(cancelFunc, errcList...); err != nil {
		return "", Summary{}, err
	}

	summary, err := l.db.Summarize(scan)
	if err != nil {
		return "", Summary{}, err
	}
	l.logger.Printf("Scan %s of \"%s\": %v\n", scan, dir, summary)

	return scan, summary, nil
}
