// Package testrom fetches the public christopherpow/nes-test-roms corpus
// on demand, caching it alongside the package so repeated test runs don't
// re-download. It is only ever touched by tests run without -short.
package testrom

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"
)

const archiveURL = `https://github.com/christopherpow/nes-test-roms/archive/refs/heads/master.zip`

func decompress(zipFile, dest string) error {
	r, err := zip.OpenReader(zipFile)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		fname := strings.Replace(f.Name, "nes-test-roms-master", "nes-test-roms", 1)
		fpath := filepath.Join(dest, fname)
		if !strings.HasPrefix(fpath, filepath.Clean(dest)+string(os.PathSeparator)) {
			return fmt.Errorf("%s: illegal file path", fpath)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(fpath, os.ModePerm); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(fpath), os.ModePerm); err != nil {
			return err
		}

		if err := extractOne(f, fpath); err != nil {
			return err
		}
	}
	return nil
}

func extractOne(f *zip.File, fpath string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, rc)
	return err
}

func download(dest string) error {
	resp, err := http.Get(archiveURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tmpf, err := os.CreateTemp("", "nes-test-roms-*.zip")
	if err != nil {
		return err
	}
	defer os.Remove(tmpf.Name())
	defer tmpf.Close()

	if _, err := io.Copy(tmpf, resp.Body); err != nil {
		return err
	}
	tmpf.Close()

	return decompress(tmpf.Name(), dest)
}

var romsPathOnce = sync.OnceValues(func() (string, error) {
	_, b, _, _ := runtime.Caller(0)
	cacheDir := filepath.Dir(b)
	romsDir := filepath.Join(cacheDir, "nes-test-roms")

	if _, err := os.Stat(romsDir); errors.Is(err, fs.ErrNotExist) {
		if err := download(cacheDir); err != nil {
			return "", fmt.Errorf("testrom: download corpus: %w", err)
		}
	}
	return romsDir, nil
})

// Path returns the local directory holding the nes-test-roms corpus,
// fetching and extracting it on first use. Callers should only invoke
// this when testing.Short() is false: t.Skip otherwise so CI without
// network access degrades to a skip, not a failure.
func Path(tb testing.TB) string {
	if testing.Short() {
		tb.Skip("testrom: skipping network fetch in -short mode")
	}
	dir, err := romsPathOnce()
	if err != nil {
		tb.Fatal(err)
	}
	return dir
}

// FetchAll resolves the named relative paths within the corpus that Path
// fetches, checking in parallel that each one exists, and returns their
// full paths; useful when a test suite wants to make sure a handful of
// specific ROMs exist before fanning out per-ROM subtests. If any path is
// missing, tb fails with the first error reported.
func FetchAll(tb testing.TB, relPaths ...string) []string {
	root := Path(tb)

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	out := make([]string, len(relPaths))
	for i, rel := range relPaths {
		i, rel := i, rel
		g.Go(func() error {
			full := filepath.Join(root, rel)
			if _, err := os.Stat(full); err != nil {
				return fmt.Errorf("testrom: %s: %w", rel, err)
			}
			out[i] = full
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		tb.Fatal(err)
	}
	return out
}
