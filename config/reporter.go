package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
	yaml "gopkg.in/yaml.v3"

	"docxgen/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates initialized empty report. When destination cannot be
// created report goes to the temporary directory.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	r := &Report{index: make(map[string]int)}

	if f, err := os.Create(conf.Destination); err == nil {
		r.file = f
	} else if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err == nil {
		r.file = f
	} else {
		return nil, fmt.Errorf("unable to create report: %w", err)
	}
	return r, nil
}

// entry kinds, also written to the manifest
const (
	entryFile = "file"
	entryData = "data"
	entryCopy = "copy"
)

type entry struct {
	Name     string    `yaml:"name"`
	Kind     string    `yaml:"kind"`
	Original string    `yaml:"original,omitempty"`
	Stamp    time.Time `yaml:"stamp"`
	Size     int64     `yaml:"size"`

	actual string
	data   []byte
}

// Report accumulates recipes, configuration, logs and generated documents
// for the debug archive. Not safe for concurrent use.
type Report struct {
	entries []entry
	index   map[string]int
	file    *os.File
	// holds copies made by StoreCopy, created on first use
	scratch string
}

// Name returns absolute name of the report archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

func (r *Report) add(e entry) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	r.index[e.Name] = len(r.entries)
	r.entries = append(r.entries, e)
}

// Store remembers file to be put into the archive when report is closed.
// File content is read at that time, absent files are skipped.
func (r *Report) Store(name, path string) {
	if r == nil {
		// no report has been requested
		return
	}
	if i, exists := r.index[name]; exists {
		if r.entries[i].Original == path {
			return
		}
		panic(fmt.Sprintf("Attempt to overwrite file in the report for [%s]: was %s, now %s", name, r.entries[i].Original, path))
	}

	e := entry{Name: name, Kind: entryFile, Original: path, actual: path}
	if p, err := filepath.Abs(path); err == nil {
		e.actual = p
	}
	r.add(e)
}

// StoreData puts data into the archive under requested name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}
	if _, exists := r.index[name]; exists {
		panic(fmt.Sprintf("Attempt to overwrite data in the report for [%s]", name))
	}
	r.add(entry{Name: name, Kind: entryData, Stamp: time.Now(), Size: int64(len(data)), data: data})
}

// StoreCopy copies regular file at the time of a call, so later runs
// overwriting the same document do not affect the report. Repeated names get
// versioned with the copy timestamp.
func (r *Report) StoreCopy(name, path string) error {
	if r == nil {
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("unable to copy %s into report: not a regular file", path)
	}

	e := entry{Name: name, Kind: entryCopy, Original: path, Stamp: time.Now(), Size: info.Size()}
	if _, exists := r.index[name]; exists {
		e.Name = fmt.Sprintf("%s-%d", name, e.Stamp.UnixNano())
	}

	if r.scratch == "" {
		if r.scratch, err = os.MkdirTemp("", misc.GetAppName()+"-r-"); err != nil {
			return err
		}
	}
	if e.actual, err = copyFile(r.scratch, abs, len(r.entries)); err != nil {
		return err
	}
	r.add(e)
	return nil
}

func copyFile(dir, src string, seq int) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	dst := filepath.Join(dir, fmt.Sprintf("%04d-%s", seq, filepath.Base(src)))
	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err = io.Copy(out, in); err != nil {
		return "", multierr.Append(err, out.Close())
	}
	return dst, out.Close()
}

// Close writes the archive and removes copies made for it.
func (r *Report) Close() (err error) {
	if r == nil || r.file == nil {
		return nil
	}
	defer func() {
		err = multierr.Append(err, r.file.Close())
		if r.scratch != "" {
			err = multierr.Append(err, os.RemoveAll(r.scratch))
			r.scratch = ""
		}
	}()
	return r.finalize()
}

// finalize creates the archive with manifest first followed by entries in the
// order they were stored.
func (r *Report) finalize() (err error) {
	arc := zip.NewWriter(r.file)
	defer func() {
		err = multierr.Append(err, arc.Close())
	}()

	now := time.Now()
	var present []entry
	for _, e := range r.entries {
		if e.Kind == entryFile {
			info, err := os.Stat(e.actual)
			if err != nil || !info.Mode().IsRegular() {
				// ignoring absent files
				continue
			}
			e.Stamp, e.Size = info.ModTime(), info.Size()
		}
		present = append(present, e)
	}

	manifest, err := yaml.Marshal(struct {
		Program string  `yaml:"program"`
		Version string  `yaml:"version"`
		Created string  `yaml:"created"`
		Entries []entry `yaml:"entries"`
	}{misc.GetAppName(), misc.GetVersion(), now.UTC().Format(time.RFC3339), present})
	if err != nil {
		return fmt.Errorf("unable to prepare report manifest: %w", err)
	}
	if err := saveFile(arc, "manifest.yaml", now, bytes.NewReader(manifest)); err != nil {
		return err
	}

	for _, e := range present {
		if e.Kind == entryData {
			if err := saveFile(arc, e.Name, e.Stamp, bytes.NewReader(e.data)); err != nil {
				return err
			}
			continue
		}
		f, err := os.Open(e.actual)
		if err != nil {
			return err
		}
		err = saveFile(arc, e.Name, e.Stamp, f)
		if err = multierr.Append(err, f.Close()); err != nil {
			return err
		}
	}
	return nil
}

func saveFile(dst *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := dst.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}
