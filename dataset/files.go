// Package dataset partitions generated pairs and writes run artifacts as
// pretty-printed JSON under collision-avoided names.
package dataset

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// Canonical artifact names.
const (
	VocabFile = "vocab.json"
	TrainFile = "train.json"
	ValidFile = "valid.json"
	DPOFile   = "dpo.json"
)

const jsonIndent = "    "

// EnsureUniqueFilename
// Returns a path in dir for `name` that no existing file occupies. When
// `name` is taken, `_1`, `_2`, ... are appended before the extension until
// a free name is found.
func EnsureUniqueFilename(dir string, name string) (string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := name
	for suffix := 1; ; suffix++ {
		path := filepath.Join(dir, candidate)
		if _, err := os.Lstat(path); os.IsNotExist(err) {
			return path, nil
		} else if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s_%d%s", base, suffix, ext)
	}
}

// WriteJSON
// Serializes v as indented JSON with non-ASCII text kept verbatim. The
// document is written to a temp file in the same directory, synced, then
// renamed over `path`, so readers never see a partial file.
func WriteJSON(path string, v interface{}) error {
	tmpPath, err := writeTemp(filepath.Dir(path), filepath.Base(path), v)
	if err != nil {
		return err
	}
	if err = os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// WriteArtifact
// Writes v to a collision-avoided name for `name` in dir and returns the
// path used. The final name is claimed with a hard link, so a file that
// appears concurrently under the chosen name is never overwritten.
func WriteArtifact(dir string, name string, v interface{}) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	tmpPath, err := writeTemp(dir, name, v)
	if err != nil {
		return "", err
	}
	defer os.Remove(tmpPath)
	for {
		dest, uniqErr := EnsureUniqueFilename(dir, name)
		if uniqErr != nil {
			return "", uniqErr
		}
		linkErr := os.Link(tmpPath, dest)
		if linkErr == nil {
			return dest, nil
		} else if os.IsExist(linkErr) {
			continue
		} else if !linkUnsupported(linkErr) {
			return "", linkErr
		}
		if renameErr := os.Rename(tmpPath, dest); renameErr != nil {
			return "", renameErr
		}
		return dest, nil
	}
}

// linkUnsupported reports whether err means the filesystem cannot hard
// link, as opposed to the link itself failing.
func linkUnsupported(err error) bool {
	return errors.Is(err, errors.ErrUnsupported) ||
		errors.Is(err, syscall.EPERM) ||
		errors.Is(err, syscall.ENOTSUP) ||
		errors.Is(err, syscall.EOPNOTSUPP) ||
		errors.Is(err, syscall.EXDEV) ||
		errors.Is(err, syscall.EMLINK)
}

func writeTemp(dir string, name string, v interface{}) (string, error) {
	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", err
	}
	tmpPath := tmp.Name()
	fail := func(err error) (string, error) {
		tmp.Close()
		os.Remove(tmpPath)
		return "", err
	}
	if err = tmp.Chmod(0644); err != nil {
		return fail(err)
	}
	buffered := bufio.NewWriterSize(tmp, 64*1024)
	encoder := json.NewEncoder(buffered)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", jsonIndent)
	if err = encoder.Encode(v); err != nil {
		return fail(err)
	}
	if err = buffered.Flush(); err != nil {
		return fail(err)
	}
	if err = tmp.Sync(); err != nil {
		return fail(err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	return tmpPath, nil
}
