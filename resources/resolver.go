package resources

import (
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

type ResourceFlag uint8

// Enumeration of resource flags that indicate how the resolver treats a
// file in a model directory.
const (
	RESOURCE_REQUIRED ResourceFlag = 1 << iota
	RESOURCE_OPTIONAL
	RESOURCE_ONEOF
)

type ResourceEntryDefs map[string]ResourceFlag
type ResourceEntry struct {
	Path string
	Size int64
	data *[]byte
	free func() error
}

type Resources map[string]*ResourceEntry

// GetResourceEntries
// Returns the tokenizer files the resolver looks for in a model directory.
// At least one RESOURCE_ONEOF file must exist for the directory to be
// usable.
func GetResourceEntries() ResourceEntryDefs {
	return ResourceEntryDefs{
		"tokenizer.json":          RESOURCE_ONEOF,
		"tokenizer.model":         RESOURCE_ONEOF,
		"vocab.json":              RESOURCE_ONEOF,
		"merges.txt":              RESOURCE_OPTIONAL,
		"config.json":             RESOURCE_OPTIONAL,
		"special_tokens_map.json": RESOURCE_OPTIONAL,
		"tokenizer_config.json":   RESOURCE_OPTIONAL,
	}
}

// ResolveModelDir
// Scans a local model directory for the known tokenizer resources. Files
// are not read until Data is called on them.
func ResolveModelDir(dir string) (*Resources, error) {
	stat, statErr := os.Stat(dir)
	if statErr != nil {
		return nil, errors.Wrapf(statErr, "cannot stat model directory")
	} else if !stat.IsDir() {
		return nil, errors.Errorf("`%s` is not a directory", dir)
	}

	found := make(Resources, 0)
	defs := GetResourceEntries()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)

	oneOf := false
	for _, name := range names {
		flag := defs[name]
		rsrcPath := filepath.Join(dir, name)
		rsrcStat, rsrcErr := os.Stat(rsrcPath)
		if rsrcErr != nil || rsrcStat.IsDir() {
			if flag&RESOURCE_REQUIRED != 0 {
				log.Printf("%s not found, required!", rsrcPath)
				return nil, errors.Errorf("required `%s` not found in `%s`",
					name, dir)
			}
			continue
		}
		log.Printf("Resolved %s (%s)", rsrcPath,
			humanize.Bytes(uint64(rsrcStat.Size())))
		found[name] = &ResourceEntry{Path: rsrcPath, Size: rsrcStat.Size()}
		if flag&RESOURCE_ONEOF != 0 {
			oneOf = true
		}
	}
	if !oneOf {
		return nil, errors.Errorf("`%s` contains none of tokenizer.json, "+
			"tokenizer.model or vocab.json", dir)
	}
	return &found, nil
}

// Has reports whether the resolver found `name`.
func (rsrcs *Resources) Has(name string) bool {
	_, ok := (*rsrcs)[name]
	return ok
}

// Data
// Maps the named resource into memory. The mapping lives until Cleanup.
func (rsrcs *Resources) Data(name string) (*[]byte, error) {
	entry, ok := (*rsrcs)[name]
	if !ok {
		return nil, errors.Errorf("resource `%s` was not resolved", name)
	}
	if entry.data != nil {
		return entry.data, nil
	}
	file, openErr := os.Open(entry.Path)
	if openErr != nil {
		return nil, errors.Wrapf(openErr, "error opening `%s`", entry.Path)
	}
	defer file.Close()
	data, free, mmapErr := readMmap(file, entry.Size)
	if mmapErr != nil {
		return nil, errors.Wrapf(mmapErr, "error trying to mmap `%s`",
			entry.Path)
	}
	entry.data = data
	entry.free = free
	return data, nil
}

// Cleanup releases every mapping made by Data.
func (rsrcs *Resources) Cleanup() {
	for _, entry := range *rsrcs {
		if entry.free != nil {
			if err := entry.free(); err != nil {
				log.Printf("error releasing %s: %v", entry.Path, err)
			}
			entry.free = nil
			entry.data = nil
		}
	}
}

// ReadFile
// Reads a whole file through a memory map and returns a private copy of
// its contents.
func ReadFile(path string) ([]byte, error) {
	file, openErr := os.Open(path)
	if openErr != nil {
		return nil, openErr
	}
	defer file.Close()
	stat, statErr := file.Stat()
	if statErr != nil {
		return nil, statErr
	} else if stat.IsDir() {
		return nil, errors.Errorf("`%s` is a directory", path)
	}
	data, free, mmapErr := readMmap(file, stat.Size())
	if mmapErr != nil {
		return nil, errors.Wrapf(mmapErr, "error trying to mmap `%s`", path)
	}
	contents := make([]byte, len(*data))
	copy(contents, *data)
	if freeErr := free(); freeErr != nil {
		return nil, freeErr
	}
	return contents, nil
}
