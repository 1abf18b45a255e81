// Package settings persists the last used paths and options as a JSON
// object. The file is loaded once at startup and rewritten after every
// field change.
package settings

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/wbrown/gpt_pairs/dataset"
	"github.com/wbrown/gpt_pairs/resources"
	"github.com/wbrown/gpt_pairs/types"
)

const DefaultPath = "settings.json"

type Settings struct {
	DataDir        string `json:"dataDir"`
	OutputDir      string `json:"outputDir"`
	ModelDir       string `json:"modelDir"`
	ProperNounFile string `json:"properNounFile"`
	TemplateFile   string `json:"templateFile"`
	CustomPattern  string `json:"customPattern"`
	BatchSize      int    `json:"batchSize"`
	MaxPairs       int    `json:"maxPairs"`
}

// Defaults returns the settings used before anything was saved.
func Defaults() Settings {
	return Settings{BatchSize: 5, MaxPairs: 100}
}

func (s *Settings) field(name string) interface{} {
	switch name {
	case "dataDir":
		return &s.DataDir
	case "outputDir":
		return &s.OutputDir
	case "modelDir":
		return &s.ModelDir
	case "properNounFile":
		return &s.ProperNounFile
	case "templateFile":
		return &s.TemplateFile
	case "customPattern":
		return &s.CustomPattern
	case "batchSize":
		return &s.BatchSize
	case "maxPairs":
		return &s.MaxPairs
	}
	return nil
}

// Store is a settings file and its current contents.
type Store struct {
	mu       sync.Mutex
	path     string
	settings Settings
}

// Open
// Loads the settings file at path. A missing file yields Defaults and is
// not created until the first change.
func Open(path string) (*Store, error) {
	store := &Store{path: path, settings: Defaults()}
	contents, err := resources.ReadFile(path)
	if os.IsNotExist(err) {
		return store, nil
	} else if err != nil {
		return nil, errors.Wrapf(err, "reading settings `%s`", path)
	}
	if err = json.Unmarshal(contents, &store.settings); err != nil {
		return nil, errors.Wrapf(err, "parsing settings `%s`", path)
	}
	log.Printf("Loaded settings from %s", path)
	return store, nil
}

// Get returns a copy of the current settings.
func (store *Store) Get() Settings {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.settings
}

// Set
// Assigns value to the field with JSON key `name`, parsing integers for
// numeric fields, and saves the file if the value changed.
func (store *Store) Set(name string, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	changed := false
	switch field := store.settings.field(name).(type) {
	case *string:
		changed = *field != value
		*field = value
	case *int:
		number, err := strconv.Atoi(value)
		if err != nil {
			return types.InvalidOption(name, value)
		}
		changed = *field != number
		*field = number
	default:
		return types.InvalidOption(name, value)
	}
	if !changed {
		return nil
	}
	return store.save()
}

// Save writes the current settings to the store's path.
func (store *Store) Save() error {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.save()
}

func (store *Store) save() error {
	if err := dataset.WriteJSON(store.path, store.settings); err != nil {
		return errors.Wrapf(err, "saving settings `%s`", store.path)
	}
	return nil
}
