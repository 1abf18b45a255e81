// Package propernouns holds the set of proper nouns that QA pair targets
// are filtered against, and the heuristics that propose new entries.
package propernouns

import (
	"encoding/json"
	"log"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/wbrown/gpt_pairs/dataset"
	"github.com/wbrown/gpt_pairs/errlog"
	"github.com/wbrown/gpt_pairs/resources"
	"github.com/wbrown/gpt_pairs/types"
)

// Registry is a set of proper nouns. It starts empty, is replaced wholesale
// by Load and only ever grows otherwise. Concurrent writers merge with
// last-writer-wins semantics; the lock only keeps the map memory safe.
type Registry struct {
	mu    sync.RWMutex
	nouns map[string]struct{}
}

// NewRegistry returns a registry holding `nouns`.
func NewRegistry(nouns ...string) *Registry {
	registry := &Registry{nouns: make(map[string]struct{}, len(nouns))}
	registry.Add(nouns...)
	return registry
}

// Load
// Replaces the registry with the JSON array of strings at path. On any
// failure the current set is left untouched and a
// *types.DictionaryLoadError is returned.
func (r *Registry) Load(path string) error {
	contents, err := resources.ReadFile(path)
	if err != nil {
		return dictionaryError(path, err)
	}
	var entries []string
	if err = json.Unmarshal(contents, &entries); err != nil {
		return dictionaryError(path, err)
	} else if entries == nil {
		// `null` decodes without error; only an array is a dictionary.
		return dictionaryError(path, errors.New("not a JSON array"))
	}
	nouns := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry != "" {
			nouns[entry] = struct{}{}
		}
	}
	r.mu.Lock()
	r.nouns = nouns
	r.mu.Unlock()
	log.Printf("Loaded %d proper nouns from %s", len(nouns), path)
	return nil
}

func dictionaryError(path string, err error) error {
	loadErr := &types.DictionaryLoadError{Path: path, Err: err}
	errlog.Printf("%v", loadErr)
	return loadErr
}

// Save writes the registry to path as a sorted JSON array.
func (r *Registry) Save(path string) error {
	return dataset.WriteJSON(path, r.Nouns())
}

// IsKnown reports whether token is a registered proper noun.
func (r *Registry) IsKnown(token string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.nouns[token]
	return ok
}

// Add
// Merges nouns into the registry and returns how many were new. Empty
// strings are ignored.
func (r *Registry) Add(nouns ...string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nouns == nil {
		r.nouns = make(map[string]struct{}, len(nouns))
	}
	added := 0
	for _, noun := range nouns {
		if noun == "" {
			continue
		}
		if _, ok := r.nouns[noun]; !ok {
			r.nouns[noun] = struct{}{}
			added++
		}
	}
	return added
}

// Len returns the number of registered nouns.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nouns)
}

// Nouns returns the registered nouns, sorted.
func (r *Registry) Nouns() []string {
	r.mu.RLock()
	nouns := make([]string, 0, len(r.nouns))
	for noun := range r.nouns {
		nouns = append(nouns, noun)
	}
	r.mu.RUnlock()
	sort.Strings(nouns)
	return nouns
}
