// Package tokenizer hands normalized text to a tokenizer engine loaded from
// a model directory and returns the token strings in source order.
package tokenizer

import (
	"path/filepath"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/wbrown/gpt_pairs/errlog"
	"github.com/wbrown/gpt_pairs/resources"
	"github.com/wbrown/gpt_pairs/types"
)

const ENGINE_LRU_SZ = 8

// Tokenizer turns text into ordered token strings.
type Tokenizer interface {
	Tokenize(text string) (types.Tokens, error)
}

// TokenizerFunc adapts a plain function to Tokenizer.
type TokenizerFunc func(text string) (types.Tokens, error)

func (f TokenizerFunc) Tokenize(text string) (types.Tokens, error) {
	return f(text)
}

var engines *lru.ARCCache

func init() {
	var err error
	if engines, err = lru.NewARC(ENGINE_LRU_SZ); err != nil {
		panic(err)
	}
}

func cacheKey(modelDir string) string {
	if abs, err := filepath.Abs(modelDir); err == nil {
		return abs
	}
	return modelDir
}

// Preload
// Registers an already constructed engine for modelDir, so later Load calls
// for that directory return it without touching the filesystem.
func Preload(modelDir string, tokenizer Tokenizer) {
	engines.Add(cacheKey(modelDir), tokenizer)
}

// Forget drops a cached engine.
func Forget(modelDir string) {
	engines.Remove(cacheKey(modelDir))
}

// Load
// Returns the engine for modelDir, loading and caching it on first use. The
// engine is picked from the files present: `tokenizer.json` (HuggingFace
// tokenizers), `tokenizer.model` (SentencePiece), or `vocab.json` with
// `merges.txt` and `config.json` (byte-level BPE). Failures are logged and
// returned as *types.TokenizerLoadError.
func Load(modelDir string) (Tokenizer, error) {
	key := cacheKey(modelDir)
	if cached, ok := engines.Get(key); ok {
		return cached.(Tokenizer), nil
	}
	engine, err := load(key)
	if err != nil {
		loadErr := &types.TokenizerLoadError{ModelDir: modelDir, Err: err}
		errlog.Printf("%v", loadErr)
		return nil, loadErr
	}
	engines.Add(key, engine)
	return engine, nil
}

func load(dir string) (Tokenizer, error) {
	rsrcs, err := resources.ResolveModelDir(dir)
	if err != nil {
		return nil, err
	}
	defer rsrcs.Cleanup()
	switch {
	case rsrcs.Has("tokenizer.json"):
		return newHFTokenizer((*rsrcs)["tokenizer.json"].Path)
	case rsrcs.Has("tokenizer.model"):
		return newSentencePieceTokenizer(rsrcs)
	case rsrcs.Has("vocab.json") && rsrcs.Has("merges.txt") &&
		rsrcs.Has("config.json"):
		return newBPETokenizer(dir)
	default:
		return nil, errors.Errorf("`%s` has vocab.json but is missing "+
			"merges.txt or config.json", dir)
	}
}

// Tokenize
// Loads the engine for modelDir and tokenizes text with it. Empty text
// yields an empty sequence once the engine has loaded.
func Tokenize(text string, modelDir string) (types.Tokens, error) {
	engine, err := Load(modelDir)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return types.Tokens{}, nil
	}
	tokens, err := engine.Tokenize(text)
	if err != nil {
		errlog.Printf("tokenizing %d bytes with `%s`: %v", len(text),
			modelDir, err)
		return nil, err
	}
	return tokens, nil
}
