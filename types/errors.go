package types

import (
	"errors"
	"fmt"
)

// Sentinel conditions; the typed errors below match them with errors.Is.
var (
	ErrTokenizerLoad  = errors.New("tokenizer load failed")
	ErrDictionaryLoad = errors.New("dictionary load failed")
	ErrTemplateLoad   = errors.New("template load failed")
	ErrNoTokens       = errors.New("tokenization produced no tokens")
	ErrEmptyPairs     = errors.New("no QA pairs were generated")
	ErrInvalidOption  = errors.New("invalid option")
)

// TokenizerLoadError is returned when a model directory is missing, has no
// usable tokenizer resources, or cannot be parsed.
type TokenizerLoadError struct {
	ModelDir string
	Err      error
}

func (e *TokenizerLoadError) Error() string {
	return fmt.Sprintf("cannot load tokenizer from `%s`: %v", e.ModelDir,
		e.Err)
}

func (e *TokenizerLoadError) Unwrap() error { return e.Err }

func (e *TokenizerLoadError) Is(target error) bool {
	return target == ErrTokenizerLoad
}

// DictionaryLoadError is returned when a proper-noun dictionary is missing
// or is not a JSON array of strings.
type DictionaryLoadError struct {
	Path string
	Err  error
}

func (e *DictionaryLoadError) Error() string {
	return fmt.Sprintf("cannot load dictionary `%s`: %v", e.Path, e.Err)
}

func (e *DictionaryLoadError) Unwrap() error { return e.Err }

func (e *DictionaryLoadError) Is(target error) bool {
	return target == ErrDictionaryLoad
}

// TemplateLoadError is returned when a template file cannot be read or is
// not a JSON object of strings.
type TemplateLoadError struct {
	Path string
	Err  error
}

func (e *TemplateLoadError) Error() string {
	return fmt.Sprintf("cannot load template `%s`: %v", e.Path, e.Err)
}

func (e *TemplateLoadError) Unwrap() error { return e.Err }

func (e *TemplateLoadError) Is(target error) bool {
	return target == ErrTemplateLoad
}

// NoTokensError is returned when non-empty input tokenized to nothing.
type NoTokensError struct {
	InputRunes int
}

func (e *NoTokensError) Error() string {
	return fmt.Sprintf("tokenization produced no tokens from %d runes "+
		"of normalized text", e.InputRunes)
}

func (e *NoTokensError) Is(target error) bool {
	return target == ErrNoTokens
}

// EmptyPairsError is returned when no window target was a known proper
// noun.
type EmptyPairsError struct {
	Tokens     int
	WindowSize int
	KnownNouns int
}

func (e *EmptyPairsError) Error() string {
	return fmt.Sprintf("no QA pairs generated from %d tokens (window %d, "+
		"%d known proper nouns)", e.Tokens, e.WindowSize, e.KnownNouns)
}

func (e *EmptyPairsError) Is(target error) bool {
	return target == ErrEmptyPairs
}

// InvalidOption wraps ErrInvalidOption with the offending setting.
func InvalidOption(name string, value interface{}) error {
	return fmt.Errorf("%w: %s = %v", ErrInvalidOption, name, value)
}
