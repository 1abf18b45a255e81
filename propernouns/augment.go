package propernouns

import (
	"log"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/wbrown/gpt_pairs/normalize"
	"github.com/wbrown/gpt_pairs/resources"
	"github.com/wbrown/gpt_pairs/tokenizer"
)

// DefaultMinFrequency is the frequency floor used when none is given.
const DefaultMinFrequency = 5

// AugmentFromCorpus
// Reads every file in dataPaths, each followed by a newline, normalizes the
// concatenation, tokenizes it and adds every token that occurs at least
// minFrequency times and is already registered. Returns how many tokens
// passed both tests.
//
// Only known nouns can pass, so this confirms frequent dictionary entries
// for a corpus and never discovers new ones; with an empty registry it is a
// no-op.
func (r *Registry) AugmentFromCorpus(dataPaths []string,
	engine tokenizer.Tokenizer, minFrequency int) (int, error) {
	if minFrequency < 1 {
		minFrequency = DefaultMinFrequency
	}
	var corpus strings.Builder
	for _, path := range dataPaths {
		contents, err := resources.ReadFile(path)
		if err != nil {
			return 0, err
		}
		corpus.Write(contents)
		corpus.WriteString("\n")
	}
	log.Printf("Augmenting proper nouns from %d files (%s)", len(dataPaths),
		humanize.Bytes(uint64(corpus.Len())))
	tokens, err := engine.Tokenize(normalize.Normalize(corpus.String(), nil))
	if err != nil {
		return 0, err
	}
	counts, order := tokens.Counts()
	confirmed := make([]string, 0)
	for _, token := range order {
		if counts[token] >= minFrequency && r.IsKnown(token) {
			confirmed = append(confirmed, token)
		}
	}
	r.Add(confirmed...)
	log.Printf("%d known proper nouns occur at least %d times",
		len(confirmed), minFrequency)
	return len(confirmed), nil
}

// AugmentFromModel runs AugmentFromCorpus with the engine for modelDir.
func (r *Registry) AugmentFromModel(dataPaths []string, modelDir string,
	minFrequency int) (int, error) {
	engine, err := tokenizer.Load(modelDir)
	if err != nil {
		return 0, err
	}
	return r.AugmentFromCorpus(dataPaths, engine, minFrequency)
}
