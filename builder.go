// Package gpt_pairs turns raw text corpora into proper-noun QA pairs and
// next-token DPO pairs for fine-tuning.
package gpt_pairs

import (
	"log"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/wbrown/gpt_pairs/dataset"
	"github.com/wbrown/gpt_pairs/errlog"
	"github.com/wbrown/gpt_pairs/normalize"
	"github.com/wbrown/gpt_pairs/pairs"
	"github.com/wbrown/gpt_pairs/propernouns"
	"github.com/wbrown/gpt_pairs/resources"
	"github.com/wbrown/gpt_pairs/tokenizer"
	"github.com/wbrown/gpt_pairs/types"
	"github.com/wbrown/gpt_pairs/vocab"
)

const (
	DefaultWindowSize   = 5
	DefaultTestFraction = 0.2
	DefaultMaxPairs     = 100
)

// PairsBuilder describes one pipeline run. The zero value of MaxPairs and
// WindowSize means their defaults; a negative MaxPairs disables the cap.
type PairsBuilder struct {
	CorpusPaths      PathList `yaml:"corpus"`
	OutputDir        string   `yaml:"output_dir"`
	ModelDir         string   `yaml:"model_dir"`
	DictionaryPath   string   `yaml:"dictionary"`
	TemplatePath     string   `yaml:"template"`
	ExclusionPattern string   `yaml:"exclusion_pattern"`
	TestFraction     float64  `yaml:"test_fraction"`
	MaxPairs         int      `yaml:"max_pairs"`
	WindowSize       int      `yaml:"window_size"`
	// Sanitize cleans line endings and blank runs before normalizing.
	Sanitize bool `yaml:"sanitize"`
	// AugmentMinFrequency > 0 confirms known nouns occurring at least that
	// often in the corpus before pairs are synthesized.
	AugmentMinFrequency int `yaml:"augment_min_frequency"`

	// Registry filters QA targets. A nil Registry starts empty.
	Registry *propernouns.Registry `yaml:"-"`
	// Tokenizer overrides the engine loaded from ModelDir.
	Tokenizer tokenizer.Tokenizer `yaml:"-"`
	// OnProgress receives the completed percentage after every step. It is
	// called synchronously and must not block.
	OnProgress func(percent int) `yaml:"-"`
}

// NewPairsBuilder
// Creates a new PairsBuilder with the default configuration.
func NewPairsBuilder() PairsBuilder {
	return PairsBuilder{
		OutputDir:    ".",
		TestFraction: DefaultTestFraction,
		MaxPairs:     DefaultMaxPairs,
		WindowSize:   DefaultWindowSize,
	}
}

// Result describes a run. On failure it holds whatever completed.
type Result struct {
	RunId      string
	Tokens     int
	VocabSize  int
	Confirmed  int
	QAPairs    int
	TrainPairs int
	ValidPairs int
	DPOPairs   int
	VocabPath  string
	TrainPath  string
	ValidPath  string
	DPOPath    string
}

type progress struct {
	completed int
	total     int
	report    func(int)
}

func (p *progress) tick() {
	p.completed++
	if p.report != nil {
		p.report(p.completed * 100 / p.total)
	}
}

func (builder *PairsBuilder) validate() error {
	if len(builder.CorpusPaths) == 0 {
		return types.InvalidOption("corpus", "[]")
	}
	if builder.WindowSize < 0 {
		return types.InvalidOption("window_size", builder.WindowSize)
	}
	if math.IsNaN(builder.TestFraction) || builder.TestFraction < 0 ||
		builder.TestFraction >= 1 {
		return types.InvalidOption("test_fraction", builder.TestFraction)
	}
	return nil
}

// Run
// Executes the pipeline: load the template, read and join the corpus
// files, normalize, tokenize, build and write the vocabulary, synthesize QA
// and DPO pairs, split the QA pairs and write train, validation and DPO
// artifacts under collision-avoided names in OutputDir.
//
// Progress is reported once per corpus file and once after each of
// normalize, tokenize, pair synthesis and split. Every failure is written to
// the error log before it is returned; artifacts written before a failure
// stay on disk.
func (builder *PairsBuilder) Run() (*Result, error) {
	runId := uuid.New().String()
	result := &Result{RunId: runId}
	fail := func(step string, err error) (*Result, error) {
		errlog.Printf("run %s: %s: %v", runId, step, err)
		return result, err
	}

	if err := builder.validate(); err != nil {
		return fail("options", err)
	}
	exclude, err := normalize.CompilePattern(builder.ExclusionPattern)
	if err != nil {
		return fail("options", errors.Wrap(types.InvalidOption(
			"exclusion_pattern", builder.ExclusionPattern), err.Error()))
	}
	windowSize := builder.WindowSize
	if windowSize == 0 {
		windowSize = DefaultWindowSize
	}
	maxPairs := builder.MaxPairs
	if maxPairs == 0 {
		maxPairs = DefaultMaxPairs
	}
	outputDir := builder.OutputDir
	if outputDir == "" {
		outputDir = "."
	}
	registry := builder.Registry
	if registry == nil {
		registry = propernouns.NewRegistry()
	}
	if builder.DictionaryPath != "" {
		if err = registry.Load(builder.DictionaryPath); err != nil {
			return fail("dictionary", err)
		}
	}
	steps := &progress{
		total:  len(builder.CorpusPaths) + 4,
		report: builder.OnProgress,
	}
	log.Printf("[%s] Building pairs from %d corpus files into %s",
		runId, len(builder.CorpusPaths), outputDir)

	// Template.
	tmpl := &pairs.DefaultTemplate
	if builder.TemplatePath != "" {
		if tmpl, err = pairs.LoadTemplate(builder.TemplatePath); err != nil {
			return fail("template", err)
		}
	}

	// Corpus, one tick per file.
	var corpus strings.Builder
	for idx, path := range builder.CorpusPaths {
		contents, readErr := resources.ReadFile(path)
		if readErr != nil {
			return fail("corpus",
				errors.Wrapf(readErr, "reading corpus file `%s`", path))
		}
		if idx > 0 {
			corpus.WriteString("\n")
		}
		corpus.Write(contents)
		steps.tick()
	}
	log.Printf("[%s] Read %s of corpus text", runId,
		humanize.Bytes(uint64(corpus.Len())))

	text := corpus.String()
	if builder.Sanitize {
		text = normalize.Sanitize(text)
	}
	normalized := normalize.Normalize(text, exclude)
	steps.tick()

	engine := builder.Tokenizer
	if engine == nil {
		if engine, err = tokenizer.Load(builder.ModelDir); err != nil {
			return fail("tokenizer", err)
		}
	}
	var tokens types.Tokens
	if normalized != "" {
		if tokens, err = engine.Tokenize(normalized); err != nil {
			return fail("tokenize", err)
		}
	}
	if len(tokens) == 0 {
		return fail("tokenize", &types.NoTokensError{
			InputRunes: utf8.RuneCountInString(normalized)})
	}
	result.Tokens = len(tokens)
	steps.tick()
	log.Printf("[%s] Tokenized %s runes into %s tokens", runId,
		humanize.Comma(int64(utf8.RuneCountInString(normalized))),
		humanize.Comma(int64(len(tokens))))

	vocabulary := vocab.Build(tokens)
	result.VocabSize = vocabulary.Len()
	if result.VocabPath, err = dataset.WriteArtifact(outputDir,
		dataset.VocabFile, vocabulary); err != nil {
		return fail("vocab", errors.Wrap(err, "writing vocabulary"))
	}

	if builder.AugmentMinFrequency > 0 {
		if result.Confirmed, err = registry.AugmentFromCorpus(
			builder.CorpusPaths, engine,
			builder.AugmentMinFrequency); err != nil {
			return fail("augment", err)
		}
	}

	qaPairs := pairs.CreateQAPairs(tokens, windowSize, maxPairs, tmpl,
		registry)
	if len(qaPairs) == 0 {
		return fail("pairs", &types.EmptyPairsError{
			Tokens:     len(tokens),
			WindowSize: windowSize,
			KnownNouns: registry.Len(),
		})
	}
	dpoPairs := pairs.CreateDPOPairs(tokens, windowSize)
	result.QAPairs = len(qaPairs)
	result.DPOPairs = len(dpoPairs)
	steps.tick()

	train, valid, err := dataset.Split(qaPairs, builder.TestFraction,
		dataset.SplitSeed)
	if err != nil {
		return fail("split", err)
	}
	result.TrainPairs = len(train)
	result.ValidPairs = len(valid)
	steps.tick()

	if result.TrainPath, err = dataset.WriteArtifact(outputDir,
		dataset.TrainFile, train); err != nil {
		return fail("train", errors.Wrap(err, "writing train pairs"))
	}
	if result.ValidPath, err = dataset.WriteArtifact(outputDir,
		dataset.ValidFile, valid); err != nil {
		return fail("valid", errors.Wrap(err, "writing validation pairs"))
	}
	if result.DPOPath, err = dataset.WriteArtifact(outputDir,
		dataset.DPOFile, dpoPairs); err != nil {
		return fail("dpo", errors.Wrap(err, "writing DPO pairs"))
	}
	log.Printf("[%s] Wrote %d train, %d validation and %d DPO pairs "+
		"(%d vocabulary entries)", runId, result.TrainPairs,
		result.ValidPairs, result.DPOPairs, result.VocabSize)
	return result, nil
}
