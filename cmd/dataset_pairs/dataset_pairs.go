package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/apoorvam/goterminal"
	"github.com/wbrown/gpt_pairs"
	"github.com/wbrown/gpt_pairs/errlog"
	"github.com/wbrown/gpt_pairs/propernouns"
	"github.com/wbrown/gpt_pairs/settings"
)

// applySettings fills builder from the persisted settings of a previous
// session.
func applySettings(builder *gpt_pairs.PairsBuilder, saved settings.Settings) {
	if saved.DataDir != "" {
		builder.CorpusPaths = gpt_pairs.SplitPaths(saved.DataDir)
	}
	if saved.OutputDir != "" {
		builder.OutputDir = saved.OutputDir
	}
	builder.ModelDir = saved.ModelDir
	builder.DictionaryPath = saved.ProperNounFile
	builder.TemplatePath = saved.TemplateFile
	builder.ExclusionPattern = saved.CustomPattern
	if saved.BatchSize > 0 {
		builder.WindowSize = saved.BatchSize
	}
	if saved.MaxPairs != 0 {
		builder.MaxPairs = saved.MaxPairs
	}
}

// rememberSettings writes the options of this run back to the store, one
// field at a time.
func rememberSettings(store *settings.Store, builder *gpt_pairs.PairsBuilder,
	inputs string) error {
	fields := [][2]string{
		{"dataDir", inputs},
		{"outputDir", builder.OutputDir},
		{"modelDir", builder.ModelDir},
		{"properNounFile", builder.DictionaryPath},
		{"templateFile", builder.TemplatePath},
		{"customPattern", builder.ExclusionPattern},
		{"batchSize", strconv.Itoa(builder.WindowSize)},
		{"maxPairs", strconv.Itoa(builder.MaxPairs)},
	}
	for _, field := range fields {
		if err := store.Set(field[0], field[1]); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	inputs := flag.String("input", "",
		"semicolon-separated corpus files or directories of .txt files")
	outputDir := flag.String("output", ".", "output directory")
	modelDir := flag.String("model", "",
		"model directory holding tokenizer.json, tokenizer.model or "+
			"vocab.json + merges.txt + config.json")
	dictionary := flag.String("dictionary", "",
		"JSON array of proper nouns that QA targets must match")
	template := flag.String("template", "",
		"JSON template with instruction/input/output fields")
	pattern := flag.String("pattern", "",
		"regular expression removed from the normalized text")
	testFraction := flag.Float64("test_fraction",
		gpt_pairs.DefaultTestFraction, "validation proportion in [0, 1)")
	maxPairs := flag.Int("max_pairs", gpt_pairs.DefaultMaxPairs,
		"maximum QA pairs, -1 for no limit")
	window := flag.Int("window", gpt_pairs.DefaultWindowSize,
		"tokens of context per pair")
	sanitize := flag.Bool("sanitize", false,
		"sanitize inputs of whitespace issues")
	augment := flag.Int("augment", 0,
		"confirm dictionary nouns occurring at least N times, 0 to skip")
	reorder := flag.String("reorder", "name_ascending",
		"order of files found in input directories [name_ascending, "+
			"name_descending, size_ascending, size_descending, none]")
	configPath := flag.String("config", "", "YAML run description")
	settingsPath := flag.String("settings", settings.DefaultPath,
		"settings file remembered between runs, empty to disable")
	errorLog := flag.String("error_log", errlog.DefaultPath,
		"append-only error log")
	flag.Parse()

	if err := errlog.Open(*errorLog); err != nil {
		log.Fatal(err)
	}
	defer errlog.Close()
	if err := gpt_pairs.ReorderPathInfos(nil, *reorder); err != nil {
		log.Fatal(err)
	}

	builder := gpt_pairs.NewPairsBuilder()
	var store *settings.Store
	if *settingsPath != "" {
		var err error
		if store, err = settings.Open(*settingsPath); err != nil {
			log.Fatal(err)
		}
		applySettings(&builder, store.Get())
	}
	if *configPath != "" {
		loaded, err := gpt_pairs.LoadConfig(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		builder = *loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			builder.CorpusPaths = gpt_pairs.SplitPaths(*inputs)
		case "output":
			builder.OutputDir = *outputDir
		case "model":
			builder.ModelDir = *modelDir
		case "dictionary":
			builder.DictionaryPath = *dictionary
		case "template":
			builder.TemplatePath = *template
		case "pattern":
			builder.ExclusionPattern = *pattern
		case "test_fraction":
			builder.TestFraction = *testFraction
		case "max_pairs":
			builder.MaxPairs = *maxPairs
		case "window":
			builder.WindowSize = *window
		case "sanitize":
			builder.Sanitize = *sanitize
		case "augment":
			builder.AugmentMinFrequency = *augment
		}
	})
	if len(builder.CorpusPaths) == 0 {
		flag.Usage()
		log.Fatal("Must provide -input, -config or a saved dataDir")
	}
	joinedInputs := strings.Join(builder.CorpusPaths, ";")
	corpusPaths, err := gpt_pairs.ExpandInputs(builder.CorpusPaths, *reorder)
	if err != nil {
		errlog.Printf("%v", err)
		log.Fatal(err)
	}
	builder.CorpusPaths = corpusPaths
	builder.Registry = propernouns.NewRegistry()

	log.Printf("Corpus files: %d", len(corpusPaths))
	log.Printf("Model directory: %s", builder.ModelDir)
	log.Printf("Output directory: %s", builder.OutputDir)

	console := goterminal.New(os.Stdout)
	builder.OnProgress = func(percent int) {
		console.Clear()
		fmt.Fprintf(console, "Building pairs... %3d%%\n", percent)
		console.Print()
	}
	begin := time.Now()
	result, runErr := builder.Run()
	console.Clear()
	console.Reset()
	if runErr != nil {
		fmt.Fprintf(os.Stdout, "Building pairs...   0%%\n")
		log.Fatal(runErr)
	}
	log.Printf("Run %s finished in %s", result.RunId,
		time.Since(begin).Round(time.Millisecond))
	for _, path := range []string{result.VocabPath, result.TrainPath,
		result.ValidPath, result.DPOPath} {
		log.Printf("Wrote %s", path)
	}
	if store != nil {
		if err = rememberSettings(store, &builder, joinedInputs); err != nil {
			log.Fatal(err)
		}
	}
}
