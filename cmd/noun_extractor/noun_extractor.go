package main

import (
	"flag"
	"log"
	"os"

	"github.com/wbrown/gpt_pairs"
	"github.com/wbrown/gpt_pairs/errlog"
	"github.com/wbrown/gpt_pairs/propernouns"
	"github.com/wbrown/gpt_pairs/resources"
)

// A tool that proposes proper noun candidates from raw text and merges them
// into a dictionary file for review.

func main() {
	inputs := flag.String("input", "",
		"semicolon-separated text files or directories of .txt files")
	output := flag.String("output", "proper_nouns.json",
		"dictionary to write; existing entries are kept")
	entities := flag.Bool("entities", false,
		"also add named entities and NNP tokens found by the tagger")
	modelDir := flag.String("model", "",
		"with -augment, model directory used to tokenize the input")
	augment := flag.Int("augment", 0,
		"confirm dictionary nouns occurring at least N times, 0 to skip")
	reorder := flag.String("reorder", "name_ascending",
		"order of files found in input directories [name_ascending, "+
			"name_descending, size_ascending, size_descending, none]")
	errorLog := flag.String("error_log", errlog.DefaultPath,
		"append-only error log")
	flag.Parse()
	if *inputs == "" {
		flag.Usage()
		log.Fatal("Must provide -input")
	}
	if err := errlog.Open(*errorLog); err != nil {
		log.Fatal(err)
	}
	defer errlog.Close()

	paths, err := gpt_pairs.ExpandInputs(gpt_pairs.SplitPaths(*inputs),
		*reorder)
	if err != nil {
		log.Fatal(err)
	}
	texts := make([]string, 0, len(paths))
	for _, path := range paths {
		contents, readErr := resources.ReadFile(path)
		if readErr != nil {
			log.Fatal(readErr)
		}
		texts = append(texts, string(contents))
	}

	registry := propernouns.NewRegistry()
	if _, statErr := os.Stat(*output); statErr == nil {
		if err = registry.Load(*output); err != nil {
			log.Fatal(err)
		}
	}
	before := registry.Len()
	added := registry.Add(propernouns.ExtractCandidates(texts)...)
	log.Printf("Pattern candidates: %d new", added)
	if *entities {
		found, entityErr := propernouns.ExtractEntities(texts)
		if entityErr != nil {
			log.Fatal(entityErr)
		}
		log.Printf("Tagger candidates: %d new", registry.Add(found...))
	}
	if *augment > 0 {
		confirmed, augmentErr := registry.AugmentFromModel(paths, *modelDir,
			*augment)
		if augmentErr != nil {
			log.Fatal(augmentErr)
		}
		log.Printf("Confirmed %d frequent proper nouns", confirmed)
	}
	if err = registry.Save(*output); err != nil {
		errlog.Printf("saving `%s`: %v", *output, err)
		log.Fatal(err)
	}
	log.Printf("Wrote %d proper nouns (%d new) to %s", registry.Len(),
		registry.Len()-before, *output)
}
