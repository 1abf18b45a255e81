package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/wbrown/gpt_pairs/normalize"
	"github.com/wbrown/gpt_pairs/tokenizer"
)

// A REPL for checking how a model directory tokenizes normalized text.

func main() {
	modelDir := flag.String("model", "",
		"model directory holding the tokenizer files")
	pattern := flag.String("pattern", "",
		"regular expression removed from the normalized text")
	raw := flag.Bool("raw", false, "tokenize input without normalizing")
	flag.Parse()
	if *modelDir == "" {
		flag.Usage()
		log.Fatal("Must provide -model")
	}

	engine, err := tokenizer.Load(*modelDir)
	if err != nil {
		log.Fatal(err)
	}
	exclude, err := normalize.CompilePattern(*pattern)
	if err != nil {
		log.Fatal(err)
	}

	reader := bufio.NewReader(os.Stdin)
	// Provide a REPL
	for {
		fmt.Print(">>> ")
		input, readErr := reader.ReadString('\n')
		if readErr == io.EOF && input == "" {
			fmt.Println()
			return
		} else if readErr != nil && readErr != io.EOF {
			log.Fatal(readErr)
		}
		// Remove trailing newline and replace \n with newline.
		input = strings.ReplaceAll(strings.TrimSuffix(input, "\n"), "\\n",
			"\n")
		if !*raw {
			input = normalize.Normalize(input, exclude)
			fmt.Printf("%q\n", input)
		}
		tokens, tokErr := engine.Tokenize(input)
		if tokErr != nil {
			log.Print(tokErr)
			continue
		}
		fmt.Printf("%d tokens\n", len(tokens))
		for _, token := range tokens {
			fmt.Printf("|%s", token)
		}
		fmt.Printf("\n")
	}
}
