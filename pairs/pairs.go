// Package pairs slides a fixed-width window over a token sequence and turns
// each window into a training record.
package pairs

import (
	"github.com/wbrown/gpt_pairs/types"
)

// NounSet is the membership test QA pair targets are filtered with.
type NounSet interface {
	IsKnown(token string) bool
}

// CreateQAPairs
// Walks window starts in ascending order and renders a QA pair for every
// window whose target is a known proper noun. Generation stops as soon as
// maxPairs pairs exist, so later windows are never looked at. A negative
// maxPairs disables the cap. A nil template means DefaultTemplate.
func CreateQAPairs(tokens types.Tokens, windowSize int, maxPairs int,
	tmpl *Template, nouns NounSet) []types.QAPair {
	if tmpl == nil {
		tmpl = &DefaultTemplate
	}
	qaPairs := make([]types.QAPair, 0)
	if maxPairs == 0 || nouns == nil {
		return qaPairs
	}
	numWindows := tokens.NumWindows(windowSize)
	for start := 0; start < numWindows; start++ {
		context, target, _ := tokens.Window(start, windowSize)
		if !nouns.IsKnown(target) {
			continue
		}
		qaPairs = append(qaPairs, tmpl.Render(context, target))
		if maxPairs > 0 && len(qaPairs) >= maxPairs {
			break
		}
	}
	return qaPairs
}

// CreateDPOPairs
// Returns one pair per window: the joined context as the instruction, an
// empty input, and the following token as the output. A sequence no longer
// than the window, or a window below 1, yields no pairs.
func CreateDPOPairs(tokens types.Tokens, windowSize int) []types.DPOPair {
	numWindows := tokens.NumWindows(windowSize)
	dpoPairs := make([]types.DPOPair, 0, numWindows)
	for start := 0; start < numWindows; start++ {
		context, target, _ := tokens.Window(start, windowSize)
		dpoPairs = append(dpoPairs, types.DPOPair{
			Instruction: context.String(),
			Input:       "",
			Output:      target,
		})
	}
	return dpoPairs
}
