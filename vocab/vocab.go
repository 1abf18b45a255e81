// Package vocab assigns integer ranks to the distinct tokens of a run.
package vocab

import (
	"bytes"
	"encoding/json"

	"github.com/wbrown/gpt_pairs/types"
)

// Vocabulary maps every distinct token to a rank in 1..Len(). Ranks follow
// the order in which the counting pass first saw each token.
type Vocabulary struct {
	Ranks  map[types.Token]int
	Tokens types.Tokens
	Counts map[types.Token]int
}

// Build
// Counts tokens and ranks each distinct token by first occurrence, starting
// at 1.
func Build(tokens types.Tokens) *Vocabulary {
	counts, order := tokens.Counts()
	ranks := make(map[types.Token]int, len(order))
	for idx, token := range order {
		ranks[token] = idx + 1
	}
	return &Vocabulary{Ranks: ranks, Tokens: order, Counts: counts}
}

// Len returns the number of distinct tokens.
func (v *Vocabulary) Len() int {
	return len(v.Tokens)
}

// Rank returns the rank of token, or 0 if it is not in the vocabulary.
func (v *Vocabulary) Rank(token types.Token) int {
	return v.Ranks[token]
}

// MarshalJSON
// Encodes the vocabulary as a `token: rank` object with keys in rank order
// rather than the sorted order encoding/json gives maps.
func (v *Vocabulary) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for idx, token := range v.Tokens {
		if idx > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(token)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		rank, err := json.Marshal(v.Ranks[token])
		if err != nil {
			return nil, err
		}
		buf.Write(rank)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalNoEscape(s string) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
