package types

// Token is one unit produced by a tokenizer engine. Source order is
// significant and duplicates carry frequency.
type Token = string
type Tokens []Token

// QAPair is a templated instruction/response record whose target was a
// known proper noun when it was generated.
type QAPair struct {
	Instruction string `json:"instruction"`
	Input       string `json:"input"`
	Output      string `json:"output"`
}

// DPOPair is an unfiltered context/next-token record. Instruction holds the
// window text, Output the token that follows it and Input is always empty.
type DPOPair struct {
	Instruction string `json:"instruction"`
	Input       string `json:"input"`
	Output      string `json:"output"`
}
