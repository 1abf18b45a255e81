package tokenizer

import (
	"log"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sugarme/tokenizer/pretrained"
	"github.com/vikesh-raj/go-sentencepiece-encoder/sentencepiece"
	"github.com/wbrown/gpt_bpe"
	"github.com/wbrown/gpt_pairs/resources"
	"github.com/wbrown/gpt_pairs/types"
	"google.golang.org/protobuf/proto"
)

const maxPendingBytes = 4 * utf8.UTFMax

// Word-boundary markers that engines glue onto the front of a piece.
const (
	spaceMarker     = "▁"
	byteLevelMarker = "Ġ"
)

// appendPiece trims boundary markers and drops pieces that were only a
// marker or whitespace.
func appendPiece(tokens types.Tokens, piece string) types.Tokens {
	piece = strings.TrimLeft(piece, spaceMarker)
	piece = strings.TrimPrefix(piece, byteLevelMarker)
	piece = strings.TrimSpace(piece)
	if piece == "" {
		return tokens
	}
	return append(tokens, piece)
}

// newHFTokenizer
// Loads a HuggingFace `tokenizer.json`. Special tokens are not added.
func newHFTokenizer(path string) (Tokenizer, error) {
	hf, err := pretrained.FromFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load `%s`", path)
	}
	log.Printf("Loaded HuggingFace tokenizer from %s", path)
	return TokenizerFunc(func(text string) (types.Tokens, error) {
		encoding, encErr := hf.EncodeSingle(text, false)
		if encErr != nil {
			return nil, encErr
		}
		tokens := make(types.Tokens, 0, len(encoding.Tokens))
		for _, piece := range encoding.Tokens {
			tokens = appendPiece(tokens, piece)
		}
		return tokens, nil
	}), nil
}

// newSentencePieceTokenizer
// Validates `tokenizer.model` as a SentencePiece ModelProto before handing
// it to the encoder, so an incompatible file fails here and not mid-run.
func newSentencePieceTokenizer(rsrcs *resources.Resources) (Tokenizer,
	error) {
	entry := (*rsrcs)["tokenizer.model"]
	data, err := rsrcs.Data("tokenizer.model")
	if err != nil {
		return nil, err
	}
	var model sentencepiece.ModelProto
	if err = proto.Unmarshal(*data, &model); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal `tokenizer.model`")
	}
	numPieces := len(model.GetPieces())
	if numPieces == 0 {
		return nil, errors.New("`tokenizer.model` contains no pieces")
	}
	spm, err := sentencepiece.NewSentencepieceFromFile(entry.Path, false)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load `%s`", entry.Path)
	}
	log.Printf("Loaded SentencePiece model %s: %s pieces, %s", entry.Path,
		humanize.Comma(int64(numPieces)),
		humanize.Bytes(uint64(entry.Size)))
	return TokenizerFunc(func(text string) (types.Tokens, error) {
		pieces := spm.Tokenize(text)
		tokens := make(types.Tokens, 0, len(pieces))
		for _, piece := range pieces {
			tokens = appendPiece(tokens, piece.Text)
		}
		return tokens, nil
	}), nil
}

// newBPETokenizer
// Loads a byte-level BPE directory through gpt_bpe.
func newBPETokenizer(dir string) (Tokenizer, error) {
	encoder, err := gpt_bpe.NewEncoder(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot load BPE vocabulary")
	}
	log.Printf("Loaded BPE tokenizer from %s: %s entries", dir,
		humanize.Comma(int64(len(encoder.Encoder))))
	return TokenizerFunc(func(text string) (types.Tokens, error) {
		encoded := encoder.Encode(&text)
		pieces := make([][]byte, 0, len(*encoded))
		for _, token := range *encoded {
			pieces = append(pieces, encoder.Decoder[token])
		}
		return joinBytePieces(pieces), nil
	}), nil
}

// joinBytePieces
// Byte-level tokens can split a multi-byte rune, so consecutive pieces are
// joined until they form valid UTF-8. A run that never becomes valid is
// flushed once it is longer than any rune sequence could need.
func joinBytePieces(pieces [][]byte) types.Tokens {
	tokens := make(types.Tokens, 0, len(pieces))
	pending := make([]byte, 0, utf8.UTFMax)
	for _, piece := range pieces {
		pending = append(pending, piece...)
		if !utf8.Valid(pending) && len(pending) < maxPendingBytes {
			continue
		}
		tokens = appendPiece(tokens, string(pending))
		pending = pending[:0]
	}
	if len(pending) > 0 {
		tokens = appendPiece(tokens, string(pending))
	}
	return tokens
}
