// Package huggingface loads Hugging Face tokenizer.json definitions.
// It implements the driven.TokenizerLoader and driven.Tokenizer interfaces.
package huggingface

import (
	"fmt"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driven"
)

// Ensure Loader and Tokenizer implement the interfaces.
var (
	_ driven.TokenizerLoader = (*Loader)(nil)
	_ driven.Tokenizer       = (*Tokenizer)(nil)
)

// padTokens are tried in order to find the padding token id.
var padTokens = []string{"[PAD]", "<pad>"}

// Loader loads tokenizers from tokenizer.json files.
type Loader struct{}

// NewLoader creates a new tokenizer loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads a tokenizer.json file.
// Truncation and padding configured in the file are disabled; callers
// fit sequences to their model's length themselves.
func (l *Loader) Load(path string) (driven.Tokenizer, error) {
	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}
	tk.WithTruncation(nil)
	tk.WithPadding(nil)

	padID := int64(0)
	for _, tok := range padTokens {
		if id, ok := tk.TokenToId(tok); ok {
			padID = int64(id)
			break
		}
	}

	return &Tokenizer{tk: tk, padID: padID}, nil
}

// Tokenizer wraps a loaded Hugging Face tokenizer.
type Tokenizer struct {
	tk    *tokenizer.Tokenizer
	padID int64
}

// Encode tokenizes text with special tokens added.
func (t *Tokenizer) Encode(text string) (domain.Encoding, error) {
	enc, err := t.tk.EncodeSingle(text, true)
	if err != nil {
		return domain.Encoding{}, fmt.Errorf("encode: %w", err)
	}
	return domain.Encoding{
		IDs:           toInt64(enc.Ids),
		TypeIDs:       toInt64(enc.TypeIds),
		AttentionMask: toInt64(enc.AttentionMask),
	}, nil
}

// PadID returns the padding token id.
func (t *Tokenizer) PadID() int64 {
	return t.padID
}

func toInt64(in []int) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = int64(v)
	}
	return out
}
