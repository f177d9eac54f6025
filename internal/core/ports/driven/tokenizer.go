package driven

import "github.com/custodia-labs/hoaxlens/internal/core/domain"

// Tokenizer encodes text for a transformer model.
type Tokenizer interface {
	// Encode tokenizes a single sequence with special tokens added.
	// No truncation or padding is applied.
	Encode(text string) (domain.Encoding, error)

	// PadID returns the id of the padding token.
	PadID() int64
}

// TokenizerLoader loads a tokenizer definition (tokenizer.json).
type TokenizerLoader interface {
	Load(path string) (Tokenizer, error)
}
