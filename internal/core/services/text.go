package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driven"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driving"
)

// MaxSequenceLength is the fixed token length of the headline model.
const MaxSequenceLength = 128

// Ensure TextClassifier implements the interface.
var _ driving.Classifier = (*TextClassifier)(nil)

// textModel pairs the headline session with its tokenizer.
type textModel struct {
	session   driven.Session
	tokenizer driven.Tokenizer
}

// Close releases the session.
func (m *textModel) Close() error {
	return m.session.Close()
}

// TextClassifier classifies headline text as hoax or valid.
type TextClassifier struct {
	spec   domain.ModelSpec
	handle *ModelHandle[*textModel]
}

// NewTextClassifier creates a text classifier. Nothing is loaded until first use.
func NewTextClassifier(
	spec domain.ModelSpec,
	resolver driven.ModelResolver,
	runtime driven.InferenceRuntime,
	tokenizers driven.TokenizerLoader,
	device domain.Device,
) *TextClassifier {
	sessions := SessionLoader(resolver, runtime, spec)
	load := func(ctx context.Context, d domain.Device) (*textModel, error) {
		if spec.Tokenizer == nil {
			return nil, errors.New("no tokenizer configured")
		}
		tokPath, err := resolver.Resolve(ctx, *spec.Tokenizer)
		if err != nil {
			return nil, fmt.Errorf("resolve tokenizer: %w", err)
		}
		tok, err := tokenizers.Load(tokPath)
		if err != nil {
			return nil, fmt.Errorf("load tokenizer %s: %w", tokPath, err)
		}
		session, err := sessions(ctx, d)
		if err != nil {
			return nil, err
		}
		return &textModel{session: session, tokenizer: tok}, nil
	}

	return &TextClassifier{
		spec: spec,
		handle: NewModelHandle(domain.ModalityText, spec.Name, func() domain.Device {
			return runtime.SelectDevice(device)
		}, load),
	}
}

// Modality returns domain.ModalityText.
func (c *TextClassifier) Modality() domain.Modality {
	return domain.ModalityText
}

// Classify classifies the input's Text, or its Data decoded as UTF-8 text.
func (c *TextClassifier) Classify(ctx context.Context, in domain.RawInput) (domain.ClassificationResult, error) {
	text := in.Text
	if text == "" && len(in.Data) > 0 {
		text = string(in.Data)
	}
	return c.ClassifyText(ctx, text)
}

// ClassifyText classifies a headline.
func (c *TextClassifier) ClassifyText(ctx context.Context, text string) (domain.ClassificationResult, error) {
	return guard(domain.ModalityText, func() (domain.ClassificationResult, error) {
		if strings.TrimSpace(text) == "" {
			return fail(domain.ModalityText, domain.ErrorKindDecodeFailure, errors.New("empty text"))
		}

		model, err := c.handle.Model(ctx)
		if err != nil {
			return failWith(domain.ModalityText, domain.ErrorKindModelUnavailable, err)
		}

		enc, err := model.tokenizer.Encode(text)
		if err != nil {
			return fail(domain.ModalityText, domain.ErrorKindDecodeFailure, fmt.Errorf("tokenize: %w", err))
		}
		if enc.Len() == 0 {
			return fail(domain.ModalityText, domain.ErrorKindDecodeFailure, errors.New("tokenizer produced no tokens"))
		}
		enc = fitSequence(enc, MaxSequenceLength, model.tokenizer.PadID())

		inputs := []domain.Tensor{
			domain.NewIntTensor(c.inputName(0), enc.IDs, 1, MaxSequenceLength),
			domain.NewIntTensor(c.inputName(1), enc.AttentionMask, 1, MaxSequenceLength),
			domain.NewIntTensor(c.inputName(2), enc.TypeIDs, 1, MaxSequenceLength),
		}
		logits, err := model.session.Run(ctx, inputs)
		if err != nil {
			return fail(domain.ModalityText, domain.ErrorKindInferenceFailure, err)
		}
		return decide(domain.ModalityText, domain.TextLabels, logits)
	})
}

func (c *TextClassifier) inputName(i int) string {
	if i < len(c.spec.Inputs) {
		return c.spec.Inputs[i]
	}
	return []string{"input_ids", "attention_mask", "token_type_ids"}[i]
}

// EnsureLoaded loads the tokenizer and model if needed.
func (c *TextClassifier) EnsureLoaded(ctx context.Context) error {
	return c.handle.EnsureLoaded(ctx)
}

// Status returns the model status.
func (c *TextClassifier) Status() domain.ModelStatus {
	return c.handle.Status()
}

// Close releases the model.
func (c *TextClassifier) Close() error {
	return c.handle.Close()
}

// fitSequence truncates enc to n tokens, keeping the trailing separator
// token, then pads it to exactly n.
func fitSequence(enc domain.Encoding, n int, padID int64) domain.Encoding {
	out := domain.Encoding{
		IDs:           make([]int64, n),
		TypeIDs:       make([]int64, n),
		AttentionMask: make([]int64, n),
	}

	size := enc.Len()
	keep := size
	if size > n {
		keep = n - 1
	}
	copy(out.IDs, enc.IDs[:keep])
	copy(out.TypeIDs, prefix(enc.TypeIDs, keep))
	for i := 0; i < keep; i++ {
		out.AttentionMask[i] = 1
		if i < len(enc.AttentionMask) {
			out.AttentionMask[i] = enc.AttentionMask[i]
		}
	}

	if size > n {
		last := size - 1
		out.IDs[n-1] = enc.IDs[last]
		if last < len(enc.TypeIDs) {
			out.TypeIDs[n-1] = enc.TypeIDs[last]
		}
		out.AttentionMask[n-1] = 1
		keep = n
	}

	for i := keep; i < n; i++ {
		out.IDs[i] = padID
	}
	return out
}

func prefix(s []int64, n int) []int64 {
	if len(s) < n {
		return s
	}
	return s[:n]
}
