// Package audioprep decodes audio clips into 16 kHz mono model input tensors.
package audioprep

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
	"github.com/custodia-labs/hoaxlens/internal/core/ports/driven"
)

// Model input constants.
const (
	// SampleRate is the rate the speech model was trained at.
	SampleRate = 16000

	// MaxSeconds is the longest span of a clip that is analysed.
	MaxSeconds = 10

	// MaxSamples is the input length cap: MaxSeconds at SampleRate.
	MaxSamples = SampleRate * MaxSeconds
)

// Ensure Preprocessor implements the interface.
var _ driven.AudioPreprocessor = (*Preprocessor)(nil)

// Config holds preprocessor options.
type Config struct {
	// FFmpeg enables conversion of encodings without a native decoder.
	FFmpeg bool
}

// Preprocessor decodes, downmixes, truncates and resamples audio.
type Preprocessor struct {
	convert converter
}

// New creates an audio preprocessor.
func New(cfg Config) *Preprocessor {
	p := &Preprocessor{}
	if cfg.FFmpeg {
		p.convert = ffmpegToWAV
	}
	return p
}

// Prepare decodes data and returns a [1,n] tensor with n at most MaxSamples.
func (p *Preprocessor) Prepare(ctx context.Context, data []byte) (domain.Tensor, error) {
	if len(data) == 0 {
		return domain.Tensor{}, errors.New("empty audio")
	}

	c, err := p.decode(ctx, data)
	if err != nil {
		return domain.Tensor{}, err
	}
	if c.rate <= 0 || c.channels <= 0 {
		return domain.Tensor{}, fmt.Errorf("invalid %s stream: %d Hz, %d channels", c.format, c.rate, c.channels)
	}

	mono := downmix(c.samples, c.channels)
	if limit := c.rate * MaxSeconds; len(mono) > limit {
		mono = mono[:limit]
	}
	out := Resample(mono, c.rate, SampleRate)
	if len(out) > MaxSamples {
		out = out[:MaxSamples]
	}
	if len(out) == 0 {
		return domain.Tensor{}, fmt.Errorf("%s stream contains no samples", c.format)
	}

	return domain.NewFloatTensor("input_values", out, 1, int64(len(out))), nil
}

// downmix averages interleaved channels into one.
func downmix(interleaved []float32, channels int) []float32 {
	if channels == 1 {
		return interleaved
	}
	frames := len(interleaved) / channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float32
		for ch := 0; ch < channels; ch++ {
			sum += interleaved[i*channels+ch]
		}
		out[i] = sum / float32(channels)
	}
	return out
}
