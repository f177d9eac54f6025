package audioprep

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/mewkiz/flac"
	"go.mau.fi/util/ffmpeg"

	"github.com/custodia-labs/hoaxlens/internal/logger"
)

// Container formats recognised by sniffing.
const (
	formatWAV     = "wav"
	formatFLAC    = "flac"
	formatMP3     = "mp3"
	formatUnknown = "unknown"
)

// wavFormatPCM is the WAVE_FORMAT_PCM format tag.
const wavFormatPCM = 1

// errNoNativeDecoder is returned for encodings without a native decoder.
var errNoNativeDecoder = errors.New("no native decoder")

// clip is decoded audio: interleaved samples in [-1, 1].
type clip struct {
	format   string
	rate     int
	channels int
	samples  []float32
}

// converter turns arbitrary encoded audio into a 16 kHz mono WAV.
type converter func(ctx context.Context, data []byte) ([]byte, error)

// decode picks a native decoder by sniffing, falling back to conversion.
func (p *Preprocessor) decode(ctx context.Context, data []byte) (*clip, error) {
	format := sniff(data)

	var c *clip
	var err error
	switch format {
	case formatWAV:
		c, err = decodeWAV(data)
	case formatFLAC:
		c, err = decodeFLAC(data)
	case formatMP3:
		c, err = decodeMP3(data)
	default:
		err = errNoNativeDecoder
	}
	if err == nil {
		return c, nil
	}

	if p.convert == nil {
		return nil, fmt.Errorf("decode %s audio: %w", format, err)
	}

	logger.Debug("Native %s decode failed (%v), converting with ffmpeg", format, err)
	wavData, cerr := p.convert(ctx, data)
	if cerr != nil {
		return nil, fmt.Errorf("decode %s audio: %w (conversion: %v)", format, err, cerr)
	}
	c, werr := decodeWAV(wavData)
	if werr != nil {
		return nil, fmt.Errorf("decode converted audio: %w", werr)
	}
	return c, nil
}

// sniff identifies the container from its magic bytes.
func sniff(data []byte) string {
	switch {
	case len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE":
		return formatWAV
	case len(data) >= 4 && string(data[0:4]) == "fLaC":
		return formatFLAC
	case len(data) >= 3 && string(data[0:3]) == "ID3":
		return formatMP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return formatMP3
	default:
		return formatUnknown
	}
}

// decodeWAV decodes integer PCM WAV, reading at most MaxSeconds of audio.
func decodeWAV(data []byte) (*clip, error) {
	d := wav.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		return nil, errors.New("invalid wav file")
	}
	if d.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("wav format tag %d: %w", d.WavAudioFormat, errNoNativeDecoder)
	}

	c := &clip{format: formatWAV, rate: int(d.SampleRate), channels: int(d.NumChans)}
	depth := int(d.BitDepth)
	scale := float32(audio.IntMaxSignedValue(depth))
	if scale == 0 {
		return nil, fmt.Errorf("unsupported wav bit depth %d", depth)
	}

	limit := c.rate * c.channels * MaxSeconds
	buf := &audio.IntBuffer{Data: make([]int, 4096*max(c.channels, 1))}
	for len(c.samples) < limit {
		n, err := d.PCMBuffer(buf)
		if err != nil {
			return nil, fmt.Errorf("read wav samples: %w", err)
		}
		if n == 0 {
			break
		}
		for _, v := range buf.Data[:n] {
			if depth == 8 {
				// 8-bit PCM is unsigned.
				v -= 128
			}
			c.samples = append(c.samples, float32(v)/scale)
		}
	}
	return c, nil
}

// decodeMP3 decodes MP3. The decoder always yields 16-bit stereo.
func decodeMP3(data []byte) (*clip, error) {
	d, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open mp3: %w", err)
	}

	const channels = 2
	c := &clip{format: formatMP3, rate: d.SampleRate(), channels: channels}
	limit := c.rate * channels * MaxSeconds

	chunk := make([]byte, 8192)
	var pending []byte
	for len(c.samples) < limit {
		n, err := d.Read(chunk)
		pending = append(pending, chunk[:n]...)
		for len(pending) >= 2 {
			v := int16(binary.LittleEndian.Uint16(pending))
			c.samples = append(c.samples, float32(v)/32768)
			pending = pending[2:]
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read mp3 frames: %w", err)
		}
	}
	return c, nil
}

// decodeFLAC decodes FLAC frame by frame.
func decodeFLAC(data []byte) (*clip, error) {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open flac: %w", err)
	}
	defer stream.Close()

	c := &clip{
		format:   formatFLAC,
		rate:     int(stream.Info.SampleRate),
		channels: int(stream.Info.NChannels),
	}
	scale := float32(int64(1) << (stream.Info.BitsPerSample - 1))
	limit := c.rate * c.channels * MaxSeconds

	for len(c.samples) < limit {
		f, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read flac frame: %w", err)
		}
		for i := 0; i < int(f.BlockSize); i++ {
			for _, sub := range f.Subframes {
				c.samples = append(c.samples, float32(sub.Samples[i])/scale)
			}
		}
	}
	return c, nil
}

// ffmpegToWAV converts audio with ffmpeg. The library stages data in its own
// scratch directory and removes it before returning. It logs through the
// zerolog logger attached to ctx.
func ffmpegToWAV(ctx context.Context, data []byte) ([]byte, error) {
	if !ffmpeg.Supported() {
		return nil, errors.New("ffmpeg is not installed")
	}
	return ffmpeg.ConvertBytes(logger.WithContext(ctx), data, ".wav", nil,
		[]string{"-ac", "1", "-ar", "16000", "-c:a", "pcm_s16le"}, "")
}
