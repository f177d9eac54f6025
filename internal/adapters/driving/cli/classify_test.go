package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/hoaxlens/internal/core/domain"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestClassifyCmd_Use(t *testing.T) {
	assert.Equal(t, "classify", classifyCmd.Use)
	assert.Equal(t, "text <headline>", classifyTextCmd.Use)
	assert.Equal(t, "image <file|->", classifyImageCmd.Use)
	assert.Equal(t, "audio <file|->", classifyAudioCmd.Use)
}

func TestClassifyText_JoinsArgs(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCmd(t, "", "classify", "text", "moon", "landing", "faked")

	require.NoError(t, err)
	assert.Equal(t, "moon landing faked", ts.analysis.last.Text)
	assert.Contains(t, out, "Headline text")
	assert.Contains(t, out, "hoax")
	assert.Contains(t, out, "91.50%")
}

func TestClassifyText_ReadsStdin(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := runCmd(t, "  Shark on the highway\n", "classify", "text", "-")

	require.NoError(t, err)
	assert.Equal(t, "Shark on the highway", ts.analysis.last.Text)
}

func TestClassifyText_EmptyHeadline(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := runCmd(t, "   ", "classify", "text", "-")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, ts.analysis.calls)
}

func TestClassifyImage_PassesPath(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCmd(t, "", "classify", "image", "photo.png")

	require.NoError(t, err)
	assert.Equal(t, "photo.png", ts.analysis.last.Path)
	assert.Contains(t, out, "Still image")
	assert.Contains(t, out, "photo.png")
	assert.Contains(t, out, "Valid")
	assert.Contains(t, out, "format: png")
}

func TestClassifyImage_ReadsStdinBytes(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := runCmd(t, "\x89PNG", "classify", "image", "-")

	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), ts.analysis.last.Data)
	assert.Empty(t, ts.analysis.last.Path)
}

func TestClassifyAudio_ShowsFailure(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCmd(t, "", "classify", "audio", "clip.wav")

	require.NoError(t, err)
	assert.Contains(t, out, "could not analyse (decode_failure)")
	assert.Contains(t, out, "boom")
}

func TestClassifyText_JSON(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCmd(t, "", "classify", "text", "--json", "headline")

	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "text", got["modality"])
	assert.Equal(t, "hoax", got["result"].(map[string]any)["label"])
}

func TestClassifyAudio_JSONCarriesErrorKind(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCmd(t, "", "classify", "audio", "--json", "clip.wav")

	require.NoError(t, err)
	assert.Contains(t, out, `"error_kind": "decode_failure"`)
}

func TestClassify_ServicesNotConfigured(t *testing.T) {
	oldServices, oldFactory := services, factory
	services, factory = nil, nil
	defer func() {
		services, factory = oldServices, oldFactory
	}()

	_, err := runCmd(t, "", "classify", "text", "headline")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "services not configured")
}
