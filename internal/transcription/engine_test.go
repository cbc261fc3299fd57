package transcription

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/slantscope/internal/inference"
	"github.com/spacesedan/slantscope/internal/models"
)

type fakeSpeech struct {
	text  string
	err   error
	calls []string
}

func (f *fakeSpeech) Transcribe(_ context.Context, path string) (string, error) {
	f.calls = append(f.calls, path)
	return f.text, f.err
}

type fakeConverter struct {
	err   error
	calls int
}

func (f *fakeConverter) ToMonoWav(_ context.Context, _, _ string) error {
	f.calls++
	return f.err
}

func loaded(s *fakeSpeech) inference.Handle[inference.SpeechModel] {
	return inference.Loaded[inference.SpeechModel](s)
}

func missing() inference.Handle[inference.SpeechModel] {
	return inference.Unavailable[inference.SpeechModel](errors.New("no key"))
}

func TestPrimarySuccessSkipsSecondary(t *testing.T) {
	primary := &fakeSpeech{text: "hello world"}
	secondary := &fakeSpeech{text: "unused"}
	conv := &fakeConverter{}

	text, err := NewEngine(loaded(primary), loaded(secondary), conv).Transcribe(context.Background(), "/tmp/in.mp3")

	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
	assert.Empty(t, secondary.calls)
	assert.Zero(t, conv.calls)
}

func TestPrimaryFailureFallsBackToSecondary(t *testing.T) {
	primary := &fakeSpeech{err: inference.NewError("whisper", "transcribe", errors.New("quota exceeded"))}
	secondary := &fakeSpeech{text: "fallback text"}
	conv := &fakeConverter{}

	text, err := NewEngine(loaded(primary), loaded(secondary), conv).Transcribe(context.Background(), "/tmp/in.mp3")

	require.NoError(t, err)
	assert.Equal(t, "fallback text", text)
	assert.Equal(t, 1, conv.calls)
	require.Len(t, secondary.calls, 1)
	assert.Equal(t, filepath.Join("/tmp", "in_mono16k.wav"), secondary.calls[0])
}

func TestEmptyPrimaryFallsBack(t *testing.T) {
	secondary := &fakeSpeech{text: "second"}
	text, err := NewEngine(loaded(&fakeSpeech{text: "  "}), loaded(secondary), &fakeConverter{}).
		Transcribe(context.Background(), "/tmp/in.wav")

	require.NoError(t, err)
	assert.Equal(t, "second", text)
}

func TestMissingPrimaryUsesSecondary(t *testing.T) {
	secondary := &fakeSpeech{text: "second"}
	text, err := NewEngine(missing(), loaded(secondary), &fakeConverter{}).
		Transcribe(context.Background(), "/tmp/in.ogg")

	require.NoError(t, err)
	assert.Equal(t, "second", text)
}

func TestTranscribeFailures(t *testing.T) {
	tests := []struct {
		name       string
		secondary  inference.Handle[inference.SpeechModel]
		converter  *fakeConverter
		conversion bool
	}{
		{"no recognizer", missing(), &fakeConverter{}, false},
		{"conversion fails", loaded(&fakeSpeech{text: "x"}), &fakeConverter{err: errors.New("exit 1")}, true},
		{"recognizer errors", loaded(&fakeSpeech{err: errors.New("403")}), &fakeConverter{}, false},
		{"recognizer empty", loaded(&fakeSpeech{text: ""}), &fakeConverter{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &fakeSpeech{err: errors.New("down")}
			_, err := NewEngine(loaded(primary), tt.secondary, tt.converter).
				Transcribe(context.Background(), "/tmp/in.mp3")

			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrTranscription)
			assert.Equal(t, tt.conversion, errors.Is(err, models.ErrConversion))
		})
	}
}

func TestAvailable(t *testing.T) {
	assert.False(t, NewEngine(missing(), missing(), nil).Available())
	assert.True(t, NewEngine(missing(), loaded(&fakeSpeech{}), nil).Available())
}
