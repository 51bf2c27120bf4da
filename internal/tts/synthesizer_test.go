package tts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelvoice/kestrel/internal/pipeline"
)

type fakeProvider struct {
	samples    []float32
	sampleRate int
}

func (f fakeProvider) Generate(text string, speakerID int, speed float32) ([]float32, int) {
	return f.samples, f.sampleRate
}

func TestSynthesizer_RejectsEmptyText(t *testing.T) {
	s := NewSynthesizer(fakeProvider{samples: []float32{1, 2, 3}, sampleRate: 24000}, 0, 1.0, false)
	_, err := s.Synthesize("   ")
	assert.Error(t, err)
}

func TestSynthesizer_ReturnsErrEmptyTTSOutputWhenProviderYieldsNothing(t *testing.T) {
	s := NewSynthesizer(fakeProvider{samples: nil, sampleRate: 24000}, 0, 1.0, false)
	_, err := s.Synthesize("hello")
	assert.ErrorIs(t, err, pipeline.ErrEmptyTTSOutput)
}

func TestSynthesizer_ReturnsClipOnSuccess(t *testing.T) {
	s := NewSynthesizer(fakeProvider{samples: []float32{0.1, 0.2}, sampleRate: 24000}, 2, 0.9, false)
	clip, err := s.Synthesize("  hi  ")
	require.NoError(t, err)
	assert.Equal(t, "hi", clip.Text)
	assert.Equal(t, 24000, clip.SampleRate)
	assert.Len(t, clip.PCM, 2)
}
