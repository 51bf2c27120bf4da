package asr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kestrelvoice/kestrel/internal/pipeline"
)

type fakeProvider struct{ text string }

func (f fakeProvider) Transcribe(pcm []float32) string { return f.text }

func TestStage_EmptyTranscript(t *testing.T) {
	s := NewStage(fakeProvider{""}, nil, "", 0)
	r := s.Process(pipeline.Utterance{})
	assert.Equal(t, OutcomeEmpty, r.Outcome)
}

func TestStage_HallucinationDropped(t *testing.T) {
	s := NewStage(fakeProvider{"Thanks for watching!"}, []string{"thanks for watching!"}, "", 0)
	r := s.Process(pipeline.Utterance{})
	assert.Equal(t, OutcomeHallucination, r.Outcome)
}

func TestStage_NoWakeWordAccepts(t *testing.T) {
	s := NewStage(fakeProvider{"Hello."}, nil, "", 0)
	r := s.Process(pipeline.Utterance{})
	assert.Equal(t, OutcomeAccepted, r.Outcome)
	assert.Equal(t, "Hello.", r.Text)
}

func TestStage_WakeWordMissed(t *testing.T) {
	s := NewStage(fakeProvider{"What time is it"}, nil, "glados", 3)
	r := s.Process(pipeline.Utterance{})
	assert.Equal(t, OutcomeWakeWordMissed, r.Outcome)
}

func TestStage_WakeWordNearHit(t *testing.T) {
	s := NewStage(fakeProvider{"gladoss are you there"}, nil, "glados", 3)
	r := s.Process(pipeline.Utterance{})
	assert.Equal(t, OutcomeAccepted, r.Outcome)
}

func TestStage_WakeWordExactHit(t *testing.T) {
	s := NewStage(fakeProvider{"hey glados what's up"}, nil, "glados", 3)
	r := s.Process(pipeline.Utterance{})
	assert.Equal(t, OutcomeAccepted, r.Outcome)
}
