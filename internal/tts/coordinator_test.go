package tts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelvoice/kestrel/internal/dialogue"
	"github.com/kestrelvoice/kestrel/internal/llm"
	"github.com/kestrelvoice/kestrel/internal/pipeline"
)

// fakePlayback simulates playback completing instantly unless told to
// report an interruption by clearing SpeakPermitted itself mid-call.
type fakePlayback struct {
	onPlay func(clip Clip)
	err    error
}

func (f *fakePlayback) Play(clip Clip) error {
	if f.onPlay != nil {
		f.onPlay(clip)
	}
	return f.err
}

func newTestCoordinator(playback Playback, sentences <-chan string) (*Coordinator, *pipeline.Session, *dialogue.Transcript) {
	// A 10-second clip at 24kHz: the ~120ms playback-latency fudge alone
	// only accounts for ~1% of it, leaving wide headroom against test
	// scheduling jitter while still guaranteeing a real truncation in the
	// barge-in test below.
	synth := NewSynthesizer(fakeProvider{samples: make([]float32, 240000), sampleRate: 24000}, 0, 1.0, false)
	session := pipeline.NewSession(nil, nil)
	transcript := dialogue.NewTranscript(nil)
	manager := dialogue.NewManager(transcript, session, make(chan string, 1), false)
	return NewCoordinator(synth, playback, session, manager, sentences, false), session, transcript
}

func TestCoordinator_AccumulatesSentencesAndRecordsTurnOnEOS(t *testing.T) {
	sentences := make(chan string, 4)
	playback := &fakePlayback{}
	c, session, transcript := newTestCoordinator(playback, sentences)
	session.SpeakPermitted.Store(true)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	sentences <- "Hello. "
	sentences <- "How are you? "
	sentences <- llm.EOS
	close(sentences)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("coordinator did not exit after channel closed")
	}

	turns := transcript.Snapshot()
	require.Len(t, turns, 1)
	assert.Equal(t, dialogue.RoleAssistant, turns[0].Role)
	assert.Equal(t, "Hello.  How are you? ", turns[0].Content)
}

func TestCoordinator_BargeInFinalizesTurnAndSwallowsTrailingEOS(t *testing.T) {
	sentences := make(chan string, 4)
	var session *pipeline.Session
	playback := &fakePlayback{onPlay: func(clip Clip) {
		session.SpeakPermitted.Store(false) // barge-in lands mid-playback
	}}
	c, s, transcript := newTestCoordinator(playback, sentences)
	session = s
	session.SpeakPermitted.Store(true)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	sentences <- "Hello there. "
	// Interrupted turn finalizes immediately inside handle(); the LLM
	// goroutine still sends its one unconditional EOS afterward.
	sentences <- llm.EOS
	close(sentences)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("coordinator did not exit after channel closed")
	}

	turns := transcript.Snapshot()
	require.Len(t, turns, 1)
	assert.Contains(t, turns[0].Content, "<INTERRUPTED>")
}

func TestCoordinator_PlaybackErrorDoesNotPanicOrRecordTurn(t *testing.T) {
	sentences := make(chan string, 2)
	playback := &fakePlayback{err: errors.New("device gone")}
	c, session, transcript := newTestCoordinator(playback, sentences)
	session.SpeakPermitted.Store(true)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	sentences <- "Hello. "
	close(sentences)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("coordinator did not exit after channel closed")
	}

	assert.Empty(t, transcript.Snapshot())
}
