package dialogue

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelvoice/kestrel/internal/asr"
	"github.com/kestrelvoice/kestrel/internal/pipeline"
)

type fakeProvider struct {
	text string
}

func (f fakeProvider) Transcribe(pcm []float32) string { return f.text }

type fakeCapturer struct {
	stops, starts atomic.Int32
}

func (c *fakeCapturer) Stop()        { c.stops.Add(1) }
func (c *fakeCapturer) Start() error { c.starts.Add(1); return nil }

func TestManager_AcceptedTurnQueuesToLLMAndAppendsUser(t *testing.T) {
	transcript := NewTranscript(nil)
	session := pipeline.NewSession(nil, nil)
	userText := make(chan string, 1)
	m := NewManager(transcript, session, userText, false)

	m.HandleASRResult(asr.Result{Outcome: asr.OutcomeAccepted, Text: "Hello."})

	require.Len(t, transcript.Snapshot(), 1)
	assert.Equal(t, Turn{Role: RoleUser, Content: "Hello."}, transcript.Snapshot()[0])
	assert.True(t, session.SpeakPermitted.Load())
	assert.Equal(t, pipeline.Thinking, session.Mode())

	select {
	case text := <-userText:
		assert.Equal(t, "Hello.", text)
	default:
		t.Fatal("expected text enqueued to LLM")
	}
}

func TestManager_EmptyHallucinationWakeWordMissedDoNotMutateTranscript(t *testing.T) {
	for _, outcome := range []asr.Outcome{asr.OutcomeEmpty, asr.OutcomeHallucination, asr.OutcomeWakeWordMissed} {
		transcript := NewTranscript(nil)
		session := pipeline.NewSession(nil, nil)
		userText := make(chan string, 1)
		m := NewManager(transcript, session, userText, false)

		m.HandleASRResult(asr.Result{Outcome: outcome, Text: "whatever"})

		assert.Empty(t, transcript.Snapshot())
		select {
		case <-userText:
			t.Fatal("must not enqueue to LLM")
		default:
		}
	}
}

func TestManager_RecordAssistantTurnJoinsSentences(t *testing.T) {
	transcript := NewTranscript(nil)
	session := pipeline.NewSession(nil, nil)
	m := NewManager(transcript, session, make(chan string, 1), false)

	m.RecordAssistantTurn([]string{"Hello. ", "How are you? "})

	turns := transcript.Snapshot()
	require.Len(t, turns, 1)
	assert.Equal(t, RoleAssistant, turns[0].Role)
	assert.Equal(t, "Hello.  How are you? ", turns[0].Content)
	assert.Equal(t, pipeline.Listening, session.Mode())
}

func TestManager_TurnsAlternateAfterSeededMessages(t *testing.T) {
	seed := []Turn{{Role: RoleSystem, Content: "you are a voice assistant"}}
	transcript := NewTranscript(seed)
	session := pipeline.NewSession(nil, nil)
	userText := make(chan string, 2)
	m := NewManager(transcript, session, userText, false)

	m.HandleASRResult(asr.Result{Outcome: asr.OutcomeAccepted, Text: "hi"})
	m.RecordAssistantTurn([]string{"hello there"})
	m.HandleASRResult(asr.Result{Outcome: asr.OutcomeAccepted, Text: "bye"})
	m.RecordAssistantTurn([]string{"goodbye"})

	turns := transcript.Snapshot()
	require.Len(t, turns, 5)
	assert.Equal(t, RoleSystem, turns[0].Role)
	assert.Equal(t, RoleUser, turns[1].Role)
	assert.Equal(t, RoleAssistant, turns[2].Role)
	assert.Equal(t, RoleUser, turns[3].Role)
	assert.Equal(t, RoleAssistant, turns[4].Role)
}

func TestManager_RunPausesCaptureAroundASRAndAppendsUserTurn(t *testing.T) {
	transcript := NewTranscript(nil)
	session := pipeline.NewSession(nil, nil)
	userText := make(chan string, 1)
	m := NewManager(transcript, session, userText, false)
	stage := asr.NewStage(fakeProvider{text: "hello there"}, nil, "", 0)
	capturer := &fakeCapturer{}

	utterances := make(chan pipeline.Utterance, 1)
	utterances <- pipeline.Utterance{Frames: []pipeline.Frame{make(pipeline.Frame, 10)}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, utterances, stage, capturer)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(transcript.Snapshot()) == 1
	}, time.Second, time.Millisecond)

	assert.Equal(t, Turn{Role: RoleUser, Content: "hello there"}, transcript.Snapshot()[0])
	assert.Equal(t, int32(1), capturer.stops.Load())
	assert.Equal(t, int32(1), capturer.starts.Load())

	cancel()
	<-done
}
