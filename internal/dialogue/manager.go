package dialogue

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/kestrelvoice/kestrel/internal/asr"
	"github.com/kestrelvoice/kestrel/internal/pipeline"
)

// Capturer pauses and restarts microphone capture around ASR transcription,
// so decode latency never accrues onto the next utterance (spec.md §4.1:
// "DialogueManager stops capture before handing an Utterance to ASR and
// restarts it after reset"). internal/audio.Capturer implements this.
type Capturer interface {
	Stop()
	Start() error
}

// Manager is the DialogueManager from spec.md §4.5: it owns the Transcript
// and coordinates turn boundaries between ASR, the LLM streamer, and TTS.
type Manager struct {
	Transcript *Transcript
	session    *pipeline.Session
	userText   chan<- string
	verbose    bool
}

// NewManager wires a Manager. userText is the queue feeding the LLM
// goroutine. It is a bounded channel (cmd/kestrel buffers 5 entries), and
// startTurn blocks while it is full.
func NewManager(transcript *Transcript, session *pipeline.Session, userText chan<- string, verbose bool) *Manager {
	return &Manager{Transcript: transcript, session: session, userText: userText, verbose: verbose}
}

// Run is the assembler/ASR/dialogue goroutine from spec.md §5: it drains
// completed Utterances, pausing capture around each transcription so ASR
// latency never accrues onto the next one, then hands the result to
// HandleASRResult. The UtteranceAssembler feeding utterances resets its own
// state (PreRollBuffer, gap counter) as part of emitting, so no separate
// reset call is needed here.
func (m *Manager) Run(ctx context.Context, utterances <-chan pipeline.Utterance, stage *asr.Stage, capturer Capturer) {
	for {
		select {
		case <-ctx.Done():
			return
		case u, ok := <-utterances:
			if !ok {
				return
			}
			capturer.Stop()
			if m.verbose {
				log.Printf("[dialogue] capture paused for ASR (%d frames)", len(u.Frames))
			}
			result := stage.Process(u)
			m.HandleASRResult(result)
			if err := capturer.Start(); err != nil {
				log.Printf("[dialogue] error: restarting capture: %v", err)
			}
		}
	}
}

// HandleASRResult reacts to one ASRStage.Result, implementing the branch
// table from spec.md §7 (ASREmpty / ASRHallucination / WakeWordMissed start
// no turn, the first silently and the other two with an info log; an
// accepted transcript starts a turn).
func (m *Manager) HandleASRResult(r asr.Result) {
	switch r.Outcome {
	case asr.OutcomeEmpty:
		// silent, per spec.md §7
	case asr.OutcomeHallucination:
		log.Printf("[dialogue] info: dropped probable hallucination %q", r.Text)
	case asr.OutcomeWakeWordMissed:
		log.Printf("[dialogue] info: wake word not found in %q, ignoring", r.Text)
	case asr.OutcomeAccepted:
		m.startTurn(r.Text)
	}
}

func (m *Manager) startTurn(text string) {
	turnID := uuid.NewString()
	m.session.SetTurnID(turnID)
	m.Transcript.Append(Turn{Role: RoleUser, Content: text})
	m.session.SpeakPermitted.Store(true)
	m.session.SetMode(pipeline.Thinking)
	log.Printf("[dialogue] turn %s: user: %q", turnID, text)
	m.userText <- text
}

// RecordAssistantTurn appends the assistant's turn once the TTS coordinator
// reaches <EOS>, or as soon as barge-in cuts playback short. It records what
// was spoken: each fully played sentence plus the clipped remainder of an
// interrupted one (ending in "<INTERRUPTED>"); sentences still queued at
// barge-in are not included.
// sentences is always a flat list, joined with single spaces; the source's
// list/string ambiguity (spec.md §9) doesn't exist here.
func (m *Manager) RecordAssistantTurn(sentences []string) {
	joined := strings.Join(sentences, " ")
	m.Transcript.Append(Turn{Role: RoleAssistant, Content: joined})
	m.session.EnterListening()
}
