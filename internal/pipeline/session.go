package pipeline

import "sync/atomic"

// Mode is the process-wide pipeline state.
type Mode int

const (
	// Listening: capture active, utterances being assembled.
	Listening Mode = iota
	// Thinking: LLM request in flight; capture continues for barge-in.
	Thinking
	// Speaking: TTS playback active; capture continues for barge-in.
	Speaking
)

func (m Mode) String() string {
	switch m {
	case Listening:
		return "listening"
	case Thinking:
		return "thinking"
	case Speaking:
		return "speaking"
	default:
		return "unknown"
	}
}

// Interrupter stops whatever is currently being played, giving BargeIn a
// single place to cancel the assistant. internal/audio.Player implements
// this.
type Interrupter interface {
	Interrupt()
}

// Session carries the single cancellation token (SpeakPermitted) shared by
// the LLM and TTS goroutines, plus the current Mode. It is the "should I
// keep speaking?" signal spec.md §2 calls the hard part of this pipeline.
type Session struct {
	SpeakPermitted atomic.Bool
	mode           atomic.Int32
	player         Interrupter
	onListening    func()
	turnID         atomic.Value // string, correlates one turn's logs across goroutines
}

// NewSession builds a session. player is interrupted by BargeIn.
// onListening is called by EnterListening each time the pipeline returns to
// Listening; cmd/kestrel uses it to clear the PreRollBuffer. The Assembler
// resets its own utterance state whenever it emits an Utterance.
func NewSession(player Interrupter, onListening func()) *Session {
	s := &Session{player: player, onListening: onListening}
	s.mode.Store(int32(Listening))
	return s
}

// Mode returns the current pipeline mode.
func (s *Session) Mode() Mode {
	return Mode(s.mode.Load())
}

// SetMode transitions to a new mode.
func (s *Session) SetMode(m Mode) {
	s.mode.Store(int32(m))
}

// SetTurnID records the correlation ID for the turn now starting, read back
// by the LLM and TTS goroutines so their log lines can be tied to the same
// turn without threading an explicit parameter through every call.
func (s *Session) SetTurnID(id string) {
	s.turnID.Store(id)
}

// TurnID returns the current turn's correlation ID, or "" before any turn
// has started.
func (s *Session) TurnID() string {
	id, _ := s.turnID.Load().(string)
	return id
}

// BargeIn is the barge-in primitive: it halts assistant speech and revokes
// SpeakPermitted the instant voiced audio is observed while in
// PreActivation. All downstream cancellation in the LLM and TTS goroutines
// cascades from this one call.
func (s *Session) BargeIn() {
	s.SpeakPermitted.Store(false)
	if s.player != nil {
		s.player.Interrupt()
	}
}

// EnterListening sets the mode to Listening and calls the onListening hook.
// Manager.RecordAssistantTurn calls it once an assistant turn is recorded.
// It leaves SpeakPermitted unchanged.
func (s *Session) EnterListening() {
	s.mode.Store(int32(Listening))
	if s.onListening != nil {
		s.onListening()
	}
}
