package pipeline

// assemblerState is the UtteranceAssembler's two-state machine, named
// privately since only Assembler's own methods drive transitions.
type assemblerState int

const (
	preActivation assemblerState = iota
	recording
)

// Assembler implements the UtteranceAssembler from spec.md §4.3: it
// consumes VoicedFrames and emits complete Utterances, bounded by leading
// pre-roll and a trailing silence of at least PauseLimit ms.
type Assembler struct {
	state       assemblerState
	preRoll     *PreRollBuffer
	session     *Session
	gapLimit    int // gap_counter threshold: PauseLimitMs / VADSizeMs
	gapCounter  int
	current     []Frame
	emit        func(Utterance)
}

// NewAssembler builds an assembler. gapLimit is PauseLimitMs/VADSizeMs
// (trailing unvoiced frames required to close an utterance). emit is
// called with each completed Utterance; it must not block the caller for
// long, since it runs inline with frame processing.
func NewAssembler(preRoll *PreRollBuffer, session *Session, gapLimit int, emit func(Utterance)) *Assembler {
	if gapLimit < 1 {
		gapLimit = 1
	}
	return &Assembler{
		state:    preActivation,
		preRoll:  preRoll,
		session:  session,
		gapLimit: gapLimit,
		emit:     emit,
	}
}

// Accept feeds one VoicedFrame through the state machine.
func (a *Assembler) Accept(vf VoicedFrame) {
	switch a.state {
	case preActivation:
		a.acceptPreActivation(vf)
	case recording:
		a.acceptRecording(vf)
	}
}

func (a *Assembler) acceptPreActivation(vf VoicedFrame) {
	if !vf.Voiced {
		a.preRoll.Push(vf.Frame)
		return
	}

	// Voiced frame while not yet activated: this is the barge-in primitive.
	// Halt any assistant speech and revoke SpeakPermitted before anything
	// else, per spec.md §4.3's key design point.
	a.session.BargeIn()

	a.current = append(a.preRoll.Snapshot(), vf.Frame)
	a.gapCounter = 0
	a.state = recording
}

func (a *Assembler) acceptRecording(vf VoicedFrame) {
	a.current = append(a.current, vf.Frame)

	if vf.Voiced {
		a.gapCounter = 0
		return
	}

	a.gapCounter++
	if a.gapCounter >= a.gapLimit {
		utterance := Utterance{Frames: a.current}
		a.reset()
		if a.emit != nil {
			a.emit(utterance)
		}
	}
}

// reset clears assembler state and returns to PreActivation. Called each
// time an utterance closes, so PreRollBuffer and gap tracking start fresh
// for the next one.
func (a *Assembler) reset() {
	a.state = preActivation
	a.current = nil
	a.gapCounter = 0
	a.preRoll.Clear()
}

// Reset is the externally callable form of reset. The dialogue manager does
// not call it; it relies on the reset that happens when an utterance is
// emitted.
func (a *Assembler) Reset() {
	a.reset()
}
