package tts

import (
	"context"
	"log"
	"time"

	"github.com/kestrelvoice/kestrel/internal/dialogue"
	"github.com/kestrelvoice/kestrel/internal/llm"
	"github.com/kestrelvoice/kestrel/internal/pipeline"
)

// Playback is the narrow collaborator a Coordinator drives to produce
// sound: play a Clip to completion, or return early if interrupted.
// internal/audio.Player implements this via a thin adapter in cmd/kestrel.
type Playback interface {
	Play(clip Clip) error
}

// Coordinator is the TTS/playback goroutine from spec.md §4.7/§5: it
// consumes sentences (and the literal llm.EOS marker) from a channel,
// synthesizes and plays each one, tracks interruption, and flushes the
// accumulated assistant turn to the dialogue manager. Grounded on the
// teacher's ttsProcessor goroutine in cmd/assistant/main.go for shape, and
// glados.py.process_TTS_thread for the accumulate/flush semantics.
type Coordinator struct {
	synth     *Synthesizer
	playback  Playback
	tracker   PlaybackTracker
	session   *pipeline.Session
	manager   *dialogue.Manager
	sentences <-chan string
	verbose   bool

	// swallowNextEOS is set once a turn is finalized early by barge-in.
	// The LLM goroutine always sends exactly one EOS per turn, even when
	// its response loop broke early (see internal/llm.Streamer.runTurn),
	// so that trailing marker must be consumed without starting a second,
	// empty turn.
	swallowNextEOS bool
}

// NewCoordinator builds a Coordinator.
func NewCoordinator(synth *Synthesizer, playback Playback, session *pipeline.Session, manager *dialogue.Manager, sentences <-chan string, verbose bool) *Coordinator {
	return &Coordinator{
		synth:     synth,
		playback:  playback,
		session:   session,
		manager:   manager,
		sentences: sentences,
		verbose:   verbose,
	}
}

// Run drives the TTS goroutine until ctx is cancelled.
func (c *Coordinator) Run(ctx context.Context) {
	var assistantText []string

	for {
		select {
		case <-ctx.Done():
			return

		case text, ok := <-c.sentences:
			if !ok {
				return
			}
			assistantText = c.handle(text, assistantText)
		}
	}
}

func (c *Coordinator) handle(text string, assistantText []string) []string {
	if text == llm.EOS {
		if c.swallowNextEOS {
			c.swallowNextEOS = false
			return assistantText
		}
		c.finishTurn(&assistantText)
		return assistantText
	}

	if !c.session.SpeakPermitted.Load() {
		if c.verbose {
			log.Printf("[tts] dropping sentence, speech not permitted: %q", text)
		}
		return assistantText
	}

	clip, err := c.synth.Synthesize(text)
	if err != nil {
		log.Printf("[tts] warn: %v", err)
		return assistantText
	}

	c.session.SetMode(pipeline.Speaking)
	start := time.Now()
	playErr := c.playback.Play(clip)
	elapsed := time.Since(start)
	if playErr != nil {
		log.Printf("[tts] error: %v", playErr)
		return assistantText
	}

	if !c.session.SpeakPermitted.Load() {
		percentage := c.tracker.Played(elapsed, len(clip.PCM), clip.SampleRate)
		clipped := c.tracker.ClipInterrupted(text, percentage)
		log.Printf("[tts] turn %s: interrupted at %d%%: %s", c.session.TurnID(), percentage, clipped)
		assistantText = append(assistantText, clipped)
		dropped, sawEOS := c.drainPending()
		if c.verbose && dropped > 0 {
			log.Printf("[tts] drained %d queued sentence(s) after barge-in", dropped)
		}
		c.swallowNextEOS = !sawEOS
		c.finishTurn(&assistantText)
		return assistantText
	}

	return append(assistantText, text)
}

// drainPending discards anything already buffered on the sentence channel
// without blocking — the channel-drain redesign from spec.md §9, since the
// LLM goroutine that fed this channel has already stopped and will not send
// more content, though it may still have one EOS in flight or already
// queued. sawEOS reports whether that EOS was already sitting in the
// buffer, so the caller doesn't also arm swallowNextEOS for a marker that
// was just consumed here.
func (c *Coordinator) drainPending() (dropped int, sawEOS bool) {
	for {
		select {
		case text, ok := <-c.sentences:
			if !ok {
				return dropped, sawEOS
			}
			if text == llm.EOS {
				sawEOS = true
			} else {
				dropped++
			}
		default:
			return dropped, sawEOS
		}
	}
}

func (c *Coordinator) finishTurn(assistantText *[]string) {
	c.manager.RecordAssistantTurn(*assistantText)
	*assistantText = nil
}
