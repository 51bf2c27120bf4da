package llm

import (
	"context"
	"log"

	"github.com/kestrelvoice/kestrel/internal/dialogue"
	"github.com/kestrelvoice/kestrel/internal/pipeline"
)

// EOS is the end-of-stream marker the TTS coordinator watches for on the
// sentence channel, matching the literal "<EOS>" token glados.py puts on
// tts_queue once process_LLM's response loop finishes.
const EOS = "<EOS>"

// Streamer is the LLMStreamer component from spec.md §4.6: one goroutine
// that takes user text off a channel, renders it through the transcript,
// streams a completion, and flushes clean sentences to the TTS coordinator.
type Streamer struct {
	Backend        Backend
	Session        *pipeline.Session
	Transcript     *dialogue.Transcript
	Template       string
	Stopwords      []string
	IgnoreOutputs  []string
	UserText       <-chan string
	Sentences      chan<- string
	Verbose        bool
}

// NewStreamer builds a Streamer. sentences should be buffered enough that
// the TTS coordinator never blocks the LLM goroutine under normal load; a
// small buffer (e.g. 16) is plenty since sentences are short.
func NewStreamer(backend Backend, session *pipeline.Session, transcript *dialogue.Transcript, template string, stopwords, ignoreOutputs []string, userText <-chan string, sentences chan<- string, verbose bool) *Streamer {
	return &Streamer{
		Backend:       backend,
		Session:       session,
		Transcript:    transcript,
		Template:      template,
		Stopwords:     stopwords,
		IgnoreOutputs: ignoreOutputs,
		UserText:      userText,
		Sentences:     sentences,
		Verbose:       verbose,
	}
}

// Run drives the LLM goroutine until ctx is cancelled, implementing the
// per-turn algorithm from spec.md §4.6.
func (s *Streamer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case text, ok := <-s.UserText:
			if !ok {
				return
			}
			s.runTurn(ctx, text)
		}
	}
}

func (s *Streamer) runTurn(ctx context.Context, _ string) {
	prompt, err := RenderPrompt(s.Template, s.Transcript.Snapshot())
	if err != nil {
		log.Printf("[llm] error: rendering prompt: %v", err)
		return
	}

	turnID := s.Session.TurnID()
	if s.Verbose {
		log.Printf("[llm] turn %s: starting request", turnID)
	}

	// The stream gets its own context, cancelled when this turn returns, so
	// a loop that stops reading early (barge-in) also ends the request.
	streamCtx, cancelStream := context.WithCancel(ctx)
	defer cancelStream()

	events, err := s.Backend.Stream(streamCtx, prompt)
	if err != nil {
		log.Printf("[llm] turn %s: error: %v", turnID, err)
		return
	}

	var sentence []string
	for event := range events {
		if !s.Session.SpeakPermitted.Load() {
			// Barge-in fired mid-generation; halt processing exactly like
			// glados.py's `if self.processing is False: break` — the EOS
			// marker below is still sent unconditionally, same as there.
			break
		}
		if event.Stop {
			break
		}
		if event.Content == "" {
			continue
		}

		sentence = append(sentence, event.Content)
		if IsSentenceTerminator(event.Content) {
			s.flush(ctx, sentence)
			sentence = nil
		}
	}

	if s.Session.SpeakPermitted.Load() && len(sentence) > 0 {
		s.flush(ctx, sentence)
	}

	select {
	case s.Sentences <- EOS:
	case <-ctx.Done():
	}
}

func (s *Streamer) flush(ctx context.Context, tokens []string) {
	clean := CleanSentence(tokens, s.Stopwords)
	if clean == "" {
		return
	}
	if IsIgnoredOutput(clean, s.IgnoreOutputs) {
		log.Printf("[llm] warn: ignoring weird AI output: %q", clean)
		return
	}
	select {
	case s.Sentences <- clean:
	case <-ctx.Done():
	}
}
