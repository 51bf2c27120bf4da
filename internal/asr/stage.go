// Package asr adapts the external speech-recognition collaborator into the
// pipeline: concatenating an utterance's frames, running transcription, and
// filtering the result for hallucinations and (optionally) a wake word.
package asr

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/kestrelvoice/kestrel/internal/pipeline"
)

// Provider is the ASR collaborator contract: blocking transcription that
// may legitimately return an empty string.
type Provider interface {
	Transcribe(pcm []float32) string
}

// Outcome classifies what Stage.Process decided, so the dialogue manager can
// log and branch without re-deriving the reason.
type Outcome int

const (
	// OutcomeAccepted: text should be forwarded to the LLM.
	OutcomeAccepted Outcome = iota
	// OutcomeEmpty: ASR returned nothing (ASREmpty in spec.md §7).
	OutcomeEmpty
	// OutcomeHallucination: transcript matched a configured hallucination.
	OutcomeHallucination
	// OutcomeWakeWordMissed: a wake word is configured and wasn't found.
	OutcomeWakeWordMissed
)

// Result is the outcome of processing one utterance.
type Result struct {
	Outcome Outcome
	Text    string
}

// Stage is the ASRStage component from spec.md §4.4.
type Stage struct {
	provider            Provider
	hallucinations      map[string]struct{}
	wakeWord            string
	similarityThreshold int
}

// NewStage builds a Stage. wakeWord == "" disables wake-word gating
// entirely, matching spec.md's optional-gating behavior.
func NewStage(provider Provider, hallucinations []string, wakeWord string, similarityThreshold int) *Stage {
	set := make(map[string]struct{}, len(hallucinations))
	for _, h := range hallucinations {
		set[strings.ToLower(h)] = struct{}{}
	}
	return &Stage{
		provider:            provider,
		hallucinations:      set,
		wakeWord:            strings.ToLower(wakeWord),
		similarityThreshold: similarityThreshold,
	}
}

// Process transcribes an utterance and applies the hallucination and
// wake-word filters described in spec.md §4.4.
func (s *Stage) Process(u pipeline.Utterance) Result {
	text := s.provider.Transcribe(u.Samples())
	if text == "" {
		return Result{Outcome: OutcomeEmpty}
	}

	if _, isHallucination := s.hallucinations[strings.ToLower(text)]; isHallucination {
		return Result{Outcome: OutcomeHallucination, Text: text}
	}

	if s.wakeWord != "" && !s.wakeWordDetected(text) {
		return Result{Outcome: OutcomeWakeWordMissed, Text: text}
	}

	return Result{Outcome: OutcomeAccepted, Text: text}
}

// wakeWordDetected reports whether any whitespace-separated token in text is
// at a Levenshtein distance from the wake word strictly below
// SimilarityThreshold. Whisper
// routinely mishears uncommon wake words, so exact/substring matching isn't
// enough — see original_source/glados.py's _wakeword_detected.
func (s *Stage) wakeWordDetected(text string) bool {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return false
	}
	closest := -1
	for _, tok := range tokens {
		d := levenshtein.ComputeDistance(strings.ToLower(tok), s.wakeWord)
		if closest == -1 || d < closest {
			closest = d
		}
	}
	return closest < s.similarityThreshold
}
