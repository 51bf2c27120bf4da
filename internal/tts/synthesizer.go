package tts

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/kestrelvoice/kestrel/internal/pipeline"
)

// Synthesizer turns one sentence of text into a Clip. Kept from the
// teacher's internal/tts/synthesizer.go, trimmed of SynthesizeStreaming and
// SplitSentences — sentence splitting now happens upstream in internal/llm,
// one terminator-delimited sentence at a time, so there is never a
// multi-sentence string to split here.
type Synthesizer struct {
	provider  Provider
	speakerID int
	speed     float32
	verbose   bool
	mu        sync.Mutex // guards the sherpa collaborator, which is not concurrency-safe
}

// NewSynthesizer builds a Synthesizer around a collaborator Provider.
func NewSynthesizer(provider Provider, speakerID int, speed float32, verbose bool) *Synthesizer {
	return &Synthesizer{provider: provider, speakerID: speakerID, speed: speed, verbose: verbose}
}

// Synthesize converts one sentence of text to a Clip.
func (s *Synthesizer) Synthesize(text string) (Clip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		return Clip{}, fmt.Errorf("%w: empty input text", pipeline.ErrEmptyTTSOutput)
	}

	if s.verbose {
		log.Printf("[tts] synthesizing: %q", text)
	}

	samples, sampleRate := s.provider.Generate(text, s.speakerID, s.speed)
	if len(samples) == 0 {
		return Clip{}, pipeline.ErrEmptyTTSOutput
	}

	return Clip{Text: text, PCM: samples, SampleRate: sampleRate}, nil
}
