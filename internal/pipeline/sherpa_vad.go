package pipeline

import (
	"fmt"

	"github.com/kestrelvoice/kestrel/internal/sherpa"
)

// VAD tuning constants carried from the teacher's internal/stt.Recognizer,
// which is superseded by this adapter plus Assembler's own state machine.
const (
	vadMinSpeechDuration = 0.1  // seconds; short enough for "yes"/"no"
	vadMaxSpeechDuration = 30.0 // seconds; forces segmentation of long speech
	vadWindowSize        = 512  // samples; 32ms at 16kHz
	vadBufferSize        = 60.0 // seconds of internal sherpa buffering
)

// SherpaVAD adapts the kept internal/sherpa Silero-VAD binding to the
// VADProvider interface. The binding only exposes a boolean IsSpeech()
// verdict per accepted chunk (see internal/sherpa.VoiceActivityDetector),
// not a continuous probability, so ProcessChunk collapses that verdict to
// 1.0/0.0 and leaves VADGate's threshold comparison a formality. This
// keeps the probability-based interface general enough for a future VAD
// engine that does expose one, without forcing a bool-only interface today.
type SherpaVAD struct {
	vad *sherpa.VoiceActivityDetector
}

// NewSherpaVAD wraps an already-configured Silero-VAD detector.
func NewSherpaVAD(vad *sherpa.VoiceActivityDetector) *SherpaVAD {
	return &SherpaVAD{vad: vad}
}

// BuildSherpaVAD constructs the sherpa Silero-VAD model and wraps it,
// grounded on the teacher's internal/stt.NewRecognizer VAD setup block.
func BuildSherpaVAD(modelPath string, threshold, silenceDurationSec float32, sampleRate, numThreads int, debug bool) (*SherpaVAD, error) {
	cfg := &sherpa.VadModelConfig{}
	cfg.SileroVad.Model = modelPath
	cfg.SileroVad.Threshold = threshold
	cfg.SileroVad.MinSilenceDuration = silenceDurationSec
	cfg.SileroVad.MinSpeechDuration = vadMinSpeechDuration
	cfg.SileroVad.MaxSpeechDuration = vadMaxSpeechDuration
	cfg.SileroVad.WindowSize = vadWindowSize
	cfg.SampleRate = sampleRate
	cfg.NumThreads = numThreads
	if debug {
		cfg.Debug = 1
	}

	vad := sherpa.NewVoiceActivityDetector(cfg, vadBufferSize)
	if vad == nil {
		return nil, fmt.Errorf("failed to create silero vad")
	}
	return NewSherpaVAD(vad), nil
}

// ProcessChunk feeds one frame to the detector and reports its verdict.
func (s *SherpaVAD) ProcessChunk(frame Frame) float32 {
	s.vad.AcceptWaveform(frame)
	if s.vad.IsSpeech() {
		return 1
	}
	return 0
}

// Close releases the underlying detector.
func (s *SherpaVAD) Close() {
	if s.vad != nil {
		sherpa.DeleteVoiceActivityDetector(s.vad)
		s.vad = nil
	}
}
