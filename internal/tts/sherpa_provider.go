package tts

import (
	"fmt"

	"github.com/kestrelvoice/kestrel/internal/sherpa"
)

// SherpaProvider adapts the kept internal/sherpa Kokoro binding to the
// Provider interface, the same engine the teacher drove directly.
type SherpaProvider struct {
	tts *sherpa.OfflineTts
}

// NewSherpaProvider wraps an already-configured offline TTS engine.
func NewSherpaProvider(tts *sherpa.OfflineTts) *SherpaProvider {
	return &SherpaProvider{tts: tts}
}

// SherpaTTSConfig mirrors the teacher's internal/tts.Config field-for-field;
// kept as a struct here too since Kokoro's model config has this many knobs.
type SherpaTTSConfig struct {
	Model      string
	Voices     string
	Tokens     string
	DataDir    string
	Lexicon    string
	Language   string
	Provider   string
	TTSThreads int
	Debug      bool
}

// BuildSherpaProvider constructs the sherpa Kokoro model and wraps it,
// grounded on the teacher's internal/tts.NewSynthesizer. Unlike the teacher
// (which hardcoded NumThreads to 2), this honors cfg.TTSThreads.
func BuildSherpaProvider(cfg SherpaTTSConfig) (*SherpaProvider, error) {
	ttsConfig := &sherpa.OfflineTtsConfig{}
	ttsConfig.Model.Kokoro.Model = cfg.Model
	ttsConfig.Model.Kokoro.Voices = cfg.Voices
	ttsConfig.Model.Kokoro.Tokens = cfg.Tokens
	ttsConfig.Model.Kokoro.DataDir = cfg.DataDir
	ttsConfig.Model.Kokoro.Lexicon = cfg.Lexicon
	ttsConfig.Model.Kokoro.Lang = cfg.Language
	ttsConfig.Model.NumThreads = cfg.TTSThreads
	ttsConfig.Model.Provider = cfg.Provider
	ttsConfig.MaxNumSentences = 1 // Kokoro only supports 1
	if cfg.Debug {
		ttsConfig.Model.Debug = 1
	}

	tts := sherpa.NewOfflineTts(ttsConfig)
	if tts == nil {
		return nil, fmt.Errorf("failed to create kokoro tts")
	}
	return NewSherpaProvider(tts), nil
}

// Generate synthesizes text and returns PCM samples plus the engine's
// sample rate (24kHz for Kokoro).
func (p *SherpaProvider) Generate(text string, speakerID int, speed float32) ([]float32, int) {
	audio := p.tts.Generate(text, speakerID, speed)
	if audio == nil {
		return nil, 0
	}
	return audio.Samples, int(audio.SampleRate)
}

// Close releases the underlying engine.
func (p *SherpaProvider) Close() {
	if p.tts != nil {
		sherpa.DeleteOfflineTts(p.tts)
		p.tts = nil
	}
}
