package asr

import (
	"fmt"
	"strings"

	"github.com/kestrelvoice/kestrel/internal/sherpa"
)

// SherpaProvider adapts the kept internal/sherpa Whisper binding to the
// Provider interface, the same engine the teacher drove directly from its
// combined VAD+STT Recognizer.
type SherpaProvider struct {
	recognizer *sherpa.OfflineRecognizer
	sampleRate int
}

// NewSherpaProvider wraps an already-configured offline recognizer.
func NewSherpaProvider(recognizer *sherpa.OfflineRecognizer, sampleRate int) *SherpaProvider {
	return &SherpaProvider{recognizer: recognizer, sampleRate: sampleRate}
}

// BuildSherpaProvider constructs the sherpa Whisper model and wraps it,
// grounded on the teacher's internal/stt.NewRecognizer Whisper setup block.
// language == "auto" is translated to "" (Whisper's own auto-detect), as the
// teacher did.
func BuildSherpaProvider(encoder, decoder, tokens, language, provider string, sampleRate, numThreads int, debug bool) (*SherpaProvider, error) {
	cfg := &sherpa.OfflineRecognizerConfig{}
	cfg.ModelConfig.Whisper.Encoder = encoder
	cfg.ModelConfig.Whisper.Decoder = decoder
	if strings.EqualFold(language, "auto") {
		language = ""
	}
	cfg.ModelConfig.Whisper.Language = language
	cfg.ModelConfig.Whisper.Task = "transcribe"
	cfg.ModelConfig.Whisper.TailPaddings = -1
	cfg.ModelConfig.Tokens = tokens
	cfg.ModelConfig.NumThreads = numThreads
	cfg.ModelConfig.Provider = provider
	cfg.DecodingMethod = "greedy_search"
	if debug {
		cfg.ModelConfig.Debug = 1
	}

	recognizer := sherpa.NewOfflineRecognizer(cfg)
	if recognizer == nil {
		return nil, fmt.Errorf("failed to create whisper recognizer")
	}
	return NewSherpaProvider(recognizer, sampleRate), nil
}

// Transcribe decodes one utterance's concatenated PCM buffer.
func (p *SherpaProvider) Transcribe(pcm []float32) string {
	if len(pcm) == 0 {
		return ""
	}

	stream := sherpa.NewOfflineStream(p.recognizer)
	if stream == nil {
		return ""
	}
	defer sherpa.DeleteOfflineStream(stream)

	stream.AcceptWaveform(p.sampleRate, pcm)
	p.recognizer.Decode(stream)

	result := stream.GetResult()
	return strings.TrimSpace(result.Text)
}

// Close releases the underlying recognizer.
func (p *SherpaProvider) Close() {
	if p.recognizer != nil {
		sherpa.DeleteOfflineRecognizer(p.recognizer)
		p.recognizer = nil
	}
}
