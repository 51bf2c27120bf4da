// Package tts synthesizes sentences into PCM, tracks how much of each clip
// actually played, and reconstructs what was spoken when barge-in cuts
// playback short.
package tts

// KokoroSampleRate is the fixed output rate of the Kokoro TTS model, needed
// up front to size the playback device before any Clip has been generated.
const KokoroSampleRate = 24000

// Clip is one synthesized utterance of speech.
type Clip struct {
	Text       string
	PCM        []float32
	SampleRate int
}

// Provider is the speech-synthesis collaborator contract (the sherpa Kokoro
// binding in production, an in-memory fake in tests).
type Provider interface {
	Generate(text string, speakerID int, speed float32) (samples []float32, sampleRate int)
}
