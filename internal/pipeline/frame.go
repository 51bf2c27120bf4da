// Package pipeline implements the capture -> VAD -> utterance orchestration
// that sits upstream of speech recognition: the frame/utterance data model,
// the pre-roll ring buffer, the VAD gate, the utterance assembler state
// machine, and the shared barge-in session.
package pipeline

// Frame is one fixed-duration block of mono PCM samples at the configured
// sample rate. Size is invariant across the pipeline before an utterance is
// assembled from many frames.
type Frame []float32

// VoicedFrame pairs a Frame with the VAD gate's verdict on it.
type VoicedFrame struct {
	Frame  Frame
	Voiced bool
}

// Utterance is an ordered, contiguous sequence of Frames comprising one user
// turn: leading pre-roll plus everything captured until trailing silence.
type Utterance struct {
	Frames []Frame
}

// Samples concatenates every frame into a single PCM buffer for the ASR
// collaborator, which only accepts one contiguous waveform.
func (u Utterance) Samples() []float32 {
	total := 0
	for _, f := range u.Frames {
		total += len(f)
	}
	out := make([]float32, 0, total)
	for _, f := range u.Frames {
		out = append(out, f...)
	}
	return out
}
