package pipeline

// VADProvider is the voice-activity-detection collaborator. It is stateful
// (it may carry an internal model buffer) but thread-confined to whichever
// goroutine drives the audio callback; the gate itself stays pure.
type VADProvider interface {
	// ProcessChunk returns a voicing probability in [0,1] for one Frame.
	ProcessChunk(frame Frame) float32
}

// VADGate turns a raw Frame into a VoicedFrame by thresholding the
// collaborator's probability. It must be non-blocking and complete within
// one frame's duration; any VAD implementation that can't is a
// configuration error, not something this type works around.
type VADGate struct {
	provider  VADProvider
	threshold float32
}

// NewVADGate builds a gate around the given provider and threshold.
func NewVADGate(provider VADProvider, threshold float32) *VADGate {
	return &VADGate{provider: provider, threshold: threshold}
}

// Process classifies one frame as voiced or not.
func (g *VADGate) Process(frame Frame) VoicedFrame {
	probability := g.provider.ProcessChunk(frame)
	return VoicedFrame{Frame: frame, Voiced: probability > g.threshold}
}
