package pipeline

import "errors"

// Sentinel errors forming the closed error taxonomy from spec.md §7. Only
// ErrAudioDeviceUnavailable is fatal; every other error is logged and the
// pipeline continues, missing at most one turn.
var (
	ErrAudioDeviceUnavailable = errors.New("audio device unavailable")
	ErrLLMUnreachable         = errors.New("llm server unreachable")
	ErrLLMHTTPNotOK           = errors.New("llm server returned non-OK status")
	ErrPlaybackFailed         = errors.New("playback failed")
	ErrEmptyTTSOutput         = errors.New("tts produced no audio")
)
