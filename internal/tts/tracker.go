package tts

import (
	"math"
	"strings"
	"time"
)

// PlaybackLatencyFudge is added to the measured elapsed playback time before
// converting to samples played. Grounded on original_source/glados.py's
// percentage_played, which adds a literal 0.12 second "slight delay to
// ensure all audio timing is correct" — named here instead of inlined per
// spec.md §9's resolved Open Question.
const PlaybackLatencyFudge = 120 * time.Millisecond

// PlaybackTracker reconstructs how much of a Clip was actually heard when
// playback is cut short by barge-in.
type PlaybackTracker struct{}

// Played computes the played percentage (0-100, capped) of a clip with
// totalSamples samples at sampleRate, given that playback ran for elapsed
// before being interrupted. Mirrors glados.py.percentage_played exactly,
// generalized from its fixed tts.RATE to an explicit sampleRate.
func (PlaybackTracker) Played(elapsed time.Duration, totalSamples, sampleRate int) int {
	if totalSamples <= 0 || sampleRate <= 0 {
		return 0
	}
	playedSamples := (elapsed + PlaybackLatencyFudge).Seconds() * float64(sampleRate)
	percentage := int(playedSamples / float64(totalSamples) * 100)
	if percentage > 100 {
		return 100
	}
	if percentage < 0 {
		return 0
	}
	return percentage
}

// ClipInterrupted reconstructs the spoken-so-far prefix of text given the
// percentage of its audio that played, appending "<INTERRUPTED>" when the
// clip was cut short. Mirrors glados.py.clip_interrupted_sentence exactly.
func (PlaybackTracker) ClipInterrupted(text string, percentagePlayed int) string {
	tokens := strings.Fields(text)
	wordsToPrint := int(math.Round(float64(percentagePlayed) / 100 * float64(len(tokens))))
	if wordsToPrint > len(tokens) {
		wordsToPrint = len(tokens)
	}

	clipped := strings.Join(tokens[:wordsToPrint], " ")
	if wordsToPrint < len(tokens) {
		clipped += "<INTERRUPTED>"
	}
	return clipped
}
