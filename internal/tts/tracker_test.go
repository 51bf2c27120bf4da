package tts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlaybackTracker_PlayedCapsAt100Percent(t *testing.T) {
	var tr PlaybackTracker
	// Full clip duration at 24kHz plus the fudge comfortably exceeds total.
	got := tr.Played(2*time.Second, 24000, 24000)
	assert.Equal(t, 100, got)
}

func TestPlaybackTracker_PlayedRoundTripAtFullDuration(t *testing.T) {
	var tr PlaybackTracker
	sampleRate := 24000
	totalSamples := 48000 // 2 seconds
	elapsed := 2*time.Second - PlaybackLatencyFudge
	got := tr.Played(elapsed, totalSamples, sampleRate)
	assert.Equal(t, 100, got)
}

func TestPlaybackTracker_PlayedHalfway(t *testing.T) {
	var tr PlaybackTracker
	sampleRate := 24000
	totalSamples := 48000 // 2 seconds total
	elapsed := 1*time.Second - PlaybackLatencyFudge
	got := tr.Played(elapsed, totalSamples, sampleRate)
	assert.Equal(t, 50, got)
}

func TestPlaybackTracker_PlayedZeroTotalSamplesIsZero(t *testing.T) {
	var tr PlaybackTracker
	assert.Equal(t, 0, tr.Played(time.Second, 0, 24000))
}

func TestPlaybackTracker_ClipInterruptedTruncatesAndMarks(t *testing.T) {
	var tr PlaybackTracker
	got := tr.ClipInterrupted("The quick brown fox jumps over", 50)
	assert.Equal(t, "The quick brown<INTERRUPTED>", got)
}

func TestPlaybackTracker_ClipInterruptedFullPlaybackHasNoMarker(t *testing.T) {
	var tr PlaybackTracker
	got := tr.ClipInterrupted("Hello there friend", 100)
	assert.Equal(t, "Hello there friend", got)
}
