package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanSentence_StripsTrailingStopword(t *testing.T) {
	tokens := []string{"Sure", ",", " ", "I", "'", "ll", " ", "help", ".", "<|eot_id|>"}
	got := CleanSentence(tokens, []string{"<|eot_id|>"})
	assert.Equal(t, "Sure, I'll help. ", got)
}

func TestCleanSentence_RemovesAsterisksAndParens(t *testing.T) {
	got := CleanSentence([]string{"*whispers* Hello (quietly) there."}, nil)
	assert.Equal(t, " Hello  there. ", got)
}

func TestCleanSentence_DropsNonSpeechCharacters(t *testing.T) {
	got := CleanSentence([]string{"Hi~~there#@ friend."}, nil)
	assert.Equal(t, "Hithere friend. ", got)
}

func TestCleanSentence_IsIdempotentOnceCleaned(t *testing.T) {
	once := strings.TrimSpace(CleanSentence([]string{"Hello, friend."}, nil))
	twice := strings.TrimSpace(CleanSentence([]string{once}, nil))
	assert.Equal(t, once, twice)
}

func TestIsSentenceTerminator(t *testing.T) {
	for _, tok := range []string{".", "!", "?", ":", ";", "?!"} {
		assert.True(t, IsSentenceTerminator(tok), tok)
	}
	for _, tok := range []string{"hello", ",", ""} {
		assert.False(t, IsSentenceTerminator(tok), tok)
	}
}

func TestIsIgnoredOutput(t *testing.T) {
	ignore := []string{"Hmm. ", "Uh. "}
	assert.True(t, IsIgnoredOutput("Hmm. ", ignore))
	assert.False(t, IsIgnoredOutput("Hello there. ", ignore))
}
