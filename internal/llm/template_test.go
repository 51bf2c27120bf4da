package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelvoice/kestrel/internal/dialogue"
)

func TestRenderPrompt_IncludesBosTokenAndMessages(t *testing.T) {
	tmpl := `{{.bos_token}}{{range .messages}}<|{{.role}}|>{{.content}}{{end}}`
	turns := []dialogue.Turn{
		{Role: dialogue.RoleSystem, Content: "be terse"},
		{Role: dialogue.RoleUser, Content: "hi"},
	}

	out, err := RenderPrompt(tmpl, turns)
	require.NoError(t, err)
	assert.Equal(t, "<|begin_of_text|><|system|>be terse<|user|>hi", out)
}

func TestRenderPrompt_RejectsMalformedTemplate(t *testing.T) {
	_, err := RenderPrompt("{{.unterminated", nil)
	assert.Error(t, err)
}
