package llm

import (
	"strings"
	"text/template"

	"github.com/kestrelvoice/kestrel/internal/dialogue"
)

// RenderPrompt renders turns through a Llama-3 chat template. tmpl is Go
// text/template source (Config.Llama3Template), executed with .messages
// (each a map with "role" and "content"), .bos_token and
// .add_generation_prompt. Jinja syntax from a model's tokenizer_config.json
// is not interpreted; no dedicated Jinja engine is used (no pack repo
// carries one — see DESIGN.md).
func RenderPrompt(tmpl string, turns []dialogue.Turn) (string, error) {
	t, err := template.New("llama3").Parse(tmpl)
	if err != nil {
		return "", err
	}

	messages := make([]map[string]string, len(turns))
	for i, turn := range turns {
		messages[i] = map[string]string{
			"role":    string(turn.Role),
			"content": turn.Content,
		}
	}

	var out strings.Builder
	err = t.Execute(&out, map[string]any{
		"messages":              messages,
		"bos_token":             "<|begin_of_text|>",
		"add_generation_prompt": true,
	})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}
