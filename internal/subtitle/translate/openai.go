package translate

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Veereshamaragatti/keyword-speech-indexing/internal/lang"
)

// OpenAITranslator translates text using an OpenAI chat model.
type OpenAITranslator struct {
	client *openai.Client
	model  string
}

func NewOpenAITranslator(apiKey, model string) *OpenAITranslator {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAITranslator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (o *OpenAITranslator) Name() string {
	return "openai"
}

func (o *OpenAITranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	systemPrompt := fmt.Sprintf(
		"You are a professional subtitle translator. Translate the user's text to %s. "+
			"Keep translations concise and natural for subtitle display. "+
			"Preserve any ' ||| ' separator sequences exactly as given, in the same positions. "+
			"Respond with ONLY the translated text.",
		lang.Name(target),
	)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0.3,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai translate request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty openai response")
	}

	translated := strings.TrimSpace(resp.Choices[0].Message.Content)
	if translated == "" {
		return "", fmt.Errorf("empty translation for target %s", target)
	}
	return translated, nil
}
