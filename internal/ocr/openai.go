package ocr

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// Extractor returns the text recognized in an uploaded image.
type Extractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// ErrEmptyResponse is returned when the model answers without any choices.
var ErrEmptyResponse = errors.New("model returned no choices")

const (
	systemPrompt = "You are an expert in reading and extracting Malayalam text from images."
	userPrompt   = "Extract and return only the Malayalam text from this image. " +
		"Do not provide any explanation, translation, or additional details. " +
		"Strictly output only the Malayalam text as it appears in the image."
)

// Ensure OpenAIExtractor satisfies the Extractor interface at compile time.
var _ Extractor = (*OpenAIExtractor)(nil)

// OpenAIExtractor forwards images to the OpenAI vision chat API and relays
// the raw text of the first choice.
type OpenAIExtractor struct {
	client *openai.Client
	model  string
}

// NewOpenAIExtractor builds an extractor for the given API key and model.
// baseURL overrides the API endpoint when non-empty.
func NewOpenAIExtractor(apiKey, model, baseURL string) *OpenAIExtractor {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIExtractor{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// ExtractText sends the image as a base64 data URL in a vision chat
// completion and returns the model's answer unmodified.
func (e *OpenAIExtractor) ExtractText(ctx context.Context, image []byte) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s",
		http.DetectContentType(image), base64.StdEncoding.EncodeToString(image))

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: userPrompt,
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL},
					},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
