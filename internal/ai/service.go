package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/Sarathkio/resume-bot/internal/prompt"
	"google.golang.org/genai"
)

const model = "gemini-2.0-flash"

type Service struct {
	Client *genai.Client
}

func NewService(apiKey string) (*Service, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	log.Println("AI Service Initialized Successfully")
	return &Service{Client: client}, nil
}

// GenerateFromPrompt sends one prompt and returns the model's raw text. No
// retries, no backoff; callers decide what a failure means to the user.
func (s *Service) GenerateFromPrompt(ctx context.Context, promptText string) (string, error) {
	result, err := s.Client.Models.GenerateContent(
		ctx,
		model,
		genai.Text(promptText),
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("no text content found in AI response")
	}

	return text, nil
}

// Transcribe sends an audio clip inline with a transcription instruction
// and returns the spoken text. Serves the speech-to-text boundary with the
// same hosted model used for generation.
func (s *Service) Transcribe(ctx context.Context, data []byte, mime string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mime),
			genai.NewPartFromText(prompt.Transcription()),
		}, genai.RoleUser),
	}

	result, err := s.Client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("no transcript found in AI response")
	}

	return text, nil
}
