package generation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// responseSchema declares the {analysis, code} object the model must return.
var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"analysis": {Type: genai.TypeString},
		"code":     {Type: genai.TypeString},
	},
	Required: []string{"analysis", "code"},
}

// GeminiModel implements Model with the Gemini API.
type GeminiModel struct {
	client *genai.Client
}

// NewGeminiModel creates a Gemini-backed model.
func NewGeminiModel(ctx context.Context, apiKey string) (*GeminiModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &GeminiModel{client: client}, nil
}

// GenerateJSON implements Model.
func (m *GeminiModel) GenerateJSON(ctx context.Context, req Request) (string, error) {
	parts := []*genai.Part{genai.NewPartFromText(req.Text)}
	if req.Image != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Image.Data, req.Image.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    responseSchema,
	}

	resp, err := m.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// NewModel returns a Gemini model, or a model that fails every request with
// ErrMissingAPIKey when apiKey is blank.
func NewModel(ctx context.Context, apiKey string) (Model, error) {
	if strings.TrimSpace(apiKey) == "" {
		return missingKeyModel{}, nil
	}
	return NewGeminiModel(ctx, apiKey)
}

type missingKeyModel struct{}

func (missingKeyModel) GenerateJSON(context.Context, Request) (string, error) {
	return "", ErrMissingAPIKey
}
