// Package generation asks a generative model for a React/Tailwind clone
// of a website and parses the structured reply.
package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Result is the parsed model reply.
type Result struct {
	Code     string `json:"code"`
	Analysis string `json:"analysis"`
}

// Request is one call to a Model.
type Request struct {
	Model             string
	SystemInstruction string
	Text              string
	Image             *Image
}

// Model performs a schema-constrained generation and returns the raw
// response text, which should be a JSON object with "analysis" and "code".
type Model interface {
	GenerateJSON(ctx context.Context, req Request) (string, error)
}

// Options selects models and image handling.
type Options struct {
	TextModel       string
	ImageModel      string
	DetectImageMIME bool
}

// Client turns clone prompts into generated components.
type Client struct {
	model  Model
	opts   Options
	logger *slog.Logger
}

// NewClient creates a client. Empty model names fall back to the defaults.
func NewClient(model Model, opts Options, logger *slog.Logger) *Client {
	if opts.TextModel == "" {
		opts.TextModel = DefaultTextModel
	}
	if opts.ImageModel == "" {
		opts.ImageModel = DefaultImageModel
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{model: model, opts: opts, logger: logger}
}

// Generate sends prompt and, when imageDataURI is set, the decoded image.
// Failures are logged and returned wrapped.
func (c *Client) Generate(ctx context.Context, prompt, imageDataURI string) (Result, error) {
	req := Request{
		Model:             c.opts.TextModel,
		SystemInstruction: SystemInstruction,
		Text:              userText(prompt),
	}
	if imageDataURI != "" {
		img, err := DecodeImage(imageDataURI, c.opts.DetectImageMIME)
		if err != nil {
			c.logger.Error("generation failed", "stage", "image", "error", err)
			return Result{}, fmt.Errorf("preparing image: %w", err)
		}
		req.Model = c.opts.ImageModel
		req.Image = img
	}

	c.logger.Debug("generation request", "model", req.Model, "prompt_len", len(prompt), "has_image", req.Image != nil)

	raw, err := c.model.GenerateJSON(ctx, req)
	if err != nil {
		c.logger.Error("generation failed", "stage", "request", "model", req.Model, "error", err)
		return Result{}, fmt.Errorf("calling %s: %w", req.Model, err)
	}

	res, err := ParseResult(raw)
	if err != nil {
		c.logger.Error("generation failed", "stage", "parse", "model", req.Model, "error", err)
		return Result{}, err
	}

	c.logger.Debug("generation complete", "model", req.Model, "code_len", len(res.Code))
	return res, nil
}

// ParseResult decodes the model reply. Empty text counts as an empty
// object. A missing, null or empty field gets its fallback; a field of
// any non-string type is rejected.
func ParseResult(text string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		text = "{}"
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Result{}, fmt.Errorf("%w: top-level value is %s", ErrMalformedResponse, typeErr.Value)
		}
		return Result{}, fmt.Errorf("parsing generation response: %w", err)
	}
	if fields == nil {
		return Result{}, fmt.Errorf("%w: top-level value is not an object", ErrMalformedResponse)
	}

	analysis, err := stringField(fields, "analysis")
	if err != nil {
		return Result{}, err
	}
	code, err := stringField(fields, "code")
	if err != nil {
		return Result{}, err
	}

	if analysis == "" {
		analysis = FallbackAnalysis
	}
	if code == "" {
		code = FallbackCode
	}
	return Result{Code: code, Analysis: analysis}, nil
}

func stringField(fields map[string]json.RawMessage, name string) (string, error) {
	raw, ok := fields[name]
	if !ok {
		return "", nil
	}
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("%w: field %q is not a string", ErrMalformedResponse, name)
	}
	return s, nil
}
