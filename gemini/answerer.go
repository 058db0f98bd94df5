package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/ragnav"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Answerer implements ragnav.Answerer at compile time.
var _ ragnav.Answerer = (*Answerer)(nil)

// Answerer implements ragnav.Answerer using Google Gemini.
type Answerer struct {
	client *genai.Client
	model  string

	// Retry controls retries of rate limited or failed API calls.
	Retry RetryConfig
}

// NewAnswerer creates a new Answerer. An empty model means DefaultModel.
func NewAnswerer(client *genai.Client, model string) *Answerer {
	if model == "" {
		model = DefaultModel
	}
	return &Answerer{client: client, model: model, Retry: DefaultRetryConfig()}
}

// Answer answers query using only the given documentation context.
func (a *Answerer) Answer(ctx context.Context, query, docs string) (*ragnav.Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ragnav.Errorf(ragnav.EINVALID, "question required")
	}
	if strings.TrimSpace(docs) == "" {
		return nil, ragnav.Errorf(ragnav.EINVALID, "context required")
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: BuildUserPrompt(query, docs)}},
	}}
	config := BuildConfig()

	var result *genai.GenerateContentResponse
	err := Retry(ctx, a.Retry, func() error {
		var err error
		result, err = a.client.Models.GenerateContent(ctx, a.model, contents, config)
		return err
	})
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ragnav.Errorf(ragnav.EINTERNAL, "gemini returned nil result")
	}

	return ParseAnswer(result.Text())
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// Responses are constrained to a JSON object with answer and confidence.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an expert at answering questions based on provided context. Answer using only the context. If the context does not contain the answer, say so and report a low confidence.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"answer": {
					Type:        genai.TypeString,
					Description: "The answer to the query, based on the context.",
				},
				"confidence": {
					Type:        genai.TypeNumber,
					Description: "Confidence in the answer, from 0 to 1.",
				},
			},
			Required: []string{"answer", "confidence"},
		},
	}
}

// BuildUserPrompt builds the prompt containing the context and the query.
func BuildUserPrompt(query, docs string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert at answering questions based on provided context.\n\n")
	fmt.Fprintf(&sb, "Context: %s\n\n", docs)
	fmt.Fprintf(&sb, "Query: %s\n\n", query)
	sb.WriteString("Answer:")
	return sb.String()
}

// ParseAnswer decodes the model's JSON response. Confidence is clamped
// to [0, 1].
func ParseAnswer(text string) (*ragnav.Answer, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var answer ragnav.Answer
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &answer); err != nil {
		return nil, ragnav.Errorf(ragnav.EINTERNAL, "invalid answer from model: %v", err)
	}
	if strings.TrimSpace(answer.Answer) == "" {
		return nil, ragnav.Errorf(ragnav.EINTERNAL, "model returned an empty answer")
	}
	answer.Confidence = min(max(answer.Confidence, 0), 1)
	return &answer, nil
}
