package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const maxSummaryLength = 2000

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *slog.Logger
}

func NewGeminiClient(ctx context.Context, apiKey string, logger *slog.Logger) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-flash")
	model.SetTemperature(0.8)

	return &GeminiClient{
		client: client,
		model:  model,
		logger: logger,
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// GenerateProfileSummaries asks the model for three short "about me" drafts.
// Any model failure degrades to FallbackSummaries.
func (c *GeminiClient) GenerateProfileSummaries(ctx context.Context, name string, interests []string, zipcode string) ([]string, error) {
	prompt := fmt.Sprintf(`
		Write 3 distinct short "about me" texts for a dating profile.
		Name: %s
		Interests: %s
		Zip code: %s

		Each text is 2-3 friendly sentences in the first person, under 400 characters.
		Output: JSON array of strings. Example: ["I love...", "Weekends..."]
	`, name, strings.Join(interests, ", "), zipcode)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.logger.WarnContext(ctx, "gemini unavailable, using fallback summaries", "error", err)
		return FallbackSummaries(name, interests, zipcode), nil
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return FallbackSummaries(name, interests, zipcode), nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	summaries := parseSummaries(sb.String())
	if len(summaries) == 0 {
		c.logger.WarnContext(ctx, "gemini returned no usable summaries, using fallback")
		return FallbackSummaries(name, interests, zipcode), nil
	}
	return summaries, nil
}

// parseSummaries accepts a JSON array, optionally inside a markdown fence,
// or one summary per line.
func parseSummaries(text string) []string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw []string
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || line == "[" || line == "]" {
				continue
			}
			raw = append(raw, strings.Trim(line, `",`))
		}
	}

	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if len([]rune(s)) > maxSummaryLength {
			s = string([]rune(s)[:maxSummaryLength])
		}
		out = append(out, s)
	}
	return out
}

// FallbackSummaries builds deterministic drafts from the same inputs.
func FallbackSummaries(name string, interests []string, zipcode string) []string {
	who := strings.TrimSpace(name)
	if who == "" {
		who = "someone new in town"
	}

	likes := "trying new things"
	switch len(interests) {
	case 0:
	case 1:
		likes = interests[0]
	default:
		likes = strings.Join(interests[:len(interests)-1], ", ") + " and " + interests[len(interests)-1]
	}

	where := "around here"
	if zipcode != "" {
		where = "around " + zipcode
	}

	return []string{
		fmt.Sprintf("Hi, I'm %s. I spend most of my free time on %s and I'm looking for someone to share it with.", who, likes),
		fmt.Sprintf("Based %s. Ask me about %s, I could talk about it for hours.", where, likes),
		fmt.Sprintf("%s here. Good conversation, %s, and a plan for the weekend make my day.", who, likes),
	}
}
