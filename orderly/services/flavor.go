package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/orderlycore/orderlycore/internal/domain/leveling"
)

const (
	defaultFlavorModel   = "gemini-2.0-flash"
	defaultFlavorTimeout = 8 * time.Second
	maxFlavorLength      = 280
)

var ErrEmptyFlavor = errors.New("flavor generator returned no text")

// FlavorGenerator writes the one-line comment shown on a level-up message.
type FlavorGenerator interface {
	GenerateComment(ctx context.Context, lu leveling.LevelUp) (string, error)
}

// GeminiFlavor generates comments with the Gemini API.
type GeminiFlavor struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiFlavor(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiFlavor, error) {
	if apiKey == "" {
		return nil, errors.New("genai api key is empty")
	}
	if model == "" {
		model = defaultFlavorModel
	}
	if timeout <= 0 {
		timeout = defaultFlavorTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiFlavor{client: client, model: model, timeout: timeout}, nil
}

func (g *GeminiFlavor) GenerateComment(ctx context.Context, lu leveling.LevelUp) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(flavorPrompt(lu)), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.9),
		MaxOutputTokens: 80,
	})
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := cleanFlavor(resp.Text())
	if text == "" {
		return "", ErrEmptyFlavor
	}
	return text, nil
}

func flavorPrompt(lu leveling.LevelUp) string {
	var sb strings.Builder
	sb.WriteString("Write one short, upbeat sentence congratulating a Discord member on leveling up. ")
	sb.WriteString("No hashtags, no quotes, at most one emoji. ")
	fmt.Fprintf(&sb, "Member: %s. Server: %s. New level: %d.", lu.DisplayName, lu.GuildName, lu.NewLevel)
	if lu.Source == leveling.SourceVoice {
		sb.WriteString(" They earned it by spending time in voice chat.")
	} else {
		fmt.Fprintf(&sb, " They have sent %d messages.", lu.MessageCount)
	}
	if lu.Ranked {
		fmt.Fprintf(&sb, " They are ranked #%d on the server.", lu.Rank)
	}
	return sb.String()
}

// cleanFlavor keeps the first line, strips wrapping quotes and caps length.
func cleanFlavor(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.Trim(s, "\"'` ")
	if r := []rune(s); len(r) > maxFlavorLength {
		s = string(r[:maxFlavorLength-1]) + "…"
	}
	return s
}
