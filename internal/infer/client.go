// Package infer is the adapter for the external language-classification
// provider (an OpenAI-compatible chat completions endpoint).
package infer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"german-gate/internal/config"

	"github.com/rs/zerolog/log"
)

// Result is one classification verdict as reported by the provider. Label
// is passed through verbatim; CostUSD is derived from reported token usage.
type Result struct {
	Label            string
	Reason           string
	PromptTokens     int
	CompletionTokens int
	CostUSD          float64
}

type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Model      string

	PricePer1MInputUSD  float64
	PricePer1MOutputUSD float64
}

func NewClient(cfg config.ServerConfig) *Client {
	return &Client{
		HTTPClient:          &http.Client{Timeout: 30 * time.Second},
		BaseURL:             cfg.OpenAIBaseURL,
		APIKey:              cfg.OpenAIAPIKey,
		Model:               cfg.OpenAIModel,
		PricePer1MInputUSD:  cfg.PricePer1MInputUSD,
		PricePer1MOutputUSD: cfg.PricePer1MOutputUSD,
	}
}

const promptTemplate = "You are given the user name '%s'. Determine the language the user name is written in, formatted like e.g. 'dutch | <reasoning>'. Give a very short reason for the decision in german. If the language cannot be determined with high confidence, output only 'unknown'."

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Classify asks the provider which language the username is written in.
// The reply is expected as "<language> | <reason>"; a reply without the
// separator yields the whole text as label and an empty reason.
func (c *Client) Classify(ctx context.Context, username string) (Result, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       c.Model,
		Messages:    []chatMessage{{Role: "user", Content: fmt.Sprintf(promptTemplate, username)}},
		Temperature: 0,
	})
	if err != nil {
		return Result{}, err
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}
	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("body", string(body)).Msg("classification provider error")
		return Result{}, fmt.Errorf("provider returned HTTP %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Result{}, err
	}
	if len(parsed.Choices) == 0 {
		return Result{}, errors.New("provider returned no choices")
	}

	reply := parsed.Choices[0].Message.Content
	log.Debug().Str("username", username).Str("reply", reply).Msg("classification reply")

	res := Result{
		PromptTokens:     parsed.Usage.PromptTokens,
		CompletionTokens: parsed.Usage.CompletionTokens,
	}
	res.CostUSD = c.PricePer1MInputUSD*float64(res.PromptTokens)/1e6 +
		c.PricePer1MOutputUSD*float64(res.CompletionTokens)/1e6

	parts := strings.SplitN(reply, "|", 2)
	res.Label = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		res.Reason = strings.TrimSpace(parts[1])
	}
	return res, nil
}
