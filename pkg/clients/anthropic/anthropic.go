package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	apiURL     = "https://api.anthropic.com/v1/messages"
	apiVersion = "2023-06-01"
	model      = "claude-3-haiku-20240307"
	maxTokens  = 1024
)

// Message is one turn of the assistant conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines the narrow interface the application needs from the LLM:
// given the conversation history and a new message, produce the reply.
type Client interface {
	SendMessage(ctx context.Context, history []Message, message string) (string, error)
}

const systemPrompt = `Tu es VISI-JN, un assistant expert en hygiène et sécurité alimentaire (HACCP) pour les professionnels de la restauration.
Ton objectif est d'aider les chefs et le personnel de cuisine à maintenir des normes irréprochables.

Tes missions :
- Répondre aux questions sur les températures de stockage, la cuisson, et les bonnes pratiques d'hygiène.
- Conseiller sur les dates limites de consommation (DLC) et l'étiquetage secondaire.
- Aider à la gestion des allergènes.
- Si un utilisateur signale un problème critique (ex: frigo en panne), propose des actions correctives immédiates.

Ton ton doit être professionnel, concis et rassurant, adapté à une lecture rapide sur tablette en cuisine.`

type anthropicClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured Anthropic client.
func NewClient(apiKey string) Client {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(30 * time.Second)

	return &anthropicClient{httpClient: client}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []Message `json:"messages"`
}

type messageResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// SendMessage appends the user message to the history and returns the model reply.
func (c *anthropicClient) SendMessage(ctx context.Context, history []Message, message string) (string, error) {
	messages := append(append([]Message(nil), history...), Message{Role: "user", Content: message})

	reqBody := messageRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    systemPrompt,
		Messages:  messages,
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(reqBody).
		Post(apiURL)
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("anthropic returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var parsed messageResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return "", fmt.Errorf("failed parsing anthropic response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("anthropic response contained no content")
	}

	return parsed.Content[0].Text, nil
}
