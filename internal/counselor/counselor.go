// Package counselor is a Gemini-backed stand-in for BRAIN, used when no
// BRAIN deployment is configured.
package counselor

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

//go:embed prompts/system.txt
var systemPrompt string

const (
	modelName = "gemini-2.5-flash"
	// Persona is the name the counselor answers as.
	Persona = "Socrat IA"
	// maxHistory bounds the turns kept per user; older turns are dropped in
	// pairs so the history keeps starting with a user turn.
	maxHistory = 20
)

var ErrNoContent = errors.New("no content returned from Gemini")

type Counselor struct {
	client *genai.Client
	model  *genai.GenerativeModel
	log    *zap.Logger

	mu    sync.Mutex
	chats map[string]*genai.ChatSession
}

// New connects to Gemini. careers lists the career titles the prompt may
// point students to.
func New(ctx context.Context, apiKey string, careers []string, log *zap.Logger) (*Counselor, error) {
	prompt, err := renderSystemPrompt(careers)
	if err != nil {
		return nil, err
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(prompt)}}
	if log == nil {
		log = zap.NewNop()
	}
	return &Counselor{
		client: client,
		model:  model,
		log:    log,
		chats:  make(map[string]*genai.ChatSession),
	}, nil
}

func (c *Counselor) Close() error {
	return c.client.Close()
}

// Send continues the conversation of userID with message.
func (c *Counselor) Send(ctx context.Context, userID, message string) (string, error) {
	cs := c.chat(userID)
	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	reply, err := replyText(resp)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	cs.History = trimHistory(cs.History, maxHistory)
	c.mu.Unlock()
	c.log.Debug("counselor reply", zap.String("user", userID), zap.Int("history", len(cs.History)))
	return reply, nil
}

// Forget drops the conversation of userID.
func (c *Counselor) Forget(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.chats, userID)
}

func (c *Counselor) chat(userID string) *genai.ChatSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	cs, ok := c.chats[userID]
	if !ok {
		cs = c.model.StartChat()
		c.chats[userID] = cs
	}
	return cs
}

func renderSystemPrompt(careers []string) (string, error) {
	tmpl, err := template.New("system").Funcs(template.FuncMap{"join": strings.Join}).Parse(systemPrompt)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	data := struct {
		Persona string
		Careers []string
	}{Persona: Persona, Careers: careers}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func replyText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrNoContent
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	reply := strings.TrimSpace(sb.String())
	if reply == "" {
		return "", ErrNoContent
	}
	return reply, nil
}

func trimHistory(history []*genai.Content, limit int) []*genai.Content {
	if len(history) <= limit {
		return history
	}
	drop := len(history) - limit
	if drop%2 == 1 {
		drop++
	}
	return history[drop:]
}
