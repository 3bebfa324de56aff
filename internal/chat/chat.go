// Package chat holds the conversation shown on the chat screen and sends
// the user's messages to a Responder.
package chat

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/horizons-app/horizons/internal/models"
	"github.com/horizons-app/horizons/internal/remote"
)

// Greeting opens every conversation.
const Greeting = "Hola, soy Socrat IA. ¿Qué te interesa explorar?"

var (
	ErrEmptyMessage = errors.New("chat: empty message")
	ErrInFlight     = errors.New("chat: a message is already being sent")
	ErrReset        = errors.New("chat: conversation was reset")
)

// Responder answers a user message. *brain.Client and
// *counselor.Counselor implement it.
type Responder interface {
	Send(ctx context.Context, userID, message string) (string, error)
}

// Forgetter is implemented by responders that keep a conversation per user,
// such as *counselor.Counselor. Session.Reset calls Forget.
type Forgetter interface {
	Forget(userID string)
}

// Session is one conversation. It is safe for concurrent use: the UI
// calls Send from a command goroutine while rendering Messages.
type Session struct {
	responder Responder
	userID    string
	log       *zap.Logger
	now       func() time.Time

	mu         sync.Mutex
	messages   []models.ChatMessage
	inFlight   bool
	generation uint64
}

func NewSession(r Responder, userID string, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{responder: r, userID: userID, log: log, now: time.Now}
	s.messages = []models.ChatMessage{s.bubble(Greeting, false)}
	return s
}

// Messages returns a copy of the conversation.
func (s *Session) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.messages)
}

func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Send appends the user's message, waits for the reply and appends it.
// Failures are appended as an error bubble and also returned. A reply that
// arrives after Reset is discarded.
func (s *Session) Send(ctx context.Context, text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return models.ChatMessage{}, ErrInFlight
	}
	s.inFlight = true
	gen := s.generation
	s.messages = append(s.messages, s.bubble(text, true))
	s.mu.Unlock()

	reply, err := s.responder.Send(ctx, s.userID, text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.log.Debug("dropping reply from a reset conversation")
		return models.ChatMessage{}, ErrReset
	}
	s.inFlight = false

	var msg models.ChatMessage
	if err != nil {
		s.log.Warn("chat send failed", zap.String("user", s.userID), zap.Error(err))
		msg = s.bubble(ErrorText(err), false)
	} else {
		msg = s.bubble(reply, false)
	}
	s.messages = append(s.messages, msg)
	return msg, err
}

// Reset starts a new conversation. A Send still waiting for its reply
// will not touch the new one, and a responder that keeps its own history
// is told to forget it.
func (s *Session) Reset() {
	s.mu.Lock()
	s.generation++
	s.inFlight = false
	s.messages = []models.ChatMessage{s.bubble(Greeting, false)}
	s.mu.Unlock()

	if f, ok := s.responder.(Forgetter); ok {
		f.Forget(s.userID)
	}
}

func (s *Session) bubble(text string, isUser bool) models.ChatMessage {
	return models.ChatMessage{
		ID:     uuid.NewString(),
		Text:   text,
		IsUser: isUser,
		Time:   s.now(),
	}
}

// errorPrefix heads every error bubble.
const errorPrefix = "⚠️ No pude conectar con BRAIN.\n"

// ErrorText is the bubble shown for a failed send.
func ErrorText(err error) string {
	var (
		se *remote.ServerError
		de *remote.DecodeError
		ne *remote.NetworkError
	)
	switch {
	case errors.As(err, &se):
		return errorPrefix + se.Message()
	case errors.As(err, &de):
		return errorPrefix + "No pude leer la respuesta: " + string(de.Raw)
	case errors.As(err, &ne):
		return errorPrefix + ne.Err.Error()
	}
	return errorPrefix + err.Error()
}
