package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/horizons-app/horizons/internal/remote"
)

type fakeResponder struct {
	reply string
	err   error
	// gate, when set, blocks Send until a value is received.
	gate    chan struct{}
	started chan struct{}
	got     []string
}

func (f *fakeResponder) Send(ctx context.Context, userID, message string) (string, error) {
	f.got = append(f.got, userID+":"+message)
	if f.started != nil {
		close(f.started)
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.reply, f.err
}

// statefulResponder remembers which users it was told to forget.
type statefulResponder struct {
	fakeResponder
	forgot []string
}

func (f *statefulResponder) Forget(userID string) {
	f.forgot = append(f.forgot, userID)
}

func TestGreeting(t *testing.T) {
	s := NewSession(&fakeResponder{}, "u1", nil)
	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, Greeting, msgs[0].Text)
	assert.False(t, msgs[0].IsUser)
	assert.NotEmpty(t, msgs[0].ID)
}

func TestSendAppendsBothBubbles(t *testing.T) {
	r := &fakeResponder{reply: "hola!"}
	s := NewSession(r, "u1", nil)

	msg, err := s.Send(context.Background(), "  me gusta el arte  ")
	require.NoError(t, err)
	assert.Equal(t, "hola!", msg.Text)
	assert.Equal(t, []string{"u1:me gusta el arte"}, r.got)

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.True(t, msgs[1].IsUser)
	assert.Equal(t, "me gusta el arte", msgs[1].Text)
	assert.Equal(t, "hola!", msgs[2].Text)
	assert.NotEqual(t, msgs[1].ID, msgs[2].ID)
	assert.False(t, s.InFlight())
}

func TestSendRejectsEmpty(t *testing.T) {
	r := &fakeResponder{}
	s := NewSession(r, "u1", nil)
	_, err := s.Send(context.Background(), " \n\t")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Len(t, s.Messages(), 1)
	assert.Empty(t, r.got)
}

func TestSendFailureAddsErrorBubble(t *testing.T) {
	r := &fakeResponder{err: &remote.ServerError{StatusCode: 500, Detail: "boom"}}
	s := NewSession(r, "u1", nil)

	msg, err := s.Send(context.Background(), "hola")
	require.Error(t, err)
	assert.Equal(t, "⚠️ No pude conectar con BRAIN.\nboom", msg.Text)
	assert.Len(t, s.Messages(), 3)
	assert.False(t, s.InFlight())
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "⚠️ No pude conectar con BRAIN.\nNo pude leer la respuesta: <html>",
		ErrorText(&remote.DecodeError{Raw: []byte("<html>"), Err: errors.New("bad")}))
	assert.Equal(t, "⚠️ No pude conectar con BRAIN.\nconnection refused",
		ErrorText(&remote.NetworkError{Err: errors.New("connection refused")}))
	assert.Equal(t, "⚠️ No pude conectar con BRAIN.\nHTTP 502",
		ErrorText(errors.New("HTTP 502")))
}

func TestConcurrentSendIsRejected(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := &fakeResponder{reply: "ok", gate: make(chan struct{}), started: make(chan struct{})}
	s := NewSession(r, "u1", nil)

	done := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "primero")
		done <- err
	}()
	<-r.started
	assert.True(t, s.InFlight())

	_, err := s.Send(context.Background(), "segundo")
	assert.ErrorIs(t, err, ErrInFlight)

	close(r.gate)
	require.NoError(t, <-done)
	assert.Len(t, s.Messages(), 3)
}

func TestResetDropsLateReply(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := &fakeResponder{reply: "tarde", gate: make(chan struct{}), started: make(chan struct{})}
	s := NewSession(r, "u1", nil)

	done := make(chan error, 1)
	go func() {
		_, err := s.Send(context.Background(), "hola")
		done <- err
	}()
	<-r.started
	s.Reset()
	assert.False(t, s.InFlight(), "reset clears the in-flight guard")

	close(r.gate)
	assert.ErrorIs(t, <-done, ErrReset)

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, Greeting, msgs[0].Text)
}

func TestResetForgetsResponderHistory(t *testing.T) {
	r := &statefulResponder{fakeResponder: fakeResponder{reply: "hola"}}
	s := NewSession(r, "u1", nil)

	_, err := s.Send(context.Background(), "me gusta la música")
	require.NoError(t, err)
	assert.Empty(t, r.forgot)

	s.Reset()
	assert.Equal(t, []string{"u1"}, r.forgot)
	assert.Len(t, s.Messages(), 1)

	// Responders without history are reset without complaint.
	plain := NewSession(&fakeResponder{}, "u2", nil)
	plain.Reset()
	assert.Len(t, plain.Messages(), 1)
}
