package whatsapp

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/72tommy72/HRMate/internal/errors"
)

type sentMessage struct {
	to   string
	body string
}

type fakeLink struct {
	events chan Event

	mu       sync.Mutex
	sent     []sentMessage
	sendErr  error
	closeErr error
	closed   bool
}

func newFakeLink() *fakeLink {
	return &fakeLink{events: make(chan Event, 8)}
}

func (l *fakeLink) Events() <-chan Event { return l.events }

func (l *fakeLink) SendText(_ context.Context, toPhone, body string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sendErr != nil {
		return l.sendErr
	}
	l.sent = append(l.sent, sentMessage{to: toPhone, body: body})
	return nil
}

func (l *fakeLink) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return l.closeErr
}

func (l *fakeLink) isClosed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.closed
}

func (l *fakeLink) sentMessages() []sentMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]sentMessage(nil), l.sent...)
}

type fakeTransport struct {
	mu      sync.Mutex
	links   map[string]*fakeLink
	dialErr error
	dials   int
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{links: make(map[string]*fakeLink)}
}

func (t *fakeTransport) Dial(_ context.Context, key string) (Link, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dials++
	if t.dialErr != nil {
		return nil, t.dialErr
	}
	link := newFakeLink()
	t.links[key] = link
	return link, nil
}

func (t *fakeTransport) link(key string) *fakeLink {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.links[key]
}

func newTestRegistry(t *fakeTransport, handshakeTTL time.Duration) *Registry {
	r := NewRegistry(t, handshakeTTL, zerolog.Nop())
	r.qrOut = io.Discard
	return r
}

func TestRegistryAcquire(t *testing.T) {
	t.Run("becomes ready on ready event", func(t *testing.T) {
		transport := newFakeTransport()
		registry := newTestRegistry(transport, time.Minute)

		handle, err := registry.Acquire(context.Background(), "123456789")
		require.NoError(t, err)
		assert.Equal(t, StatusInitializing, handle.Status())

		transport.link("123456789").events <- ReadyEvent{Phone: "123456789"}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, handle.WaitReady(ctx))
		assert.Equal(t, StatusReady, handle.Status())
		assert.Equal(t, "123456789", handle.Phone())
	})

	t.Run("rejects duplicate key while live", func(t *testing.T) {
		transport := newFakeTransport()
		registry := newTestRegistry(transport, time.Minute)

		_, err := registry.Acquire(context.Background(), "123456789")
		require.NoError(t, err)

		_, err = registry.Acquire(context.Background(), "123456789")
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeAlreadyExists))
		assert.Equal(t, 1, transport.dials)
	})

	t.Run("dial failure frees the key", func(t *testing.T) {
		transport := newFakeTransport()
		transport.dialErr = errors.New("network down")
		registry := newTestRegistry(transport, time.Minute)

		_, err := registry.Acquire(context.Background(), "123456789")
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeExternal))

		transport.dialErr = nil
		_, err = registry.Acquire(context.Background(), "123456789")
		require.NoError(t, err)
	})

	t.Run("stores the latest pairing code", func(t *testing.T) {
		transport := newFakeTransport()
		registry := newTestRegistry(transport, time.Minute)

		handle, err := registry.Acquire(context.Background(), "123456789")
		require.NoError(t, err)

		transport.link("123456789").events <- QREvent{Code: "first"}
		transport.link("123456789").events <- QREvent{Code: "second"}

		require.Eventually(t, func() bool {
			return handle.QR() == "second"
		}, time.Second, 5*time.Millisecond)
	})
}

func TestRegistryDisconnect(t *testing.T) {
	t.Run("removes channel on disconnect", func(t *testing.T) {
		transport := newFakeTransport()
		registry := newTestRegistry(transport, time.Minute)

		handle, err := registry.Acquire(context.Background(), "123456789")
		require.NoError(t, err)
		transport.link("123456789").events <- ReadyEvent{Phone: "123456789"}
		transport.link("123456789").events <- DisconnectedEvent{Reason: "logged out"}

		require.Eventually(t, func() bool {
			_, live := registry.Handle("123456789")
			return !live && handle.Status() == StatusTerminated
		}, time.Second, 5*time.Millisecond)
		assert.True(t, transport.link("123456789").isClosed())
	})

	t.Run("disconnect during initialization terminates the handle", func(t *testing.T) {
		transport := newFakeTransport()
		registry := newTestRegistry(transport, time.Minute)

		handle, err := registry.Acquire(context.Background(), "123456789")
		require.NoError(t, err)
		transport.link("123456789").events <- DisconnectedEvent{Reason: "pairing timed out"}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		err = handle.WaitReady(ctx)
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidState))
	})

	t.Run("handshake timeout tears the channel down", func(t *testing.T) {
		transport := newFakeTransport()
		registry := newTestRegistry(transport, 20*time.Millisecond)

		handle, err := registry.Acquire(context.Background(), "123456789")
		require.NoError(t, err)

		require.Eventually(t, func() bool {
			_, live := registry.Handle("123456789")
			return !live && handle.Status() == StatusTerminated
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("ready channel is not subject to the handshake timeout", func(t *testing.T) {
		transport := newFakeTransport()
		registry := newTestRegistry(transport, 20*time.Millisecond)

		handle, err := registry.Acquire(context.Background(), "123456789")
		require.NoError(t, err)
		transport.link("123456789").events <- ReadyEvent{Phone: "123456789"}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, handle.WaitReady(ctx))

		time.Sleep(60 * time.Millisecond)
		assert.Equal(t, StatusReady, handle.Status())
		_, live := registry.Handle("123456789")
		assert.True(t, live)
	})
}

func TestRegistryRelease(t *testing.T) {
	t.Run("removes and closes", func(t *testing.T) {
		transport := newFakeTransport()
		registry := newTestRegistry(transport, time.Minute)

		_, err := registry.Acquire(context.Background(), "123456789")
		require.NoError(t, err)

		require.NoError(t, registry.Release("123456789"))
		_, live := registry.Handle("123456789")
		assert.False(t, live)
		assert.True(t, transport.link("123456789").isClosed())
	})

	t.Run("unknown key", func(t *testing.T) {
		registry := newTestRegistry(newFakeTransport(), time.Minute)

		err := registry.Release("123456789")
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
	})

	t.Run("close failure still removes the key", func(t *testing.T) {
		transport := newFakeTransport()
		registry := newTestRegistry(transport, time.Minute)

		_, err := registry.Acquire(context.Background(), "123456789")
		require.NoError(t, err)
		transport.link("123456789").closeErr = errors.New("socket stuck")

		err = registry.Release("123456789")
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeTeardown))

		_, live := registry.Handle("123456789")
		assert.False(t, live)

		// The key is free again despite the failed teardown.
		_, err = registry.Acquire(context.Background(), "123456789")
		require.NoError(t, err)
	})
}

func TestRegistrySend(t *testing.T) {
	t.Run("delivers over a ready channel", func(t *testing.T) {
		transport := newFakeTransport()
		registry := newTestRegistry(transport, time.Minute)

		handle, err := registry.Acquire(context.Background(), "123456789")
		require.NoError(t, err)
		transport.link("123456789").events <- ReadyEvent{Phone: "123456789"}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, handle.WaitReady(ctx))

		require.NoError(t, registry.Send(context.Background(), "123456789", "987654321", "hello"))
		sent := transport.link("123456789").sentMessages()
		require.Len(t, sent, 1)
		assert.Equal(t, "987654321", sent[0].to)
		assert.Equal(t, "hello", sent[0].body)
	})

	t.Run("unknown key is not bound", func(t *testing.T) {
		registry := newTestRegistry(newFakeTransport(), time.Minute)

		err := registry.Send(context.Background(), "123456789", "987654321", "hello")
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotBound))
	})

	t.Run("initializing channel is not bound", func(t *testing.T) {
		transport := newFakeTransport()
		registry := newTestRegistry(transport, time.Minute)

		_, err := registry.Acquire(context.Background(), "123456789")
		require.NoError(t, err)

		err = registry.Send(context.Background(), "123456789", "987654321", "hello")
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotBound))
		assert.Empty(t, transport.link("123456789").sentMessages())
	})

	t.Run("transport failure wrapped as send error", func(t *testing.T) {
		transport := newFakeTransport()
		registry := newTestRegistry(transport, time.Minute)

		handle, err := registry.Acquire(context.Background(), "123456789")
		require.NoError(t, err)
		transport.link("123456789").events <- ReadyEvent{Phone: "123456789"}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, handle.WaitReady(ctx))

		transport.link("123456789").sendErr = errors.New("stream gone")
		err = registry.Send(context.Background(), "123456789", "987654321", "hello")
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeSend))
	})
}

func TestRegistryShutdown(t *testing.T) {
	transport := newFakeTransport()
	registry := newTestRegistry(transport, time.Minute)

	for _, key := range []string{"111", "222", "333"} {
		_, err := registry.Acquire(context.Background(), key)
		require.NoError(t, err)
	}

	registry.Shutdown()
	assert.Empty(t, registry.Keys())
	for _, key := range []string{"111", "222", "333"} {
		assert.True(t, transport.link(key).isClosed())
	}
}
