package whatsapp

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"

	apperrors "github.com/72tommy72/HRMate/internal/errors"
)

// Handle is one channel in the registry. State transitions are monotonic:
// initializing -> ready -> terminated, with terminated reachable from any
// state and absorbing. A terminated handle is never reused; re-acquiring the
// same key creates a fresh one.
type Handle struct {
	key string

	mu     sync.Mutex
	link   Link
	status ChannelStatus
	phone  string
	lastQR string

	ready chan struct{}
	done  chan struct{}
}

func newHandle(key string) *Handle {
	return &Handle{
		key:    key,
		status: StatusInitializing,
		ready:  make(chan struct{}),
		done:   make(chan struct{}),
	}
}

func (h *Handle) Key() string { return h.key }

func (h *Handle) Status() ChannelStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// QR returns the most recent pairing code, or "" if none was received yet.
func (h *Handle) QR() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastQR
}

// Phone returns the phone number the link authenticated as, once ready.
func (h *Handle) Phone() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.phone
}

// WaitReady blocks until the handle becomes ready, is terminated, or ctx
// expires.
func (h *Handle) WaitReady(ctx context.Context) error {
	select {
	case <-h.ready:
		return nil
	case <-h.done:
		return apperrors.InvalidState(fmt.Sprintf("channel %s closed before becoming ready", h.key))
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Handle) setLink(link Link) {
	h.mu.Lock()
	h.link = link
	h.mu.Unlock()
}

func (h *Handle) setQR(code string) {
	h.mu.Lock()
	h.lastQR = code
	h.mu.Unlock()
}

func (h *Handle) markReady(phone string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.status != StatusInitializing {
		return false
	}
	h.status = StatusReady
	h.phone = phone
	close(h.ready)
	return true
}

// terminate moves the handle to its final state and closes the link. It is
// idempotent; only the first call closes anything.
func (h *Handle) terminate() error {
	h.mu.Lock()
	if h.status == StatusTerminated {
		h.mu.Unlock()
		return nil
	}
	h.status = StatusTerminated
	link := h.link
	close(h.done)
	h.mu.Unlock()

	if link != nil {
		return link.Close()
	}
	return nil
}

// Registry owns the set of live channels, keyed by phone number. All map
// access goes through the mutex; per-handle state has its own lock.
type Registry struct {
	transport    Transport
	handshakeTTL time.Duration
	log          zerolog.Logger
	qrOut        io.Writer

	mu       sync.Mutex
	channels map[string]*Handle
}

func NewRegistry(transport Transport, handshakeTTL time.Duration, logger zerolog.Logger) *Registry {
	return &Registry{
		transport:    transport,
		handshakeTTL: handshakeTTL,
		log:          logger,
		qrOut:        os.Stdout,
		channels:     make(map[string]*Handle),
	}
}

// Acquire registers a new channel under key and starts dialing. The key is
// reserved before the dial so that a concurrent Acquire for the same key is
// rejected rather than racing to overwrite a live channel.
func (r *Registry) Acquire(ctx context.Context, key string) (*Handle, error) {
	r.mu.Lock()
	if _, exists := r.channels[key]; exists {
		r.mu.Unlock()
		return nil, apperrors.AlreadyExists(fmt.Sprintf("channel %s", key))
	}
	h := newHandle(key)
	r.channels[key] = h
	r.mu.Unlock()

	link, err := r.transport.Dial(ctx, key)
	if err != nil {
		r.remove(key, h)
		_ = h.terminate()
		return nil, apperrors.External("whatsapp", err)
	}
	h.setLink(link)

	r.log.Info().Str("channel", key).Msg("Channel dialing started")
	go r.pump(h, link)
	return h, nil
}

// Release tears a channel down. The key leaves the live set no matter how
// the close goes; a close failure is surfaced after removal so a failed
// teardown can never leave a zombie entry behind.
func (r *Registry) Release(key string) error {
	r.mu.Lock()
	h, ok := r.channels[key]
	if !ok {
		r.mu.Unlock()
		return apperrors.NotFound(fmt.Sprintf("channel %s", key))
	}
	delete(r.channels, key)
	r.mu.Unlock()

	if err := h.terminate(); err != nil {
		r.log.Error().Err(err).Str("channel", key).Msg("Channel teardown failed")
		return apperrors.TeardownFailed(key, err)
	}
	r.log.Info().Str("channel", key).Msg("Channel released")
	return nil
}

// Send delivers a text message over the channel registered under key.
func (r *Registry) Send(ctx context.Context, key, toPhone, body string) error {
	r.mu.Lock()
	h, ok := r.channels[key]
	r.mu.Unlock()
	if !ok {
		return apperrors.NotBound(key)
	}

	h.mu.Lock()
	link := h.link
	ready := h.status == StatusReady
	h.mu.Unlock()
	if !ready || link == nil {
		return apperrors.NotBound(key)
	}

	if err := link.SendText(ctx, toPhone, body); err != nil {
		return apperrors.SendFailed(err)
	}
	return nil
}

// Handle returns the live handle for key, if any.
func (r *Registry) Handle(key string) (*Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.channels[key]
	return h, ok
}

// Keys lists the keys currently in the live set, in no particular order.
func (r *Registry) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.channels))
	for key := range r.channels {
		keys = append(keys, key)
	}
	return keys
}

// Shutdown releases every live channel. Teardown errors are logged, not
// returned; shutdown always drains the whole set.
func (r *Registry) Shutdown() {
	for _, key := range r.Keys() {
		if err := r.Release(key); err != nil {
			r.log.Warn().Err(err).Str("channel", key).Msg("Channel release failed during shutdown")
		}
	}
}

// remove deletes key only if it still maps to h, so a Release followed by a
// fresh Acquire is never clobbered by a stale pump goroutine.
func (r *Registry) remove(key string, h *Handle) {
	r.mu.Lock()
	if cur, ok := r.channels[key]; ok && cur == h {
		delete(r.channels, key)
	}
	r.mu.Unlock()
}

// pump consumes link events for one handle until the handle terminates.
func (r *Registry) pump(h *Handle, link Link) {
	var timeout <-chan time.Time
	if r.handshakeTTL > 0 {
		timer := time.NewTimer(r.handshakeTTL)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		select {
		case ev, ok := <-link.Events():
			if !ok {
				r.drop(h, "event stream closed")
				return
			}
			switch e := ev.(type) {
			case QREvent:
				h.setQR(e.Code)
				r.renderQR(h.key, e.Code)
			case ReadyEvent:
				if h.markReady(e.Phone) {
					timeout = nil
					r.log.Info().Str("channel", h.key).Str("phone", e.Phone).Msg("Channel ready")
				}
			case DisconnectedEvent:
				r.drop(h, e.Reason)
				return
			}
		case <-timeout:
			r.drop(h, "handshake timeout")
			return
		case <-h.done:
			return
		}
	}
}

func (r *Registry) drop(h *Handle, reason string) {
	r.remove(h.key, h)
	if err := h.terminate(); err != nil {
		r.log.Warn().Err(err).Str("channel", h.key).Msg("Link close failed after disconnect")
	}
	r.log.Info().Str("channel", h.key).Str("reason", reason).Msg("Channel terminated")
}

func (r *Registry) renderQR(key, code string) {
	r.log.Info().Str("channel", key).Msg("Pairing code received, scan with the WhatsApp app")
	qr, err := qrcode.New(code, qrcode.Medium)
	if err != nil {
		r.log.Warn().Err(err).Str("channel", key).Msg("Could not render pairing code")
		return
	}
	fmt.Fprint(r.qrOut, qr.ToSmallString(false))
}
