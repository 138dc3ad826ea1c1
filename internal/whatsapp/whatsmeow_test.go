package whatsapp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mau.fi/whatsmeow"
)

func TestMeowLinkTeardown(t *testing.T) {
	t.Run("pump exits after close even with a full event buffer", func(t *testing.T) {
		qrChan := make(chan whatsmeow.QRChannelItem, 2)
		link := &meowLink{events: make(chan Event, 1), done: make(chan struct{})}

		pumpDone := make(chan struct{})
		go func() {
			link.pumpQR(qrChan)
			close(pumpDone)
		}()

		qrChan <- whatsmeow.QRChannelItem{Event: "code", Code: "qr-1"}
		select {
		case ev := <-link.Events():
			qr, ok := ev.(QREvent)
			require.True(t, ok)
			assert.Equal(t, "qr-1", qr.Code)
		case <-time.After(time.Second):
			t.Fatal("no QR event delivered")
		}

		// A dial abandoned after the pump started: the link is closed and
		// nobody drains it anymore. Late codes must not wedge the pump.
		require.NoError(t, link.Close())
		qrChan <- whatsmeow.QRChannelItem{Event: "code", Code: "qr-2"}
		qrChan <- whatsmeow.QRChannelItem{Event: "code", Code: "qr-3"}
		close(qrChan)

		select {
		case <-pumpDone:
		case <-time.After(time.Second):
			t.Fatal("pump goroutine leaked after close")
		}
	})

	t.Run("close is idempotent", func(t *testing.T) {
		link := &meowLink{events: make(chan Event, 1), done: make(chan struct{})}
		require.NoError(t, link.Close())
		require.NoError(t, link.Close())
	})
}
