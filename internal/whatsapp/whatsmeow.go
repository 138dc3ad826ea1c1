package whatsapp

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"

	"github.com/72tommy72/HRMate/internal/util"
)

// MeowTransport dials WhatsApp Web multi-device links via whatsmeow.
// Device credentials live in a Postgres-backed sqlstore so a phone that
// already paired can reconnect without showing a new QR code.
type MeowTransport struct {
	container *sqlstore.Container
	log       zerolog.Logger
}

func NewMeowTransport(ctx context.Context, dsn string, logger zerolog.Logger) (*MeowTransport, error) {
	container, err := sqlstore.New(ctx, "postgres", dsn, waLog.Noop)
	if err != nil {
		return nil, fmt.Errorf("whatsapp device store: %w", err)
	}
	return &MeowTransport{container: container, log: logger}, nil
}

func (t *MeowTransport) Dial(ctx context.Context, key string) (Link, error) {
	device, err := t.deviceFor(ctx, key)
	if err != nil {
		return nil, err
	}

	client := whatsmeow.NewClient(device, waLog.Noop)
	link := &meowLink{
		client: client,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}
	client.AddEventHandler(link.handleEvent)

	// A device with no stored ID has never paired; pairing codes only flow
	// when the QR channel is requested before Connect.
	if client.Store.ID == nil {
		qrChan, err := client.GetQRChannel(ctx)
		if err != nil {
			return nil, fmt.Errorf("qr channel: %w", err)
		}
		go link.pumpQR(qrChan)
	}

	if err := client.Connect(); err != nil {
		// The QR pump and the event handler are already attached; tear the
		// link down so they unwind instead of leaking.
		link.Close()
		return nil, fmt.Errorf("connect: %w", err)
	}
	return link, nil
}

// deviceFor reuses the stored device whose JID matches the phone number, or
// allocates a fresh unpaired device when none exists.
func (t *MeowTransport) deviceFor(ctx context.Context, phone string) (*store.Device, error) {
	normalized := util.NormalizePhone(phone)
	devices, err := t.container.GetAllDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	for _, device := range devices {
		if device.ID != nil && device.ID.User == normalized {
			return device, nil
		}
	}
	return t.container.NewDevice(), nil
}

type meowLink struct {
	client *whatsmeow.Client
	events chan Event
	done   chan struct{}

	closeOnce sync.Once
}

func (l *meowLink) Events() <-chan Event { return l.events }

func (l *meowLink) SendText(ctx context.Context, toPhone, body string) error {
	jid := types.NewJID(util.NormalizePhone(toPhone), types.DefaultUserServer)
	_, err := l.client.SendMessage(ctx, jid, &waE2E.Message{
		Conversation: proto.String(body),
	})
	return err
}

func (l *meowLink) Close() error {
	l.closeOnce.Do(func() {
		close(l.done)
		if l.client != nil {
			l.client.Disconnect()
		}
	})
	return nil
}

// emit never blocks past link closure, so a late whatsmeow callback cannot
// hang on a channel nobody drains anymore.
func (l *meowLink) emit(ev Event) {
	select {
	case l.events <- ev:
	case <-l.done:
	}
}

func (l *meowLink) handleEvent(evt interface{}) {
	switch e := evt.(type) {
	case *events.Connected:
		phone := ""
		if l.client.Store.ID != nil {
			phone = l.client.Store.ID.User
		}
		l.emit(ReadyEvent{Phone: phone})
	case *events.Disconnected:
		l.emit(DisconnectedEvent{Reason: "stream disconnected"})
	case *events.LoggedOut:
		l.emit(DisconnectedEvent{Reason: fmt.Sprintf("logged out: %v", e.Reason)})
	}
}

func (l *meowLink) pumpQR(qrChan <-chan whatsmeow.QRChannelItem) {
	for item := range qrChan {
		switch item.Event {
		case "code":
			l.emit(QREvent{Code: item.Code})
		case "timeout":
			l.emit(DisconnectedEvent{Reason: "pairing timed out"})
		}
	}
}
