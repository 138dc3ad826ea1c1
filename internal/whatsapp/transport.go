package whatsapp

import "context"

// ChannelStatus describes where a channel handle is in its lifecycle.
type ChannelStatus string

const (
	StatusInitializing ChannelStatus = "initializing"
	StatusReady        ChannelStatus = "ready"
	StatusTerminated   ChannelStatus = "terminated"
)

// Event is delivered by a Link while a channel is alive.
type Event interface {
	isEvent()
}

// QREvent carries a fresh pairing code to show the operator. Codes rotate
// while pairing is pending; only the latest one is scannable.
type QREvent struct {
	Code string
}

// ReadyEvent signals that the link is authenticated and usable.
type ReadyEvent struct {
	Phone string
}

// DisconnectedEvent signals that the link dropped, whatever the cause.
// The registry treats it as terminal; reconnecting means a fresh Acquire.
type DisconnectedEvent struct {
	Reason string
}

func (QREvent) isEvent()           {}
func (ReadyEvent) isEvent()        {}
func (DisconnectedEvent) isEvent() {}

// Link is a single live connection attempt to the messaging network.
// Implementations must keep Events open for the lifetime of the link and
// must tolerate Close being called more than once.
type Link interface {
	Events() <-chan Event
	SendText(ctx context.Context, toPhone, body string) error
	Close() error
}

// Transport dials links. The key is the phone number the channel is (or will
// be) bound to; address derivation from phone numbers is the transport's job.
type Transport interface {
	Dial(ctx context.Context, key string) (Link, error)
}
