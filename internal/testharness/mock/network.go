package mock

import (
	"context"
	"sync"

	"github.com/netaudio-project/netaudio-go/pkg/discovery"
	"github.com/netaudio-project/netaudio-go/pkg/sap"
)

// Browser is a scripted mDNS browser. Each Browse call returns Records and
// Err as configured.
type Browser struct {
	Records []discovery.ServiceRecord
	Err     error

	mu     sync.Mutex
	browse int
}

func (b *Browser) Browse(_ context.Context, _ string) ([]discovery.ServiceRecord, error) {
	b.mu.Lock()
	b.browse++
	b.mu.Unlock()
	if b.Err != nil {
		return nil, b.Err
	}
	return append([]discovery.ServiceRecord(nil), b.Records...), nil
}

// Browses returns how many times Browse ran.
func (b *Browser) Browses() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.browse
}

// Listener is a scripted SAP listener returning a fixed stream set.
type Listener struct {
	Streams map[string]sap.StreamInfo
	Err     error

	mu      sync.Mutex
	bindIPs []string
}

func (l *Listener) Listen(bindIP, _ string) (map[string]sap.StreamInfo, error) {
	l.mu.Lock()
	l.bindIPs = append(l.bindIPs, bindIP)
	l.mu.Unlock()
	if l.Err != nil {
		return nil, l.Err
	}
	out := make(map[string]sap.StreamInfo, len(l.Streams))
	for name, info := range l.Streams {
		out[name] = info
	}
	return out, nil
}

// BindIPs returns the bind addresses passed to Listen.
func (l *Listener) BindIPs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.bindIPs...)
}

// SubscribeCall records one AES67 subscribe command.
type SubscribeCall struct {
	DeviceIP    string
	RxChannel   uint16
	FlowChannel uint8
	Stream      sap.StreamInfo
}

// Subscriber is a scripted AES67 stream subscriber.
type Subscriber struct {
	Err error

	mu    sync.Mutex
	calls []SubscribeCall
}

func (s *Subscriber) Subscribe(deviceIP string, rxChannel uint16, flowChannel uint8, stream sap.StreamInfo, _ string) error {
	s.mu.Lock()
	s.calls = append(s.calls, SubscribeCall{
		DeviceIP:    deviceIP,
		RxChannel:   rxChannel,
		FlowChannel: flowChannel,
		Stream:      stream,
	})
	s.mu.Unlock()
	return s.Err
}

// Calls returns the recorded subscribe commands.
func (s *Subscriber) Calls() []SubscribeCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SubscribeCall(nil), s.calls...)
}
