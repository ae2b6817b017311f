package coordinator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netaudio-project/netaudio-go/internal/testharness/mock"
	"github.com/netaudio-project/netaudio-go/pkg/discovery"
	"github.com/netaudio-project/netaudio-go/pkg/model"
	"github.com/netaudio-project/netaudio-go/pkg/sap"
)

func studioStream() sap.StreamInfo {
	return sap.StreamInfo{
		SessionName:   "Studio A",
		SessionID:     40414,
		OriginIP:      "169.254.10.20",
		MulticastAddr: "239.69.85.220",
		Port:          5004,
		Codec:         "L24/48000/2",
		ChannelCount:  2,
		ChannelInfo:   "2 channels: Tx Left, Tx Right",
	}
}

func ampRecords() []discovery.ServiceRecord {
	return []discovery.ServiceRecord{
		{
			ServiceType:  discovery.ServiceCMC,
			InstanceName: "amp._netaudio-cmc._udp.local.",
			IPv4:         "192.0.2.20",
			Port:         8700,
			ServerName:   "amp",
			Properties:   map[string]string{"id": "AA:BB:CC:DD:EE:FF"},
		},
	}
}

// populateAmp is an OnGetControls handler giving the amp two rx channels,
// one tx channel and a device-reported AES67 subscription pointing at the
// studio stream's multicast address with a numeric flow index.
func populateAmp(dev *model.Device) error {
	dev.RxChannels[1] = model.Channel{Number: 1, Name: "In L"}
	dev.RxChannels[2] = model.Channel{Number: 2, Name: "In R"}
	dev.TxChannels[1] = model.Channel{Number: 1, Name: "Out"}
	dev.Subscriptions = []model.Subscription{
		{
			RxChannelName: "In R",
			TxChannelName: "2",
			TxDeviceName:  "239.69.85.220",
			StatusCode:    9,
		},
	}
	return nil
}

func newTestCoordinator(t *testing.T) (*Coordinator, *mock.Browser, *mock.Listener, *mock.Subscriber, *mock.ControlClient) {
	t.Helper()

	browser := &mock.Browser{Records: ampRecords()}
	listener := &mock.Listener{Streams: map[string]sap.StreamInfo{"Studio A": studioStream()}}
	subscriber := &mock.Subscriber{}
	client := mock.NewControlClient()
	client.Handlers.OnGetControls = populateAmp

	coord := New(Config{
		Browser:        browser,
		Listener:       listener,
		Subscriber:     subscriber,
		ControlFactory: client.Factory(),
		FindBindIP:     func([]string) string { return "192.0.2.1" },
	})
	return coord, browser, listener, subscriber, client
}

func TestRefreshPublishesSnapshot(t *testing.T) {
	coord, _, listener, _, client := newTestCoordinator(t)

	snapshot, err := coord.Refresh(context.Background())
	require.NoError(t, err)

	require.Contains(t, snapshot, "amp")
	dev := snapshot["amp"]
	assert.Equal(t, "192.0.2.20", dev.IPv4)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", dev.MACAddress)
	assert.Equal(t, 2, dev.RxCount)
	assert.Equal(t, 1, dev.TxCount)

	assert.Equal(t, 1, client.ControlsCalls())
	assert.Equal(t, []string{"192.0.2.1"}, listener.BindIPs())
	assert.Equal(t, 1, coord.Streams().Len())

	// Accessor snapshot matches the returned one.
	assert.Equal(t, snapshot, coord.Snapshot())

	// The registry keeps the live device for later lookups.
	_, ok := coord.Registry().Get("amp")
	assert.True(t, ok)
}

func TestRefreshBrowseFailureKeepsSnapshot(t *testing.T) {
	coord, browser, _, _, _ := newTestCoordinator(t)

	first, err := coord.Refresh(context.Background())
	require.NoError(t, err)

	browser.Err = errors.New("network down")
	_, err = coord.Refresh(context.Background())
	require.ErrorIs(t, err, ErrUpdateFailed)

	// The previous snapshot stays authoritative.
	assert.Equal(t, first, coord.Snapshot())
}

func TestRefreshSAPFailureNotFatal(t *testing.T) {
	coord, _, listener, _, _ := newTestCoordinator(t)
	listener.Err = errors.New("join failed")

	snapshot, err := coord.Refresh(context.Background())
	require.NoError(t, err)
	assert.Contains(t, snapshot, "amp")
	assert.Equal(t, 0, coord.Streams().Len())
}

func TestRefreshNoBindIPSkipsSAP(t *testing.T) {
	coord, _, listener, _, _ := newTestCoordinator(t)
	coord.config.FindBindIP = func([]string) string { return "" }

	_, err := coord.Refresh(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listener.BindIPs())
}

func TestReconcileDerivesSelection(t *testing.T) {
	coord, _, _, _, _ := newTestCoordinator(t)

	_, err := coord.Refresh(context.Background())
	require.NoError(t, err)

	// The device reported an AES67 subscription on In R (channel 2) with
	// flow index "2"; reconciliation translates it to the option label.
	label, ok := coord.Selections().Get(SelectionKey{Device: "amp", RxChannel: 2})
	require.True(t, ok)
	assert.Equal(t, "[AES67] Studio A - Tx Right", label)

	assert.Equal(t, "[AES67] Studio A - Tx Right", coord.CurrentSource("amp", 2, "In R"))
}

func TestReconcileNeverOverwrites(t *testing.T) {
	coord, _, _, _, _ := newTestCoordinator(t)

	key := SelectionKey{Device: "amp", RxChannel: 2}
	coord.Selections().Set(key, "[AES67] Studio A - Tx Left")

	_, err := coord.Refresh(context.Background())
	require.NoError(t, err)

	label, _ := coord.Selections().Get(key)
	assert.Equal(t, "[AES67] Studio A - Tx Left", label,
		"runtime selection must win over reconciliation")
}

func TestReconcileSkipsUnmatchedSubscriptions(t *testing.T) {
	coord, _, _, _, client := newTestCoordinator(t)
	client.Handlers.OnGetControls = func(dev *model.Device) error {
		dev.RxChannels[1] = model.Channel{Number: 1, Name: "In L"}
		dev.Subscriptions = []model.Subscription{
			// Plain Dante subscription: tx device is a name, not an address.
			{RxChannelName: "In L", TxChannelName: "Out", TxDeviceName: "mixer"},
			// AES67 flow whose rx channel name no longer exists.
			{RxChannelName: "Gone", TxChannelName: "1", TxDeviceName: "239.69.85.220"},
		}
		return nil
	}

	_, err := coord.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, coord.Selections().Len())
}

func TestCurrentSourceFromDeviceReport(t *testing.T) {
	coord, _, _, _, client := newTestCoordinator(t)
	client.Handlers.OnGetControls = func(dev *model.Device) error {
		dev.RxChannels[1] = model.Channel{Number: 1, Name: "In L"}
		dev.Subscriptions = []model.Subscription{
			{RxChannelName: "In L", TxChannelName: "Out", TxDeviceName: "mixer"},
		}
		return nil
	}

	_, err := coord.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "mixer - Out", coord.CurrentSource("amp", 1, "In L"))
	assert.Equal(t, SubscriptionNone, coord.CurrentSource("amp", 2, "In R"))
	assert.Equal(t, SubscriptionNone, coord.CurrentSource("ghost", 1, "In L"))
}

func TestSourceOptions(t *testing.T) {
	coord, _, _, _, _ := newTestCoordinator(t)

	_, err := coord.Refresh(context.Background())
	require.NoError(t, err)

	options := coord.SourceOptions()
	assert.Equal(t, []string{
		"None",
		"amp - Out",
		"[AES67] Studio A - Tx Left",
		"[AES67] Studio A - Tx Right",
	}, options)
}

func TestSourceOptionsSortLexicographically(t *testing.T) {
	coord, _, _, _, client := newTestCoordinator(t)
	client.Handlers.OnGetControls = func(dev *model.Device) error {
		// Channel names deliberately out of number order.
		dev.TxChannels[1] = model.Channel{Number: 1, Name: "Zebra"}
		dev.TxChannels[2] = model.Channel{Number: 2, Name: "Alpha"}
		return nil
	}

	_, err := coord.Refresh(context.Background())
	require.NoError(t, err)

	options := coord.SourceOptions()
	assert.Equal(t, []string{
		"None",
		"amp - Alpha",
		"amp - Zebra",
		"[AES67] Studio A - Tx Left",
		"[AES67] Studio A - Tx Right",
	}, options, "labels must sort as whole strings, not by channel number")
}

// slowBrowser fails the test if two browse windows ever run at once.
type slowBrowser struct {
	inflight atomic.Int32
	overlaps atomic.Int32
}

func (b *slowBrowser) Browse(ctx context.Context, passID string) ([]discovery.ServiceRecord, error) {
	if b.inflight.Add(1) > 1 {
		b.overlaps.Add(1)
	}
	time.Sleep(5 * time.Millisecond)
	b.inflight.Add(-1)
	return ampRecords(), nil
}

func TestRefreshSerializesPasses(t *testing.T) {
	browser := &slowBrowser{}
	client := mock.NewControlClient()
	client.Handlers.OnGetControls = populateAmp

	coord := New(Config{
		Browser:        browser,
		Listener:       &mock.Listener{},
		Subscriber:     &mock.Subscriber{},
		ControlFactory: client.Factory(),
		FindBindIP:     func([]string) string { return "" },
	})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := coord.Refresh(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(0), browser.overlaps.Load(),
		"passes must queue, never run concurrently")
}

func TestStreamForOption(t *testing.T) {
	coord, _, _, _, _ := newTestCoordinator(t)
	coord.Streams().Upsert(studioStream())

	stream, flowChannel, ok := coord.StreamForOption("[AES67] Studio A - Tx Right")
	require.True(t, ok)
	assert.Equal(t, "Studio A", stream.SessionName)
	assert.Equal(t, 2, flowChannel)

	_, _, ok = coord.StreamForOption("[AES67] Studio A - Missing")
	assert.False(t, ok)
	_, _, ok = coord.StreamForOption("amp - Out")
	assert.False(t, ok)
}

func TestSetSubscriptionAES67(t *testing.T) {
	coord, _, _, subscriber, _ := newTestCoordinator(t)

	_, err := coord.Refresh(context.Background())
	require.NoError(t, err)

	err = coord.SetSubscription(context.Background(), "amp", 1, "[AES67] Studio A - Tx Left")
	require.NoError(t, err)

	calls := subscriber.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "192.0.2.20", calls[0].DeviceIP)
	assert.Equal(t, uint16(1), calls[0].RxChannel)
	assert.Equal(t, uint8(1), calls[0].FlowChannel)
	assert.Equal(t, "Studio A", calls[0].Stream.SessionName)

	label, ok := coord.Selections().Get(SelectionKey{Device: "amp", RxChannel: 1})
	require.True(t, ok)
	assert.Equal(t, "[AES67] Studio A - Tx Left", label)
}

func TestSetSubscriptionAES67FailureKeepsSelectionClear(t *testing.T) {
	coord, _, _, subscriber, _ := newTestCoordinator(t)
	subscriber.Err = errors.New("device rejected")

	_, err := coord.Refresh(context.Background())
	require.NoError(t, err)

	err = coord.SetSubscription(context.Background(), "amp", 1, "[AES67] Studio A - Tx Left")
	require.Error(t, err)

	_, ok := coord.Selections().Get(SelectionKey{Device: "amp", RxChannel: 1})
	assert.False(t, ok, "selection must only be recorded on success")
}

func TestSetSubscriptionDante(t *testing.T) {
	coord, browser, _, _, client := newTestCoordinator(t)
	browser.Records = append(browser.Records, discovery.ServiceRecord{
		ServiceType:  discovery.ServiceCMC,
		InstanceName: "mixer._netaudio-cmc._udp.local.",
		IPv4:         "192.0.2.30",
		ServerName:   "mixer",
		Properties:   map[string]string{},
	})
	client.Handlers.OnGetControls = func(dev *model.Device) error {
		switch dev.ServerName {
		case "amp":
			dev.RxChannels[1] = model.Channel{Number: 1, Name: "In L"}
		case "mixer":
			dev.TxChannels[1] = model.Channel{Number: 1, Name: "Master L"}
		}
		return nil
	}

	_, err := coord.Refresh(context.Background())
	require.NoError(t, err)

	// A leftover AES67 pick is superseded by the Dante routing.
	coord.Selections().Set(SelectionKey{Device: "amp", RxChannel: 1}, "[AES67] Studio A - Tx Left")

	err = coord.SetSubscription(context.Background(), "amp", 1, "mixer - Master L")
	require.NoError(t, err)

	added := client.Added()
	require.Len(t, added, 1)
	assert.Equal(t, "In L", added[0].RxChannel.Name)
	assert.Equal(t, "Master L", added[0].TxChannel.Name)
	assert.Equal(t, "mixer", added[0].TxDeviceName)

	_, ok := coord.Selections().Get(SelectionKey{Device: "amp", RxChannel: 1})
	assert.False(t, ok)
}

func TestSetSubscriptionNone(t *testing.T) {
	coord, _, _, _, client := newTestCoordinator(t)

	_, err := coord.Refresh(context.Background())
	require.NoError(t, err)

	coord.Selections().Set(SelectionKey{Device: "amp", RxChannel: 1}, "[AES67] Studio A - Tx Left")

	err = coord.SetSubscription(context.Background(), "amp", 1, SubscriptionNone)
	require.NoError(t, err)

	removed := client.Removed()
	require.Len(t, removed, 1)
	assert.Equal(t, "In L", removed[0].Name)

	_, ok := coord.Selections().Get(SelectionKey{Device: "amp", RxChannel: 1})
	assert.False(t, ok)
}

func TestSetSubscriptionErrors(t *testing.T) {
	coord, _, _, _, _ := newTestCoordinator(t)

	_, err := coord.Refresh(context.Background())
	require.NoError(t, err)

	ctx := context.Background()

	err = coord.SetSubscription(ctx, "ghost", 1, SubscriptionNone)
	assert.ErrorIs(t, err, ErrDeviceNotFound)

	err = coord.SetSubscription(ctx, "amp", 99, SubscriptionNone)
	assert.ErrorIs(t, err, ErrChannelNotFound)

	err = coord.SetSubscription(ctx, "amp", 1, "[AES67] Unknown - Ch1")
	assert.ErrorIs(t, err, ErrStreamNotFound)

	err = coord.SetSubscription(ctx, "amp", 1, "ghost - Out")
	assert.ErrorIs(t, err, ErrDeviceNotFound)

	err = coord.SetSubscription(ctx, "amp", 1, "amp - Ghost")
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestReconcileChannelNameFallbacks(t *testing.T) {
	stream := studioStream()

	tests := []struct {
		txChannel string
		want      string
	}{
		{"Tx Right", "Tx Right"}, // exact name match
		{"2", "Tx Right"},        // 1-based index
		{"99", "Tx Left"},        // out of range falls back to first
		{"garbage", "Tx Left"},   // unparseable falls back to first
	}

	for _, tt := range tests {
		if got := reconcileChannelName(stream, tt.txChannel); got != tt.want {
			t.Errorf("reconcileChannelName(%q) = %q, want %q", tt.txChannel, got, tt.want)
		}
	}
}

func TestSelectionMap(t *testing.T) {
	m := NewSelectionMap()
	key := SelectionKey{Device: "amp", RxChannel: 1}

	assert.True(t, m.SetIfAbsent(key, "first"))
	assert.False(t, m.SetIfAbsent(key, "second"))

	label, ok := m.Get(key)
	require.True(t, ok)
	assert.Equal(t, "first", label)

	m.Set(key, "override")
	label, _ = m.Get(key)
	assert.Equal(t, "override", label)

	m.Remove(key)
	_, ok = m.Get(key)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}
