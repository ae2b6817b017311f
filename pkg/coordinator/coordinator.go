package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/netaudio-project/netaudio-go/pkg/control"
	"github.com/netaudio-project/netaudio-go/pkg/discovery"
	"github.com/netaudio-project/netaudio-go/pkg/log"
	"github.com/netaudio-project/netaudio-go/pkg/model"
	"github.com/netaudio-project/netaudio-go/pkg/sap"
)

// DefaultScanInterval is the suggested period between refresh passes.
const DefaultScanInterval = 30 * time.Second

// SubscriptionNone is the option label that clears a channel's routing.
const SubscriptionNone = "None"

// Coordinator errors.
var (
	// ErrUpdateFailed wraps a pass-level discovery failure. The previous
	// snapshot stays authoritative until the next successful pass.
	ErrUpdateFailed = errors.New("coordinator: update failed")

	// ErrDeviceNotFound indicates the named device is not in the registry.
	ErrDeviceNotFound = errors.New("coordinator: device not found")

	// ErrChannelNotFound indicates the device has no such channel.
	ErrChannelNotFound = errors.New("coordinator: channel not found")

	// ErrStreamNotFound indicates the option names no cached AES67 stream
	// channel.
	ErrStreamNotFound = errors.New("coordinator: stream not found")

	// ErrNoDeviceAddress indicates the device record carries no address.
	ErrNoDeviceAddress = errors.New("coordinator: device has no address")
)

// Config configures a Coordinator.
type Config struct {
	// Browser runs the mDNS discovery window. Required.
	Browser Browser

	// Listener runs the SAP listen window. Required.
	Listener SAPListener

	// Subscriber issues AES67 subscribe commands. Required.
	Subscriber StreamSubscriber

	// ControlFactory creates per-device control clients. Required.
	ControlFactory control.ClientFactory

	// FindBindIP locates the SAP join address. Defaults to sap.FindBindIP.
	FindBindIP BindIPFinder

	// Logger receives protocol events. Nil disables logging.
	Logger log.Logger
}

// Coordinator owns the refresh pipeline and the cross-pass state: the
// device registry, the AES67 stream cache and the selection map. One
// Refresh call is one pass; passes never overlap. Concurrent Refresh
// calls queue behind the running pass.
type Coordinator struct {
	config     Config
	logger     log.Logger
	registry   *model.Registry
	streams    *sap.Cache
	selections *SelectionMap

	// passMu serializes passes. A second SAP listen window on the same
	// port would fail to bind, and snapshots must publish in pass order.
	passMu sync.Mutex

	mu       sync.RWMutex
	snapshot model.Snapshot
}

// New creates a Coordinator with empty state.
func New(config Config) *Coordinator {
	if config.FindBindIP == nil {
		config.FindBindIP = sap.FindBindIP
	}
	logger := config.Logger
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Coordinator{
		config:     config,
		logger:     logger,
		registry:   model.NewRegistry(),
		streams:    sap.NewCache(),
		selections: NewSelectionMap(),
	}
}

// Registry returns the cross-pass device registry.
func (c *Coordinator) Registry() *model.Registry {
	return c.registry
}

// Streams returns the AES67 stream cache.
func (c *Coordinator) Streams() *sap.Cache {
	return c.streams
}

// Selections returns the selection map.
func (c *Coordinator) Selections() *SelectionMap {
	return c.selections
}

// Snapshot returns the snapshot published by the last successful pass.
func (c *Coordinator) Snapshot() model.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Refresh runs one discovery pass: browse mDNS, consolidate devices, query
// per-device controls, listen for SAP announcements, reconcile selections,
// then publish a new snapshot.
//
// Only a wholesale browse failure fails the pass (wrapped in
// ErrUpdateFailed); every per-device or SAP-stage failure is logged and
// the pass continues. On failure no snapshot is published and the previous
// one stays authoritative.
//
// Refresh is safe for concurrent use; a call made while a pass is running
// blocks until that pass finishes, then runs its own.
func (c *Coordinator) Refresh(ctx context.Context) (model.Snapshot, error) {
	c.passMu.Lock()
	defer c.passMu.Unlock()

	passID := uuid.NewString()
	c.logState(passID, "pass", "", "started", "")

	records, err := c.config.Browser.Browse(ctx, passID)
	if err != nil {
		c.logState(passID, "pass", "started", "failed", err.Error())
		return nil, fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hosts := discovery.Consolidate(records)

	// Per-device control queries fan out; each device's query-then-merge
	// stays strictly ordered inside its own goroutine, and one device's
	// failure never aborts the others.
	var wg sync.WaitGroup
	for _, dev := range hosts {
		wg.Add(1)
		go func(dev *model.Device) {
			defer wg.Done()
			client := c.config.ControlFactory(dev)
			if err := client.GetControls(ctx, dev); err != nil {
				c.logError(passID, dev.DisplayName(), "get_controls", err)
			}
		}(dev)
	}
	wg.Wait()

	// Re-key by display name for the published snapshot; the control
	// query may have replaced the default server-name-derived name.
	byName := make(map[string]*model.Device, len(hosts))
	deviceIPs := make([]string, 0, len(hosts))
	for _, dev := range hosts {
		byName[dev.DisplayName()] = dev
		if dev.IPv4 != "" {
			deviceIPs = append(deviceIPs, dev.IPv4)
		}
	}

	c.runSAPStage(passID, deviceIPs)
	if err := ctx.Err(); err != nil {
		// Window completed; abandon downstream processing on cancellation
		// rather than publishing a half-reconciled snapshot.
		return nil, err
	}

	reconciled := c.reconcile(byName)
	if reconciled > 0 {
		c.logState(passID, "selection", "", "reconciled",
			fmt.Sprintf("%d entries", reconciled))
	}

	snapshot := make(model.Snapshot, len(byName))
	for name, dev := range byName {
		snapshot[name] = model.BuildSnapshot(dev)
	}

	c.registry.UpdateFromPass(byName)

	c.mu.Lock()
	c.snapshot = snapshot
	c.mu.Unlock()

	c.logState(passID, "pass", "started", "completed",
		fmt.Sprintf("%d devices, %d streams", len(snapshot), c.streams.Len()))
	return snapshot, nil
}

// runSAPStage joins the SAP group and merges one listen window into the
// stream cache. The blocking socket work runs in its own goroutine and is
// joined by channel; any failure here is logged and skipped, never fatal
// to the pass.
func (c *Coordinator) runSAPStage(passID string, deviceIPs []string) {
	bindIP := c.config.FindBindIP(deviceIPs)
	if bindIP == "" {
		c.logState(passID, "sap", "", "skipped", "no route to any device")
		return
	}

	type sapResult struct {
		streams map[string]sap.StreamInfo
		err     error
	}

	done := make(chan sapResult, 1)
	go func() {
		streams, err := c.config.Listener.Listen(bindIP, passID)
		done <- sapResult{streams: streams, err: err}
	}()

	// The listen window itself is non-preemptible; wait for it even when
	// the context is cancelled and let the caller abandon the result.
	res := <-done
	if res.err != nil {
		c.logError(passID, "", "sap listen", res.err)
		return
	}
	if len(res.streams) > 0 {
		c.streams.UpsertAll(res.streams)
	}
}

func (c *Coordinator) logState(passID, entity, oldState, newState, reason string) {
	c.logger.Log(log.Event{
		Timestamp: time.Now(),
		PassID:    passID,
		Direction: log.DirectionOut,
		Layer:     log.LayerService,
		Category:  log.CategoryState,
		State: &log.StateEvent{
			Entity:   entity,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

func (c *Coordinator) logError(passID, device, context string, err error) {
	c.logger.Log(log.Event{
		Timestamp: time.Now(),
		PassID:    passID,
		Direction: log.DirectionIn,
		Layer:     log.LayerService,
		Category:  log.CategoryError,
		Device:    device,
		Error: &log.ErrorEventData{
			Message: err.Error(),
			Context: context,
		},
	})
}
