package discovery

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/enbility/zeroconf/v3"

	"github.com/netaudio-project/netaudio-go/pkg/log"
)

// BrowserConfig configures browse behavior.
type BrowserConfig struct {
	// BrowseWindow is how long to listen for announcements in one pass.
	// Default: 5 seconds.
	BrowseWindow time.Duration

	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string
}

// DefaultBrowserConfig returns the default browser configuration.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		BrowseWindow: BrowseWindow,
	}
}

// Browser discovers Dante services via mDNS using zeroconf. One Browse call
// is one bounded-time discovery window; records do not accumulate across
// calls.
type Browser struct {
	config BrowserConfig
	logger log.Logger
}

// NewBrowser creates a new mDNS browser.
// Pass nil to disable protocol logging.
func NewBrowser(config BrowserConfig, logger log.Logger) *Browser {
	if config.BrowseWindow <= 0 {
		config.BrowseWindow = BrowseWindow
	}
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Browser{config: config, logger: logger}
}

// Browse runs one bounded-time multicast browse over all Dante service
// types and returns the resolved service records. A single unresolvable
// service never aborts the pass; it is dropped and logged. Browse returns
// an error only when the multicast browse facility itself could not be
// obtained for any service type.
func (b *Browser) Browse(ctx context.Context, passID string) ([]ServiceRecord, error) {
	windowCtx, cancel := context.WithTimeout(ctx, b.config.BrowseWindow)
	defer cancel()

	opts := b.browserOptions()

	var (
		mu      sync.Mutex
		records []ServiceRecord
		errs    []error
	)

	var wg sync.WaitGroup
	for _, serviceType := range ServiceTypes {
		entries := make(chan *zeroconf.ServiceEntry)
		removed := make(chan *zeroconf.ServiceEntry)

		// Collect and convert entries as they resolve. Removals within a
		// single window carry no information for a pass-scoped record set.
		wg.Add(1)
		go func(serviceType string, entries, removed <-chan *zeroconf.ServiceEntry) {
			defer wg.Done()
			for {
				select {
				case entry, ok := <-entries:
					if !ok {
						return
					}
					rec := b.entryToRecord(serviceType, entry, passID)
					if rec == nil {
						continue
					}
					mu.Lock()
					records = append(records, *rec)
					mu.Unlock()
				case _, ok := <-removed:
					if !ok {
						continue
					}
				case <-windowCtx.Done():
					return
				}
			}
		}(serviceType, entries, removed)

		wg.Add(1)
		go func(serviceType string, entries, removed chan *zeroconf.ServiceEntry) {
			defer wg.Done()
			if err := zeroconf.Browse(windowCtx, serviceType, Domain, entries, removed, opts...); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", serviceType, err))
				mu.Unlock()
			}
		}(serviceType, entries, removed)
	}

	wg.Wait()

	// Only a wholesale browse failure is pass-fatal. Partial failures with
	// no records still count: a silent network is empty, a broken one errors.
	if len(records) == 0 && len(errs) == len(ServiceTypes) {
		return nil, fmt.Errorf("%w: %v", ErrBrowseFailed, errs[0])
	}

	return records, nil
}

// browserOptions returns zeroconf client options based on config.
func (b *Browser) browserOptions() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption

	// Select specific interface if configured
	if b.config.Interface != "" {
		iface, err := net.InterfaceByName(b.config.Interface)
		if err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		}
	}

	return opts
}

// entryToRecord converts a zeroconf entry to a ServiceRecord. Returns nil
// when the entry carries no usable IPv4 address; the drop is logged at the
// discovery layer and the pass continues.
func (b *Browser) entryToRecord(serviceType string, entry *zeroconf.ServiceEntry, passID string) *ServiceRecord {
	if len(entry.AddrIPv4) == 0 {
		b.logger.Log(log.Event{
			Timestamp: time.Now(),
			PassID:    passID,
			Direction: log.DirectionIn,
			Layer:     log.LayerDiscovery,
			Category:  log.CategoryError,
			Error: &log.ErrorEventData{
				Message: ErrNoAddress.Error(),
				Context: entry.Instance,
			},
		})
		return nil
	}

	serverName := entry.HostName
	if serverName == "" {
		serverName = serverNameFromInstance(entry.Instance)
	}
	serverName = NormalizeServerName(serverName)

	rec := &ServiceRecord{
		ServiceType:  serviceType,
		InstanceName: entry.Instance,
		IPv4:         entry.AddrIPv4[0].String(),
		Port:         entry.Port,
		ServerName:   serverName,
		Properties:   parseTXT(entry.Text),
	}

	b.logger.Log(log.Event{
		Timestamp:  time.Now(),
		PassID:     passID,
		Direction:  log.DirectionIn,
		Layer:      log.LayerDiscovery,
		Category:   log.CategoryMessage,
		RemoteAddr: rec.IPv4,
		Record: &log.RecordEvent{
			ServiceType: serviceType,
			Instance:    rec.InstanceName,
			Host:        rec.ServerName,
			IPv4:        rec.IPv4,
			Port:        rec.Port,
		},
	})

	return rec
}
