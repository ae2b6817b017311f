package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func sampleEvent(layer Layer, category Category, device string) Event {
	return Event{
		Timestamp: time.Now().UTC().Truncate(time.Millisecond),
		PassID:    "pass-1",
		Direction: DirectionIn,
		Layer:     layer,
		Category:  category,
		Device:    device,
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	status := 5
	event := Event{
		Timestamp:  time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC),
		PassID:     "pass-1",
		Direction:  DirectionOut,
		Layer:      LayerCommand,
		Category:   CategoryError,
		RemoteAddr: "192.0.2.10:4440",
		Device:     "amp",
		Error: &ErrorEventData{
			Message: "device rejected subscription",
			Context: "subscribe",
			Status:  &status,
		},
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent() error = %v", err)
	}

	got, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent() error = %v", err)
	}

	if !got.Timestamp.Equal(event.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, event.Timestamp)
	}
	if got.PassID != event.PassID || got.Layer != event.Layer || got.Category != event.Category {
		t.Errorf("identity fields = %+v, want %+v", got, event)
	}
	if got.Error == nil || got.Error.Status == nil || *got.Error.Status != 5 {
		t.Errorf("Error payload = %+v, want status 5", got.Error)
	}
}

func TestFileLoggerReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.nlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	logger.Log(sampleEvent(LayerDiscovery, CategoryMessage, "amp"))
	logger.Log(sampleEvent(LayerSAP, CategoryMessage, ""))
	logger.Log(sampleEvent(LayerCommand, CategoryError, "amp"))

	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Close is idempotent and later Log calls are dropped silently.
	if err := logger.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	logger.Log(sampleEvent(LayerService, CategoryState, ""))

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		_, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		count++
	}
	if count != 3 {
		t.Errorf("read %d events, want 3", count)
	}
}

func TestFilteredReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.nlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	logger.Log(sampleEvent(LayerDiscovery, CategoryMessage, "amp"))
	logger.Log(sampleEvent(LayerSAP, CategoryMessage, "mixer"))
	logger.Log(sampleEvent(LayerSAP, CategoryError, "amp"))
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	layer := LayerSAP
	reader, err := NewFilteredReader(path, Filter{Layer: &layer, Device: "amp"})
	if err != nil {
		t.Fatalf("NewFilteredReader() error = %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if event.Layer != LayerSAP || event.Device != "amp" || event.Category != CategoryError {
		t.Errorf("filtered event = %+v, want the sap/amp/error one", event)
	}

	if _, err := reader.Next(); err != io.EOF {
		t.Errorf("Next() after last match = %v, want io.EOF", err)
	}
}

func TestMemoryLoggerCap(t *testing.T) {
	logger := NewMemoryLogger(2)
	logger.Log(sampleEvent(LayerDiscovery, CategoryMessage, "a"))
	logger.Log(sampleEvent(LayerDiscovery, CategoryMessage, "b"))
	logger.Log(sampleEvent(LayerDiscovery, CategoryMessage, "c"))

	events := logger.Events()
	if len(events) != 2 {
		t.Fatalf("len(Events()) = %d, want 2", len(events))
	}
	if events[0].Device != "b" || events[1].Device != "c" {
		t.Errorf("kept devices = %s, %s; want b, c (oldest dropped)",
			events[0].Device, events[1].Device)
	}

	logger.Reset()
	if len(logger.Events()) != 0 {
		t.Error("Reset() did not clear events")
	}
}
