// Package log provides structured protocol logging for netaudio.
//
// This package defines the Logger interface and Event types for capturing
// protocol-level events at multiple layers (discovery, SAP, command,
// service). It is separate from operational logging (slog) - protocol
// capture provides a complete machine-readable event trace of each refresh
// pass for debugging and analysis.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("/var/log/netaudio/monitor.nlog")
//
//	// Both: use MultiLogger
//	cfg.ProtocolLogger = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    log.NewFileLogger("/var/log/netaudio/monitor.nlog"),
//	)
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Discovery: resolved mDNS service records (RecordEvent)
//   - SAP: parsed stream announcements (StreamEvent)
//   - Command: raw AES67 command frames (FrameEvent)
//   - Service: pass and selection state changes (StateEvent)
//
// Errors at any layer use ErrorEventData.
//
// # File Format
//
// Log files use CBOR encoding with .nlog extension and can be read back
// with Reader, optionally filtered by pass, layer, device or time range.
package log
