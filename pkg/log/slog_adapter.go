package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger.
// Useful for development when you want to see protocol events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("pass_id", event.PassID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	// Add optional identifiers
	if event.RemoteAddr != "" {
		attrs = append(attrs, slog.String("remote", event.RemoteAddr))
	}
	if event.Device != "" {
		attrs = append(attrs, slog.String("device", event.Device))
	}

	// Add type-specific attributes
	switch {
	case event.Record != nil:
		attrs = append(attrs,
			slog.String("service_type", event.Record.ServiceType),
			slog.String("instance", event.Record.Instance),
		)
		if event.Record.Host != "" {
			attrs = append(attrs, slog.String("host", event.Record.Host))
		}
		if event.Record.IPv4 != "" {
			attrs = append(attrs, slog.String("ipv4", event.Record.IPv4))
		}
	case event.Stream != nil:
		attrs = append(attrs,
			slog.String("session", event.Stream.SessionName),
			slog.Int("channels", event.Stream.Channels),
		)
		if event.Stream.MulticastAddr != "" {
			attrs = append(attrs, slog.String("multicast", event.Stream.MulticastAddr))
		}
		if event.Stream.Codec != "" {
			attrs = append(attrs, slog.String("codec", event.Stream.Codec))
		}
	case event.Frame != nil:
		attrs = append(attrs,
			slog.Int("frame_size", event.Frame.Size),
			slog.Bool("truncated", event.Frame.Truncated),
		)
	case event.State != nil:
		attrs = append(attrs,
			slog.String("entity", event.State.Entity),
			slog.String("old_state", event.State.OldState),
			slog.String("new_state", event.State.NewState),
		)
		if event.State.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.State.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
		if event.Error.Status != nil {
			attrs = append(attrs, slog.Int("status", *event.Error.Status))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "protocol", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
