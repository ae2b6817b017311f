// Package coordinator ties the discovery, SAP and command layers into the
// periodic refresh pipeline. A Coordinator owns the cross-pass state (the
// device registry, the AES67 stream cache and the selection map), runs one
// pass per Refresh call, and exposes the published snapshot plus the
// source-option and subscription operations built on top of it.
package coordinator
