// Package control defines the boundary to the per-device Dante
// control-channel client. The proprietary control protocol itself is out
// of scope; the coordinator consumes implementations of Client opaquely.
// The package also carries the device capability tables (sample rates,
// encodings, gain labels, AVIO models) shared by consumers.
package control
