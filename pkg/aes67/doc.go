// Package aes67 implements the reverse-engineered Dante command that
// subscribes a device receive channel to an AES67 multicast stream: the
// fixed-layout 112-byte request frame, the acknowledgement decoder, and a
// UDP client for the round-trip.
package aes67
