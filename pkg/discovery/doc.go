// Package discovery finds Dante devices on the local network via multicast
// DNS. One discovery pass browses the fixed Dante service-type set for a
// bounded window, resolves each announcement into a ServiceRecord, and
// consolidates the records into one Device per physical host.
package discovery
