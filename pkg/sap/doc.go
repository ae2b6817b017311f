// Package sap discovers AES67 streams announced over the Session
// Announcement Protocol. It decodes SAP datagrams, parses the embedded SDP
// session description into StreamInfo descriptors, and accumulates them in
// a process-lifetime cache keyed by session name.
package sap
