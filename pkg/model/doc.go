// Package model defines the device data model shared by discovery and the
// coordinator: devices with their channels and reported subscriptions, the
// cross-pass device registry, and the published snapshot types.
package model
