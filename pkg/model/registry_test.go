package model

import "testing"

func TestRegistryUpdateFromPass(t *testing.T) {
	r := NewRegistry()

	a := NewDevice("amp")
	b := NewDevice("mixer")
	r.UpdateFromPass(map[string]*Device{"amp": a, "mixer": b})

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}

	// Next pass sees only the amp; the mixer stays but its miss count grows.
	r.UpdateFromPass(map[string]*Device{"amp": a})

	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (devices are never evicted)", r.Len())
	}
	if got := r.MissCount("mixer"); got != 1 {
		t.Errorf("MissCount(mixer) = %d, want 1", got)
	}
	if got := r.MissCount("amp"); got != 0 {
		t.Errorf("MissCount(amp) = %d, want 0", got)
	}

	r.UpdateFromPass(map[string]*Device{"amp": a})
	if got := r.MissCount("mixer"); got != 2 {
		t.Errorf("MissCount(mixer) = %d, want 2", got)
	}

	// Reappearing resets the counter.
	r.UpdateFromPass(map[string]*Device{"amp": a, "mixer": b})
	if got := r.MissCount("mixer"); got != 0 {
		t.Errorf("MissCount(mixer) after reappearance = %d, want 0", got)
	}
}

func TestDeviceChannelLookup(t *testing.T) {
	dev := NewDevice("amp")
	dev.RxChannels[1] = Channel{Number: 1, Name: "Input L"}
	dev.RxChannels[2] = Channel{Number: 2, Name: "Input R"}
	dev.TxChannels[1] = Channel{Number: 1, Name: "Out"}

	ch, ok := dev.RxChannelByName("Input R")
	if !ok || ch.Number != 2 {
		t.Errorf("RxChannelByName(Input R) = %+v, %v; want channel 2", ch, ok)
	}
	if _, ok := dev.RxChannelByName("missing"); ok {
		t.Error("RxChannelByName(missing) = true, want false")
	}
	if _, ok := dev.TxChannelByName("Out"); !ok {
		t.Error("TxChannelByName(Out) = false, want true")
	}
}

func TestDeviceDisplayName(t *testing.T) {
	dev := NewDevice("switch1")
	if dev.DisplayName() != "switch1" {
		t.Errorf("DisplayName() = %q, want server name", dev.DisplayName())
	}

	dev.Name = "Main Hall Amp"
	if dev.DisplayName() != "Main Hall Amp" {
		t.Errorf("DisplayName() = %q, want control-channel name", dev.DisplayName())
	}
}

func TestBuildSnapshot(t *testing.T) {
	dev := NewDevice("amp")
	dev.Name = "Main Amp"
	dev.IPv4 = "192.0.2.20"
	dev.RxChannels[1] = Channel{Number: 1, Name: "In L"}
	dev.TxChannels[1] = Channel{Number: 1, Name: "Out L"}
	dev.TxChannels[2] = Channel{Number: 2, Name: "Out R"}
	dev.Subscriptions = []Subscription{
		{RxChannelName: "In L", TxChannelName: "Out", TxDeviceName: "mixer", StatusCode: 9},
	}

	snap := BuildSnapshot(dev)
	if snap.Name != "Main Amp" || snap.ServerName != "amp" {
		t.Errorf("identity = %q/%q, want Main Amp/amp", snap.Name, snap.ServerName)
	}
	if snap.RxCount != 1 || snap.TxCount != 2 {
		t.Errorf("counts = %d rx / %d tx, want 1/2", snap.RxCount, snap.TxCount)
	}
	if len(snap.Subscriptions) != 1 || snap.Subscriptions[0].StatusCode != 9 {
		t.Errorf("Subscriptions = %+v, want one entry with status 9", snap.Subscriptions)
	}
}
