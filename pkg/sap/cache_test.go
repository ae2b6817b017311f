package sap

import (
	"reflect"
	"testing"
)

func TestCacheMonotonic(t *testing.T) {
	cache := NewCache()

	cache.Upsert(StreamInfo{SessionName: "Studio A", Port: 5004})
	cache.Upsert(StreamInfo{SessionName: "Studio B", Port: 5006})
	if cache.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cache.Len())
	}

	// A window that saw only Studio B must not drop Studio A.
	cache.UpsertAll(map[string]StreamInfo{
		"Studio B": {SessionName: "Studio B", Port: 5008},
	})

	if cache.Len() != 2 {
		t.Errorf("Len() after partial window = %d, want 2", cache.Len())
	}
	if _, ok := cache.Get("Studio A"); !ok {
		t.Error("Studio A evicted by a window that did not announce it")
	}
	b, _ := cache.Get("Studio B")
	if b.Port != 5008 {
		t.Errorf("Studio B port = %d, want re-announced 5008", b.Port)
	}
}

func TestCacheIgnoresEmptyNames(t *testing.T) {
	cache := NewCache()
	cache.Upsert(StreamInfo{})
	cache.UpsertAll(map[string]StreamInfo{"": {}})
	if cache.Len() != 0 {
		t.Errorf("Len() = %d, want 0", cache.Len())
	}
}

func TestCacheNamesSorted(t *testing.T) {
	cache := NewCache()
	cache.Upsert(StreamInfo{SessionName: "Zulu"})
	cache.Upsert(StreamInfo{SessionName: "Alpha"})
	cache.Upsert(StreamInfo{SessionName: "Mike"})

	want := []string{"Alpha", "Mike", "Zulu"}
	if got := cache.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestCacheSnapshotIsolated(t *testing.T) {
	cache := NewCache()
	cache.Upsert(StreamInfo{SessionName: "Studio A", Port: 5004})

	snap := cache.Snapshot()
	snap["Studio A"] = StreamInfo{SessionName: "Studio A", Port: 9999}

	got, _ := cache.Get("Studio A")
	if got.Port != 5004 {
		t.Errorf("cache mutated through snapshot: port = %d, want 5004", got.Port)
	}
}
