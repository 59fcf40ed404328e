package synapticsmst

import (
	"path/filepath"
	"testing"
)

func TestDiscoverTopologyWalksCascade(t *testing.T) {
	root, child, grandchild := buildCascade()
	root.firmwareVersion = [3]byte{1, 0, 0}
	child.firmwareVersion = [3]byte{2, 0, 0}
	grandchild.firmwareVersion = [3]byte{3, 0, 0}
	sess := newTestSession(root)

	hubs, err := discoverTopologySession(sess, 0)
	if err != nil {
		t.Fatalf("discoverTopologySession: %v", err)
	}
	if len(hubs) != 3 {
		t.Fatalf("want 3 hubs, got %d: %+v", len(hubs), hubs)
	}
	if hubs[0].Kind != KindDirect || hubs[0].Layer != 0 {
		t.Fatalf("want root first, got %+v", hubs[0])
	}
	for _, h := range hubs[1:] {
		if h.Kind != KindRemote {
			t.Fatalf("want downstream hubs marked KindRemote, got %+v", h)
		}
	}
}

func TestSaveLoadTopologyRoundTrip(t *testing.T) {
	hubs := []Hub{
		{Kind: KindDirect, AuxIndex: 0, FirmwareVersion: "v1.02.003", BoardID: 0x0102, ChipID: "VMM1020"},
		{Kind: KindRemote, AuxIndex: 0, Layer: 1, RAD: 1, FirmwareVersion: "v2.00.000", BoardID: BoardIDUnknown, ChipID: "VMM2020"},
	}
	path := filepath.Join(t.TempDir(), "topology.cbor")

	if err := SaveTopology(path, hubs); err != nil {
		t.Fatalf("SaveTopology: %v", err)
	}
	got, err := LoadTopology(path)
	if err != nil {
		t.Fatalf("LoadTopology: %v", err)
	}
	if len(got) != len(hubs) {
		t.Fatalf("want %d hubs, got %d", len(hubs), len(got))
	}
	for i := range hubs {
		if got[i] != hubs[i] {
			t.Fatalf("hub %d round-tripped incorrectly: want %+v, got %+v", i, hubs[i], got[i])
		}
	}
}
