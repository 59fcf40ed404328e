package synapticsmst

import (
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// DiscoverTopology walks the cascade behind auxIndex breadth-first,
// enumerating every hub it finds and probing each of its 4 downstream
// ports with Session.ProbeCascade. It is an explicit, opt-in helper; no
// other operation in this package calls it on its own.
func DiscoverTopology(auxIndex int) ([]Hub, error) {
	sess, err := Open(auxIndex)
	if err != nil {
		return nil, fmt.Errorf("synapticsmst: discover topology: %w", err)
	}
	defer sess.Close()
	return discoverTopologySession(sess, auxIndex)
}

// discoverTopologySession is the BFS walk itself, factored out from
// DiscoverTopology so it can run against an already-open Session (a
// simulated cascade in tests, or a caller that wants to reuse one
// Session across several helpers).
func discoverTopologySession(sess *Session, auxIndex int) ([]Hub, error) {
	type pending struct {
		addr Address
		kind Kind
	}
	queue := []pending{{Address{Layer: 0, RAD: 0}, KindDirect}}
	var hubs []Hub

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		sess.ConfigureConnection(n.addr)
		if err := sess.EnableRemoteControl(); err != nil {
			return hubs, fmt.Errorf("synapticsmst: discover topology: enable remote control at layer %d: %w", n.addr.Layer, err)
		}
		hub, err := readIdentity(sess, auxIndex, n.kind, n.addr)
		if err != nil {
			sess.DisableRemoteControl()
			return hubs, fmt.Errorf("synapticsmst: discover topology: %w", err)
		}
		hubs = append(hubs, hub)

		// Probing for downstream hubs requires tunneling through this
		// hub's own RC window, so it must happen before RC is disabled
		// again, the same way a recursive enumerate would probe a
		// hub's children while it is still the active remote-control
		// target.
		var children []Address
		if n.addr.Layer+1 < maxCascadeDepth {
			for port := uint8(0); port < 4; port++ {
				ok, err := sess.ProbeCascade(n.addr, port)
				if err != nil || !ok {
					continue
				}
				children = append(children, Address{
					Layer: n.addr.Layer + 1,
					RAD:   n.addr.RAD | uint16(port)<<(2*n.addr.Layer),
				})
			}
		}
		if err := sess.DisableRemoteControl(); err != nil {
			return hubs, fmt.Errorf("synapticsmst: discover topology: %w", err)
		}
		for _, child := range children {
			queue = append(queue, pending{child, KindRemote})
		}
	}
	return hubs, nil
}

// SaveTopology persists a discovered topology as CBOR, so a caller can
// cache a cascade instead of re-probing it on every run.
func SaveTopology(path string, hubs []Hub) error {
	data, err := cbor.Marshal(hubs)
	if err != nil {
		return fmt.Errorf("synapticsmst: encode topology: %w", err)
	}
	return os.WriteFile(path, data, 0o640)
}

// LoadTopology is the inverse of SaveTopology.
func LoadTopology(path string) ([]Hub, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("synapticsmst: load topology: %w", err)
	}
	var hubs []Hub
	if err := cbor.Unmarshal(data, &hubs); err != nil {
		return nil, fmt.Errorf("synapticsmst: decode topology: %w", err)
	}
	return hubs, nil
}
