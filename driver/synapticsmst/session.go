package synapticsmst

import (
	"fmt"
	"time"
)

// Session is a single open connection to one physical AUX node, addressed
// at a particular cascade depth (Layer/RAD). Only one operation may be in
// flight on a Session at a time; the protocol itself has no notion of
// concurrent commands, so callers must not share a Session across
// goroutines.
type Session struct {
	aux       AuxEndpoint
	addr      Address
	remaining uint8
	rcTimeout time.Duration
}

// Open connects to the AUX node at the given DRM index and probes it for
// a Synaptics vendor ID.
func Open(auxIndex int) (*Session, error) {
	path, err := AuxPath(auxIndex)
	if err != nil {
		return nil, err
	}
	dev, err := openAuxDevice(path)
	if err != nil {
		return nil, fmt.Errorf("synapticsmst: open aux node %d: %w", auxIndex, err)
	}
	return &Session{aux: dev, rcTimeout: defaultRCTimeout}, nil
}

// Close releases the underlying AUX endpoint. Any DPCD operation
// attempted afterward returns ErrSessionClosed.
func (s *Session) Close() error {
	if s.aux == nil {
		return nil
	}
	aux := s.aux
	s.aux = nil
	return aux.Close()
}
