package synapticsmst

import "errors"

// Address names a hub's position in a DisplayPort MST cascade: Layer is
// the depth below the root (0 = the hub wired directly to the AUX node),
// and RAD packs one 2-bit downstream-port selector per layer, least
// significant pair first.
type Address struct {
	Layer uint8
	RAD   uint16
}

// ConfigureConnection points the session at addr; subsequent DPCD reads
// and writes are tunneled through the cascade to reach it.
func (s *Session) ConfigureConnection(addr Address) {
	s.addr = addr
	s.remaining = addr.Layer
}

// ProbeCascade checks whether a Synaptics hub answers at the address one
// hop below parent through downstream port txPort (0-3). A parent that
// rejects the tunneled probe (nothing attached behind txPort) is reported
// as false with a nil error. It restores the session's previous address
// before returning.
func (s *Session) ProbeCascade(parent Address, txPort uint8) (bool, error) {
	child := Address{
		Layer: parent.Layer + 1,
		RAD:   parent.RAD | uint16(txPort)<<(2*parent.Layer),
	}
	saved := s.addr
	savedRemaining := s.remaining
	s.ConfigureConnection(child)
	defer func() {
		s.addr = saved
		s.remaining = savedRemaining
	}()
	ok, err := probeSynapticsOUI(s.ReadDPCD)
	var rcErr *RCError
	if errors.As(err, &rcErr) {
		return false, nil
	}
	return ok, err
}
