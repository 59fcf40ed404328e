package synapticsmst

import "fmt"

// EnableRemoteControl gates RC on at every layer from the root hub down
// to the session's configured address, in that order, each carrying the
// "PRIUS" magic token. It aborts and restores the original address on
// the first rejected or failed layer.
func (s *Session) EnableRemoteControl() error {
	target := s.addr
	for i := uint8(0); i <= target.Layer; i++ {
		s.ConfigureConnection(Address{Layer: i, RAD: target.RAD})
		if err := s.rcSetCommand(opUpdcEnableRC, 0, []byte(rcMagic)); err != nil {
			s.ConfigureConnection(target)
			return fmt.Errorf("synapticsmst: enable remote control at layer %d: %w", i, err)
		}
	}
	s.ConfigureConnection(target)
	return nil
}

// DisableRemoteControl gates RC off leaf-first, the reverse sweep of
// EnableRemoteControl.
func (s *Session) DisableRemoteControl() error {
	target := s.addr
	for i := int(target.Layer); i >= 0; i-- {
		s.ConfigureConnection(Address{Layer: uint8(i), RAD: target.RAD})
		if err := s.rcSetCommand(opUpdcDisableRC, 0, nil); err != nil {
			s.ConfigureConnection(target)
			return fmt.Errorf("synapticsmst: disable remote control at layer %d: %w", i, err)
		}
	}
	s.ConfigureConnection(target)
	return nil
}
