package synapticsmst

import (
	"encoding/binary"
	"time"
)

// writeOffsetLength stages REG_RC_OFFSET and REG_RC_LEN for the next
// command: the pair of 4-byte little-endian writes issued before the
// command byte itself whenever the command has a non-zero length.
func (s *Session) writeOffsetLength(offset, length uint32) error {
	var off [4]byte
	binary.LittleEndian.PutUint32(off[:], offset)
	if err := s.WriteDPCD(regRCOffset, off[:]); err != nil {
		return err
	}
	var ln [4]byte
	binary.LittleEndian.PutUint32(ln[:], length)
	return s.WriteDPCD(regRCLen, ln[:])
}

// sendCommandAndWait writes 0x80|cmd to REG_RC_CMD and polls for
// completion, the tail shared by all three command shapes below.
func (s *Session) sendCommandAndWait(cmd byte) error {
	var reg [1]byte
	reg[0] = 0x80 | cmd
	if err := s.WriteDPCD(regRCCmd, reg[:]); err != nil {
		return err
	}
	return s.pollCompletion()
}

// pollCompletion reads REG_RC_CMD until the busy bit (bit 7 of the low
// byte) clears or the deadline passes, then inspects the high byte for a
// rejection code.
func (s *Session) pollCompletion() error {
	deadline := time.Now().Add(s.rcTimeout)
	var status [2]byte
	for {
		if err := s.ReadDPCD(regRCCmd, status[:]); err != nil {
			return err
		}
		if status[0]&0x80 == 0 {
			break
		}
		if time.Now().After(deadline) {
			return ErrRCTimeout
		}
	}
	if status[1] != 0 {
		return &RCError{Code: status[1]}
	}
	return nil
}

// rcSetCommand is the Set-command shape: stage a payload chunk (if any),
// send, poll, repeat until the whole payload is sent. A zero-length
// payload (e.g. UPDC_DISABLE_RC) still issues exactly one command, the
// same do-while-once shape the original has.
func (s *Session) rcSetCommand(cmd byte, offset uint32, data []byte) error {
	curOffset := offset
	remaining := data
	for {
		n := len(remaining)
		if n > unitSize {
			n = unitSize
		}
		if n > 0 {
			if err := s.WriteDPCD(regRCData, remaining[:n]); err != nil {
				return err
			}
			if err := s.writeOffsetLength(curOffset, uint32(n)); err != nil {
				return err
			}
		}
		if err := s.sendCommandAndWait(cmd); err != nil {
			return err
		}
		remaining = remaining[n:]
		curOffset += uint32(n)
		if len(remaining) == 0 {
			break
		}
	}
	return nil
}

// rcGetCommand is the Get-command shape: stage the offset/length,
// send, poll, then read the resulting chunk into buf, repeating until buf
// is full.
func (s *Session) rcGetCommand(cmd byte, offset uint32, buf []byte) error {
	curOffset := offset
	remaining := buf
	for {
		n := len(remaining)
		if n > unitSize {
			n = unitSize
		}
		if n > 0 {
			if err := s.writeOffsetLength(curOffset, uint32(n)); err != nil {
				return err
			}
		}
		if err := s.sendCommandAndWait(cmd); err != nil {
			return err
		}
		if n > 0 {
			if err := s.ReadDPCD(regRCData, remaining[:n]); err != nil {
				return err
			}
		}
		remaining = remaining[n:]
		curOffset += uint32(n)
		if len(remaining) == 0 {
			break
		}
	}
	return nil
}

// rcSpecialGetCommand performs exactly one iteration: stage an optional
// command payload (cmdData may be nil, e.g. UPDC_CAL_EEPROM_CHECKSUM
// which only needs an offset/length pair), send, poll, then read the
// result into buf. Used where the reply isn't a raw memory dump but a
// computed value (here, a flash checksum).
func (s *Session) rcSpecialGetCommand(cmd byte, cmdOffset uint32, cmdData []byte, cmdLength uint32, buf []byte) error {
	if cmdLength > 0 {
		if cmdData != nil {
			if err := s.WriteDPCD(regRCData, cmdData); err != nil {
				return err
			}
		}
		if err := s.writeOffsetLength(cmdOffset, cmdLength); err != nil {
			return err
		}
	}
	if err := s.sendCommandAndWait(cmd); err != nil {
		return err
	}
	if len(buf) > 0 {
		return s.ReadDPCD(regRCData, buf)
	}
	return nil
}
