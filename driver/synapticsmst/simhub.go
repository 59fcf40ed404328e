package synapticsmst

import (
	"encoding/binary"
	"fmt"
)

// writeRecord captures one WriteAt call for tests that assert on the
// wire-level sequence a higher-level operation produced.
type writeRecord struct {
	Offset uint32
	Data   []byte
}

// simHub is an in-memory stand-in for a single physical Synaptics hub,
// satisfying AuxEndpoint the same way the real /dev/drm_dp_auxN binding
// does. Downstream hubs are modeled as nested simHub values reached
// through the UPDC_*_TX_DPCD opcodes, so a whole cascade can be built and
// exercised without any real hardware.
type simHub struct {
	name  string
	trace *[]string

	vendorID        [3]byte
	rcCap           byte
	firmwareVersion [3]byte
	chipID          [2]byte
	mem             [maxFirmwareSize]byte

	children [4]*simHub

	rcData    [unitSize]byte
	rcOffset  uint32
	rcLen     uint32
	busy      bool
	status    byte
	rcEnabled bool

	neverCompletes bool
	failOnce       map[uint32]bool
	rejectWrites   bool
	writes         []writeRecord
}

// newSimHub returns a ready Synaptics hub simulator with plausible
// defaults; callers mutate the exported-enough fields directly (this file
// is not _test.go so it can be shared by every test in the package).
func newSimHub(name string, trace *[]string) *simHub {
	return &simHub{
		name:            name,
		trace:           trace,
		vendorID:        [3]byte{0x90, 0xcc, 0x24},
		rcCap:           0x04,
		firmwareVersion: [3]byte{1, 2, 3},
		chipID:          [2]byte{0x10, 0x20},
		failOnce:        map[uint32]bool{},
	}
}

func (h *simHub) attach(port uint8, child *simHub) {
	h.children[port] = child
}

func (h *simHub) log(msg string) {
	if h.trace == nil {
		return
	}
	*h.trace = append(*h.trace, fmt.Sprintf("%s:%s", h.name, msg))
}

func (h *simHub) ReadAt(offset uint32, buf []byte) error {
	switch {
	case offset == regRCCmd && len(buf) == 2:
		if h.busy {
			buf[0] = 0x80
		} else {
			buf[0] = 0
		}
		buf[1] = h.status
		return nil
	case offset == regRCData:
		copy(buf, h.rcData[:])
		return nil
	case offset == regRCCap && len(buf) == 1:
		buf[0] = h.rcCap
		return nil
	case offset == regVendorID:
		copy(buf, h.vendorID[:])
		return nil
	case offset == regFirmwareVersion:
		copy(buf, h.firmwareVersion[:])
		return nil
	case offset == regChipID:
		copy(buf, h.chipID[:])
		return nil
	default:
		return fmt.Errorf("simhub %s: unsupported read at offset 0x%x", h.name, offset)
	}
}

func (h *simHub) WriteAt(offset uint32, buf []byte) error {
	h.writes = append(h.writes, writeRecord{Offset: offset, Data: append([]byte(nil), buf...)})
	switch {
	case offset == regRCCmd && len(buf) == 1:
		return h.execute(buf[0] &^ 0x80)
	case offset == regRCData:
		copy(h.rcData[:], buf)
		return nil
	case offset == regRCOffset && len(buf) == 4:
		h.rcOffset = binary.LittleEndian.Uint32(buf)
		return nil
	case offset == regRCLen && len(buf) == 4:
		h.rcLen = binary.LittleEndian.Uint32(buf)
		return nil
	default:
		return fmt.Errorf("simhub %s: unsupported write at offset 0x%x", h.name, offset)
	}
}

func (h *simHub) Close() error { return nil }

// execute runs an RC command synchronously against the simulated hub
// state. Setting neverCompletes leaves busy set afterward, so a caller's
// pollCompletion loop spins until its own deadline elapses, for exercising
// the timeout path (P6).
func (h *simHub) execute(opcode byte) error {
	h.busy = false
	h.status = 0
	switch {
	case opcode == opUpdcEnableRC:
		h.log("enable")
		if string(h.rcData[:5]) == rcMagic {
			h.rcEnabled = true
		} else {
			h.status = 0x01
		}
	case opcode == opUpdcDisableRC:
		h.log("disable")
		h.rcEnabled = false
	case !h.rcEnabled:
		h.status = 0xee
	case opcode == opUpdcReadFromEEPROM:
		n := int(h.rcLen)
		copy(h.rcData[:n], h.mem[h.rcOffset:h.rcOffset+uint32(n)])
	case opcode == opUpdcWriteToEEPROM:
		n := int(h.rcLen)
		if h.rejectWrites {
			h.status = 0x02
			break
		}
		if h.failOnce[h.rcOffset] {
			delete(h.failOnce, h.rcOffset)
			h.status = 0x02
			break
		}
		copy(h.mem[h.rcOffset:h.rcOffset+uint32(n)], h.rcData[:n])
	case opcode == opUpdcFlashErase:
		for i := range h.mem {
			h.mem[i] = 0
		}
	case opcode == opUpdcCalEEPROMChecksum:
		var sum uint32
		for _, b := range h.mem[h.rcOffset : h.rcOffset+h.rcLen] {
			sum += uint32(b)
		}
		binary.LittleEndian.PutUint32(h.rcData[:4], sum)
	case opcode >= opUpdcReadFromTxDPCD && opcode < opUpdcReadFromTxDPCD+4:
		node := opcode - opUpdcReadFromTxDPCD
		child := h.children[node]
		if child == nil {
			h.status = 0x03
			break
		}
		if err := child.ReadAt(h.rcOffset, h.rcData[:h.rcLen]); err != nil {
			return err
		}
	case opcode >= opUpdcWriteToTxDPCD && opcode < opUpdcWriteToTxDPCD+4:
		node := opcode - opUpdcWriteToTxDPCD
		child := h.children[node]
		if child == nil {
			h.status = 0x03
			break
		}
		if err := child.WriteAt(h.rcOffset, h.rcData[:h.rcLen]); err != nil {
			return err
		}
	default:
		h.status = 0xff
	}
	if h.neverCompletes {
		h.busy = true
	}
	return nil
}
