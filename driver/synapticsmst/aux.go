package synapticsmst

import "fmt"

// AuxEndpoint is the raw transport a Session talks to: a single
// DPCD/AUX-addressable hub, reached either as a real /dev/drm_dp_auxN
// character device or an in-memory simulator for tests. Offsets are
// absolute DPCD addresses; a short read or write is always an error.
type AuxEndpoint interface {
	ReadAt(offset uint32, buf []byte) error
	WriteAt(offset uint32, buf []byte) error
	Close() error
}

// AuxPath returns the device path for a DRM AUX node index. It returns
// an error for an unrecognized index rather than an empty path, since a
// caller acting on an empty path is a latent bug waiting to happen.
func AuxPath(index int) (string, error) {
	switch index {
	case 0:
		return "/dev/drm_dp_aux0", nil
	case 1:
		return "/dev/drm_dp_aux1", nil
	case 2:
		return "/dev/drm_dp_aux2", nil
	default:
		return "", fmt.Errorf("synapticsmst: invalid aux node index %d", index)
	}
}

// ParseAuxIndex is the reverse of AuxPath, for callers that discover a
// device path externally (discovery itself is out of scope here).
func ParseAuxIndex(path string) (int, error) {
	for i := 0; i <= 2; i++ {
		p, _ := AuxPath(i)
		if p == path {
			return i, nil
		}
	}
	return 0, fmt.Errorf("synapticsmst: unrecognized aux node path %q", path)
}

// probeSynapticsOUI reads the RC capability and vendor-ID registers
// through read and reports whether they identify a Synaptics hub. It is
// reused both when opening an AUX node and by cascade discovery at
// deeper addresses.
func probeSynapticsOUI(read func(offset uint32, buf []byte) error) (bool, error) {
	var cap [1]byte
	if err := read(regRCCap, cap[:]); err != nil {
		return false, err
	}
	if cap[0]&0x04 == 0 {
		return false, nil
	}
	var vendor [3]byte
	if err := read(regVendorID, vendor[:]); err != nil {
		return false, err
	}
	return vendor == [3]byte{0x90, 0xcc, 0x24}, nil
}
