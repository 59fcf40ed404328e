package synapticsmst

import (
	"encoding/binary"
	"fmt"
)

// ProgressFunc reports flash-programming progress as a percentage after
// each block written.
type ProgressFunc func(percent int)

func sum8(b []byte) byte {
	var s byte
	for _, c := range b {
		s += c
	}
	return s
}

func requireLen(blob []byte, n int) error {
	if len(blob) < n {
		return &ImageError{Reason: "file too small"}
	}
	return nil
}

// Validate runs eight structural and board-ID checks against a firmware
// image before it is ever sent to a hub: overall size bound, EDID block
// 0/1 checksums, configuration block A/B checksums, code size bound,
// code+trailer checksum, and board-ID match against the target hub.
func Validate(blob []byte, target BoardID) error {
	if len(blob) == 0 || len(blob) > maxFirmwareSize {
		return &ImageError{Reason: "file size out of bounds"}
	}
	if err := requireLen(blob, edidBlock1Start+128); err != nil {
		return err
	}
	if sum8(blob[edidBlock0Start:edidBlock0Start+128]) != 0 {
		return &ImageError{Reason: "EDID block 0 checksum"}
	}
	if sum8(blob[edidBlock1Start:edidBlock1Start+128]) != 0 {
		return &ImageError{Reason: "EDID block 1 checksum"}
	}
	if err := requireLen(blob, configBlockBStart+256); err != nil {
		return err
	}
	if sum8(blob[configBlockAStart:configBlockAStart+256]) != 0 {
		return &ImageError{Reason: "configuration block A checksum"}
	}
	if sum8(blob[configBlockBStart:configBlockBStart+256]) != 0 {
		return &ImageError{Reason: "configuration block B checksum"}
	}
	if err := requireLen(blob, codeSizeOffset+2); err != nil {
		return err
	}
	codeSize := uint32(blob[codeSizeOffset])<<8 | uint32(blob[codeSizeOffset+1])
	if codeSize >= 0xffff {
		return &ImageError{Reason: "firmware code size out of bounds"}
	}
	end := codeStart + int(codeSize) + codeTrailerBytes
	if err := requireLen(blob, end); err != nil {
		return err
	}
	if sum8(blob[codeStart:end]) != 0 {
		return &ImageError{Reason: "firmware code checksum"}
	}
	if err := requireLen(blob, boardIDOffset+2); err != nil {
		return err
	}
	imageBoard := BoardID(uint16(blob[boardIDOffset])<<8 | uint16(blob[boardIDOffset+1]))
	if imageBoard != target {
		return ErrBoardMismatch
	}
	return nil
}

// UpdateFirmware validates blob against target's board ID, then erases,
// programs the hub in fixed-size chunks with a retry-once on a failed
// block, and verifies the result against a host-computed wrapping
// checksum. progress, if non-nil, is called after every block with the
// percentage complete.
func UpdateFirmware(auxIndex int, addr Address, target BoardID, blob []byte, progress ProgressFunc) error {
	if err := Validate(blob, target); err != nil {
		return err
	}

	sess, err := Open(auxIndex)
	if err != nil {
		return err
	}
	defer sess.Close()
	return updateFirmwareSession(sess, addr, blob, progress)
}

// updateFirmwareSession runs the erase/program/verify sequence over an
// already-open session, factored out so it can be driven against a
// simulated hub in tests without opening a real AUX device.
func updateFirmwareSession(sess *Session, addr Address, blob []byte, progress ProgressFunc) error {
	sess.ConfigureConnection(addr)
	if err := sess.EnableRemoteControl(); err != nil {
		return err
	}
	defer sess.DisableRemoteControl()

	eraseArg := [2]byte{0xff, 0xff}
	if err := sess.rcSetCommand(opUpdcFlashErase, 0, eraseArg[:]); err != nil {
		return &FlashEraseError{Err: err}
	}

	total := len(blob)
	writeLoops := (total + blockUnit - 1) / blockUnit
	offset := 0
	for i := 0; i < writeLoops; i++ {
		n := blockUnit
		if rem := total - offset; n > rem {
			n = rem
		}
		block := blob[offset : offset+n]
		err := sess.rcSetCommand(opUpdcWriteToEEPROM, uint32(offset), block)
		if err != nil {
			// repeat once
			err = sess.rcSetCommand(opUpdcWriteToEEPROM, uint32(offset), block)
		}
		if err != nil {
			return &FlashWriteError{Offset: offset, Err: err}
		}
		offset += n
		if progress != nil {
			if writeLoops > 1 {
				progress(i * 100 / (writeLoops - 1))
			} else {
				progress(100)
			}
		}
	}

	var hostSum uint32
	for _, b := range blob {
		hostSum += uint32(b)
	}

	var checksum [4]byte
	if err := sess.rcSpecialGetCommand(opUpdcCalEEPROMChecksum, 0, nil, uint32(total), checksum[:]); err != nil {
		return fmt.Errorf("synapticsmst: read flash checksum: %w", err)
	}
	deviceSum := binary.LittleEndian.Uint32(checksum[:])
	if deviceSum != hostSum {
		return ErrFlashVerifyFailed
	}
	return nil
}
