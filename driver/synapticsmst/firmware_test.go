package synapticsmst

import "testing"

// buildValidImage returns a minimal firmware blob that passes every
// Validate check against board, by keeping every checksum region zero
// except for compensated bytes.
func buildValidImage(board BoardID) []byte {
	blob := make([]byte, 0x500)
	blob[boardIDOffset] = byte(board >> 8)
	blob[boardIDOffset+1] = byte(board)

	var sum byte
	for i := configBlockAStart; i < configBlockAStart+256; i++ {
		sum += blob[i]
	}
	blob[configBlockAStart] -= sum
	return blob
}

func TestValidateHappyPath(t *testing.T) {
	blob := buildValidImage(0x0102)
	if err := Validate(blob, 0x0102); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateSizeBounds(t *testing.T) {
	if err := Validate(nil, 0x0102); err == nil {
		t.Fatalf("want error for empty image")
	}
	huge := make([]byte, maxFirmwareSize+1)
	if err := Validate(huge, 0x0102); err == nil {
		t.Fatalf("want error for oversized image")
	}
}

func TestValidateEDIDChecksum(t *testing.T) {
	blob := buildValidImage(0x0102)
	blob[0] ^= 0xff
	var err error
	if err = Validate(blob, 0x0102); err == nil {
		t.Fatalf("want checksum error")
	}
	if _, ok := err.(*ImageError); !ok {
		t.Fatalf("want *ImageError, got %T", err)
	}
}

func TestValidateConfigBlockChecksum(t *testing.T) {
	blob := buildValidImage(0x0102)
	blob[configBlockBStart] ^= 0xff
	if err := Validate(blob, 0x0102); err == nil {
		t.Fatalf("want checksum error")
	}
}

func TestValidateCodeSizeBound(t *testing.T) {
	blob := buildValidImage(0x0102)
	blob[codeSizeOffset] = 0xff
	blob[codeSizeOffset+1] = 0xff
	if err := Validate(blob, 0x0102); err == nil {
		t.Fatalf("want error for code size out of bounds")
	}
}

func TestValidateBoardMismatch(t *testing.T) {
	blob := buildValidImage(0x0102)
	if err := Validate(blob, 0x0103); err != ErrBoardMismatch {
		t.Fatalf("want ErrBoardMismatch, got %v", err)
	}
}

func TestUpdateFirmwareHappyPath(t *testing.T) {
	hub := newSimHub("root", nil)
	sess := newTestSession(hub)
	blob := buildValidImage(0x0102)

	var percents []int
	err := updateFirmwareSession(sess, Address{}, blob, func(p int) {
		percents = append(percents, p)
	})
	if err != nil {
		t.Fatalf("updateFirmwareSession: %v", err)
	}
	if len(percents) == 0 || percents[len(percents)-1] != 100 {
		t.Fatalf("want progress ending at 100, got %v", percents)
	}
	if !bytesEqual(hub.mem[:len(blob)], blob) {
		t.Fatalf("flash contents do not match written image")
	}
	if hub.rcEnabled {
		t.Fatalf("remote control should be disabled again after update")
	}
}

func TestUpdateFirmwareRetriesOnceOnWriteFailure(t *testing.T) {
	hub := newSimHub("root", nil)
	hub.failOnce[0] = true // first block write fails once, then succeeds
	sess := newTestSession(hub)
	blob := buildValidImage(0x0102)

	if err := updateFirmwareSession(sess, Address{}, blob, nil); err != nil {
		t.Fatalf("updateFirmwareSession: %v", err)
	}
}

func TestUpdateFirmwareWriteFailsAfterRetry(t *testing.T) {
	hub := newSimHub("root", nil)
	sess := newTestSession(hub)
	blob := buildValidImage(0x0102)

	hub.rejectWrites = true

	err := updateFirmwareSession(sess, Address{}, blob, nil)
	if _, ok := err.(*FlashWriteError); !ok {
		t.Fatalf("want *FlashWriteError, got %T: %v", err, err)
	}
}

func TestUpdateFirmwareRejectsInvalidImageBeforeOpeningAux(t *testing.T) {
	blob := buildValidImage(0x0102)
	blob[0] ^= 0xff // break EDID checksum

	// auxIndex 0 would fail to open in this test environment anyway; an
	// *ImageError here (rather than an aux-open error) proves Validate ran
	// and rejected the image before UpdateFirmware ever touched the aux
	// endpoint or issued UPDC_FLASH_ERASE.
	err := UpdateFirmware(0, Address{}, 0x0102, blob, nil)
	if _, ok := err.(*ImageError); !ok {
		t.Fatalf("want *ImageError, got %T: %v", err, err)
	}
}
