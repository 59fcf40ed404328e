package synapticsmst

import "time"

// DPCD offsets for the vendor Remote Control window. These are
// self-consistent placeholders: the real byte offsets live in Synaptics's
// vendor header, which this module's authors do not have; every behavior
// around them (chunking, polling, gating order) is exact, only the bare
// integers are stand-ins.
const (
	regRCCap           = 0x0030 // 1 byte: bit 2 set if RC tunneling is supported
	regRCCmd           = 0x0032 // 2 bytes: [0]=0x80|opcode on write, busy/status on read
	regRCLen           = 0x0035 // 4 bytes, little-endian
	regRCOffset        = 0x0039 // 4 bytes, little-endian
	regRCData          = 0x003d // unitSize bytes
	regVendorID        = 0x0300 // 3 bytes, vendor OUI
	regChipID          = 0x0303 // 2 bytes
	regFirmwareVersion = 0x0305 // 3 bytes
)

// addrCustomerID is the EEPROM address the board-ID word lives at, read
// through the RC EEPROM-read opcode rather than directly over DPCD.
const addrCustomerID = 0x10e0

// RC opcodes, written to regRCCmd OR'd with 0x80.
const (
	opUpdcEnableRC          = 0x01
	opUpdcDisableRC         = 0x02
	opUpdcReadFromEEPROM    = 0x03
	opUpdcWriteToEEPROM     = 0x04
	opUpdcFlashErase        = 0x05
	opUpdcCalEEPROMChecksum = 0x06
	// opUpdcReadFromTxDPCD and opUpdcWriteToTxDPCD are base opcodes; the
	// 2-bit downstream node selector is added to pick one of 4 ports.
	opUpdcReadFromTxDPCD  = 0x10
	opUpdcWriteToTxDPCD   = 0x14
)

const (
	// unitSize is the chunk size for REG_RC_DATA transfers (UNIT_SIZE).
	unitSize = 32
	// blockUnit is the chunk size for firmware programming (BLOCK_UNIT).
	blockUnit = 64
	// rcMagic is written to trigger UPDC_ENABLE_RC.
	rcMagic = "PRIUS"
	// defaultRCTimeout bounds how long pollCompletion waits for the busy
	// bit to clear (MAX_WAIT_TIME).
	defaultRCTimeout = 3 * time.Second
	// maxCascadeDepth bounds topology BFS walks. RAD packs 2 bits per
	// layer into a 16-bit word, so 8 layers is the hard ceiling; no real
	// cascade approaches that, but the bound keeps DiscoverTopology from
	// looping forever against a misbehaving simulator or device.
	maxCascadeDepth = 8
)

// Firmware image layout constants.
const (
	maxFirmwareSize  = 0x10000
	edidBlock0Start  = 0x0000
	edidBlock1Start  = 0x0080
	configBlockAStart = 0x0100
	configBlockBStart = 0x0200
	codeSizeOffset    = 0x0400
	codeStart         = 0x0400
	// codeTrailerBytes is the unexplained "+17" in the original checksum
	// range; kept verbatim, no attempt made to re-derive its meaning.
	codeTrailerBytes = 17
	boardIDOffset     = 0x010e
)
