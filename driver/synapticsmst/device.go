package synapticsmst

import "fmt"

// Kind distinguishes a hub wired directly to an AUX node from one reached
// through a cascade.
type Kind int

const (
	KindUnknown Kind = iota
	KindDirect
	KindRemote
)

func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) Kind {
	switch s {
	case "direct":
		return KindDirect
	case "remote":
		return KindRemote
	default:
		return KindUnknown
	}
}

// BoardID is the 16-bit customer/product word read from EEPROM at
// enumeration time. The high byte names a customer (0x01 = Dell, 0x00 =
// the Synaptics evaluation board); any other high byte produces
// BoardIDUnknown rather than an uninitialized value.
type BoardID uint16

const BoardIDUnknown BoardID = 0xffff

// String renders a human-readable board description. The low-byte
// product codes below are illustrative: the exact per-product values are
// defined by Synaptics's vendor header, which isn't part of this
// module's sources, so only the customer (high-byte) family is rendered
// authoritatively.
func (b BoardID) String() string {
	switch {
	case b == BoardIDUnknown:
		return "unknown board"
	case b>>8 == 0x01:
		switch byte(b) {
		case 0x01:
			return "Dell X6 platform"
		case 0x02:
			return "Dell X7 platform"
		case 0x03:
			return "Dell WD15/TB15 wired dock"
		case 0x04:
			return "Dell CTKM5 wireless dock"
		default:
			return fmt.Sprintf("Dell platform (0x%02x)", byte(b))
		}
	case b>>8 == 0x00:
		return "Synaptics evaluation board"
	default:
		return fmt.Sprintf("unrecognized board (0x%04x)", uint16(b))
	}
}

// Hub is the information recovered about one hub in the topology.
type Hub struct {
	Kind            Kind
	AuxIndex        int
	Layer           uint8
	RAD             uint16
	FirmwareVersion string
	BoardID         BoardID
	ChipID          string
}

// Enumerate opens the AUX node at auxIndex, enables remote control at
// addr, reads firmware version/board ID/chip ID, then disables remote
// control and closes.
func Enumerate(auxIndex int, kind Kind, addr Address) (Hub, error) {
	sess, err := Open(auxIndex)
	if err != nil {
		return Hub{}, fmt.Errorf("synapticsmst: enumerate: %w", err)
	}
	defer sess.Close()
	sess.ConfigureConnection(addr)
	if err := sess.EnableRemoteControl(); err != nil {
		return Hub{}, fmt.Errorf("synapticsmst: enumerate: %w", err)
	}
	defer sess.DisableRemoteControl()

	hub, err := readIdentity(sess, auxIndex, kind, addr)
	if err != nil {
		return Hub{}, fmt.Errorf("synapticsmst: enumerate: %w", err)
	}
	return hub, nil
}

// readIdentity reads the three identity fields over an already-enabled
// RC session, shared by Enumerate and DiscoverTopology so the latter can
// crawl a whole cascade without reopening the AUX node per hub.
func readIdentity(sess *Session, auxIndex int, kind Kind, addr Address) (Hub, error) {
	hub := Hub{Kind: kind, AuxIndex: auxIndex, Layer: addr.Layer, RAD: addr.RAD}

	var ver [3]byte
	if err := sess.ReadDPCD(regFirmwareVersion, ver[:]); err != nil {
		return Hub{}, fmt.Errorf("read firmware version: %w", err)
	}
	hub.FirmwareVersion = fmt.Sprintf("v%d.%02d.%03d", ver[0], ver[1], ver[2])

	var cust [2]byte
	if err := sess.rcGetCommand(opUpdcReadFromEEPROM, addrCustomerID, cust[:]); err != nil {
		return Hub{}, fmt.Errorf("read board id: %w", err)
	}
	switch cust[0] {
	case 0x00, 0x01:
		hub.BoardID = BoardID(uint16(cust[0])<<8 | uint16(cust[1]))
	default:
		hub.BoardID = BoardIDUnknown
	}

	var chip [2]byte
	if err := sess.ReadDPCD(regChipID, chip[:]); err != nil {
		return Hub{}, fmt.Errorf("read chip id: %w", err)
	}
	hub.ChipID = fmt.Sprintf("VMM%02x%02x", chip[0], chip[1])

	return hub, nil
}
