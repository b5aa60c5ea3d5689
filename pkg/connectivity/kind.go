package connectivity

// Kind identifies the type of an active network connection.
type Kind string

const (
	// Wifi indicates an active wireless LAN connection.
	Wifi Kind = "wifi"

	// Mobile indicates an active cellular data connection.
	Mobile Kind = "mobile"

	// Ethernet indicates a wired connection.
	Ethernet Kind = "ethernet"

	// Bluetooth indicates a bluetooth tether.
	Bluetooth Kind = "bluetooth"

	// VPN indicates a virtual private network tunnel.
	VPN Kind = "vpn"

	// Other indicates a connection whose type could not be determined.
	Other Kind = "other"

	// None indicates no active connection.
	None Kind = "none"
)

// IsNetwork reports whether the kind is a true network connection
// capable of reaching remote services. Only wifi and mobile qualify;
// tunnels and tethers are reported by platforms alongside the carrier
// connection and do not count on their own.
func (k Kind) IsNetwork() bool {
	return k == Wifi || k == Mobile
}

// String returns the kind's tag.
func (k Kind) String() string {
	return string(k)
}
