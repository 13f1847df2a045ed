package resolver

import "net"

// Family is the address family of a resolved address.
type Family int

const (
	FamilyOther Family = iota
	FamilyIPv4
	FamilyIPv6
)

// Tag is what gets appended to a printed address. Unknown families get nothing.
func (f Family) Tag() string {
	switch f {
	case FamilyIPv6:
		return " [IPv6]"
	case FamilyIPv4:
		return " [IPv4]"
	default:
		return ""
	}
}

func (f Family) String() string {
	switch f {
	case FamilyIPv6:
		return "IPv6"
	case FamilyIPv4:
		return "IPv4"
	default:
		return "other"
	}
}

// SocketKind mirrors the socket type getaddrinfo hands back per address.
type SocketKind int

const (
	SocketStream SocketKind = iota
	SocketDatagram
	SocketRaw
)

// Every address is reported once per kind, in this order.
var socketKinds = []SocketKind{SocketStream, SocketDatagram, SocketRaw}

// One entry of a lookup answer. Canonical is only filled on the first entry of a set.
type AddrInfo struct {
	Family    Family     `json:"family"`
	Kind      SocketKind `json:"kind"`
	Canonical string     `json:"canonical,omitempty"`
	Addr      string     `json:"addr"`
}

// Representative reports whether this entry stands for its address.
// The same address shows up once per socket kind, stream entries are the ones we keep.
func (a AddrInfo) Representative() bool {
	return a.Kind == SocketStream
}

func familyOf(ip net.IP) Family {
	switch {
	case ip == nil:
		return FamilyOther
	case ip.To4() != nil:
		return FamilyIPv4
	case ip.To16() != nil:
		return FamilyIPv6
	default:
		return FamilyOther
	}
}

// newAddrInfos expands addresses into a getaddrinfo shaped answer set:
// one entry per address and socket kind, canonical name on the first entry only.
func newAddrInfos(canonical string, ips []net.IP) []AddrInfo {
	infos := make([]AddrInfo, 0, len(ips)*len(socketKinds))
	for _, ip := range ips {
		for _, kind := range socketKinds {
			info := AddrInfo{Family: familyOf(ip), Kind: kind, Addr: ip.String()}
			if len(infos) == 0 {
				info.Canonical = canonical
			}
			infos = append(infos, info)
		}
	}
	return infos
}

// literal answers for hosts that are already an IP address.
func literal(host string) ([]AddrInfo, bool) {
	ip := net.ParseIP(host)
	if ip == nil {
		return nil, false
	}
	return newAddrInfos(host, []net.IP{ip}), true
}
