package common

import (
	"fmt"
	"net"
	"time"
)

// GetLocalIPs returns localhost plus the first non-loopback IPv4 address,
// for logging the URLs the server is reachable on.
func GetLocalIPs() []string {
	ips := []string{"localhost", "127.0.0.1"}

	interfaces, err := net.Interfaces()
	if err != nil {
		return ips
	}

	for _, i := range interfaces {
		if i.Flags&net.FlagLoopback != 0 ||
			i.Flags&net.FlagUp == 0 ||
			i.Flags&net.FlagPointToPoint != 0 {
			continue
		}

		addrs, err := i.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
				return append(ips, ipnet.IP.String())
			}
		}
	}
	return ips
}

// FormatDurationConcise provides a simpler string representation for durations.
func FormatDurationConcise(d time.Duration) string {
	if d%(24*time.Hour) == 0 && d >= 24*time.Hour {
		return fmt.Sprintf("%dd", d/(24*time.Hour))
	}
	if d%time.Hour == 0 && d >= time.Hour {
		return fmt.Sprintf("%dh", d/time.Hour)
	}
	if d%time.Minute == 0 && d >= time.Minute {
		return fmt.Sprintf("%dm", d/time.Minute)
	}
	if d%time.Second == 0 && d >= time.Second {
		return fmt.Sprintf("%ds", d/time.Second)
	}
	return d.String()
}
