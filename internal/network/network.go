// Package network provides the connectivity signal consumed by the departure
// trigger: "is this device on WiFi right now".
package network

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind classifies the active network transport.
type Kind string

const (
	KindWifi     Kind = "wifi"
	KindCellular Kind = "cellular"
	KindEthernet Kind = "ethernet"
	KindNone     Kind = "none"
	KindUnknown  Kind = "unknown"
)

// State is a single connectivity snapshot.
type State struct {
	Kind        Kind
	IsConnected bool
}

// OnWifi reports whether the snapshot shows a connected WiFi link. Anything
// else (cellular, no link, unknown) counts as off-WiFi for departure purposes.
func (s State) OnWifi() bool {
	return s.Kind == KindWifi && s.IsConnected
}

// Monitor yields connectivity snapshots. A failed read means the current
// cycle should be skipped silently and retried on the next tick.
type Monitor interface {
	State(ctx context.Context) (State, error)
}

// Overridable for tests.
var (
	routeFilePath = "/proc/net/route"
	sysClassNet   = "/sys/class/net"
)

// SysfsMonitor derives connectivity from the kernel's routing table and
// sysfs: the interface holding the default route is the active link, and a
// wireless/ subdirectory under its sysfs node marks it as WiFi.
type SysfsMonitor struct{}

func NewSysfsMonitor() *SysfsMonitor {
	return &SysfsMonitor{}
}

func (m *SysfsMonitor) State(ctx context.Context) (State, error) {
	if err := ctx.Err(); err != nil {
		return State{}, err
	}

	iface, err := defaultRouteInterface()
	if err != nil {
		return State{}, err
	}
	if iface == "" {
		return State{Kind: KindNone, IsConnected: false}, nil
	}

	if _, err := os.Stat(filepath.Join(sysClassNet, iface, "wireless")); err == nil {
		return State{Kind: KindWifi, IsConnected: true}, nil
	}
	if strings.HasPrefix(iface, "wwan") || strings.HasPrefix(iface, "rmnet") {
		return State{Kind: KindCellular, IsConnected: true}, nil
	}
	return State{Kind: KindEthernet, IsConnected: true}, nil
}

// defaultRouteInterface returns the interface that carries the IPv4 default
// route, or "" when no default route exists.
func defaultRouteInterface() (string, error) {
	f, err := os.Open(routeFilePath)
	if err != nil {
		return "", fmt.Errorf("failed to read routing table: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Scan() // header line

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		// Destination 00000000 is the default route.
		if fields[1] == "00000000" {
			return fields[0], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to scan routing table: %w", err)
	}
	return "", nil
}
