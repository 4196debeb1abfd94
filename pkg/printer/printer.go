package printer

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"
)

// Printer sends raw ESC/POS data to a thermal coupon printer.
type Printer interface {
	Print(data []byte) error
	Close() error
	// IsConnected reports whether the device is reachable right now.
	IsConnected() bool
}

// Config selects the coupon printer backend.
//
//	Mode: "usb", "network", "file" or "none"
type Config struct {
	Mode    string
	USBPath string // device file for usb mode, e.g. /dev/usb/lp0
	Address string // host:port for network mode, e.g. 192.168.0.50:9100
	SpoolDir string // output directory for file mode
}

// New creates the configured printer backend. Mode "none" (or empty) yields
// a no-op printer so coupon printing never blocks a checkout.
func New(cfg Config) (Printer, error) {
	switch cfg.Mode {
	case "usb":
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: usb mode requires a device path")
		}
		return &usbPrinter{path: cfg.USBPath}, nil
	case "network":
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: network mode requires an address")
		}
		return &networkPrinter{address: cfg.Address, timeout: 5 * time.Second}, nil
	case "file":
		dir := cfg.SpoolDir
		if dir == "" {
			dir = "coupons"
		}
		return &filePrinter{dir: dir}, nil
	case "none", "":
		return nullPrinter{}, nil
	default:
		return nil, fmt.Errorf("printer: unknown mode %q (use usb, network, file or none)", cfg.Mode)
	}
}

// usbPrinter writes to a raw device file. The handle is opened per job so a
// powered-off printer only fails the print, not the process.
type usbPrinter struct {
	path string
}

func (p *usbPrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Close() error { return nil }

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// networkPrinter dials a raw TCP socket per job, the usual port 9100 setup.
type networkPrinter struct {
	address string
	timeout time.Duration
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error { return nil }

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// filePrinter spools each coupon to a timestamped file. Used in development
// and on machines without printer hardware.
type filePrinter struct {
	dir string
}

func (p *filePrinter) Print(data []byte) error {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("printer: spool dir %s: %w", p.dir, err)
	}
	name := filepath.Join(p.dir, fmt.Sprintf("coupon-%d.bin", time.Now().UnixNano()))
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("printer: spool %s: %w", name, err)
	}
	return nil
}

func (p *filePrinter) Close() error { return nil }

func (p *filePrinter) IsConnected() bool { return true }

type nullPrinter struct{}

func (nullPrinter) Print(data []byte) error { return nil }
func (nullPrinter) Close() error            { return nil }
func (nullPrinter) IsConnected() bool       { return false }
