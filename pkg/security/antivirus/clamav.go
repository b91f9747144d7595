// Package antivirus scans uploaded files with a clamd daemon.
package antivirus

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// ScanResult is the verdict for one file. Scan errors come back as Infected
// so callers reject the upload.
type ScanResult struct {
	Infected   bool
	ThreatName string
	Error      error
}

type Scanner interface {
	Scan(ctx context.Context, filename string, data []byte) ScanResult
	Name() string
}

// ClamAVScanner talks the clamd INSTREAM protocol over TCP or a unix socket.
type ClamAVScanner struct {
	address string // "localhost:3310" or "/var/run/clamav/clamd.sock"
	timeout time.Duration
}

var _ Scanner = (*ClamAVScanner)(nil)

func NewClamAVScanner(address string, timeout time.Duration) *ClamAVScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClamAVScanner{address: address, timeout: timeout}
}

func (c *ClamAVScanner) Name() string {
	return "clamav"
}

func (c *ClamAVScanner) dial(ctx context.Context) (net.Conn, error) {
	network := "tcp"
	if strings.HasPrefix(c.address, "/") {
		network = "unix"
	}
	d := net.Dialer{Timeout: c.timeout}
	conn, err := d.DialContext(ctx, network, c.address)
	if err != nil {
		return nil, err
	}
	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = conn.SetDeadline(deadline)
	return conn, nil
}

// Ping reports whether clamd answers PONG. It doubles as a health probe.
func (c *ClamAVScanner) Ping(ctx context.Context) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zPING\x00")); err != nil {
		return err
	}
	reply, err := io.ReadAll(io.LimitReader(conn, 64))
	if err != nil {
		return err
	}
	if !strings.HasPrefix(strings.Trim(string(reply), "\x00\n "), "PONG") {
		return fmt.Errorf("clamd: unexpected ping reply %q", reply)
	}
	return nil
}

func (c *ClamAVScanner) Scan(ctx context.Context, filename string, data []byte) ScanResult {
	conn, err := c.dial(ctx)
	if err != nil {
		return ScanResult{Infected: true, Error: fmt.Errorf("failed to connect to clamd: %w", err)}
	}
	defer conn.Close()

	// zINSTREAM, one length-prefixed chunk, then a zero-length terminator.
	var msg bytes.Buffer
	msg.WriteString("zINSTREAM\x00")
	_ = binary.Write(&msg, binary.BigEndian, uint32(len(data)))
	msg.Write(data)
	_ = binary.Write(&msg, binary.BigEndian, uint32(0))
	if _, err := conn.Write(msg.Bytes()); err != nil {
		return ScanResult{Infected: true, Error: fmt.Errorf("failed to stream %s: %w", filename, err)}
	}

	reply, err := io.ReadAll(io.LimitReader(conn, 1024))
	if err != nil && len(reply) == 0 {
		return ScanResult{Infected: true, Error: fmt.Errorf("failed to read clamd reply: %w", err)}
	}
	return parseReply(strings.Trim(string(reply), "\x00\n "))
}

// parseReply reads "stream: OK", "stream: <name> FOUND" or "stream: <msg> ERROR".
func parseReply(reply string) ScanResult {
	switch {
	case strings.HasSuffix(reply, "FOUND"):
		threat := strings.TrimSuffix(reply, "FOUND")
		if _, after, ok := strings.Cut(threat, ":"); ok {
			threat = after
		}
		return ScanResult{Infected: true, ThreatName: strings.TrimSpace(threat)}
	case strings.HasSuffix(reply, "OK"):
		return ScanResult{}
	default:
		return ScanResult{Infected: true, Error: fmt.Errorf("clamd scan error: %s", reply)}
	}
}
