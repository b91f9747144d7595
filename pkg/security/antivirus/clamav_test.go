package antivirus

import (
	"bufio"
	"context"
	"encoding/binary"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReply(t *testing.T) {
	assert.False(t, parseReply("stream: OK").Infected)

	res := parseReply("stream: Eicar-Signature FOUND")
	assert.True(t, res.Infected)
	assert.Equal(t, "Eicar-Signature", res.ThreatName)
	assert.NoError(t, res.Error)

	res = parseReply("stream: Size limit exceeded ERROR")
	assert.True(t, res.Infected)
	assert.Error(t, res.Error)
}

// fakeClamd answers one INSTREAM request with reply and reports the bytes it received.
func fakeClamd(t *testing.T, reply string) (string, <-chan []byte) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	got := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		if _, err := r.ReadString(0); err != nil {
			return
		}
		var size uint32
		if err := binary.Read(r, binary.BigEndian, &size); err != nil {
			return
		}
		body := make([]byte, size)
		if _, err := io.ReadFull(r, body); err != nil {
			return
		}
		var end uint32
		_ = binary.Read(r, binary.BigEndian, &end)
		got <- body
		conn.Write([]byte(reply + "\x00"))
	}()
	return ln.Addr().String(), got
}

func TestClamAVScannerClean(t *testing.T) {
	addr, got := fakeClamd(t, "stream: OK")
	scanner := NewClamAVScanner(addr, 2*time.Second)

	res := scanner.Scan(context.Background(), "a.png", []byte("image-bytes"))
	assert.False(t, res.Infected)
	assert.NoError(t, res.Error)
	assert.Equal(t, []byte("image-bytes"), <-got)
}

func TestClamAVScannerInfected(t *testing.T) {
	addr, _ := fakeClamd(t, "stream: Eicar-Signature FOUND")
	res := NewClamAVScanner(addr, 2*time.Second).Scan(context.Background(), "a.png", []byte("x"))
	assert.True(t, res.Infected)
	assert.Equal(t, "Eicar-Signature", res.ThreatName)
}

func TestClamAVScannerUnreachableFailsClosed(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	res := NewClamAVScanner(addr, time.Second).Scan(context.Background(), "a.png", []byte("x"))
	assert.True(t, res.Infected)
	assert.Error(t, res.Error)
}
