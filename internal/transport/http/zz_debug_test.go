package http

import (
	"runtime"
	"bufio"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"
)

// Temporary debug scaffolding: raw handshake + frame dump. Delete before commit.
func TestZZDebugRawWS(t *testing.T) {
	ts := startTestServer(t)

	addr := strings.TrimPrefix(ts.URL, "http://")
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	req := "GET /ws HTTP/1.1\r\nHost: " + addr + "\r\nUpgrade: websocket\r\nConnection: Upgrade\r\nSec-WebSocket-Key: dGhlIHNhbXBsZSBub25jZQ==\r\nSec-WebSocket-Version: 13\r\n\r\n"
	if _, err := conn.Write([]byte(req)); err != nil {
		t.Fatal(err)
	}

	br := bufio.NewReader(conn)
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			t.Fatalf("handshake read: %v", err)
		}
		fmt.Printf("HDR: %q\n", line)
		if line == "\r\n" {
			break
		}
	}

	// send a masked text frame with an unknown type to trigger the error reply
	payload := []byte(`{"type":"teleport","data":{}}`)
	frame := []byte{0x81, byte(0x80 | len(payload)), 0, 0, 0, 0}
	frame = append(frame, payload...)
	if _, err := conn.Write(frame); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	buf := make([]byte, 2048)
	n, err := br.Read(buf)
	fmt.Printf("READ n=%d err=%v bytes=%q\n", n, err, buf[:n])

	stacks := make([]byte, 1<<20)
	stacks = stacks[:runtime.Stack(stacks, true)]
	fmt.Printf("STACKS:\n%s\n", stacks)
}
