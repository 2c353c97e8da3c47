// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// packet.go - Source RCON wire framing.
//
// Every frame is little-endian: an int32 length covering the rest of
// the frame, an int32 request id, an int32 type, the body, and two
// NUL terminators. The same codec serves the listener and the client
// binary.

package rcon

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Packet types. Auth responses reuse the command type value; the two
// are told apart by direction.
const (
	TypeResponse     int32 = 0
	TypeCommand      int32 = 2
	TypeAuthResponse int32 = 2
	TypeAuth         int32 = 3
)

// AuthFailedID is the request id returned on a rejected
// authentication attempt.
const AuthFailedID int32 = -1

// packetOverhead is id + type + the two NUL terminators, the bytes a
// frame carries beyond its body.
const packetOverhead = 10

// Packet is one decoded RCON frame.
type Packet struct {
	ID   int32
	Type int32
	Body string
}

// WritePacket encodes p onto w as a single write.
func WritePacket(w io.Writer, p Packet) error {
	body := []byte(p.Body)
	buf := make([]byte, 0, 4+packetOverhead+len(body))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(packetOverhead+len(body)))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(p.ID))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(p.Type))
	buf = append(buf, body...)
	buf = append(buf, 0, 0)
	_, err := w.Write(buf)
	return err
}

// ReadPacket decodes one frame from r. Frames shorter than the fixed
// overhead or longer than maxSize bytes are rejected without reading
// the body.
func ReadPacket(r io.Reader, maxSize int) (Packet, error) {
	var length int32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return Packet{}, err
	}
	if length < packetOverhead {
		return Packet{}, fmt.Errorf("frame too short: %d bytes", length)
	}
	if maxSize > 0 && int(length) > maxSize {
		return Packet{}, fmt.Errorf("frame of %d bytes exceeds limit of %d", length, maxSize)
	}

	raw := make([]byte, length)
	if _, err := io.ReadFull(r, raw); err != nil {
		return Packet{}, err
	}

	p := Packet{
		ID:   int32(binary.LittleEndian.Uint32(raw[0:4])),
		Type: int32(binary.LittleEndian.Uint32(raw[4:8])),
	}
	body := raw[8:]
	body = bytes.TrimSuffix(body, []byte{0, 0})
	p.Body = string(body)
	return p, nil
}
