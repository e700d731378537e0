// File: api/message.go
// Author: momentics <momentics@gmail.com>
//
// Wire message layout shared by the transport, the fakes and event handlers.
// Every message is a 32-bit sender id, a 32-bit word holding size<<16|opcode,
// then 32-bit aligned little-endian arguments.

package api

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the fixed message header length in bytes.
const HeaderSize = 8

// MaxMessageSize bounds a single message, header included.
const MaxMessageSize = 4096

var errShortMessage = errors.New("message body too short")

// FDSource hands out descriptors received alongside messages.
type FDSource interface {
	NextFD() (int, bool)
}

// Message is one decoded event. Arguments are consumed in order.
type Message struct {
	Sender uint32
	Opcode uint16
	Body   []byte

	fds FDSource
	off int
	err error
}

// NewMessage builds an event message from args, mostly for fakes and tests.
func NewMessage(sender uint32, opcode uint16, args ...any) (*Message, error) {
	body, _, err := AppendArgs(nil, args...)
	if err != nil {
		return nil, err
	}
	return &Message{Sender: sender, Opcode: opcode, Body: body}, nil
}

// NewMessageFrom wraps a received body. fds may be nil.
func NewMessageFrom(sender uint32, opcode uint16, body []byte, fds FDSource) *Message {
	return &Message{Sender: sender, Opcode: opcode, Body: body, fds: fds}
}

// Err returns the first decoding error.
func (m *Message) Err() error { return m.err }

// Uint32 consumes an unsigned argument.
func (m *Message) Uint32() uint32 {
	if m.err != nil {
		return 0
	}
	if len(m.Body)-m.off < 4 {
		m.err = errShortMessage
		return 0
	}
	v := binary.LittleEndian.Uint32(m.Body[m.off:])
	m.off += 4
	return v
}

// Int32 consumes a signed argument.
func (m *Message) Int32() int32 { return int32(m.Uint32()) }

// Fixed consumes a fixed-point argument.
func (m *Message) Fixed() Fixed { return Fixed(m.Uint32()) }

// Array consumes a byte array argument. The result aliases the body.
func (m *Message) Array() []byte {
	size := m.Uint32()
	if m.err != nil {
		return nil
	}
	// size comes off the wire; compare before converting to int
	padded := (uint64(size) + 3) &^ 3
	if padded > uint64(len(m.Body)-m.off) {
		m.err = errShortMessage
		return nil
	}
	v := m.Body[m.off : m.off+int(size)]
	m.off += int(padded)
	return v
}

// String consumes a string argument. A null string decodes as "".
func (m *Message) String() string {
	b := m.Array()
	if len(b) == 0 {
		return ""
	}
	if b[len(b)-1] != 0 {
		m.err = fmt.Errorf("string argument not NUL terminated")
		return ""
	}
	return string(b[:len(b)-1])
}

// FD consumes a descriptor passed out of band.
func (m *Message) FD() int {
	if m.err != nil {
		return -1
	}
	if m.fds == nil {
		m.err = errors.New("no descriptor available")
		return -1
	}
	fd, ok := m.fds.NextFD()
	if !ok {
		m.err = errors.New("no descriptor available")
		return -1
	}
	return fd
}

// AppendHeader appends a message header.
func AppendHeader(buf []byte, sender uint32, opcode uint16, size int) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, sender)
	return binary.LittleEndian.AppendUint32(buf, uint32(size)<<16|uint32(opcode))
}

// ParseHeader decodes a header from the first HeaderSize bytes of b.
func ParseHeader(b []byte) (sender uint32, opcode uint16, size int) {
	sender = binary.LittleEndian.Uint32(b[0:4])
	word := binary.LittleEndian.Uint32(b[4:8])
	return sender, uint16(word & 0xffff), int(word >> 16)
}

// AppendArgs encodes args after buf and returns descriptors to pass out of band.
func AppendArgs(buf []byte, args ...any) ([]byte, []int, error) {
	var fds []int
	for i, arg := range args {
		switch v := arg.(type) {
		case uint32:
			buf = binary.LittleEndian.AppendUint32(buf, v)
		case int32:
			buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
		case Fixed:
			buf = binary.LittleEndian.AppendUint32(buf, uint32(v))
		case string:
			buf = appendString(buf, v)
		case []byte:
			buf = appendArray(buf, v)
		case FD:
			fds = append(fds, int(v))
		case Proxy:
			if v == nil {
				buf = binary.LittleEndian.AppendUint32(buf, 0)
			} else {
				buf = binary.LittleEndian.AppendUint32(buf, v.ID())
			}
		case nil:
			buf = binary.LittleEndian.AppendUint32(buf, 0)
		default:
			return nil, nil, NewError(ErrCodeInvalidArgument, "unsupported argument type").
				WithContext("index", i).
				WithContext("type", fmt.Sprintf("%T", arg))
		}
	}
	return buf, fds, nil
}

func appendString(buf []byte, s string) []byte {
	n := len(s) + 1
	buf = binary.LittleEndian.AppendUint32(buf, uint32(n))
	buf = append(buf, s...)
	buf = append(buf, 0)
	return appendPadding(buf, n)
}

func appendArray(buf []byte, b []byte) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(b)))
	buf = append(buf, b...)
	return appendPadding(buf, len(b))
}

func appendPadding(buf []byte, n int) []byte {
	for i := n; i < align4(n); i++ {
		buf = append(buf, 0)
	}
	return buf
}

func align4(n int) int { return (n + 3) &^ 3 }
