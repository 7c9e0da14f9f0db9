package plugin

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/shamaton/msgpack/v2"
)

// MaxFrameSize bounds a single msgpack frame.
const MaxFrameSize = 64 << 20

// Codec serializes protocol messages to and from a byte stream.
type Codec interface {
	Name() string
	WriteFrame(w io.Writer, v any) error
	// ReadFrame returns io.EOF when the stream ends cleanly between frames.
	ReadFrame(r *bufio.Reader, v any) error
}

// NewCodec returns the codec called name: "json" or "msgpack".
func NewCodec(name string) (Codec, error) {
	switch name {
	case "json":
		return JSONCodec{}, nil
	case "msgpack":
		return MsgPackCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
}

// JSONCodec writes one compact JSON document per line.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) WriteFrame(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encoding json frame")
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func (JSONCodec) ReadFrame(r *bufio.Reader, v any) error {
	for {
		line, err := r.ReadBytes('\n')
		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			return errors.Wrap(json.Unmarshal(line, v), "decoding json frame")
		}
		if err != nil {
			return err
		}
	}
}

// MsgPackCodec writes a 4-byte big-endian length followed by a MessagePack body.
type MsgPackCodec struct{}

func (MsgPackCodec) Name() string { return "msgpack" }

func (MsgPackCodec) WriteFrame(w io.Writer, v any) error {
	body, err := msgpack.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encoding msgpack frame")
	}
	frame := make([]byte, 4+len(body))
	binary.BigEndian.PutUint32(frame, uint32(len(body)))
	copy(frame[4:], body)
	_, err = w.Write(frame)
	return err
}

func (MsgPackCodec) ReadFrame(r *bufio.Reader, v any) error {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return errors.Wrap(err, "reading msgpack frame header")
		}
		return err
	}
	n := binary.BigEndian.Uint32(header[:])
	if n > MaxFrameSize {
		return fmt.Errorf("msgpack frame of %d bytes exceeds limit of %d", n, MaxFrameSize)
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return errors.Wrap(err, "reading msgpack frame body")
	}
	return errors.Wrap(msgpack.Unmarshal(body, v), "decoding msgpack frame")
}

// writeEncodingHeader announces the codec to the host: one length byte
// followed by the codec name.
func writeEncodingHeader(w io.Writer, c Codec) error {
	name := c.Name()
	_, err := w.Write(append([]byte{byte(len(name))}, name...))
	return err
}
