// Package wav builds and inspects minimal RIFF/WAVE containers around raw
// linear PCM streams. It exists so that speech providers returning bare PCM
// can be turned into files any standard audio decoder will play.
package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

// HeaderSize is the size of the canonical PCM WAVE preamble in bytes.
const HeaderSize = 44

// Format describes the layout of a linear PCM stream.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// DefaultFormat returns the format speech providers emit by default:
// single-channel, 24 kHz, 16-bit signed little-endian PCM.
func DefaultFormat() Format {
	return Format{
		SampleRate: 24000,
		Channels:   1,
		BitDepth:   16,
	}
}

// BlockAlign returns the number of bytes per sample frame.
func (f Format) BlockAlign() int {
	return f.Channels * f.BitDepth / 8
}

// ByteRate returns the number of bytes consumed per second of playback.
func (f Format) ByteRate() int {
	return f.SampleRate * f.BlockAlign()
}

// Duration returns the playback time in seconds of dataLen bytes of PCM.
func (f Format) Duration(dataLen int) float64 {
	if f.SampleRate == 0 || f.BlockAlign() == 0 {
		return 0
	}
	frames := dataLen / f.BlockAlign()
	return float64(frames) / float64(f.SampleRate)
}

// Validate checks that the format is usable and that data aligns to whole
// sample frames.
func (f Format) Validate(data []byte) error {
	if f.SampleRate <= 0 || f.Channels <= 0 {
		return fmt.Errorf("invalid PCM format %+v", f)
	}
	if f.BitDepth != 8 && f.BitDepth != 16 && f.BitDepth != 24 && f.BitDepth != 32 {
		return fmt.Errorf("unsupported bit depth %d", f.BitDepth)
	}
	if len(data) == 0 {
		return errors.New("empty PCM data")
	}
	if len(data)%f.BlockAlign() != 0 {
		return fmt.Errorf("PCM data length %d is not aligned to %d-byte frames",
			len(data), f.BlockAlign())
	}
	return nil
}

// Encode wraps raw PCM bytes in a 44-byte WAVE header. The payload is copied
// verbatim after the header; the result is independently playable.
func Encode(pcm []byte, f Format) ([]byte, error) {
	if err := f.Validate(pcm); err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize+len(pcm)))
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(pcm))) //nolint:errcheck
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))              //nolint:errcheck
	binary.Write(buf, binary.LittleEndian, uint16(1))               //nolint:errcheck // PCM format tag
	binary.Write(buf, binary.LittleEndian, uint16(f.Channels))      //nolint:errcheck
	binary.Write(buf, binary.LittleEndian, uint32(f.SampleRate))    //nolint:errcheck
	binary.Write(buf, binary.LittleEndian, uint32(f.ByteRate()))    //nolint:errcheck
	binary.Write(buf, binary.LittleEndian, uint16(f.BlockAlign()))  //nolint:errcheck
	binary.Write(buf, binary.LittleEndian, uint16(f.BitDepth))      //nolint:errcheck

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(pcm))) //nolint:errcheck
	buf.Write(pcm)

	return buf.Bytes(), nil
}

// Info is the result of parsing a WAVE header.
type Info struct {
	Format  Format
	DataLen int
}

// Duration returns the playback time in seconds of the described stream.
func (i Info) Duration() float64 {
	return i.Format.Duration(i.DataLen)
}

// Parse reads the header of an encoded WAVE stream. Only the canonical
// 44-byte PCM layout produced by Encode is supported.
func Parse(data []byte) (Info, error) {
	if len(data) < HeaderSize {
		return Info{}, fmt.Errorf("stream too short for WAVE header: %d bytes", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return Info{}, errors.New("not a RIFF/WAVE stream")
	}
	if string(data[12:16]) != "fmt " {
		return Info{}, errors.New("missing fmt chunk")
	}
	if tag := binary.LittleEndian.Uint16(data[20:22]); tag != 1 {
		return Info{}, fmt.Errorf("unsupported format tag %d (want linear PCM)", tag)
	}

	info := Info{
		Format: Format{
			Channels:   int(binary.LittleEndian.Uint16(data[22:24])),
			SampleRate: int(binary.LittleEndian.Uint32(data[24:28])),
			BitDepth:   int(binary.LittleEndian.Uint16(data[34:36])),
		},
	}
	if string(data[36:40]) != "data" {
		return Info{}, errors.New("missing data chunk")
	}
	declared := int(binary.LittleEndian.Uint32(data[40:44]))
	if available := len(data) - HeaderSize; declared > available {
		declared = available
	}
	info.DataLen = declared
	return info, nil
}
