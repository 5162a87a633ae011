package paging

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"os"
	"slices"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// CompressionType represents the compression algorithm of a trace archive
type CompressionType uint8

const (
	CompressionNone   CompressionType = 0
	CompressionLZ4    CompressionType = 1
	CompressionSnappy CompressionType = 2
)

// String returns the configuration name of the compression type
func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionSnappy:
		return "snappy"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompressionType resolves "none", "lz4" or "snappy"
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "snappy":
		return CompressionSnappy, nil
	default:
		return CompressionNone, ErrUnsupportedCompression("ParseCompressionType", name)
	}
}

// Trace is a finished simulation: its input and every algorithm's result
type Trace struct {
	Capacity int    `json:"capacity"`
	Seed     int64  `json:"seed,omitempty"` // Set when the pages were generated
	Pages    []Page `json:"pages"`
	Report   Report `json:"report"`
}

// Trace archive layout:
// [0-1]: Magic number (0x5054)
// [2]: Compression type (0=none, 1=LZ4, 2=Snappy)
// [3]: Reserved
// [4-7]: Uncompressed payload size
// [8-11]: Stored payload size
// [12-15]: Payload checksum (CRC32 of the uncompressed JSON)
// [16+]: Payload

const (
	TraceMagic      = 0x5054
	TraceHeaderSize = 16
	MaxTraceSize    = 256 << 20 // Largest uncompressed payload accepted by DecodeTrace
)

// EncodeTrace serializes a trace as JSON and compresses it. Payloads that do
// not shrink are stored uncompressed.
func EncodeTrace(trace *Trace, compressionType CompressionType) ([]byte, error) {
	raw, err := json.Marshal(trace)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal trace: %w", err)
	}

	var payload []byte
	switch compressionType {
	case CompressionNone:
		payload = raw

	case CompressionLZ4:
		payload = make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, payload, nil)
		if err != nil {
			return nil, fmt.Errorf("LZ4 compression failed: %w", err)
		}
		payload = payload[:n]

	case CompressionSnappy:
		payload = snappy.Encode(nil, raw)

	default:
		return nil, ErrUnsupportedCompression("EncodeTrace", compressionType.String())
	}

	// LZ4 reports incompressible input as zero bytes written
	if compressionType != CompressionNone && (len(payload) == 0 || len(payload) >= len(raw)) {
		compressionType = CompressionNone
		payload = raw
	}

	buf := make([]byte, TraceHeaderSize+len(payload))
	binary.LittleEndian.PutUint16(buf[0:2], TraceMagic)
	buf[2] = uint8(compressionType)
	buf[3] = 0
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(raw)))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(payload)))
	binary.LittleEndian.PutUint32(buf[12:16], crc32.ChecksumIEEE(raw))
	copy(buf[TraceHeaderSize:], payload)

	return buf, nil
}

// DecodeTrace verifies and decompresses a trace archive
func DecodeTrace(data []byte) (*Trace, error) {
	const op = "DecodeTrace"

	if len(data) < TraceHeaderSize {
		return nil, ErrTraceCorrupted(op, fmt.Sprintf("data too short for trace header: %d bytes", len(data)), nil)
	}

	magic := binary.LittleEndian.Uint16(data[0:2])
	if magic != TraceMagic {
		return nil, ErrTraceCorrupted(op, fmt.Sprintf("invalid magic number: got %04x, expected %04x", magic, TraceMagic), nil)
	}

	compressionType := CompressionType(data[2])
	rawSize := binary.LittleEndian.Uint32(data[4:8])
	storedSize := binary.LittleEndian.Uint32(data[8:12])
	checksum := binary.LittleEndian.Uint32(data[12:16])

	if uint64(TraceHeaderSize)+uint64(storedSize) != uint64(len(data)) {
		return nil, ErrTraceCorrupted(op, fmt.Sprintf("payload size mismatch: header says %d bytes, have %d",
			storedSize, len(data)-TraceHeaderSize), nil)
	}
	if rawSize > MaxTraceSize {
		return nil, ErrTraceCorrupted(op, fmt.Sprintf("payload size %d exceeds limit %d", rawSize, MaxTraceSize), nil)
	}
	payload := data[TraceHeaderSize:]

	var raw []byte
	switch compressionType {
	case CompressionNone:
		raw = payload

	case CompressionLZ4:
		raw = make([]byte, rawSize)
		n, err := lz4.UncompressBlock(payload, raw)
		if err != nil {
			return nil, ErrTraceCorrupted(op, "LZ4 decompression failed", err)
		}
		raw = raw[:n]

	case CompressionSnappy:
		n, err := snappy.DecodedLen(payload)
		if err != nil {
			return nil, ErrTraceCorrupted(op, "snappy decompression failed", err)
		}
		if n != int(rawSize) {
			return nil, ErrTraceCorrupted(op, fmt.Sprintf("decompressed size mismatch: got %d, expected %d", n, rawSize), nil)
		}
		raw, err = snappy.Decode(nil, payload)
		if err != nil {
			return nil, ErrTraceCorrupted(op, "snappy decompression failed", err)
		}

	default:
		return nil, ErrUnsupportedCompression(op, compressionType.String())
	}

	if len(raw) != int(rawSize) {
		return nil, ErrTraceCorrupted(op, fmt.Sprintf("decompressed size mismatch: got %d, expected %d", len(raw), rawSize), nil)
	}
	if got := crc32.ChecksumIEEE(raw); got != checksum {
		return nil, ErrTraceCorrupted(op, fmt.Sprintf("checksum mismatch: got %08x, expected %08x", got, checksum), nil)
	}

	trace := &Trace{}
	if err := json.Unmarshal(raw, trace); err != nil {
		return nil, ErrTraceCorrupted(op, "invalid trace payload", err)
	}
	if err := trace.validate(); err != nil {
		return nil, ErrTraceCorrupted(op, "invalid trace", err)
	}
	return trace, nil
}

// validate checks that every result in the report is a complete run over
// the trace's pages
func (t *Trace) validate() error {
	if t.Capacity < 1 {
		return fmt.Errorf("capacity must be at least 1, got %d", t.Capacity)
	}
	for alg, result := range t.Report {
		if !slices.Contains(Algorithms(), alg) {
			return fmt.Errorf("unknown algorithm %q", alg)
		}
		if result == nil {
			return fmt.Errorf("%s: missing result", alg)
		}
		if result.Algorithm != alg {
			return fmt.Errorf("%s: result labelled %q", alg, result.Algorithm)
		}
		if len(result.Steps) != len(t.Pages) {
			return fmt.Errorf("%s: %d steps for %d pages", alg, len(result.Steps), len(t.Pages))
		}
		if result.Hits+result.Faults != len(t.Pages) {
			return fmt.Errorf("%s: hits %d + faults %d != %d pages", alg, result.Hits, result.Faults, len(t.Pages))
		}
	}
	return nil
}

// WriteTraceFile encodes a trace and writes it to path
func WriteTraceFile(path string, trace *Trace, compressionType CompressionType) error {
	data, err := EncodeTrace(trace, compressionType)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write trace file: %w", err)
	}
	return nil
}

// ReadTraceFile reads and decodes a trace archive from path
func ReadTraceFile(path string) (*Trace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace file: %w", err)
	}
	return DecodeTrace(data)
}
