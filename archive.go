package tokcompress

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	archiveMagic   = "TKC1"
	archiveVersion = uint16(1)

	archiveFlagFlate = uint8(1 << 0)

	maxArchiveTokens = 1 << 28 // guards against a corrupt length field driving an unbounded allocation
)

// Wire format:
//
//	magic[4]          = "TKC1"
//	version           = uint16 little-endian
//	flags             = uint8 (bit 0: payload is flate-compressed)
//	_pad              = uint8
//	originalLength    = uint64 little-endian (token count of T, before compression)
//	streamLength      = uint64 little-endian (token count of Stream)
//	payload           = streamLength*4 bytes, each token little-endian uint32,
//	                     optionally flate-compressed per flags
//
// Archive only carries Stream and OriginalLength; Dictionary and Body are
// recoverable from Stream by the deserializer and are not duplicated.

// WriteArchive writes res to w in the byte-oriented container format. When
// useFlate is true the token payload is flate-compressed.
func WriteArchive(w io.Writer, res CompressionResult, useFlate bool) error {
	raw := make([]byte, len(res.Stream)*4)
	for i, t := range res.Stream {
		binary.LittleEndian.PutUint32(raw[i*4:], t)
	}

	payload := raw
	var flags uint8
	if useFlate {
		var buf bytes.Buffer
		fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
		if err != nil {
			return fmt.Errorf("tokcompress: archive flate writer: %w", err)
		}
		if _, err := fw.Write(raw); err != nil {
			return fmt.Errorf("tokcompress: archive flate write: %w", err)
		}
		if err := fw.Close(); err != nil {
			return fmt.Errorf("tokcompress: archive flate close: %w", err)
		}
		payload = buf.Bytes()
		flags |= archiveFlagFlate
	}

	header := make([]byte, 0, 4+2+1+1+8+8)
	header = append(header, archiveMagic...)
	header = binary.LittleEndian.AppendUint16(header, archiveVersion)
	header = append(header, flags, 0)
	header = binary.LittleEndian.AppendUint64(header, uint64(res.OriginalLength))
	header = binary.LittleEndian.AppendUint64(header, uint64(len(res.Stream)))

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("tokcompress: archive header write: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("tokcompress: archive payload write: %w", err)
	}
	return nil
}

// ReadArchive reads a container written by WriteArchive and reconstructs
// its Stream and OriginalLength. Dictionary and Body are left empty; call
// Decompress on the returned Stream, or reparse it, to recover them.
func ReadArchive(r io.Reader) (CompressionResult, error) {
	header := make([]byte, 4+2+1+1+8+8)
	if _, err := io.ReadFull(r, header); err != nil {
		return CompressionResult{}, fmt.Errorf("tokcompress: archive header read: %w", err)
	}
	if string(header[:4]) != archiveMagic {
		return CompressionResult{}, fmt.Errorf("tokcompress: archive bad magic %q", header[:4])
	}
	version := binary.LittleEndian.Uint16(header[4:6])
	if version != archiveVersion {
		return CompressionResult{}, fmt.Errorf("tokcompress: archive unsupported version %d", version)
	}
	flags := header[6]
	originalLength := binary.LittleEndian.Uint64(header[8:16])
	streamLength := binary.LittleEndian.Uint64(header[16:24])
	if streamLength > maxArchiveTokens {
		return CompressionResult{}, fmt.Errorf("tokcompress: archive stream length %d exceeds limit", streamLength)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return CompressionResult{}, fmt.Errorf("tokcompress: archive payload read: %w", err)
	}
	if flags&archiveFlagFlate != 0 {
		fr := flate.NewReader(bytes.NewReader(body))
		defer fr.Close()
		decoded, err := io.ReadAll(fr)
		if err != nil {
			return CompressionResult{}, fmt.Errorf("tokcompress: archive flate read: %w", err)
		}
		body = decoded
	}

	want := int(streamLength) * 4
	if len(body) != want {
		return CompressionResult{}, fmt.Errorf("tokcompress: archive payload length %d, want %d", len(body), want)
	}
	stream := make(Sequence, streamLength)
	for i := range stream {
		stream[i] = binary.LittleEndian.Uint32(body[i*4:])
	}

	return CompressionResult{
		OriginalLength:   int(originalLength),
		CompressedLength: len(stream),
		Stream:           stream,
	}, nil
}
