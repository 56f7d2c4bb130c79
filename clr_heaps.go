// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pe

import (
	"golang.org/x/text/encoding/unicode"
)

// decodeCompressedUint decodes an ECMA-335 §II.23.2 compressed unsigned
// integer from the front of data, returning its value and the number of
// bytes consumed. The leading byte's high bits select the encoding width:
//
//	0xxxxxxx                   -> 1 byte,  value in bits 0-6
//	10xxxxxx xxxxxxxx          -> 2 bytes, value in bits 0-13
//	110xxxxx (3 more bytes)    -> 4 bytes, value in bits 0-28
func decodeCompressedUint(data []byte) (uint32, int, error) {
	if len(data) == 0 {
		return 0, 0, ErrTruncated
	}
	b0 := data[0]
	switch {
	case b0&0x80 == 0:
		return uint32(b0), 1, nil
	case b0&0xC0 == 0x80:
		if len(data) < 2 {
			return 0, 0, ErrTruncated
		}
		v := uint32(b0&0x3F)<<8 | uint32(data[1])
		return v, 2, nil
	case b0&0xE0 == 0xC0:
		if len(data) < 4 {
			return 0, 0, ErrTruncated
		}
		v := uint32(b0&0x1F)<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
		return v, 4, nil
	default:
		return 0, 0, ErrTruncated
	}
}

// encodedLengthOfCompressedUint returns the number of bytes
// decodeCompressedUint would consume to represent v, used by writers and by
// tests checking the round-trip widths.
func encodedLengthOfCompressedUint(v uint32) int {
	switch {
	case v <= 0x7F:
		return 1
	case v <= 0x3FFF:
		return 2
	default:
		return 4
	}
}

// heapIndex is a parsed heap: a backing byte slice plus a set of byte
// offsets at which an entry is known to begin, populated by a sequential
// scan at load time. Lookups at an offset the scan never produced as an
// entry start return ErrMissingHeapEntry, matching the read-only,
// scan-once access pattern of the decoder.
type heapIndex struct {
	data    []byte
	starts  map[uint32]bool
}

func (h *heapIndex) markStart(offset uint32) {
	if h.starts == nil {
		h.starts = make(map[uint32]bool)
	}
	h.starts[offset] = true
}

func (h *heapIndex) hasStart(offset uint32) bool {
	return h.starts[offset]
}

// scanStringHeap walks the #Strings heap, recording the offset of every
// NUL-terminated UTF-8 string start, beginning with offset 0 (the empty
// string every #Strings heap implicitly contains).
func scanStringHeap(data []byte) *heapIndex {
	h := &heapIndex{data: data}
	offset := uint32(0)
	for offset <= uint32(len(data)) {
		h.markStart(offset)
		end := offset
		for int(end) < len(data) && data[end] != 0 {
			end++
		}
		if int(end) >= len(data) {
			break
		}
		offset = end + 1
	}
	return h
}

// stringAt returns the NUL-terminated UTF-8 string starting at offset.
func (h *heapIndex) stringAt(offset uint32) (string, error) {
	if offset == 0 {
		return "", nil
	}
	if !h.hasStart(offset) {
		return "", ErrMissingHeapEntry
	}
	end := offset
	for int(end) < len(h.data) && h.data[end] != 0 {
		end++
	}
	if int(end) > len(h.data) {
		return "", ErrTruncated
	}
	return string(h.data[offset:end]), nil
}

// scanLengthPrefixedHeap walks a compressed-length-prefixed heap (#Blob or
// #US), recording the offset of every entry's length prefix, beginning
// with offset 0 (the heap's implicit empty entry).
func scanLengthPrefixedHeap(data []byte) *heapIndex {
	h := &heapIndex{data: data}
	offset := uint32(0)
	for int(offset) < len(data) {
		h.markStart(offset)
		n, consumed, err := decodeCompressedUint(data[offset:])
		if err != nil {
			break
		}
		next := offset + uint32(consumed) + n
		if next <= offset || int(next) > len(data) {
			break
		}
		offset = next
	}
	if !h.hasStart(0) {
		h.markStart(0)
	}
	return h
}

// blobAt returns the raw bytes of the #Blob entry starting at offset.
func (h *heapIndex) blobAt(offset uint32) ([]byte, error) {
	if offset == 0 && !h.hasStart(0) {
		return nil, nil
	}
	if !h.hasStart(offset) {
		return nil, ErrMissingHeapEntry
	}
	if int(offset) >= len(h.data) {
		return nil, nil
	}
	n, consumed, err := decodeCompressedUint(h.data[offset:])
	if err != nil {
		return nil, err
	}
	start := offset + uint32(consumed)
	end := start + n
	if int(end) > len(h.data) {
		return nil, ErrTruncated
	}
	return h.data[start:end], nil
}

// userStringAt returns the UTF-16LE #US heap entry starting at offset,
// decoded to a Go string with its trailing has-special-characters byte
// (ECMA-335 §II.24.2.4) stripped.
func (h *heapIndex) userStringAt(offset uint32) (string, error) {
	raw, err := h.blobAt(offset)
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", nil
	}
	payload := raw
	if len(payload)%2 == 1 {
		payload = payload[:len(payload)-1]
	}
	dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	out, err := dec.Bytes(payload)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// guidHeap is the flat, 16-byte-record #GUID heap, addressed by a 1-based
// index per ECMA-335 §II.24.2.5.
type guidHeap struct {
	entries [][16]byte
}

func scanGUIDHeap(data []byte) *guidHeap {
	h := &guidHeap{}
	for off := 0; off+16 <= len(data); off += 16 {
		var g [16]byte
		copy(g[:], data[off:off+16])
		h.entries = append(h.entries, g)
	}
	return h
}

func (h *guidHeap) at(index GUIDIndex) [16]byte {
	if index == 0 || int(index) > len(h.entries) {
		return [16]byte{}
	}
	return h.entries[index-1]
}
