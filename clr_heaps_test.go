// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pe

import (
	"bytes"
	"testing"
)

func TestDecodeCompressedUint(t *testing.T) {
	tests := []struct {
		in       []byte
		wantVal  uint32
		wantLen  int
	}{
		{[]byte{0x03}, 0x03, 1},
		{[]byte{0x7F}, 0x7F, 1},
		{[]byte{0x80, 0x80}, 0x80, 2},
		{[]byte{0xAE, 0x57}, 0x2E57, 2},
		{[]byte{0xBF, 0xFF}, 0x3FFF, 2},
		{[]byte{0xC0, 0x00, 0x40, 0x00}, 0x4000, 4},
		{[]byte{0xDF, 0xFF, 0xFF, 0xFF}, 0x1FFFFFFF, 4},
	}
	for _, tt := range tests {
		v, n, err := decodeCompressedUint(tt.in)
		if err != nil {
			t.Fatalf("decodeCompressedUint(%x) failed: %v", tt.in, err)
		}
		if v != tt.wantVal || n != tt.wantLen {
			t.Errorf("decodeCompressedUint(%x) = (0x%x, %d), want (0x%x, %d)",
				tt.in, v, n, tt.wantVal, tt.wantLen)
		}
	}
}

func TestEncodedLengthOfCompressedUint(t *testing.T) {
	tests := []struct {
		in   uint32
		want int
	}{
		{0, 1},
		{1, 1},
		{127, 1},
		{128, 2},
		{16383, 2},
		{16384, 4},
		{0x1FFFFFFF, 4},
	}
	for _, tt := range tests {
		if got := encodedLengthOfCompressedUint(tt.in); got != tt.want {
			t.Errorf("encodedLengthOfCompressedUint(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestScanStringHeap(t *testing.T) {
	data := append([]byte{0x00}, []byte("Foo\x00Bar\x00")...)
	h := scanStringHeap(data)

	got, err := h.stringAt(1)
	if err != nil || got != "Foo" {
		t.Fatalf("stringAt(1) = (%q, %v), want (\"Foo\", nil)", got, err)
	}
	got, err = h.stringAt(5)
	if err != nil || got != "Bar" {
		t.Fatalf("stringAt(5) = (%q, %v), want (\"Bar\", nil)", got, err)
	}
	if got, err := h.stringAt(0); err != nil || got != "" {
		t.Fatalf("stringAt(0) = (%q, %v), want (\"\", nil)", got, err)
	}
	if _, err := h.stringAt(2); err != ErrMissingHeapEntry {
		t.Fatalf("stringAt(2) (mid-string offset) = %v, want ErrMissingHeapEntry", err)
	}
}

func TestScanLengthPrefixedHeap(t *testing.T) {
	var data []byte
	data = append(data, 0x00) // implicit empty entry
	data = append(data, 0x03, 'a', 'b', 'c')
	data = append(data, 0x80, 0x80) // 128-byte entry
	data = append(data, bytes.Repeat([]byte{0xAA}, 128)...)

	h := scanLengthPrefixedHeap(data)

	blob, err := h.blobAt(1)
	if err != nil || string(blob) != "abc" {
		t.Fatalf("blobAt(1) = (%q, %v), want (\"abc\", nil)", blob, err)
	}

	secondOffset := uint32(1 + 4)
	blob, err = h.blobAt(secondOffset)
	if err != nil || len(blob) != 128 {
		t.Fatalf("blobAt(%d) = (len %d, %v), want (len 128, nil)", secondOffset, len(blob), err)
	}

	if _, err := h.blobAt(secondOffset + 1); err != ErrMissingHeapEntry {
		t.Fatalf("blobAt at a non-start offset = %v, want ErrMissingHeapEntry", err)
	}
}

func TestUserStringAt(t *testing.T) {
	// "Hi" in UTF-16LE plus the trailing has-special-characters byte.
	payload := []byte{'H', 0x00, 'i', 0x00, 0x00}
	var data []byte
	data = append(data, byte(len(payload)))
	data = append(data, payload...)

	h := scanLengthPrefixedHeap(data)
	s, err := h.userStringAt(0)
	if err != nil || s != "Hi" {
		t.Fatalf("userStringAt(0) = (%q, %v), want (\"Hi\", nil)", s, err)
	}
}

func TestGUIDHeap(t *testing.T) {
	var data []byte
	g1 := [16]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	g2 := [16]byte{}
	data = append(data, g1[:]...)
	data = append(data, g2[:]...)

	h := scanGUIDHeap(data)
	if got := h.at(1); got != g1 {
		t.Fatalf("at(1) = %v, want %v", got, g1)
	}
	if got := h.at(0); got != ([16]byte{}) {
		t.Fatalf("at(0) = %v, want zero GUID", got)
	}
	if got := h.at(99); got != ([16]byte{}) {
		t.Fatalf("at(99) (out of range) = %v, want zero GUID", got)
	}
}
