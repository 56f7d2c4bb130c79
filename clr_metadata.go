// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package pe

// ImageCOR20Header is the CLI header, ECMA-335 §II.25.3.3. It is pointed to
// by the ImageDirectoryEntryCLR data directory and is always 72 bytes.
type ImageCOR20Header struct {
	Cb                      uint32
	MajorRuntimeVersion     uint16
	MinorRuntimeVersion     uint16
	MetaData                DataDirectory
	Flags                   COMImageFlagsType
	EntryPointRVAorToken    uint32
	Resources               DataDirectory
	StrongNameSignature     DataDirectory
	CodeManagerTable        DataDirectory
	VTableFixups            DataDirectory
	ExportAddressTableJumps DataDirectory
	ManagedNativeHeader     DataDirectory
}

// MetadataStreamHeader is one entry of the metadata root's stream
// directory, ECMA-335 §II.24.2.2.
type MetadataStreamHeader struct {
	Offset uint32
	Size   uint32
	Name   string
}

// MetadataHeader is the metadata root, ECMA-335 §II.24.2.1.
type MetadataHeader struct {
	Signature     uint32
	MajorVersion  uint16
	MinorVersion  uint16
	ExtraData     uint32
	VersionString uint32 // length, in bytes, of Version
	Version       string
	Flags         uint16
	Streams       uint16
}

// MetadataTablesStreamHeader is the fixed preamble of the #~ (or #-) table
// stream, ECMA-335 §II.24.2.6, preceding the per-table row arrays.
type MetadataTablesStreamHeader struct {
	Reserved     uint32
	MajorVersion uint8
	MinorVersion uint8
	Heaps        uint8
	RID          uint8
	MaskValid    uint64
	Sorted       uint64
}

// metadataRootSignature is the magic "BSJB" value that opens every
// metadata root.
const metadataRootSignature = 0x424A5342

// rvaToOffset translates rva to an absolute file offset, turning
// GetOffsetFromRva's ^uint32(0) sentinel into ErrRvaUnmapped.
func rvaToOffset(pe *File, rva uint32) (uint32, error) {
	offset := pe.GetOffsetFromRva(rva)
	if offset == ^uint32(0) {
		return 0, ErrRvaUnmapped
	}
	return offset, nil
}

// parseCLRHeaderDirectory is the ImageDirectoryEntryCLR data-directory
// handler registered in ParseDataDirectories. It decodes the CLI header,
// the metadata root that follows it, the heap streams, and the #~ table
// stream, populating pe.CLR.
func (pe *File) parseCLRHeaderDirectory(rva, size uint32) error {
	offset, err := rvaToOffset(pe, rva)
	if err != nil {
		return err
	}

	img := newImage(pe)

	hdr, err := pe.parseCOR20Header(offset)
	if err != nil {
		return err
	}
	img.CLRHeader = hdr

	if hdr.MetaData.VirtualAddress == 0 {
		pe.CLR = img
		pe.FileInfo.HasCLR = true
		return nil
	}

	mdOffset, err := rvaToOffset(pe, hdr.MetaData.VirtualAddress)
	if err != nil {
		return err
	}

	root, streamHeaders, err := pe.parseMetadataRoot(mdOffset)
	if err != nil {
		return err
	}
	img.MetadataHeader = root
	img.MetadataStreamHeaders = streamHeaders

	streamOffsets := make(map[string]uint32, len(streamHeaders))
	for _, sh := range streamHeaders {
		start := mdOffset + sh.Offset
		end := start + sh.Size
		if end < start || int(end) > len(pe.data) {
			return ErrTruncated
		}
		img.MetadataStreams[sh.Name] = pe.data[start:end]
		streamOffsets[sh.Name] = start
	}

	img.strings = scanStringHeap(img.MetadataStreams["#Strings"])
	img.blobs = scanLengthPrefixedHeap(img.MetadataStreams["#Blob"])
	img.userStrings = scanLengthPrefixedHeap(img.MetadataStreams["#US"])
	img.guids = scanGUIDHeap(img.MetadataStreams["#GUID"])

	tablesName := "#~"
	if _, ok := img.MetadataStreams[tablesName]; !ok {
		tablesName = "#-"
	}
	if err := img.parseTablesStream(streamOffsets[tablesName], img.MetadataStreams[tablesName]); err != nil {
		return err
	}

	if opts := img.opts(); opts != nil && opts.EagerMethodBodies {
		img.decodeAllMethodBodies()
	}

	pe.CLR = img
	pe.FileInfo.HasCLR = true
	return nil
}

// parseCOR20Header reads the fixed 72-byte CLI header at offset.
func (pe *File) parseCOR20Header(offset uint32) (ImageCOR20Header, error) {
	var h ImageCOR20Header
	var err error

	if h.Cb, err = pe.ReadUint32(offset); err != nil {
		return h, ErrTruncated
	}
	if h.MajorRuntimeVersion, err = pe.ReadUint16(offset + 4); err != nil {
		return h, ErrTruncated
	}
	if h.MinorRuntimeVersion, err = pe.ReadUint16(offset + 6); err != nil {
		return h, ErrTruncated
	}
	// MetaData sits at +8; the flags and entry-point fields at +16 and +20
	// separate it from the six directories that follow, starting at +24.
	dirs := make([]DataDirectory, 7)
	for i := range dirs {
		o := offset + 8 + uint32(i)*8
		if i > 0 {
			o += 8
		}
		va, err := pe.ReadUint32(o)
		if err != nil {
			return h, ErrTruncated
		}
		sz, err := pe.ReadUint32(o + 4)
		if err != nil {
			return h, ErrTruncated
		}
		dirs[i] = DataDirectory{VirtualAddress: va, Size: sz}
	}
	h.MetaData = dirs[0]
	flags, err := pe.ReadUint32(offset + 16)
	if err != nil {
		return h, ErrTruncated
	}
	h.Flags = COMImageFlagsType(flags)
	if h.EntryPointRVAorToken, err = pe.ReadUint32(offset + 20); err != nil {
		return h, ErrTruncated
	}
	h.Resources = dirs[1]
	h.StrongNameSignature = dirs[2]
	h.CodeManagerTable = dirs[3]
	h.VTableFixups = dirs[4]
	h.ExportAddressTableJumps = dirs[5]
	h.ManagedNativeHeader = dirs[6]
	return h, nil
}

// alignUp4 rounds n up to the next multiple of 4, as required between the
// metadata root's version string and its stream directory.
func alignUp4(n uint32) uint32 {
	return (n + 3) &^ 3
}

// parseMetadataRoot reads the BSJB metadata root and its stream directory
// starting at offset (relative to the start of the file).
func (pe *File) parseMetadataRoot(offset uint32) (MetadataHeader, []MetadataStreamHeader, error) {
	var root MetadataHeader
	var err error

	if root.Signature, err = pe.ReadUint32(offset); err != nil {
		return root, nil, ErrTruncated
	}
	if root.Signature != metadataRootSignature {
		return root, nil, ErrBadSignature
	}
	if root.MajorVersion, err = pe.ReadUint16(offset + 4); err != nil {
		return root, nil, ErrTruncated
	}
	if root.MinorVersion, err = pe.ReadUint16(offset + 6); err != nil {
		return root, nil, ErrTruncated
	}
	if root.ExtraData, err = pe.ReadUint32(offset + 8); err != nil {
		return root, nil, ErrTruncated
	}
	if root.VersionString, err = pe.ReadUint32(offset + 12); err != nil {
		return root, nil, ErrTruncated
	}

	verStart := offset + 16
	verEnd := verStart + root.VersionString
	if verEnd < verStart || int(verEnd) > len(pe.data) {
		return root, nil, ErrTruncated
	}
	root.Version = cStringFromBytes(pe.data[verStart:verEnd])

	cursor := verStart + alignUp4(root.VersionString)
	if root.Flags, err = pe.ReadUint16(cursor); err != nil {
		return root, nil, ErrTruncated
	}
	cursor += 2
	if root.Streams, err = pe.ReadUint16(cursor); err != nil {
		return root, nil, ErrTruncated
	}
	cursor += 2

	streams := make([]MetadataStreamHeader, 0, root.Streams)
	for i := uint16(0); i < root.Streams; i++ {
		var sh MetadataStreamHeader
		if sh.Offset, err = pe.ReadUint32(cursor); err != nil {
			return root, nil, ErrTruncated
		}
		if sh.Size, err = pe.ReadUint32(cursor + 4); err != nil {
			return root, nil, ErrTruncated
		}
		cursor += 8
		name, n, err := pe.readCString(cursor)
		if err != nil {
			return root, nil, err
		}
		sh.Name = name
		cursor += alignUp4(uint32(n))
		streams = append(streams, sh)
	}

	return root, streams, nil
}

// readCString reads a NUL-terminated string starting at offset, returning
// the string and the number of bytes including the terminator.
func (pe *File) readCString(offset uint32) (string, int, error) {
	end := offset
	for int(end) < len(pe.data) && pe.data[end] != 0 {
		end++
	}
	if int(end) >= len(pe.data) {
		return "", 0, ErrTruncated
	}
	return string(pe.data[offset:end]), int(end-offset) + 1, nil
}

func cStringFromBytes(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
