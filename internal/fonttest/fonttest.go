/*
Package fonttest assembles small synthetic OpenType font binaries for tests.

Real-world CJK fonts carrying vertical glyph substitutions are large and
licensed. Tests therefore construct fonts from just the tables they need:
'name', 'cmap' and 'GSUB'. The binaries produced here pass through package
ot, but not through golang.org/x/image/font/sfnt, which requires glyph
outlines.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fonttest

import (
	"encoding/binary"
	"sort"
	"unicode/utf16"
)

// Builder collects tables for a synthetic font.
type Builder struct {
	tables map[string][]byte
}

// NewFont starts a new synthetic font.
func NewFont() *Builder {
	return &Builder{tables: make(map[string][]byte)}
}

// With adds table data under a 4-letter tag.
func (b *Builder) With(tag string, data []byte) *Builder {
	b.tables[(tag + "    ")[:4]] = data
	return b
}

// Bytes returns the binary of a single TrueType-flavoured font.
func (b *Builder) Bytes() []byte {
	hdr := collectionHeader(1)
	return rebase(Collection(b)[hdr:], hdr)
}

func (b *Builder) sortedTags() []string {
	tags := make([]string, 0, len(b.tables))
	for t := range b.tables {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

func collectionHeader(n int) int {
	return 12 + 4*n
}

// Collection assembles a font collection ('ttcf') from several fonts.
// Table offsets are absolute, i.e. from the start of the collection.
func Collection(fonts ...*Builder) []byte {
	dirSize := func(f *Builder) int { return 12 + 16*len(f.tables) }
	pos := collectionHeader(len(fonts))
	dirOffsets := make([]int, len(fonts))
	for i, f := range fonts {
		dirOffsets[i] = pos
		pos += dirSize(f)
	}
	out := []byte("ttcf")
	out = be16(out, 1)
	out = be16(out, 0)
	out = be32(out, uint32(len(fonts)))
	for _, off := range dirOffsets {
		out = be32(out, uint32(off))
	}
	var storage []byte
	for _, f := range fonts {
		tags := f.sortedTags()
		out = be32(out, 0x00010000)
		out = be16(out, uint16(len(tags)))
		out = append(out, 0, 0, 0, 0, 0, 0) // searchRange etc. are not evaluated
		for _, tag := range tags {
			data := f.tables[tag]
			out = append(out, tag...)
			out = be32(out, 0) // checksum
			out = be32(out, uint32(pos+len(storage)))
			out = be32(out, uint32(len(data)))
			storage = append(storage, data...)
			for len(storage)%4 != 0 {
				storage = append(storage, 0)
			}
		}
	}
	return append(out, storage...)
}

// rebase shifts the table offsets of a font directory in b by a number of bytes.
func rebase(b []byte, by int) []byte {
	n := int(binary.BigEndian.Uint16(b[4:]))
	for i := 0; i < n; i++ {
		rec := b[12+16*i:]
		off := binary.BigEndian.Uint32(rec[8:])
		binary.BigEndian.PutUint32(rec[8:], off-uint32(by))
	}
	return b
}

func be16(b []byte, x uint16) []byte {
	return binary.BigEndian.AppendUint16(b, x)
}

func be32(b []byte, x uint32) []byte {
	return binary.BigEndian.AppendUint32(b, x)
}

func utf16be(s string) []byte {
	var b []byte
	for _, u := range utf16.Encode([]rune(s)) {
		b = be16(b, u)
	}
	return b
}
