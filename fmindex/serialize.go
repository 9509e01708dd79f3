package fmindex

import (
	"encoding/binary"
	"fmt"
	"io"
)

// magic tags the binary format so ReadFrom can reject data from an
// unrelated source before trusting any length field.
const magic uint32 = 0x464d5831 // "FMX1"

// WriteTo serializes the index as fixed-width fields via encoding/binary.
// The layout is implementation-defined; ReadFrom is its only intended
// reader.
func (idx *Index) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}

	writeUint32(cw, magic)
	writeUint64(cw, idx.fingerprint)
	writeInt32(cw, int32(idx.checkpoint))
	writeInt32(cw, int32(idx.sentinelRank))
	writeBool(cw, idx.hasSeparator)
	writeInt32(cw, int32(idx.separatorRank))

	writeBytes(cw, idx.text)
	writeInt32Slice(cw, idx.sa)
	writeBytes(cw, idx.bwt)

	for _, r := range idx.byteToRank {
		writeInt16(cw, r)
	}
	writeBytes(cw, idx.rankToByte)
	writeInt32Slice(cw, idx.counts)
	writeInt32Slice(cw, idx.c)

	writeInt32(cw, int32(len(idx.occ)))
	for _, row := range idx.occ {
		writeInt32Slice(cw, row)
	}

	writeInt32Slice(cw, idx.rowStarts)

	return cw.n, cw.err
}

// ReadFrom deserializes an Index previously written by WriteTo. It returns
// a *BuildError with Kind CorruptIndex if the data is truncated or the
// magic tag does not match.
func (idx *Index) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: r}

	got := readUint32(cr)
	if cr.err == nil && got != magic {
		cr.err = &BuildError{Kind: CorruptIndex, Cause: fmt.Errorf("fmindex: bad magic %x", got)}
	}
	if cr.err != nil {
		if _, isBuildErr := cr.err.(*BuildError); isBuildErr {
			return cr.n, cr.err
		}
		return cr.n, &BuildError{Kind: CorruptIndex, Cause: cr.err}
	}

	idx.fingerprint = readUint64(cr)
	idx.checkpoint = int(readInt32(cr))
	idx.sentinelRank = int(readInt32(cr))
	idx.hasSeparator = readBool(cr)
	idx.separatorRank = int(readInt32(cr))

	idx.text = readBytes(cr)
	idx.sa = readInt32Slice(cr)
	idx.bwt = readBytes(cr)

	for i := range idx.byteToRank {
		idx.byteToRank[i] = readInt16(cr)
	}
	idx.rankToByte = readBytes(cr)
	idx.counts = readInt32Slice(cr)
	idx.c = readInt32Slice(cr)

	occLen := int(readInt32(cr))
	idx.occ = make([][]int32, occLen)
	for i := range idx.occ {
		idx.occ[i] = readInt32Slice(cr)
	}

	idx.rowStarts = readInt32Slice(cr)
	idx.lastRowHit = 0

	if cr.err != nil {
		return cr.n, &BuildError{Kind: CorruptIndex, Cause: cr.err}
	}
	return cr.n, nil
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) write(p []byte) {
	if c.err != nil {
		return
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
}

type countingReader struct {
	r   io.Reader
	n   int64
	err error
}

func (c *countingReader) read(p []byte) {
	if c.err != nil {
		return
	}
	n, err := io.ReadFull(c.r, p)
	c.n += int64(n)
	c.err = err
}

func writeUint32(w *countingWriter, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.write(buf[:])
}

func writeUint64(w *countingWriter, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	w.write(buf[:])
}

func writeInt32(w *countingWriter, v int32) { writeUint32(w, uint32(v)) }
func writeInt16(w *countingWriter, v int16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(v))
	w.write(buf[:])
}

func writeBool(w *countingWriter, v bool) {
	if v {
		w.write([]byte{1})
	} else {
		w.write([]byte{0})
	}
}

func writeBytes(w *countingWriter, b []byte) {
	writeInt32(w, int32(len(b)))
	w.write(b)
}

func writeInt32Slice(w *countingWriter, s []int32) {
	writeInt32(w, int32(len(s)))
	buf := make([]byte, 4*len(s))
	for i, v := range s {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	w.write(buf)
}

func readUint32(r *countingReader) uint32 {
	var buf [4]byte
	r.read(buf[:])
	return binary.LittleEndian.Uint32(buf[:])
}

func readUint64(r *countingReader) uint64 {
	var buf [8]byte
	r.read(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}

func readInt32(r *countingReader) int32 { return int32(readUint32(r)) }
func readInt16(r *countingReader) int16 {
	var buf [2]byte
	r.read(buf[:])
	return int16(binary.LittleEndian.Uint16(buf[:]))
}

func readBool(r *countingReader) bool {
	var buf [1]byte
	r.read(buf[:])
	return buf[0] != 0
}

func readBytes(r *countingReader) []byte {
	n := readInt32(r)
	if r.err != nil || n < 0 {
		return nil
	}
	buf := make([]byte, n)
	r.read(buf)
	return buf
}

func readInt32Slice(r *countingReader) []int32 {
	n := readInt32(r)
	if r.err != nil || n < 0 {
		return nil
	}
	buf := make([]byte, 4*n)
	r.read(buf)
	if r.err != nil {
		return nil
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return out
}
