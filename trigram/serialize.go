package trigram

import (
	"encoding/binary"
	"fmt"
	"io"
)

const magic uint32 = 0x54524731 // "TRG1"

// WriteTo serializes the index as a magic tag, the corpus fingerprint, and
// the posting-list map as a flat sequence of (key, count, row IDs...)
// records.
func (idx *Index) WriteTo(w io.Writer) (int64, error) {
	var n int64

	written, err := writeFixed(w, magic)
	n += written
	if err != nil {
		return n, err
	}

	written, err = writeFixed(w, idx.fingerprint)
	n += written
	if err != nil {
		return n, err
	}

	written, err = writeFixed(w, uint32(len(idx.postings)))
	n += written
	if err != nil {
		return n, err
	}

	for key, rows := range idx.postings {
		written, err = writeFixed(w, key)
		n += written
		if err != nil {
			return n, err
		}
		written, err = writeFixed(w, uint32(len(rows)))
		n += written
		if err != nil {
			return n, err
		}
		for _, row := range rows {
			written, err = writeFixed(w, row)
			n += written
			if err != nil {
				return n, err
			}
		}
	}

	return n, nil
}

// ReadFrom deserializes an Index previously written by WriteTo.
func (idx *Index) ReadFrom(r io.Reader) (int64, error) {
	var n int64

	var got uint32
	read, err := readFixed(r, &got)
	n += read
	if err != nil {
		return n, &BuildError{Kind: CorruptIndex, Cause: err}
	}
	if got != magic {
		return n, &BuildError{Kind: CorruptIndex, Cause: fmt.Errorf("trigram: bad magic %x", got)}
	}

	read, err = readFixed(r, &idx.fingerprint)
	n += read
	if err != nil {
		return n, &BuildError{Kind: CorruptIndex, Cause: err}
	}

	var numKeys uint32
	read, err = readFixed(r, &numKeys)
	n += read
	if err != nil {
		return n, &BuildError{Kind: CorruptIndex, Cause: err}
	}

	idx.postings = make(map[uint32][]int32, numKeys)
	for i := uint32(0); i < numKeys; i++ {
		var key uint32
		read, err = readFixed(r, &key)
		n += read
		if err != nil {
			return n, &BuildError{Kind: CorruptIndex, Cause: err}
		}

		var rowCount uint32
		read, err = readFixed(r, &rowCount)
		n += read
		if err != nil {
			return n, &BuildError{Kind: CorruptIndex, Cause: err}
		}

		rows := make([]int32, rowCount)
		for j := range rows {
			read, err = readFixed(r, &rows[j])
			n += read
			if err != nil {
				return n, &BuildError{Kind: CorruptIndex, Cause: err}
			}
		}
		idx.postings[key] = rows
	}

	return n, nil
}

func writeFixed(w io.Writer, v any) (int64, error) {
	if err := binary.Write(w, binary.LittleEndian, v); err != nil {
		return 0, err
	}
	return int64(binary.Size(v)), nil
}

func readFixed(r io.Reader, v any) (int64, error) {
	if err := binary.Read(r, binary.LittleEndian, v); err != nil {
		return 0, err
	}
	return int64(binary.Size(v)), nil
}
