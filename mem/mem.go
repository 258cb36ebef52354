// Package mem implements the word-addressed scalar and vector data
// memories and the instruction memory.
package mem

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/sarchlab/vmipssim/bitvec"
)

// AddressingError reports an out-of-range memory access.
type AddressingError struct {
	Memory string
	Index  int
	Size   int
}

func (e *AddressingError) Error() string {
	return fmt.Sprintf("%s: invalid memory access at index %d, size is %d", e.Memory, e.Index, e.Size)
}

// DMEM is a word-addressed data memory of 2^AddressBits 32-bit words.
// Unwritten cells default to zero.
type DMEM struct {
	name string
	data []bitvec.BitVec
}

// NewDMEM creates a zero-filled DMEM of 2^addressBits words.
func NewDMEM(name string, addressBits int) *DMEM {
	size := 1 << uint(addressBits)
	data := make([]bitvec.BitVec, size)
	for i := range data {
		data[i] = bitvec.New(0)
	}
	return &DMEM{name: name, data: data}
}

// Size returns the number of addressable words.
func (d *DMEM) Size() int {
	return len(d.data)
}

// Read returns the word at idx.
func (d *DMEM) Read(idx int) (bitvec.BitVec, error) {
	if idx < 0 || idx >= len(d.data) {
		return bitvec.BitVec{}, &AddressingError{Memory: d.name, Index: idx, Size: len(d.data)}
	}
	return d.data[idx], nil
}

// Write stores val at idx.
func (d *DMEM) Write(idx int, val bitvec.BitVec) error {
	if idx < 0 || idx >= len(d.data) {
		return &AddressingError{Memory: d.name, Index: idx, Size: len(d.data)}
	}
	d.data[idx] = val
	return nil
}

// Load populates DMEM from a text file: one signed decimal integer per
// line, line k is word k. Lines beyond the file's length default to zero,
// which is already the case for a freshly constructed DMEM.
func (d *DMEM) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%s: failed to open %s: %w", d.name, path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	idx := 0
	for scanner.Scan() && idx < len(d.data) {
		line := scanner.Text()
		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: failed to parse line %d (%q): %w", d.name, idx, line, err)
		}
		d.data[idx] = bitvec.New(n)
		idx++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%s: failed to read %s: %w", d.name, path, err)
	}
	return nil
}

// Dump writes DMEM to a text file: one decimal integer per line, in
// address order, for all Size() cells.
func (d *DMEM) Dump(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s: failed to create %s: %w", d.name, path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, v := range d.data {
		if _, err := fmt.Fprintln(w, v.Signed()); err != nil {
			return fmt.Errorf("%s: failed to write %s: %w", d.name, path, err)
		}
	}
	return w.Flush()
}
