// Package regfile implements the scalar and vector register banks: fixed-size
// banks of BitVec sequences with masked, length-bounded vector writes.
package regfile

import (
	"fmt"

	"github.com/sarchlab/vmipssim/bitvec"
	"github.com/sarchlab/vmipssim/isa"
)

// KindMismatchError reports an access to a register file with a register
// of the wrong kind. Register-kind mismatch is a programming
// invariant violation.
type KindMismatchError struct {
	Want, Got isa.Kind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("register kind mismatch: file holds %s, got %s", e.Want, e.Got)
}

// File owns NumRegisters registers of a single kind, each a sequence of
// Length BitVecs (Length==1 for scalar files, Length==MVL for vector
// files).
type File struct {
	kind   isa.Kind
	length int
	regs   [isa.NumRegisters][]bitvec.BitVec
}

// NewScalar creates an 8-entry scalar register file (each register holds a
// single word).
func NewScalar() *File {
	return newFile(isa.Scalar, 1)
}

// NewVector creates an 8-entry vector register file (each register holds
// MVL words).
func NewVector() *File {
	return newFile(isa.Vector, isa.MVL)
}

func newFile(kind isa.Kind, length int) *File {
	f := &File{kind: kind, length: length}
	for i := range f.regs {
		row := make([]bitvec.BitVec, length)
		for j := range row {
			row[j] = bitvec.New(0)
		}
		f.regs[i] = row
	}
	return f
}

func (f *File) checkKind(r isa.Register) error {
	if r.Kind != f.kind {
		return &KindMismatchError{Want: f.kind, Got: r.Kind}
	}
	return nil
}

// Read returns the full element sequence held in r. For a scalar file the
// sequence always has length 1; callers that want the scalar value
// directly should use ReadScalar.
func (f *File) Read(r isa.Register) ([]bitvec.BitVec, error) {
	if err := f.checkKind(r); err != nil {
		return nil, err
	}
	out := make([]bitvec.BitVec, f.length)
	copy(out, f.regs[r.Index])
	return out, nil
}

// ReadScalar returns element 0 of r.
func (f *File) ReadScalar(r isa.Register) (bitvec.BitVec, error) {
	if err := f.checkKind(r); err != nil {
		return bitvec.BitVec{}, err
	}
	return f.regs[r.Index][0], nil
}

// WriteScalar overwrites element 0 of a scalar register.
func (f *File) WriteScalar(r isa.Register, val bitvec.BitVec) error {
	if err := f.checkKind(r); err != nil {
		return err
	}
	f.regs[r.Index][0] = val
	return nil
}

// WriteVector writes a masked, length-bounded partial vector:
// for i in [0, length), if mask[i] is set, register[i] := val[i]; all
// other elements are left unchanged. mask and val must have at least
// length elements.
func (f *File) WriteVector(r isa.Register, val []bitvec.BitVec, mask []bool, length int) error {
	if err := f.checkKind(r); err != nil {
		return err
	}
	row := f.regs[r.Index]
	for i := 0; i < length && i < len(row); i++ {
		if mask[i] {
			row[i] = val[i]
		}
	}
	return nil
}

// Rows returns every register's element sequence, in register-index
// order, for dump formatting.
func (f *File) Rows() [][]bitvec.BitVec {
	rows := make([][]bitvec.BitVec, len(f.regs))
	for i := range f.regs {
		rows[i] = f.regs[i]
	}
	return rows
}

// Kind returns the register kind this file holds.
func (f *File) Kind() isa.Kind {
	return f.kind
}

// Length returns the per-register element count (1 for scalar, MVL for
// vector).
func (f *File) Length() int {
	return f.length
}
