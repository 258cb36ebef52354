package mem

import (
	"bufio"
	"fmt"
	"os"

	"github.com/sarchlab/vmipssim/isa"
)

// IMEMCapacity is the maximum number of instruction slots, 2^16.
const IMEMCapacity = 1 << 16

// IMEM is an immutable sequence of decoded instructions. Reads past the
// loaded program return a synthetic HALT up to the capacity bound; reads
// past the capacity bound fail with an addressing error.
type IMEM struct {
	instructions []isa.Instruction
}

// LoadIMEM reads a text program file: one instruction per line, "#"
// introduces a comment, blank lines are ignored.
func LoadIMEM(path string) (*IMEM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("IMEM: failed to open %s: %w", path, err)
	}
	defer f.Close()

	im := &IMEM{}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := isa.StripComment(scanner.Text())
		if line == "" {
			continue
		}
		ins, err := isa.Decode(line)
		if err != nil {
			return nil, fmt.Errorf("IMEM: line %d: %w", lineNo, err)
		}
		im.instructions = append(im.instructions, ins)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("IMEM: failed to read %s: %w", path, err)
	}
	return im, nil
}

// Read returns the instruction at idx, or a synthetic HALT if idx is past
// the loaded program but within the capacity bound.
func (im *IMEM) Read(idx int) (isa.Instruction, error) {
	if idx < 0 {
		return isa.Instruction{}, &AddressingError{Memory: "IMEM", Index: idx, Size: IMEMCapacity}
	}
	if idx < len(im.instructions) {
		return im.instructions[idx], nil
	}
	if idx < IMEMCapacity {
		return isa.Halt, nil
	}
	return isa.Instruction{}, &AddressingError{Memory: "IMEM", Index: idx, Size: IMEMCapacity}
}

// Len returns the number of instructions actually loaded from the program
// file (excluding the synthetic HALT padding).
func (im *IMEM) Len() int {
	return len(im.instructions)
}
