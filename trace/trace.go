// Package trace implements the dynamic instruction trace: the functional
// core writes one line per retired instruction, annotated with the runtime
// value it produced (the vector length for vector ALU ops, the address or
// address list for memory ops, the next PC for branches), and the timing simulator
// reads that file back as its dynamic instruction stream.
package trace

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/vmipssim/isa"
)

// Writer appends annotated instructions to a trace file, one line at a
// time, in the order they retire.
type Writer struct {
	f *os.File
	w *bufio.Writer
}

// NewWriter creates (or truncates) the trace file at path.
func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("trace: failed to create %s: %w", path, err)
	}
	return &Writer{f: f, w: bufio.NewWriter(f)}, nil
}

// Write appends one instruction. If its Annotation is present, it is
// rendered as a trailing parenthesized group: a lone scalar value renders
// bare, a vector of values renders comma-joined.
func (tw *Writer) Write(ins isa.Instruction) error {
	ops := make([]string, ins.NumOps())
	for i, o := range ins.Ops {
		ops[i] = o.String()
	}
	line := ins.Opcode
	if len(ops) > 0 {
		line += " " + strings.Join(ops, " ")
	}
	if ins.Annotation.Present {
		line += fmt.Sprintf(" (%s)", joinValues(ins.Annotation.Values))
	}
	if _, err := fmt.Fprintln(tw.w, line); err != nil {
		return fmt.Errorf("trace: failed to write line: %w", err)
	}
	return nil
}

func joinValues(vs []int64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, ",")
}

// Close flushes buffered output and closes the underlying file.
func (tw *Writer) Close() error {
	if err := tw.w.Flush(); err != nil {
		tw.f.Close()
		return fmt.Errorf("trace: failed to flush: %w", err)
	}
	return tw.f.Close()
}

// Reader replays a previously written trace as a read-only instruction
// stream, substituting a synthetic HALT for any index past the recorded
// program.
type Reader struct {
	instructions []isa.Instruction
}

// NewReader loads the trace file at path.
func NewReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := &Reader{}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := isa.StripComment(scanner.Text())
		if line == "" {
			continue
		}
		ins, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("trace: line %d: %w", lineNo, err)
		}
		r.instructions = append(r.instructions, ins)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("trace: failed to read %s: %w", path, err)
	}
	return r, nil
}

// parseLine splits off any trailing "(...)" annotation group, decodes the
// instruction from the remainder, and reattaches the annotation's values —
// the timing simulator replays these directly (vector memory addresses,
// the vector length in effect, a branch's next PC) rather than
// recomputing them.
func parseLine(line string) (isa.Instruction, error) {
	annotation := ""
	if i := strings.LastIndex(line, "("); i >= 0 && strings.HasSuffix(line, ")") {
		annotation = line[i+1 : len(line)-1]
		line = strings.TrimSpace(line[:i])
	}

	ins, err := isa.Decode(line)
	if err != nil {
		return isa.Instruction{}, err
	}
	if annotation == "" {
		return ins, nil
	}

	parts := strings.Split(annotation, ",")
	values := make([]int64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return isa.Instruction{}, fmt.Errorf("trace: bad annotation value %q: %w", p, err)
		}
		values[i] = v
	}
	ins.Annotation = isa.Annotation{Present: true, Values: values}
	return ins, nil
}

// Read returns the instruction at idx, or a synthetic HALT if idx is past
// the recorded trace.
func (r *Reader) Read(idx int) isa.Instruction {
	if idx < len(r.instructions) {
		return r.instructions[idx]
	}
	return isa.Halt
}

// Len returns the number of instructions recorded in the trace.
func (r *Reader) Len() int {
	return len(r.instructions)
}
