// Package dump formats register files into the fixed-width text layout
// used for post-run inspection: a header row of column indices, a dashed
// separator, and one row per register, each column left-justified to 13
// characters. Data memories are not formatted here; mem.DMEM.Dump writes
// them one integer per line.
package dump

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sarchlab/vmipssim/bitvec"
)

const columnWidth = 13

// RegisterFile writes name.txt under dir: a header row of column indices
// 0..width-1, a dashed separator, then one row per register (rows in
// registers, each of length width).
func RegisterFile(dir, name string, registers [][]bitvec.BitVec, width int) error {
	path := dir + "/" + name + ".txt"
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dump: failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	header := make([]string, width)
	for i := range header {
		header[i] = fmt.Sprintf("%d", i)
	}
	if err := writeRow(w, header); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", width*columnWidth)); err != nil {
		return fmt.Errorf("dump: failed to write %s: %w", path, err)
	}

	for _, row := range registers {
		cols := make([]string, width)
		for i := 0; i < width; i++ {
			cols[i] = fmt.Sprintf("%d", row[i].Signed())
		}
		if err := writeRow(w, cols); err != nil {
			return err
		}
	}
	return w.Flush()
}

func writeRow(w *bufio.Writer, cols []string) error {
	for _, c := range cols {
		if _, err := fmt.Fprintf(w, "%-*s", columnWidth, c); err != nil {
			return fmt.Errorf("dump: failed to write row: %w", err)
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
