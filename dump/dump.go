// Package dump reads and writes samples as flat text, one number per line.
package dump

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Write writes an optional "# header" line followed by xs, one per line,
// with the given number of decimals. A negative decimals writes the
// shortest representation that reads back exactly.
func Write(w io.Writer, header string, xs []float64, decimals int) error {
	bw := bufio.NewWriter(w)
	if header != "" {
		for _, line := range strings.Split(header, "\n") {
			if _, err := fmt.Fprintf(bw, "# %s\n", line); err != nil {
				return err
			}
		}
	}
	buf := make([]byte, 0, 32)
	for _, x := range xs {
		buf = strconv.AppendFloat(buf[:0], x, 'f', decimals, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read parses whitespace-separated numbers from r. Blank lines and lines
// starting with '#' are skipped.
func Read(r io.Reader) ([]float64, error) {
	var xs []float64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		for _, field := range strings.Fields(text) {
			x, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %v", line, err)
			}
			xs = append(xs, x)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return xs, nil
}
