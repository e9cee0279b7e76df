package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"
)

// table prints rows as aligned text or, with --csv, as CSV records.
type table struct {
	tw *tabwriter.Writer
	cw *csv.Writer
}

func (a *app) newTable(header ...string) *table {
	return newTable(a.out, a.v.GetBool("csv"), header...)
}

func newTable(w io.Writer, asCSV bool, header ...string) *table {
	t := &table{}
	if asCSV {
		t.cw = csv.NewWriter(w)
	} else {
		t.tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	}
	if len(header) > 0 {
		t.row(anySlice(header)...)
	}
	return t
}

func (t *table) row(cells ...any) {
	record := make([]string, len(cells))
	for i, c := range cells {
		record[i] = t.cell(c)
	}
	if t.cw != nil {
		// Write only fails through the underlying writer; Flush reports it.
		_ = t.cw.Write(record)
		return
	}
	for i, s := range record {
		if i > 0 {
			io.WriteString(t.tw, "\t")
		}
		io.WriteString(t.tw, s)
	}
	io.WriteString(t.tw, "\n")
}

func (t *table) cell(c any) string {
	switch v := c.(type) {
	case float64:
		if t.cw != nil {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
		if math.IsNaN(v) {
			return "-"
		}
		return strconv.FormatFloat(v, 'g', 6, 64)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func (t *table) flush() error {
	if t.cw != nil {
		t.cw.Flush()
		return t.cw.Error()
	}
	return t.tw.Flush()
}

func anySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
