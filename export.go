package hview

// CSV and NPY export of extracted data, statistics, and attributes. These
// render exactly what an evaluation pass produced; they never re-read the
// source container.

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/oklog/ulid/v2"
	"github.com/sbinet/npyio"
)

// WriteDataCSV writes the selected channels of m as CSV, one row per
// sample. Temporal data gets a leading "Tempo" column holding the time
// axis, matching the export of the original analysis tool.
func WriteDataCSV(w io.Writer, m *ExtractedMatrix) error {
	cw := csv.NewWriter(w)
	header := make([]string, 0, len(m.Names)+1)
	if m.Time != nil {
		header = append(header, "Tempo")
	}
	header = append(header, m.Names...)
	if err := cw.Write(header); err != nil {
		return err
	}

	rows := m.Rows()
	record := make([]string, len(header))
	for i := 0; i < rows; i++ {
		record = record[:0]
		if m.Time != nil {
			record = append(record, formatFloat(m.Time[i]))
		}
		for j := range m.Names {
			record = append(record, formatFloat(m.Channels.At(i, j)))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStatsCSV writes the per-channel statistics table as CSV.
func WriteStatsCSV(w io.Writer, table StatisticsTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Channel", "Mean", "Std-Dev", "Min", "Max", "Median", "Variance"}); err != nil {
		return err
	}
	for _, row := range table {
		record := []string{
			row.Name,
			formatFloat(row.Mean),
			formatFloat(row.StdDev),
			formatFloat(row.Min),
			formatFloat(row.Max),
			formatFloat(row.Median),
			formatFloat(row.Variance),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAttributesCSV writes a node's attributes as Attribute,Value rows in
// sorted name order.
func WriteAttributesCSV(w io.Writer, attrs AttrMap) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Attribute", "Value"}); err != nil {
		return err
	}
	for _, name := range attrs.Names() {
		if err := cw.Write([]string{name, attrs[name].String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMatrixNPY writes the extracted matrix as a single .npy array. For
// temporal data the time axis is stacked back in as column 0, so the file
// round-trips through the NPY opener as a temporal dataset again.
func WriteMatrixNPY(w io.Writer, m *ExtractedMatrix) error {
	rows := m.Rows()
	if rows == 0 {
		return fmt.Errorf("nothing to export: matrix has no rows")
	}
	cols := len(m.Names)
	timeCols := 0
	if m.Time != nil {
		timeCols = 1
	}
	data := make([]float64, 0, rows*(cols+timeCols))
	for i := 0; i < rows; i++ {
		if m.Time != nil {
			data = append(data, m.Time[i])
		}
		for j := 0; j < cols; j++ {
			data = append(data, m.Channels.At(i, j))
		}
	}
	combined := &Array{Dims: []int{rows, cols + timeCols}, Kind: KindFloat, Data: data}
	return npyio.Write(w, combined.Matrix())
}

// ExportFilename builds a collision-free download name like
// "series_01J8...9Z.csv". ULIDs sort by creation time, so repeated exports
// list chronologically.
func ExportFilename(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, ulid.Make().String(), ext)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
