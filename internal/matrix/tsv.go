package matrix

import (
	"bufio"
	"io"
	"strconv"
)

// WriteTSV writes the matrix as tab-separated values: a header row of
// "variable" followed by the column labels, then one row per variable with
// its coefficient in every column, zeros included.
func (m *Matrix) WriteTSV(w io.Writer) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("variable")
	for _, c := range m.Columns {
		bw.WriteByte('\t')
		bw.WriteString(c.Label)
	}
	bw.WriteByte('\n')

	for _, v := range m.Vars {
		bw.WriteString(v)
		for _, c := range m.Columns {
			bw.WriteByte('\t')
			bw.WriteString(strconv.Itoa(c.Coeffs[v]))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
