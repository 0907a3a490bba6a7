package correlation

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix square and symmetric matrix of Pearson coefficients indexed by an ordered column list.
// Entries are NaN where a column has zero variance over the rows it was computed from
type Matrix struct {
	columns []string
	values  *mat.SymDense
}

// NewMatrix wraps values. values may be nil only when columns is empty
func NewMatrix(columns []string, values *mat.SymDense) Matrix {
	columnsCopy := make([]string, len(columns))
	copy(columnsCopy, columns)
	return Matrix{
		columns: columnsCopy,
		values:  values,
	}
}

// Columns returns a copy of the column list
func (m Matrix) Columns() []string {
	columns := make([]string, len(m.columns))
	copy(columns, m.columns)
	return columns
}

// Size returns the amount of rows (and columns) of the matrix
func (m Matrix) Size() int {
	return len(m.columns)
}

// At returns the coefficient between the i-th and j-th columns
func (m Matrix) At(i int, j int) float64 {
	return m.values.At(i, j)
}

// Index returns the position of a column, -1 if the matrix does not contain it
func (m Matrix) Index(column string) int {
	for idx := range m.columns {
		if m.columns[idx] == column {
			return idx
		}
	}
	return -1
}

// Get returns the coefficient between two columns by name
func (m Matrix) Get(column1 string, column2 string) (float64, bool) {
	i, j := m.Index(column1), m.Index(column2)
	if i < 0 || j < 0 {
		return math.NaN(), false
	}
	return m.At(i, j), true
}

// Rows returns the matrix as a dense slice of rows
func (m Matrix) Rows() [][]float64 {
	rows := make([][]float64, m.Size())
	for i := range rows {
		rows[i] = make([]float64, m.Size())
		for j := range rows[i] {
			rows[i][j] = m.At(i, j)
		}
	}
	return rows
}

// MarshalJSON encodes NaN entries as null, JSON has no NaN literal
func (m Matrix) MarshalJSON() ([]byte, error) {
	rows := make([][]*float64, m.Size())
	for i := range rows {
		rows[i] = make([]*float64, m.Size())
		for j := range rows[i] {
			value := m.At(i, j)
			if math.IsNaN(value) {
				continue
			}
			rows[i][j] = &value
		}
	}

	return json.Marshal(struct {
		Columns []string     `json:"columns"`
		Values  [][]*float64 `json:"values"`
	}{
		Columns: m.Columns(),
		Values:  rows,
	})
}
