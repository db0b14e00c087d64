// Package dct implements the orthonormal 2D Type-II discrete cosine
// transform over square matrices, plus the low-frequency trim and zigzag
// serialization used to turn a transform into a descriptor.
//
// The 1D transform applied along each axis is
//
//	X[k] = scale(k) * sum_{n=0}^{N-1} x[n] * cos(pi/N * (n + 1/2) * k)
//	scale(0) = sqrt(1/N), scale(k>0) = sqrt(2/N)
//
// Rows are transformed first, then columns. Cosine tables are built once per
// N and shared between goroutines.
package dct

import (
	"math"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrNonFinite is returned when a matrix holds NaN or Inf samples.
	ErrNonFinite = errors.New("dct: non-finite sample")

	// ErrShape is returned for empty matrices or data that does not match N*N.
	ErrShape = errors.New("dct: malformed matrix")
)

// Matrix is a square N×N matrix of float64 samples stored row-major.
// Cell (row, col) lives at Data[row*N+col].
type Matrix struct {
	N    int
	Data []float64
}

// NewMatrix allocates a zeroed n×n matrix.
func NewMatrix(n int) Matrix {
	return Matrix{N: n, Data: make([]float64, n*n)}
}

// At returns the sample at (row, col).
func (m Matrix) At(row, col int) float64 { return m.Data[row*m.N+col] }

// Set stores v at (row, col).
func (m Matrix) Set(row, col int, v float64) { m.Data[row*m.N+col] = v }

// Check reports whether m is well-formed and finite.
func (m Matrix) Check() error {
	if m.N <= 0 || len(m.Data) != m.N*m.N {
		return errors.Wrapf(ErrShape, "n=%d len=%d", m.N, len(m.Data))
	}
	for i, v := range m.Data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrNonFinite, "at (%d,%d)", i/m.N, i%m.N)
		}
	}
	return nil
}

// basis holds the scaled cosine table for one N:
// cos[k*N+n] = scale(k) * cos(pi/N * (n + 1/2) * k).
type basis struct {
	n   int
	cos []float64
}

var bases sync.Map // int → *basis

func basisFor(n int) *basis {
	if b, ok := bases.Load(n); ok {
		return b.(*basis)
	}
	b := &basis{n: n, cos: make([]float64, n*n)}
	piOverN := math.Pi / float64(n)
	scale0 := math.Sqrt(1 / float64(n))
	scaleK := math.Sqrt(2 / float64(n))
	for k := 0; k < n; k++ {
		scale := scaleK
		if k == 0 {
			scale = scale0
		}
		for i := 0; i < n; i++ {
			b.cos[k*n+i] = scale * math.Cos(piOverN*(float64(i)+0.5)*float64(k))
		}
	}
	actual, _ := bases.LoadOrStore(n, b)
	return actual.(*basis)
}

// Transform returns the 2D DCT-II of m. The input is not modified.
func Transform(m Matrix) (Matrix, error) {
	if err := m.Check(); err != nil {
		return Matrix{}, err
	}
	n := m.N
	b := basisFor(n)

	// Rows: tmp[r][k] = sum_c in[r][c] * cos[k][c]
	tmp := make([]float64, n*n)
	for r := 0; r < n; r++ {
		row := m.Data[r*n : r*n+n]
		for k := 0; k < n; k++ {
			c := b.cos[k*n : k*n+n]
			var acc float64
			for i, v := range row {
				acc += v * c[i]
			}
			tmp[r*n+k] = acc
		}
	}

	// Columns: out[k][col] = sum_r tmp[r][col] * cos[k][r]
	out := NewMatrix(n)
	for k := 0; k < n; k++ {
		c := b.cos[k*n : k*n+n]
		dst := out.Data[k*n : k*n+n]
		for r := 0; r < n; r++ {
			w := c[r]
			src := tmp[r*n : r*n+n]
			for col, v := range src {
				dst[col] += w * v
			}
		}
	}

	if err := out.Check(); err != nil {
		return Matrix{}, err
	}
	return out, nil
}
