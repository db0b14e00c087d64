package dct

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrTrimTooLarge is returned when the requested trim exceeds the matrix size.
var ErrTrimTooLarge = errors.New("dct: trim larger than matrix")

// TopLeft copies the k×k low-frequency corner of m, DC term included.
func TopLeft(m Matrix, k int) (Matrix, error) {
	if k <= 0 {
		return Matrix{}, errors.Wrapf(ErrShape, "trim size %d", k)
	}
	if k > m.N {
		return Matrix{}, errors.Wrapf(ErrTrimTooLarge, "k=%d n=%d", k, m.N)
	}
	out := NewMatrix(k)
	for r := 0; r < k; r++ {
		copy(out.Data[r*k:r*k+k], m.Data[r*m.N:r*m.N+k])
	}
	return out, nil
}

var zigzags sync.Map // int → []int

// ZigzagOrder returns the JPEG-style zigzag permutation for a k×k matrix:
// entry i is the row-major index of the i-th cell visited. Cells are visited
// by increasing row+col; odd diagonals run with row increasing, even
// diagonals with row decreasing. The returned slice is shared; do not modify.
func ZigzagOrder(k int) []int {
	if v, ok := zigzags.Load(k); ok {
		return v.([]int)
	}
	order := make([]int, 0, k*k)
	for s := 0; s <= 2*(k-1); s++ {
		lo := max(0, s-(k-1))
		hi := min(s, k-1)
		if s%2 == 1 {
			for r := lo; r <= hi; r++ {
				order = append(order, r*k+(s-r))
			}
		} else {
			for r := hi; r >= lo; r-- {
				order = append(order, r*k+(s-r))
			}
		}
	}
	actual, _ := zigzags.LoadOrStore(k, order)
	return actual.([]int)
}

// Zigzag serializes m in zigzag order into a new slice of length N².
func Zigzag(m Matrix) []float64 {
	order := ZigzagOrder(m.N)
	out := make([]float64, len(order))
	for i, idx := range order {
		out[i] = m.Data[idx]
	}
	return out
}
