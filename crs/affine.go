package crs

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// MaxAffineDimension bounds the rows and columns of an affine matrix.
const MaxAffineDimension = 4

// AffineTransform is a matrix acting on homogeneous coordinates: a point
// of Cols-1 ordinates is extended with 1, multiplied, and the first
// Rows-1 results are returned.
type AffineTransform struct {
	Name   string
	Matrix *mat.Dense
}

// Dims returns the matrix dimensions.
func (a *AffineTransform) Dims() (rows, cols int) {
	return a.Matrix.Dims()
}

// Apply transforms point, which must have Cols-1 ordinates.
func (a *AffineTransform) Apply(point []float64) ([]float64, error) {
	rows, cols := a.Matrix.Dims()
	if len(point) != cols-1 {
		return nil, fmt.Errorf("affine %s: point has %d ordinates, want %d", a.Name, len(point), cols-1)
	}
	in := mat.NewVecDense(cols, append(append([]float64(nil), point...), 1))
	var out mat.VecDense
	out.MulVec(a.Matrix, in)
	res := make([]float64, rows-1)
	for i := range res {
		res[i] = out.AtVec(i)
	}
	return res, nil
}

// Inverse returns the inverse transform. The matrix must be square and
// non-singular.
func (a *AffineTransform) Inverse() (*AffineTransform, error) {
	rows, cols := a.Matrix.Dims()
	if rows != cols {
		return nil, fmt.Errorf("affine %s: %dx%d matrix is not square", a.Name, rows, cols)
	}
	var inv mat.Dense
	if err := inv.Inverse(a.Matrix); err != nil {
		return nil, fmt.Errorf("affine %s: %w", a.Name, err)
	}
	return &AffineTransform{Name: a.Name, Matrix: &inv}, nil
}

// Identity returns an n by n identity matrix.
func Identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}
