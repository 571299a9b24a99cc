// In file: internal/compute/compute.go

// Package compute holds the algorithms served by the computation backends.
package compute

import (
	"errors"
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MaxHanoiDisks bounds the size of a Hanoi solution (2^n - 1 moves).
const MaxHanoiDisks = 20

var (
	ErrTooFewDisks  = errors.New("N must be >= 1")
	ErrTooManyDisks = fmt.Errorf("N must be <= %d", MaxHanoiDisks)
	ErrNotSquare    = errors.New("Matrix must be 2D and square")
	ErrSingular     = errors.New("Singular matrix")
)

// Hanoi returns the moves that transfer n disks from peg A to peg C.
func Hanoi(n int) ([]string, error) {
	if n < 1 {
		return nil, ErrTooFewDisks
	}
	if n > MaxHanoiDisks {
		return nil, ErrTooManyDisks
	}
	moves := make([]string, 0, 1<<n-1)
	var solve func(n int, source, target, auxiliary string)
	solve = func(n int, source, target, auxiliary string) {
		if n <= 0 {
			return
		}
		solve(n-1, source, auxiliary, target)
		moves = append(moves, source+" -> "+target)
		solve(n-1, auxiliary, target, source)
	}
	solve(n, "A", "C", "B")
	return moves, nil
}

// Invert returns the inverse of a square matrix given as rows. It fails with
// ErrSingular only when the matrix has no inverse.
func Invert(rows [][]float64) ([][]float64, error) {
	n := len(rows)
	if n == 0 {
		return nil, ErrNotSquare
	}
	data := make([]float64, 0, n*n)
	for _, row := range rows {
		if len(row) != n {
			return nil, ErrNotSquare
		}
		data = append(data, row...)
	}

	a := mat.NewDense(n, n, data)
	var inv mat.Dense
	if err := inv.Inverse(a); err != nil {
		// An ill-conditioned matrix still yields an inverse; only exact
		// singularity (infinite condition number) is rejected.
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, fmt.Errorf("%w: %v", ErrSingular, err)
		}
		log.Printf("WARNING: inverting ill-conditioned %dx%d matrix (condition %.3g)", n, n, float64(cond))
	}

	out := make([][]float64, n)
	for i := range out {
		out[i] = mat.Row(nil, i, &inv)
	}
	return out, nil
}
