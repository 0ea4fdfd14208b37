//go:build cgo
// +build cgo

// Package blasaccel swaps gonum's default pure-Go BLAS implementation for
// the netlib CGO binding when built with cgo, so the BLAS calls made by
// gonum's LAPACK routines (such as the least-squares gradient scheme's
// per-cell Cholesky factorizations) run against netlib's BLAS.
package blasaccel

import (
	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

func init() {
	blas64.Use(netblas.Implementation{})
}
