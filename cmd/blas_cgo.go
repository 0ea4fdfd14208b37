//go:build cgo
// +build cgo

package cmd

// Pulling this in only under cgo builds swaps gonum's BLAS backend for the
// netlib binding before any command runs; see internal/blasaccel.
import _ "github.com/gocfd2d/fvm2d/internal/blasaccel"
