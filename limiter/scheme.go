package limiter

import "fmt"

// NewScheme builds a Scheme from one of the recognized configuration names:
// NONE, WENO, VANALBADA, BARTHJESPERSEN, VENKATAKRISHNAN. param supplies K
// for Venkatakrishnan and the nonlinearity exponent for WENO.
func NewScheme(name string, param float64) (Scheme, error) {
	switch name {
	case "", "NONE":
		return Unlimited{}, nil
	case "WENO":
		return WENO{P: param}, nil
	case "VANALBADA":
		return VanAlbada{}, nil
	case "BARTHJESPERSEN":
		return BarthJespersen{}, nil
	case "VENKATAKRISHNAN":
		return Venkatakrishnan{K: param}, nil
	default:
		return nil, fmt.Errorf("limiter: unrecognized scheme %q", name)
	}
}
