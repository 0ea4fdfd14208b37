package numflux

import "fmt"

// NewScheme builds a Scheme from one of the recognized configuration names:
// VANLEER, ROE, HLL, HLLC, LLF, AUSM, AUSMPLUS.
func NewScheme(name string) (Scheme, error) {
	switch name {
	case "LLF":
		return LLF{}, nil
	case "ROE":
		return RoePike{EntropyFixEps: 0.1}, nil
	case "HLL":
		return HLL{}, nil
	case "HLLC":
		return HLLC{}, nil
	case "VANLEER":
		return VanLeer{}, nil
	case "AUSM":
		return AUSM{}, nil
	case "AUSMPLUS":
		return NewAUSMPlus(), nil
	default:
		return nil, fmt.Errorf("numflux: unrecognized scheme %q", name)
	}
}
