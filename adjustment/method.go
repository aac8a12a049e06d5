package adjustment

import (
	"errors"
	"fmt"
	"strings"
)

// Method selects a multiple-testing correction.
type Method uint8

const (
	Bonferroni Method = iota
	BenjaminiHochberg
	BenjaminiYekutieli
)

// ErrUnknownMethod is returned for a method outside the enum.
var ErrUnknownMethod = errors.New("adjustment: unknown method")

func (m Method) String() string {
	switch m {
	case Bonferroni:
		return "bonferroni"
	case BenjaminiHochberg:
		return "benjamini-hochberg"
	case BenjaminiYekutieli:
		return "benjamini-yekutieli"
	default:
		return fmt.Sprintf("method(%d)", uint8(m))
	}
}

// RequiresSort reports whether the method needs its input in ascending
// p-value order.
func (m Method) RequiresSort() bool {
	return m == BenjaminiHochberg || m == BenjaminiYekutieli
}

// ParseMethod parses a method name. Short forms "bh" and "by" are accepted.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bonferroni":
		return Bonferroni, nil
	case "benjamini-hochberg", "bh", "fdr":
		return BenjaminiHochberg, nil
	case "benjamini-yekutieli", "by":
		return BenjaminiYekutieli, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// MethodFromCode maps the integer selector used by language bindings.
// Unknown codes fall back to Bonferroni.
func MethodFromCode(code int) Method {
	switch code {
	case 1:
		return BenjaminiHochberg
	case 2:
		return BenjaminiYekutieli
	default:
		return Bonferroni
	}
}
