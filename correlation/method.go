package correlation

import (
	"errors"
	"fmt"
	"strings"
)

// Method selects a correlation strategy.
type Method uint8

const (
	Pearson Method = iota
	Spearman
	Kendall
)

// ErrUnknownMethod is returned for a method outside the enum.
var ErrUnknownMethod = errors.New("correlation: unknown method")

func (m Method) String() string {
	switch m {
	case Pearson:
		return "pearson"
	case Spearman:
		return "spearman"
	case Kendall:
		return "kendall"
	default:
		return fmt.Sprintf("method(%d)", uint8(m))
	}
}

// ParseMethod parses a method name (case-insensitive).
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pearson":
		return Pearson, nil
	case "spearman":
		return Spearman, nil
	case "kendall":
		return Kendall, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// MethodFromCode maps the integer selector used by language bindings.
// Unknown codes fall back to Pearson.
func MethodFromCode(code int) Method {
	switch code {
	case 1:
		return Spearman
	case 2:
		return Kendall
	default:
		return Pearson
	}
}
