package engine

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	sqlite "modernc.org/sqlite"

	"github.com/viant/outlier/distance"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterDistanceFunctions registers outlier_l2, outlier_cosine and
// outlier_levenshtein with the driver so they are available on connections
// opened after this call. Existing open connections will not see them.
// Repeated calls are no-ops.
func RegisterDistanceFunctions() error {
	registerOnce.Do(func() {
		for name, impl := range map[string]func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error){
			"outlier_l2":          vectorFunction("outlier_l2", distance.L2),
			"outlier_cosine":      vectorFunction("outlier_cosine", distance.Cosine),
			"outlier_levenshtein": levenshteinImpl,
		} {
			if err := sqlite.RegisterDeterministicScalarFunction(name, 2, impl); err != nil {
				registerErr = fmt.Errorf("engine: failed to register %s: %w", name, err)
				return
			}
		}
	})
	return registerErr
}

func vectorFunction(name string, fn distance.Func[[]float32]) func(*sqlite.FunctionContext, []driver.Value) (driver.Value, error) {
	return func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
		}
		a, err := asVector(args[0])
		if err != nil {
			return nil, err
		}
		b, err := asVector(args[1])
		if err != nil {
			return nil, err
		}
		if a == nil || b == nil {
			return nil, nil
		}
		if len(a) != len(b) {
			return nil, fmt.Errorf("%s: dimension mismatch %d vs %d", name, len(a), len(b))
		}
		return fn(a, b), nil
	}
}

func levenshteinImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("outlier_levenshtein: expected 2 arguments, got %d", len(args))
	}
	if args[0] == nil || args[1] == nil {
		return nil, nil
	}
	a, err := asText(args[0])
	if err != nil {
		return nil, err
	}
	b, err := asText(args[1])
	if err != nil {
		return nil, err
	}
	return distance.Levenshtein(a, b), nil
}

func asVector(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return decodeVector(v)
	default:
		return nil, fmt.Errorf("engine: unsupported argument type %T for vector; want BLOB", arg)
	}
}

func asText(arg driver.Value) (string, error) {
	switch v := arg.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("engine: unsupported argument type %T for text; want TEXT", arg)
	}
}

// decodeVector mirrors dataset.DecodeVector; dataset tests open databases
// through this package.
func decodeVector(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("engine: invalid vector blob length %d", len(b))
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}
