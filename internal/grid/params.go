package grid

import "fmt"

// paramFields maps accessor method names to the identifiers of the backing
// state. Both grid kinds store their results under the same field names,
// so the registry is shared.
var paramFields = map[string][]string{
	"RGrid":   {"xyz"},
	"DVolume": {"dvolume"},
}

func paramNames(method string) ([]string, error) {
	fields, ok := paramFields[method]
	if !ok {
		return nil, fmt.Errorf("method %q: %w", method, ErrUnknownMethod)
	}
	return append([]string(nil), fields...), nil
}
