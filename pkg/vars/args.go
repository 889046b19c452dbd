package vars

import (
	"strings"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/types"
)

// FromArgs builds a table from --var items. An item is either "key=value"
// or a bare key whose value is the next item, so both
// `--var a=1` and `--var a 1` work. A bare key with nothing after it is an
// error.
func FromArgs(items []string) (types.Vars, error) {
	vars := types.Vars{}
	for i := 0; i < len(items); i++ {
		item := items[i]
		if key, value, ok := strings.Cut(item, "="); ok {
			vars[key] = value
			continue
		}
		if i+1 >= len(items) {
			return nil, errors.Newf(errors.ErrInvalidInput, "variable %q has no value", item).
				WithDetail("key", item)
		}
		vars[item] = items[i+1]
		i++
	}
	return vars, nil
}
