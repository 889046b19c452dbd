// Package diff classifies a rendered candidate file against its destination.
//
// The Engine only reads: it never writes, moves or deletes anything. The
// byte comparison itself is delegated to a Comparator, either an external
// tool such as diff(1) or the builtin line differ.
package diff

import (
	"context"
	"os"

	"github.com/arthur-debert/fastidious/pkg/errors"
	"github.com/arthur-debert/fastidious/pkg/logging"
	"github.com/arthur-debert/fastidious/pkg/types"
	"github.com/rs/zerolog"
)

// BuiltinTool selects the builtin comparator in configuration
const BuiltinTool = "builtin"

// Comparator compares two regular files
type Comparator interface {
	// Compare reports whether the files differ and, if so, the textual
	// difference. An error means the comparison could not be made.
	Compare(ctx context.Context, candidate, dest string) (changed bool, text []byte, err error)
}

// Engine produces a fresh DiffStatus for every comparison
type Engine struct {
	comparator Comparator
	logger     zerolog.Logger
}

// New creates an Engine around comparator
func New(comparator Comparator) *Engine {
	if comparator == nil {
		comparator = Builtin{}
	}
	return &Engine{
		comparator: comparator,
		logger:     logging.GetLogger("diff"),
	}
}

// ForTool creates an Engine for a configured tool name. An empty name or
// "builtin" selects the builtin comparator.
func ForTool(tool string, args []string) *Engine {
	if tool == "" || tool == BuiltinTool {
		return New(Builtin{})
	}
	return New(External{Tool: tool, Args: args})
}

// Diff classifies candidate against dest
func (e *Engine) Diff(ctx context.Context, candidate, dest string) types.DiffStatus {
	info, err := os.Stat(dest)
	if err != nil {
		if os.IsNotExist(err) {
			e.logger.Debug().Str("dest", dest).Msg("destination does not exist")
			return types.DiffStatus{State: types.DiffNewFile}
		}
		return failed(errors.Wrapf(err, errors.ErrFileRead, "cannot stat %s", dest).WithDetail("path", dest))
	}
	if !info.Mode().IsRegular() {
		e.logger.Debug().Str("dest", dest).Str("mode", info.Mode().String()).Msg("destination is not a regular file")
		return types.DiffStatus{State: types.DiffUnsupported}
	}

	changed, text, err := e.comparator.Compare(ctx, candidate, dest)
	if err != nil {
		e.logger.Debug().Err(err).Str("candidate", candidate).Str("dest", dest).Msg("comparison failed")
		return failed(err)
	}
	if !changed {
		return types.DiffStatus{State: types.DiffNoChanges}
	}

	e.logger.Debug().Str("dest", dest).Int("bytes", len(text)).Msg("destination differs")
	return types.DiffStatus{State: types.DiffChanged, Text: text}
}

func failed(err error) types.DiffStatus {
	return types.DiffStatus{State: types.DiffFailed, Err: err}
}
