package lang

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// globalCache stores canonical output keyed by a hash of source and options.
var globalCache sync.Map

// entry is the cached outcome of compiling one source.
type entry struct {
	once sync.Once
	text string
	err  error
}

// CompileReader reads a whole script from r and compiles it.
func CompileReader(
	ctx context.Context,
	name string,
	r io.Reader,
	opts ...Option,
) (*Result, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("script", name))
	}

	return CompileString(ctx, name, string(data), opts...)
}

// Canonical returns the canonical output of the script src, compiling it at
// most once per distinct source and option set for the life of the process.
// The name identifies the script in logs and in a returned error.
//
// Callers that recompile unchanged content, such as a file watcher or an
// interactive session, avoid repeating the work. The tree is not retained;
// use [Compile] when the tree is needed.
func Canonical(
	ctx context.Context,
	name, src string,
	opts ...Option,
) (string, error) {
	u := NewUnit(name, opts...)
	key := cacheKey(src, u)

	value, hit := globalCache.LoadOrStore(key, new(entry))

	ent, ok := value.(*entry)
	if !ok {
		return "", ErrReadInput.With(slog.String("issue", "invalid cache entry"))
	}

	u.logger.TraceContext(ctx, "cache lookup",
		slog.String("key", strconv.FormatUint(key, 36)),
		slog.Bool("cache_hit", hit),
	)

	ent.once.Do(func() {
		res, err := u.compile(ctx, SplitLines(src))
		if err != nil {
			ent.err = err

			return
		}

		ent.text = res.Text
	})

	if ent.err != nil {
		var e *Error
		if errors.As(ent.err, &e) {
			return "", e.With(slog.String("script", name))
		}

		return "", ent.err
	}

	return ent.text, nil
}

// cacheKey hashes every option that changes output followed by src.
func cacheKey(src string, u *Unit) uint64 {
	h := xxh3.New()

	_, _ = h.WriteString(strconv.Itoa(u.indent))
	_, _ = h.Write([]byte{0})

	for _, op := range u.ops.All() {
		_, _ = h.WriteString(op)
		_, _ = h.Write([]byte{0})
	}

	for _, k := range slices.Sorted(maps.Keys(u.bindings)) {
		_, _ = h.WriteString(k + "=" + u.bindings[k])
		_, _ = h.Write([]byte{0})
	}

	_, _ = h.Write([]byte{0})
	_, _ = h.WriteString(src)

	return h.Sum64()
}

// ClearCache removes all cached output.
func ClearCache() {
	globalCache.Clear()
}
