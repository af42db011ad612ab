package sync

import (
	"context"
	"log/slog"
	"sync"
)

// fetchFunc fetches one translated artifact for a single language
type fetchFunc[T any] func(ctx context.Context, language string) (T, error)

// fanOut invokes fetch once per language, concurrently, and returns a map
// containing only the languages whose fetch succeeded. A per-language failure
// is logged with the artifact kind and language, then dropped; it never
// aborts sibling fetches. All languages failing is a valid outcome and yields
// an empty map. Cancellation is the exception: when ctx is done the call
// returns ctx.Err() instead of a partial result.
func fanOut[T any](ctx context.Context, artifact string, languages []string, fetch fetchFunc[T]) (map[string]T, error) {
	out := make(map[string]T, len(languages))
	if len(languages) == 0 {
		return out, nil
	}

	type result struct {
		language string
		value    T
		err      error
	}

	results := make(chan result, len(languages))
	var wg sync.WaitGroup
	for _, language := range languages {
		wg.Add(1)
		go func(language string) {
			defer wg.Done()
			value, err := fetch(ctx, language)
			results <- result{language: language, value: value, err: err}
		}(language)
	}
	wg.Wait()
	close(results)

	// A cancelled cycle must not be mistaken for "every language failed"
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for r := range results {
		if r.err != nil {
			slog.Warn("Translated fetch failed",
				"artifact", artifact,
				"language", r.language,
				"error", r.err)
			continue
		}
		out[r.language] = r.value
	}

	return out, nil
}
