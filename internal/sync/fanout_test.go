package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warfront-labs/warsync/internal/snapshot"
)

func TestFanOut_AllSucceed(t *testing.T) {
	t.Parallel()

	languages := []string{"en-US", "fr-FR", "de-DE"}
	out, err := fanOut(context.Background(), snapshot.ArtifactStatus, languages,
		func(_ context.Context, language string) (string, error) {
			return "payload-" + language, nil
		})

	require.NoError(t, err)
	require.Len(t, out, 3)
	for _, language := range languages {
		assert.Equal(t, "payload-"+language, out[language])
	}
}

func TestFanOut_PartialFailure(t *testing.T) {
	t.Parallel()

	out, err := fanOut(context.Background(), snapshot.ArtifactNewsFeed,
		[]string{"en-US", "fr-FR", "de-DE"},
		func(_ context.Context, language string) ([]byte, error) {
			if language == "fr-FR" {
				return nil, errors.New("upstream 500")
			}
			return []byte(`{"lang":"` + language + `"}`), nil
		})

	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Contains(t, out, "en-US")
	assert.Contains(t, out, "de-DE")

	// A failed language is absent, not present with a sentinel value
	_, ok := out["fr-FR"]
	assert.False(t, ok)
}

func TestFanOut_AllFail(t *testing.T) {
	t.Parallel()

	out, err := fanOut(context.Background(), snapshot.ArtifactAssignments,
		[]string{"en-US", "fr-FR"},
		func(_ context.Context, language string) ([]byte, error) {
			return nil, fmt.Errorf("no translation for %s", language)
		})

	// Every language failing is still a successful fan-out
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NotNil(t, out)
}

func TestFanOut_EmptyLanguagesNeverInvokesFetch(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	out, err := fanOut(context.Background(), snapshot.ArtifactStatus, nil,
		func(context.Context, string) ([]byte, error) {
			calls.Add(1)
			return nil, nil
		})

	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Zero(t, calls.Load())
}

func TestFanOut_CancellationReturnsContextError(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	var once sync.Once
	out, err := fanOut(ctx, snapshot.ArtifactStatus,
		[]string{"en-US", "fr-FR", "de-DE"},
		func(ctx context.Context, language string) ([]byte, error) {
			once.Do(cancel)
			<-ctx.Done()
			return nil, ctx.Err()
		})

	// Cancellation must surface as the context error, never as an empty
	// "all languages failed" result
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)
}

func TestFanOut_FetchesRunConcurrently(t *testing.T) {
	t.Parallel()

	languages := []string{"en-US", "fr-FR", "de-DE", "pl-PL"}
	release := make(chan struct{})
	var waiting sync.WaitGroup
	waiting.Add(len(languages))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := fanOut(context.Background(), snapshot.ArtifactStatus, languages,
			func(_ context.Context, language string) (string, error) {
				waiting.Done()
				<-release
				return language, nil
			})
		assert.NoError(t, err)
	}()

	// All fetches must be in flight at once; a sequential implementation
	// would deadlock here.
	waiting.Wait()
	close(release)
	<-done
}
