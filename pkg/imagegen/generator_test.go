package imagegen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/entrhq/qapilot/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, workers int, generate func(ctx context.Context, prompt string) ([]byte, error)) *Generator {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "test-key")

	g, err := NewGenerator("", WithOutputDir(t.TempDir()), WithWorkers(workers))
	require.NoError(t, err)
	g.generate = generate
	return g
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewGenerator("")
	assert.Error(t, err)
}

func TestNewGeneratorDefaults(t *testing.T) {
	g, err := NewGenerator("test-key")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, g.model)
	assert.LessOrEqual(t, g.workers, maxWorkers)
}

func TestNewGeneratorWithFreshConfig(t *testing.T) {
	require.NoError(t, config.Initialize(filepath.Join(t.TempDir(), "config.json")))

	// An out-of-the-box config leaves output_dir empty; the generator must
	// keep its own default instead of adopting the empty value.
	g, err := NewGenerator("test-key")
	require.NoError(t, err)
	assert.Equal(t, DefaultOutputDir, g.outputDir)

	g.outputDir = t.TempDir()
	g.generate = func(ctx context.Context, prompt string) ([]byte, error) {
		return []byte(prompt), nil
	}
	paths, err := g.GenerateBatch(context.Background(), []string{"red shoe"})
	require.NoError(t, err)
	assert.Len(t, paths, 1)
}

func TestNewGeneratorConfiguredOutputDir(t *testing.T) {
	require.NoError(t, config.Initialize(filepath.Join(t.TempDir(), "config.json")))

	dir := t.TempDir()
	section := config.GetGeneration()
	require.NotNil(t, section)
	require.NoError(t, section.SetData(map[string]interface{}{"output_dir": dir}))
	t.Cleanup(func() {
		_ = section.SetData(map[string]interface{}{"output_dir": ""})
	})

	g, err := NewGenerator("test-key")
	require.NoError(t, err)
	assert.Equal(t, dir, g.outputDir)
}

func TestWithWorkersCapped(t *testing.T) {
	g, err := NewGenerator("test-key", WithWorkers(16))
	require.NoError(t, err)
	assert.Equal(t, maxWorkers, g.workers)
}

func TestGenerateBatchWritesFiles(t *testing.T) {
	g := newTestGenerator(t, 2, func(ctx context.Context, prompt string) ([]byte, error) {
		return []byte("png:" + prompt), nil
	})

	paths, err := g.GenerateBatch(context.Background(), []string{"red shoe", "blue hat"})
	require.NoError(t, err)
	require.Len(t, paths, 2)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "png:")
	}
}

func TestGenerateBatchOmitsFailures(t *testing.T) {
	g := newTestGenerator(t, 2, func(ctx context.Context, prompt string) ([]byte, error) {
		if prompt == "bad" {
			return nil, errors.New("rate limited")
		}
		return []byte(prompt), nil
	})

	paths, err := g.GenerateBatch(context.Background(), []string{"a", "bad", "c"})
	require.NoError(t, err, "a failed prompt must not abort the batch")
	assert.Len(t, paths, 2)
}

func TestGenerateBatchBoundsConcurrency(t *testing.T) {
	var active, peak int64
	var mu sync.Mutex

	g := newTestGenerator(t, 2, func(ctx context.Context, prompt string) ([]byte, error) {
		n := atomic.AddInt64(&active, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		defer atomic.AddInt64(&active, -1)
		return []byte(prompt), nil
	})

	prompts := make([]string, 10)
	for i := range prompts {
		prompts[i] = fmt.Sprintf("prompt-%d", i)
	}
	_, err := g.GenerateBatch(context.Background(), prompts)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, int64(2))
}

func TestGenerateBatchEmpty(t *testing.T) {
	g := newTestGenerator(t, 1, nil)
	paths, err := g.GenerateBatch(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, paths)
}

func TestGenerateBatchPreservesPromptOrder(t *testing.T) {
	g := newTestGenerator(t, 4, func(ctx context.Context, prompt string) ([]byte, error) {
		return []byte(prompt), nil
	})

	prompts := []string{"first", "second", "third"}
	paths, err := g.GenerateBatch(context.Background(), prompts)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for i, path := range paths {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, prompts[i], string(data))
	}
}
