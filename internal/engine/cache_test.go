package engine

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesdash/internal/logger"
)

func TestCacheMemoizesByContent(t *testing.T) {
	c := NewCache()

	first, err := c.Load("sales.csv", []byte(scenarioCSV))
	require.NoError(t, err)
	// Same bytes under another name are the same file.
	second, err := c.Load("renamed.csv", []byte(scenarioCSV))
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, c.Loads())

	other, err := c.Load("other.csv", []byte("City,Sales\nLA,1\n"))
	require.NoError(t, err)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, c.Loads())
}

func TestCacheConcurrentLoads(t *testing.T) {
	c := NewCache()
	data := []byte(scenarioCSV)

	var wg sync.WaitGroup
	tables := make([]*Table, 8)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tb, err := c.Load("sales.csv", data)
			if err == nil {
				tables[i] = tb
			}
		}(i)
	}
	wg.Wait()

	for _, tb := range tables {
		require.NotNil(t, tb)
		assert.Equal(t, 3, tb.Len())
	}
	assert.LessOrEqual(t, c.Loads(), len(tables))
}

func TestCacheDoesNotKeepFailures(t *testing.T) {
	c := NewCache()

	_, err := c.Load("broken.xlsx", []byte("nope"))
	var rerr *ReadError
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, 0, c.Loads())
}

func TestCacheLogsLoadWithoutHeaderClash(t *testing.T) {
	var buf bytes.Buffer
	prev := logger.Get()
	logger.Set(logger.New("test", "info", &buf))
	defer logger.Set(prev)

	_, err := NewCache().Load("sales.csv", []byte(scenarioCSV))
	require.NoError(t, err)

	line := buf.String()
	assert.Contains(t, line, `"event":"table_loaded"`)
	assert.Contains(t, line, `"upload":"sales.csv"`)
	assert.Equal(t, 1, strings.Count(line, `"file":`), line)
}
