package engine

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/singleflight"

	"salesdash/internal/logger"
)

// Cache memoizes the parsed table of the active upload, keyed by a hash of
// the file content. It holds a single entry: loading a different file
// replaces it. Concurrent loads of the same content share one parse.
type Cache struct {
	mu    sync.Mutex
	key   uint64
	table *Table
	loads int

	group singleflight.Group
}

func NewCache() *Cache {
	return &Cache{}
}

// Load returns the table for data, parsing it only on a cache miss.
func (c *Cache) Load(name string, data []byte) (*Table, error) {
	key := xxh3.Hash(data)

	c.mu.Lock()
	if c.table != nil && c.key == key {
		t := c.table
		c.mu.Unlock()
		return t, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(strconv.FormatUint(key, 16), func() (interface{}, error) {
		start := time.Now()
		t, err := Load(name, data)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.key, c.table = key, t
		c.loads++
		c.mu.Unlock()

		logger.Get().Infoj(log.JSON{
			"event":   "table_loaded",
			"upload":  name,
			"rows":    t.Len(),
			"columns": len(t.Columns),
			"took_ms": time.Since(start).Milliseconds(),
		})
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Table), nil
}

// Loads returns how many times a file was actually parsed.
func (c *Cache) Loads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}
