/*
Package memory In-memory document store

Each repository embeds one Store of reconstruction DTOs keyed by id.
Aggregates are rebuilt on every read and snapshotted on every write, so a
caller never holds a pointer into the store.

A Store takes part in MultiCollectionTransaction: inside a transaction
writes are buffered in the collection tx and applied on Commit. Reads inside
the transaction see the buffered writes.
*/
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"storefront/domain/shared"
	"storefront/infrastructure/persistence"
)

// Store is one named collection of documents of type D keyed by int64 id.
type Store[D any] struct {
	name string

	mu     sync.RWMutex
	docs   map[int64]D
	lastID int64
}

func NewStore[D any](name string) *Store[D] {
	return &Store[D]{name: name, docs: make(map[int64]D)}
}

// Collection implements shared.Transactional
func (c *Store[D]) Collection() string { return c.name }

// BeginTx implements shared.Transactional
func (c *Store[D]) BeginTx(ctx context.Context) (shared.CollectionTx, error) {
	tx := &collectionTx[D]{
		TxLifecycle: persistence.NewTxLifecycle(c.name),
		coll:        c,
		pending:     make(map[int64]D),
	}
	if err := tx.Begin(); err != nil {
		return nil, err
	}
	return tx, nil
}

// NextID allocates ids from a per-collection sequence starting at 1.
func (c *Store[D]) NextID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastID++
	return c.lastID
}

// Put upserts doc. Inside a transaction the write is buffered.
func (c *Store[D]) Put(ctx context.Context, id int64, doc D) {
	if tx := c.txFrom(ctx); tx != nil {
		tx.put(id, doc)
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(id, doc)
}

// Insert fails when id already exists.
func (c *Store[D]) Insert(ctx context.Context, id int64, doc D) error {
	if _, ok := c.Get(ctx, id); ok {
		return fmt.Errorf("%s %d already exists", c.name, id)
	}
	c.Put(ctx, id, doc)
	return nil
}

func (c *Store[D]) Get(ctx context.Context, id int64) (D, bool) {
	if tx := c.txFrom(ctx); tx != nil {
		if doc, ok := tx.get(id); ok {
			return doc, true
		}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	doc, ok := c.docs[id]
	return doc, ok
}

// All returns every document ordered by id.
func (c *Store[D]) All(ctx context.Context) []D {
	c.mu.RLock()
	merged := make(map[int64]D, len(c.docs))
	for id, doc := range c.docs {
		merged[id] = doc
	}
	c.mu.RUnlock()

	if tx := c.txFrom(ctx); tx != nil {
		tx.overlay(merged)
	}

	ids := make([]int64, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]D, len(ids))
	for i, id := range ids {
		out[i] = merged[id]
	}
	return out
}

// Filter returns documents matching keep, ordered by id.
func (c *Store[D]) Filter(ctx context.Context, keep func(D) bool) []D {
	var out []D
	for _, doc := range c.All(ctx) {
		if keep(doc) {
			out = append(out, doc)
		}
	}
	return out
}

func (c *Store[D]) Count(ctx context.Context) int64 {
	return int64(len(c.All(ctx)))
}

// store must be called with c.mu held
func (c *Store[D]) store(id int64, doc D) {
	c.docs[id] = doc
	if id > c.lastID {
		c.lastID = id
	}
}

func (c *Store[D]) txFrom(ctx context.Context) *collectionTx[D] {
	if tx, ok := persistence.TxFromContext(ctx, c.name).(*collectionTx[D]); ok {
		return tx
	}
	return nil
}

// ============================================================================
// collectionTx
// ============================================================================

type collectionTx[D any] struct {
	*persistence.TxLifecycle
	coll *Store[D]

	mu      sync.Mutex
	pending map[int64]D
}

func (tx *collectionTx[D]) put(id int64, doc D) {
	tx.MustBeWritable()
	tx.mu.Lock()
	defer tx.mu.Unlock()
	tx.pending[id] = doc
}

func (tx *collectionTx[D]) get(id int64) (D, bool) {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	doc, ok := tx.pending[id]
	return doc, ok
}

func (tx *collectionTx[D]) overlay(into map[int64]D) {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	for id, doc := range tx.pending {
		into[id] = doc
	}
}

func (tx *collectionTx[D]) Commit(ctx context.Context) error {
	if err := tx.TxLifecycle.Commit(); err != nil {
		return err
	}
	tx.mu.Lock()
	defer tx.mu.Unlock()
	tx.coll.mu.Lock()
	defer tx.coll.mu.Unlock()
	for id, doc := range tx.pending {
		tx.coll.store(id, doc)
	}
	tx.pending = nil
	return nil
}

func (tx *collectionTx[D]) Rollback(ctx context.Context) error {
	if err := tx.TxLifecycle.Rollback(); err != nil {
		return err
	}
	tx.mu.Lock()
	defer tx.mu.Unlock()
	tx.pending = nil
	return nil
}
