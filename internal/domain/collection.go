package domain

import "sort"

// Collection is an ordered mapping from transaction id to Transaction.
// Insertion order is preserved so a collection serializes back in its
// original record order, while id lookup stays O(1) for comparison.
type Collection struct {
	order []uint64
	byID  map[uint64]Transaction
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{byID: make(map[uint64]Transaction)}
}

// Append adds tx to the collection. A transaction id already present is a
// DuplicateIDError; the collection is left unchanged.
func (c *Collection) Append(tx Transaction) error {
	if _, exists := c.byID[tx.TransactionID]; exists {
		return &DuplicateIDError{ID: tx.TransactionID}
	}
	c.byID[tx.TransactionID] = tx
	c.order = append(c.order, tx.TransactionID)
	return nil
}

// Get returns the transaction with the given id, if present.
func (c *Collection) Get(id uint64) (Transaction, bool) {
	tx, ok := c.byID[id]
	return tx, ok
}

// Len returns the number of transactions in the collection.
func (c *Collection) Len() int {
	return len(c.order)
}

// IDs returns the transaction ids in insertion order.
func (c *Collection) IDs() []uint64 {
	out := make([]uint64, len(c.order))
	copy(out, c.order)
	return out
}

// SortedIDs returns the transaction ids in ascending order.
func (c *Collection) SortedIDs() []uint64 {
	out := c.IDs()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Transactions returns the transactions in insertion order.
func (c *Collection) Transactions() []Transaction {
	out := make([]Transaction, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}
