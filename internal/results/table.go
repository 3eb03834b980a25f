// SPDX-License-Identifier: MIT

package results

import (
	"errors"
	"fmt"

	memdb "github.com/hashicorp/go-memdb"
)

const (
	tableName     = "record"
	indexID       = "id"
	indexCase     = "case"
	indexStrategy = "strategy"
)

// ErrEmptyID indicates a Record without an ID.
var ErrEmptyID = errors.New("results: record id is required")

func schema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableName: {
				Name: tableName,
				Indexes: map[string]*memdb.IndexSchema{
					indexID: {
						Name:    indexID,
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					indexCase: {
						Name: indexCase,
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.IntFieldIndex{Field: "M"},
								&memdb.IntFieldIndex{Field: "N"},
								&memdb.IntFieldIndex{Field: "K"},
							},
						},
					},
					indexStrategy: {
						Name:    indexStrategy,
						Indexer: &memdb.StringFieldIndex{Field: "Strategy"},
					},
				},
			},
		},
	}
}

// Table is the in-memory record set of one run. It is safe for concurrent
// use: writers serialize on memdb's write transaction, readers see
// snapshots.
type Table struct {
	db *memdb.MemDB
}

// NewTable returns an empty Table.
func NewTable() (*Table, error) {
	db, err := memdb.NewMemDB(schema())
	if err != nil {
		return nil, fmt.Errorf("results: memdb: %w", err)
	}
	return &Table{db: db}, nil
}

// Insert stores recs in one transaction, replacing records with equal IDs.
func (t *Table) Insert(recs ...*Record) error {
	txn := t.db.Txn(true)
	defer txn.Abort()

	for _, r := range recs {
		if r.ID == "" {
			return ErrEmptyID
		}
		if err := txn.Insert(tableName, r); err != nil {
			return fmt.Errorf("results: insert %s: %w", r.ID, err)
		}
	}
	txn.Commit()
	return nil
}

// Get returns the record with id, or nil.
func (t *Table) Get(id string) (*Record, error) {
	txn := t.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tableName, indexID, id)
	if err != nil || raw == nil {
		return nil, err
	}
	return raw.(*Record), nil
}

// ForCase returns every record of case (m,n,k), ordered by ID.
func (t *Table) ForCase(m, n, k int) ([]*Record, error) {
	return t.collect(indexCase, m, n, k)
}

// ForStrategy returns every record of strategy.
func (t *Table) ForStrategy(strategy string) ([]*Record, error) {
	return t.collect(indexStrategy, strategy)
}

// All returns every record ordered by ID.
func (t *Table) All() ([]*Record, error) {
	return t.collect(indexID)
}

// Len returns the number of records.
func (t *Table) Len() int {
	all, _ := t.All()
	return len(all)
}

func (t *Table) collect(index string, args ...any) ([]*Record, error) {
	txn := t.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableName, index, args...)
	if err != nil {
		return nil, fmt.Errorf("results: query %s: %w", index, err)
	}
	var out []*Record
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, raw.(*Record))
	}
	return out, nil
}
