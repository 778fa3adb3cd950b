// Package dbtest provides a db.DB stand-in for tests of code whose
// repositories are faked.
package dbtest

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tuanvumaihuynh/bizsuite/internal/storage/db"
)

var ErrNotSupported = errors.New("dbtest: queries are not supported")

var _ db.DB = (*FakeDB)(nil)

// FakeDB runs WithTx callbacks inline and counts transactions. Query methods
// fail; repositories are expected to be faked.
type FakeDB struct {
	mu        sync.Mutex
	txs       int
	commits   int
	rollbacks int
}

func (f *FakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, ErrNotSupported
}

func (f *FakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, ErrNotSupported
}

func (f *FakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{}
}

func (f *FakeDB) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, ErrNotSupported
}

func (f *FakeDB) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	return nil
}

func (f *FakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	f.mu.Lock()
	f.txs++
	f.mu.Unlock()

	err := txFunc(f)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.rollbacks++
		return err
	}
	f.commits++
	return nil
}

// Stats returns the number of transactions begun, committed and rolled back.
func (f *FakeDB) Stats() (txs, commits, rollbacks int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.txs, f.commits, f.rollbacks
}

type errRow struct{}

func (errRow) Scan(...any) error {
	return ErrNotSupported
}
