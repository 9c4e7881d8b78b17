package main

// history.go persists every snapshot jsheap-inspect polls (one-shot or in
// watch mode) to an embedded Badger database used as an append-only log
// (badger.Open/Update, big-endian sequence keys), giving an offline GC
// snapshot history. The CLI only appends to it; it has no mode that reads
// the stored snapshots back.

import (
	"encoding/binary"
	"encoding/json"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// history wraps an embedded Badger database keyed by a big-endian sequence
// number, so iteration order is chronological.
type history struct {
	db  *badger.DB
	seq uint64
}

func openHistory(dir string) (*history, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, err
	}
	return &history{db: db}, nil
}

func (h *history) Close() error { return h.db.Close() }

// Append persists one polled snapshot alongside the time it was fetched.
func (h *history) Append(snapshot map[string]any) error {
	record := struct {
		PolledAt time.Time      `json:"polled_at"`
		Snapshot map[string]any `json:"snapshot"`
	}{PolledAt: time.Now(), Snapshot: snapshot}

	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}

	h.seq++
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], h.seq)
	return h.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key[:], payload)
	})
}

// Count returns the number of snapshots recorded so far.
func (h *history) Count() (uint64, error) {
	var n uint64
	err := h.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
