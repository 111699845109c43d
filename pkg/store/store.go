// Package store is an optional artifact-store collaborator for
// experiments that run as roach tasks: a small BoltDB-backed place to
// record scalar metric logs and arbitrary result blobs per run, indexed
// by a generated run id.
//
// It is deliberately outside the queue/worker dependency graph — a task
// command can import it directly to record results, but pkg/queue and
// pkg/worker never import it back, so a store outage never blocks task
// scheduling.
package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketRuns     = []byte("runs")
	bucketScalars  = []byte("scalars")
	bucketArtifact = []byte("artifacts")
)

// Manifest is the metadata roach records for every run when it is
// created.
type Manifest struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Point is one (step, value) observation in a scalar log.
type Point struct {
	Step  int     `json:"step"`
	Value float64 `json:"value"`
}

// Store wraps a single BoltDB file under a data directory.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if necessary) the store's database file under
// dataDir and ensures its buckets exist.
func Open(dataDir string) (*Store, error) {
	dbPath := filepath.Join(dataDir, "roach-store.db")

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketRuns, bucketScalars, bucketArtifact} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("store: create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// NewRun records a fresh Manifest and returns its generated id. Run ids
// have no grammar constraint of their own, unlike task ids, so a
// generated UUID is fine here.
func (s *Store) NewRun(name string) (string, error) {
	m := Manifest{ID: uuid.NewString(), Name: name, CreatedAt: time.Now()}

	err := s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(m)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketRuns).Put([]byte(m.ID), data)
	})
	if err != nil {
		return "", fmt.Errorf("store: create run: %w", err)
	}
	return m.ID, nil
}

// ListRuns returns every recorded Manifest.
func (s *Store) ListRuns() ([]Manifest, error) {
	var runs []Manifest
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRuns).ForEach(func(_, v []byte) error {
			var m Manifest
			if err := json.Unmarshal(v, &m); err != nil {
				return err
			}
			runs = append(runs, m)
			return nil
		})
	})
	return runs, err
}

// Log appends a scalar observation to runID's key series.
func (s *Store) Log(runID, key string, step int, value float64) error {
	composite := []byte(runID + "/" + key)
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketScalars)
		var points []Point
		if data := b.Get(composite); data != nil {
			if err := json.Unmarshal(data, &points); err != nil {
				return err
			}
		}
		points = append(points, Point{Step: step, Value: value})
		data, err := json.Marshal(points)
		if err != nil {
			return err
		}
		return b.Put(composite, data)
	})
}

// ReadLog returns every observation previously recorded via Log for
// runID's key series, in insertion order.
func (s *Store) ReadLog(runID, key string) ([]Point, error) {
	composite := []byte(runID + "/" + key)
	var points []Point
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketScalars).Get(composite)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &points)
	})
	return points, err
}

// Save stores an arbitrary result blob under runID's key.
func (s *Store) Save(runID, key string, blob []byte) error {
	composite := []byte(runID + "/" + key)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketArtifact).Put(composite, blob)
	})
}

// Load retrieves a blob previously stored with Save. It returns
// (nil, nil) if no such key exists.
func (s *Store) Load(runID, key string) ([]byte, error) {
	composite := []byte(runID + "/" + key)
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketArtifact).Get(composite)
		if data == nil {
			return nil
		}
		out = make([]byte, len(data))
		copy(out, data)
		return nil
	})
	return out, err
}
