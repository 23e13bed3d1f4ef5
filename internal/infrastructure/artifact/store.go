// Package artifact persists built search indices and the trained
// classifier as a single bbolt snapshot file. The worker writes a
// fresh snapshot to a temporary file and renames it into place, so a
// reader never observes a half-written database.
package artifact

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/nyayashield/legal-answer-engine/internal/core/domain"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/classifier"
	"github.com/nyayashield/legal-answer-engine/internal/infrastructure/index"
)

var (
	bucketIndices    = []byte("indices")
	bucketClassifier = []byte("classifier")
	keyModel         = []byte("model")
)

var errNoIndices = errors.New("snapshot holds no indices")

// Snapshot is everything one reindex run produces: a search index
// artifact per domain (the global one included) plus the optional
// trained classifier.
type Snapshot struct {
	Indices    map[string]*index.Artifact
	Classifier *classifier.Model
}

// WriteSnapshot persists the snapshot at path atomically. The previous
// snapshot file, if any, is replaced only after the new one is fully
// written and synced.
func WriteSnapshot(path string, snapshot *Snapshot) error {
	const op = "artifact.write"

	if len(snapshot.Indices) == 0 {
		return domain.WrapError(domain.ErrInvalidInput, op, errNoIndices)
	}

	tmp := path + ".tmp"
	if err := os.Remove(tmp); err != nil && !os.IsNotExist(err) {
		return domain.WrapError(domain.ErrTemporary, op, err)
	}

	db, err := bolt.Open(tmp, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return domain.WrapError(domain.ErrTemporary, op, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		indices, err := tx.CreateBucketIfNotExists(bucketIndices)
		if err != nil {
			return err
		}
		for name, art := range snapshot.Indices {
			if err := art.Validate(); err != nil {
				return err
			}
			payload, err := encode(art)
			if err != nil {
				return fmt.Errorf("encode index %s: %w", name, err)
			}
			if err := indices.Put([]byte(name), payload); err != nil {
				return err
			}
		}

		if snapshot.Classifier != nil {
			if err := snapshot.Classifier.Validate(); err != nil {
				return err
			}
			bucket, err := tx.CreateBucketIfNotExists(bucketClassifier)
			if err != nil {
				return err
			}
			payload, err := encode(snapshot.Classifier)
			if err != nil {
				return fmt.Errorf("encode classifier: %w", err)
			}
			return bucket.Put(keyModel, payload)
		}
		return nil
	})
	if closeErr := db.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return domain.WrapError(domain.ErrTemporary, op, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return domain.WrapError(domain.ErrTemporary, op, err)
	}
	return nil
}

// LoadSnapshot reads the whole snapshot into memory and closes the
// database. Serving never holds the file open, so the worker's rename
// is free to replace it at any time.
func LoadSnapshot(path string) (*Snapshot, error) {
	const op = "artifact.load"

	if _, err := os.Stat(path); err != nil {
		return nil, domain.WrapError(domain.ErrDataUnavailable, op, err)
	}

	db, err := bolt.Open(path, 0o400, &bolt.Options{ReadOnly: true, Timeout: 5 * time.Second})
	if err != nil {
		return nil, domain.WrapError(domain.ErrMalformedArtifact, op, err)
	}
	defer db.Close()

	snapshot := &Snapshot{Indices: map[string]*index.Artifact{}}
	err = db.View(func(tx *bolt.Tx) error {
		indices := tx.Bucket(bucketIndices)
		if indices == nil {
			return errNoIndices
		}
		if err := indices.ForEach(func(k, v []byte) error {
			art := &index.Artifact{}
			if err := decode(v, art); err != nil {
				return fmt.Errorf("decode index %s: %w", k, err)
			}
			if err := art.Validate(); err != nil {
				return err
			}
			snapshot.Indices[string(k)] = art
			return nil
		}); err != nil {
			return err
		}

		if bucket := tx.Bucket(bucketClassifier); bucket != nil {
			if payload := bucket.Get(keyModel); payload != nil {
				model := &classifier.Model{}
				if err := decode(payload, model); err != nil {
					return fmt.Errorf("decode classifier: %w", err)
				}
				if err := model.Validate(); err != nil {
					return err
				}
				snapshot.Classifier = model
			}
		}
		return nil
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrMalformedArtifact, op, err)
	}
	return snapshot, nil
}

func encode(value any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(payload []byte, into any) error {
	return gob.NewDecoder(bytes.NewReader(payload)).Decode(into)
}
