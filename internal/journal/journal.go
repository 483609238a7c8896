// Package journal persists serialized workspace edits from multiple
// producers until a host drains and combines them. Entries are keyed by a
// monotonic sequence so arrival order survives process restarts.
package journal

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/kpumuk/edit-weaver/workspace"
)

// ErrClosed is returned by operations on a closed or nil journal.
var ErrClosed = errors.New("journal is closed")

var bucketEdits = []byte("edits")

// Entry is one spooled workspace edit together with its producer identity.
type Entry struct {
	Seq       uint64
	Producer  string
	SpooledAt time.Time
	Edit      *workspace.WorkspaceEdit
}

// record is the stored value shape. The edit stays in its serialized form so
// the journal never depends on the model staying decodable at write time.
type record struct {
	Producer  string          `json:"producer"`
	SpooledAt time.Time       `json:"spooledAt"`
	Edit      json.RawMessage `json:"edit"`
}

// Journal is a durable FIFO spool of workspace edits.
type Journal struct {
	db *bolt.DB
}

// Open opens or creates a journal at path.
func Open(path string) (*Journal, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEdits)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init journal %s: %w", path, err)
	}
	return &Journal{db: db}, nil
}

// Close closes the underlying store. The journal must not be used afterward.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

// Append spools edit under the given producer identity and returns the
// assigned sequence number. An empty producer is assigned a fresh UUID so
// every entry carries a distinct identity.
func (j *Journal) Append(producer string, edit *workspace.WorkspaceEdit) (uint64, error) {
	if j == nil || j.db == nil {
		return 0, ErrClosed
	}
	if producer == "" {
		producer = uuid.NewString()
	}
	payload, err := json.Marshal(edit)
	if err != nil {
		return 0, fmt.Errorf("encode edit: %w", err)
	}
	buf, err := json.Marshal(record{
		Producer:  producer,
		SpooledAt: time.Now().UTC(),
		Edit:      payload,
	})
	if err != nil {
		return 0, fmt.Errorf("encode journal record: %w", err)
	}

	var seq uint64
	err = j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEdits)
		s, err := b.NextSequence()
		if err != nil {
			return err
		}
		seq = s
		return b.Put(seqKey(s), buf)
	})
	if err != nil {
		return 0, fmt.Errorf("append to journal: %w", err)
	}
	return seq, nil
}

// Entries returns the spooled entries in arrival order. A corrupt entry
// surfaces as a decode error naming its sequence number.
func (j *Journal) Entries() ([]Entry, error) {
	if j == nil || j.db == nil {
		return nil, ErrClosed
	}
	var entries []Entry
	err := j.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketEdits).ForEach(func(k, v []byte) error {
			seq := binary.BigEndian.Uint64(k)
			var rec record
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("journal entry %d: %w", seq, err)
			}
			edit := workspace.NewWorkspaceEdit()
			if err := json.Unmarshal(rec.Edit, edit); err != nil {
				return fmt.Errorf("journal entry %d: %w", seq, err)
			}
			entries = append(entries, Entry{
				Seq:       seq,
				Producer:  rec.Producer,
				SpooledAt: rec.SpooledAt,
				Edit:      edit,
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Len returns the number of spooled entries.
func (j *Journal) Len() (int, error) {
	if j == nil || j.db == nil {
		return 0, ErrClosed
	}
	var n int
	err := j.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(bucketEdits).Stats().KeyN
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Drain combines every spooled edit in arrival order into one edit and
// empties the journal. Draining an empty journal yields an empty edit.
// The journal is emptied only after the merge succeeds.
func (j *Journal) Drain() (*workspace.WorkspaceEdit, error) {
	entries, err := j.Entries()
	if err != nil {
		return nil, err
	}
	edits := make([]*workspace.WorkspaceEdit, 0, len(entries))
	for _, e := range entries {
		edits = append(edits, e.Edit)
	}
	merged, err := workspace.Combine(edits...)
	if err != nil {
		return nil, fmt.Errorf("combine journal edits: %w", err)
	}
	err = j.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketEdits); err != nil {
			return err
		}
		_, err := tx.CreateBucket(bucketEdits)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("empty journal: %w", err)
	}
	return merged, nil
}

func seqKey(seq uint64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], seq)
	return k[:]
}
