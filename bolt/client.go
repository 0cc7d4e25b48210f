package bolt

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

const (
	GenerationBucket = "GenerationBucket"
	RunBucket        = "RunBucket"
)

var (
	buckets          = []string{GenerationBucket, RunBucket}
	ErrUnknownBucket = errors.New("unknown bucket")
	ErrNotFound      = errors.New("key not found")
)

// New opens (or creates) the database at path and makes sure every bucket
// exists.
func New(path string) (*Client, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(bucket)); err != nil {
				return fmt.Errorf("create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Client{db}, nil
}

type Client struct {
	db *bolt.DB
}

func (c *Client) Close() error {
	return c.db.Close()
}

// Update stores the gob encoding of v under key.
func (c *Client) Update(bucket string, key []byte, v interface{}) error {
	if err := c.checkBucket(bucket); err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(v); err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put(key, buf.Bytes())
	})
}

// Get decodes the value stored under key into v.
func (c *Client) Get(bucket string, key []byte, v interface{}) error {
	if err := c.checkBucket(bucket); err != nil {
		return err
	}

	return c.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(bucket)).Get(key)
		if data == nil {
			return ErrNotFound
		}
		return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
	})
}

// ForEach calls fn for every key in the bucket, in key order. The value is
// only valid during the call.
func (c *Client) ForEach(bucket string, fn func(k, v []byte) error) error {
	if err := c.checkBucket(bucket); err != nil {
		return err
	}

	return c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).ForEach(fn)
	})
}

// NextSequence returns an autoincrementing id for the bucket.
func (c *Client) NextSequence(bucket string) (uint64, error) {
	if err := c.checkBucket(bucket); err != nil {
		return 0, err
	}

	var id uint64
	err := c.db.Update(func(tx *bolt.Tx) error {
		var err error
		id, err = tx.Bucket([]byte(bucket)).NextSequence()
		return err
	})
	return id, err
}

func (c *Client) checkBucket(name string) error {
	for _, b := range buckets {
		if b == name {
			return nil
		}
	}
	return ErrUnknownBucket
}

func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func btoi(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}
