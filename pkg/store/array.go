package store

import (
	bolt "go.etcd.io/bbolt"

	. "github.com/tclarray/tclarray/pkg/store/storedefs"
)

// Each array is a nested bucket of the top-level arrays bucket.
const bucketArrays = "arrays"

func init() {
	initDB["initialize array table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketArrays))
		return err
	}
}

func arrayBucket(tx *bolt.Tx, name string) (*bolt.Bucket, error) {
	b := tx.Bucket([]byte(bucketArrays)).Bucket([]byte(name))
	if b == nil {
		return nil, ErrNoArray
	}
	return b, nil
}

// Arrays lists the names of all stored arrays, in byte order.
func (s *dbStore) Arrays() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketArrays)).ForEach(func(k, v []byte) error {
			// Nested buckets have nil values.
			if v == nil {
				names = append(names, string(k))
			}
			return nil
		})
	})
	return names, err
}

// CreateArray creates an empty array if it doesn't exist yet.
func (s *dbStore) CreateArray(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.Bucket([]byte(bucketArrays)).CreateBucketIfNotExists([]byte(name))
		return err
	})
}

// DelArray deletes an array and all its elements.
func (s *dbStore) DelArray(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		err := tx.Bucket([]byte(bucketArrays)).DeleteBucket([]byte(name))
		if err == bolt.ErrBucketNotFound {
			return ErrNoArray
		}
		return err
	})
}

// ArrayLen returns the number of elements of an array.
func (s *dbStore) ArrayLen(name string) (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		b, err := arrayBucket(tx, name)
		if err != nil {
			return err
		}
		n = b.Stats().KeyN
		return nil
	})
	return n, err
}

// ArrayPairs returns all elements of an array, ordered by key.
func (s *dbStore) ArrayPairs(name string) ([]Pair, error) {
	var pairs []Pair
	err := s.db.View(func(tx *bolt.Tx) error {
		b, err := arrayBucket(tx, name)
		if err != nil {
			return err
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			pairs = append(pairs, Pair{Key: string(k), Value: string(v)})
		}
		return nil
	})
	return pairs, err
}

// ArrayGet gets the value of an element.
func (s *dbStore) ArrayGet(name, key string) (string, error) {
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		b, err := arrayBucket(tx, name)
		if err != nil {
			return err
		}
		v := b.Get([]byte(key))
		if v == nil {
			return ErrNoElement
		}
		value = string(v)
		return nil
	})
	return value, err
}

// ArraySet upserts elements in one transaction, creating the array if
// needed.
func (s *dbStore) ArraySet(name string, pairs []Pair) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket([]byte(bucketArrays)).CreateBucketIfNotExists([]byte(name))
		if err != nil {
			return err
		}
		for _, p := range pairs {
			if err := b.Put([]byte(p.Key), []byte(p.Value)); err != nil {
				return err
			}
		}
		return nil
	})
}

// ArrayDel deletes an element.
func (s *dbStore) ArrayDel(name, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := arrayBucket(tx, name)
		if err != nil {
			return err
		}
		if b.Get([]byte(key)) == nil {
			return ErrNoElement
		}
		return b.Delete([]byte(key))
	})
}
