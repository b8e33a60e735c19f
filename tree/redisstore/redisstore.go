/*
Package redisstore provides a Store that keeps grown trees in a Redis
database, serialized as JSON.
*/
package redisstore

import (
	"context"
	"fmt"

	"github.com/khmariem/id3/tree"
	treejson "github.com/khmariem/id3/tree/json"
	"github.com/pkg/errors"
	"gopkg.in/redis.v5"
)

/*
TreeEncodeDecoder is an interface for objects
that allow encoding trees into slices of
bytes and decoding them back to trees.
*/
type TreeEncodeDecoder interface {

	//Encode receives a *tree.Tree
	//and returns a slice of bytes with the tree
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*tree.Tree) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *tree.Tree decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*tree.Tree, error)
}

// Store keeps trees under keys with a common prefix on a redis DB
type Store struct {
	rc      *redis.Client
	prefix  string
	tencdec TreeEncodeDecoder
}

type jsonEncodeDecoder struct{}

func (jsonEncodeDecoder) Encode(t *tree.Tree) ([]byte, error) {
	return treejson.Marshal(t)
}

func (jsonEncodeDecoder) Decode(data []byte) (*tree.Tree, error) {
	return treejson.Unmarshal(data)
}

// JSONEncodeDecoder returns a TreeEncodeDecoder using the tree/json format
func JSONEncodeDecoder() TreeEncodeDecoder {
	return jsonEncodeDecoder{}
}

// New builds a Store backed by a redis DB. A nil TreeEncodeDecoder
// stands for JSONEncodeDecoder().
func New(rc *redis.Client, prefix string, tencdec TreeEncodeDecoder) *Store {
	if tencdec == nil {
		tencdec = JSONEncodeDecoder()
	}
	return &Store{rc, prefix, tencdec}
}

// Save takes an id and a tree and stores the tree under that id, replacing
// whatever was stored there.
func (rs *Store) Save(ctx context.Context, id string, t *tree.Tree) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	redisID := rs.keyFor(id)
	data, err := rs.tencdec.Encode(t)
	if err != nil {
		return errors.Wrapf(err, "storing tree %q: encoding tree", redisID)
	}
	_, err = rs.rc.Set(redisID, data, 0).Result()
	if err != nil {
		return errors.Wrapf(err, "storing tree %q in redis", redisID)
	}
	return nil
}

// Load takes an id and returns the tree stored under it, nil if there is
// none, or an error if the store cannot be queried.
func (rs *Store) Load(ctx context.Context, id string) (*tree.Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	redisID := rs.keyFor(id)
	data, err := rs.rc.Get(redisID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving tree %q", redisID)
	}
	t, err := rs.tencdec.Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving tree %q: decoding %q", redisID, data)
	}
	return t, nil
}

// Delete takes an id and removes the tree stored under it, if any
func (rs *Store) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	redisID := rs.keyFor(id)
	_, err := rs.rc.Del(redisID).Result()
	if err != nil {
		return errors.Wrapf(err, "deleting tree %q from redis", redisID)
	}
	return nil
}

func (rs *Store) keyFor(id string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, id)
}
