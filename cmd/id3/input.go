package main

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/khmariem/id3/feature/yaml"
	"github.com/khmariem/id3/set"
	"github.com/khmariem/id3/set/csv"
	"github.com/khmariem/id3/set/mongoset"
	"github.com/khmariem/id3/set/sqlset"
	"github.com/khmariem/id3/set/sqlset/pgadapter"
	"github.com/khmariem/id3/set/sqlset/sqlite3adapter"
	"github.com/khmariem/id3/tree"
	treejson "github.com/khmariem/id3/tree/json"
	"github.com/khmariem/id3/tree/redisstore"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/redis.v5"
)

// setInput holds the flags shared by commands reading a set
type setInput struct {
	dataInput     string
	table         string
	metadataInput string
	maxDBConns    int
	in            io.Reader
}

// setOutput holds the flags of commands writing a set
type setOutput struct {
	dataOutput string
	table      string
	out        io.Writer
}

// treeStorage holds the flags shared by commands reading or writing trees
type treeStorage struct {
	redisAddr   string
	redisPrefix string
	treeID      string
}

// location kinds for sets
const (
	csvLocation = iota
	sqlite3Location
	postgresLocation
	mongoLocation
)

func locationKind(location string) int {
	switch {
	case strings.HasPrefix(location, "postgresql://") || strings.HasPrefix(location, "postgres://"):
		return postgresLocation
	case strings.HasPrefix(location, "mongodb://"):
		return mongoLocation
	case strings.HasSuffix(location, ".db"):
		return sqlite3Location
	}
	return csvLocation
}

func (si *setInput) addFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&(si.dataInput), "input", "i", "", "path to an input CSV (.csv) or SQLite3 (.db) file, a PostgreSQL DB connection URL or a MongoDB URL (defaults to STDIN, interpreted as CSV)")
	flags.StringVar(&(si.table), "table", "samples", "table or collection holding the set when reading from a database")
	flags.StringVarP(&(si.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the values available for every feature of the set")
	flags.IntVar(&(si.maxDBConns), "max-db-conns", 0, "limit to DB connections opened at a time (defaults to 0: no limit)")
}

func (ts *treeStorage) addFlags(flags *pflag.FlagSet) {
	flags.StringVar(&(ts.redisAddr), "redis-addr", "", "address of a redis server where trees are kept, used along with tree-id")
	flags.StringVar(&(ts.redisPrefix), "redis-prefix", "id3:trees", "prefix of the keys of trees kept in redis")
	flags.StringVar(&(ts.treeID), "tree-id", "", "id of the tree kept in redis")
}

/*
readSet reads the set described by the flags, validating it against the
feature metadata if any was given. If names are given, only those columns
are kept, in that order.
*/
func (si *setInput) readSet(ctx context.Context, rc *rootCmdConfig, names []string) (*set.Set, error) {
	s, err := si.read(ctx, rc, names)
	if err != nil {
		return nil, err
	}
	if len(names) > 0 {
		s, err = s.Select(names)
		if err != nil {
			return nil, err
		}
	}
	if si.metadataInput != "" {
		rc.Logf("Reading features from metadata at %s...", si.metadataInput)
		features, err := yaml.ReadFeaturesFromFile(si.metadataInput)
		if err != nil {
			return nil, err
		}
		if err = s.Validate(features); err != nil {
			return nil, errors.Wrap(err, "validating set against metadata")
		}
	}
	return s, nil
}

func (si *setInput) read(ctx context.Context, rc *rootCmdConfig, names []string) (*set.Set, error) {
	if si.dataInput == "" {
		rc.Logf("Reading set from STDIN...")
		in := si.in
		if in == nil {
			in = os.Stdin
		}
		return csv.ReadSet(in)
	}
	switch locationKind(si.dataInput) {
	case mongoLocation:
		rc.Logf("Connecting to MongoDB to read collection %s...", si.table)
		session, err := mgo.Dial(si.dataInput)
		if err != nil {
			return nil, errors.Wrap(err, "connecting to MongoDB")
		}
		defer session.Close()
		return mongoset.ReadSet(ctx, session, si.table, names)
	case postgresLocation, sqlite3Location:
		rc.Logf("Opening %s to read table %s...", si.dataInput, si.table)
		adapter, err := sqlAdapter(si.dataInput, si.maxDBConns)
		if err != nil {
			return nil, err
		}
		defer adapter.DB().Close()
		return sqlset.ReadSet(ctx, adapter, si.table, names)
	}
	rc.Logf("Opening %s to read set...", si.dataInput)
	return csv.ReadSetFromFilePath(si.dataInput)
}

/*
writeSet writes the set onto the location described by the flags: a CSV
file, a table in an SQLite3 or PostgreSQL database, a MongoDB collection or,
by default, STDOUT as CSV. Rows are appended to existing tables and
collections.
*/
func (so *setOutput) writeSet(ctx context.Context, rc *rootCmdConfig, s *set.Set) error {
	if so.dataOutput == "" {
		rc.Logf("Writing set to STDOUT...")
		out := so.out
		if out == nil {
			out = os.Stdout
		}
		return csv.WriteSet(out, s)
	}
	switch locationKind(so.dataOutput) {
	case mongoLocation:
		rc.Logf("Connecting to MongoDB to write collection %s...", so.table)
		session, err := mgo.Dial(so.dataOutput)
		if err != nil {
			return errors.Wrap(err, "connecting to MongoDB")
		}
		defer session.Close()
		n, err := mongoset.WriteSet(ctx, session, so.table, s)
		rc.Logf("%d documents written", n)
		return err
	case postgresLocation, sqlite3Location:
		rc.Logf("Opening %s to write table %s...", so.dataOutput, so.table)
		adapter, err := sqlAdapter(so.dataOutput, 0)
		if err != nil {
			return err
		}
		defer adapter.DB().Close()
		n, err := sqlset.WriteSet(ctx, adapter, so.table, s)
		rc.Logf("%d rows written", n)
		return err
	}
	rc.Logf("Creating %s to write set...", so.dataOutput)
	f, err := os.Create(so.dataOutput)
	if err != nil {
		return errors.Wrapf(err, "creating %s", so.dataOutput)
	}
	err = csv.WriteSet(f, s)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func sqlAdapter(location string, maxConns int) (sqlset.Adapter, error) {
	if locationKind(location) == sqlite3Location {
		return sqlite3adapter.New(location, maxConns)
	}
	adapter, err := pgadapter.New(location)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		adapter.DB().SetMaxOpenConns(maxConns)
	}
	return adapter, nil
}

func (ts *treeStorage) withRedisStore(f func(*redisstore.Store) error) error {
	rc := redis.NewClient(&redis.Options{Addr: ts.redisAddr})
	defer rc.Close()
	return f(redisstore.New(rc, ts.redisPrefix, nil))
}

// useRedis tells whether trees are kept in redis rather than in files
func (ts *treeStorage) useRedis() bool {
	return ts.redisAddr != "" && ts.treeID != ""
}

func (ts *treeStorage) saveTree(ctx context.Context, t *tree.Tree) error {
	return ts.withRedisStore(func(store *redisstore.Store) error {
		return store.Save(ctx, ts.treeID, t)
	})
}

func (ts *treeStorage) deleteTree(ctx context.Context) error {
	if !ts.useRedis() {
		return errors.New("required redis-addr and tree-id flags were not set")
	}
	return ts.withRedisStore(func(store *redisstore.Store) error {
		return store.Delete(ctx, ts.treeID)
	})
}

func (ts *treeStorage) loadTree(ctx context.Context, filepath string) (*tree.Tree, error) {
	if ts.useRedis() {
		var t *tree.Tree
		err := ts.withRedisStore(func(store *redisstore.Store) error {
			var err error
			t, err = store.Load(ctx, ts.treeID)
			return err
		})
		if err != nil {
			return nil, err
		}
		if t == nil {
			return nil, errors.Errorf("no tree %s in redis at %s", ts.treeID, ts.redisAddr)
		}
		return t, nil
	}
	if filepath == "" {
		return nil, errors.New("required tree flag was not set")
	}
	f, err := os.Open(filepath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading tree in JSON from %s", filepath)
	}
	defer f.Close()
	t, err := treejson.ReadJSONTree(f)
	if err != nil {
		err = errors.Wrapf(err, "parsing tree in JSON from %s", filepath)
	}
	return t, err
}
