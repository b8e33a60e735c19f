/*
Package mongoset reads sets from and writes sets to MongoDB collections,
every document of the collection being a row of the set.
*/
package mongoset

import (
	"context"
	"fmt"

	"github.com/khmariem/id3/set"
	"github.com/pkg/errors"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const idField = "_id"

/*
ReadSet takes a context, a MongoDB session, a collection name and the names
of the fields to read and returns a set with a row for every document in
the collection of the session's default database, or an error. Values are
converted to strings. When no names are given, the fields of the first
document are used, in order, ignoring its _id.
*/
func ReadSet(ctx context.Context, session *mgo.Session, collection string, names []string) (*set.Set, error) {
	s := session.Copy()
	defer s.Close()
	q := s.DB("").C(collection).Find(nil)
	if len(names) > 0 {
		q = q.Select(projection(names))
	}
	iter := q.Iter()
	result := &set.Set{Names: names}
	doc := bson.D{}
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			iter.Close()
			return nil, err
		}
		if len(result.Names) == 0 {
			result.Names = fieldNames(doc)
		}
		row, err := rowFor(doc, result.Names)
		if err != nil {
			iter.Close()
			return nil, errors.Wrapf(err, "reading document %d of %s", len(result.Rows)+1, collection)
		}
		result.Rows = append(result.Rows, row)
		doc = bson.D{}
	}
	if err := iter.Close(); err != nil {
		return nil, errors.Wrapf(err, "reading collection %s", collection)
	}
	return result, nil
}

/*
WriteSet takes a context, a MongoDB session, a collection name and a set and
inserts a document for every row of the set in the collection of the
session's default database. It returns the number of documents written or an
error.
*/
func WriteSet(ctx context.Context, session *mgo.Session, collection string, st *set.Set) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(st.Rows) == 0 {
		return 0, nil
	}
	s := session.Copy()
	defer s.Close()
	docs := make([]interface{}, 0, len(st.Rows))
	for _, row := range st.Rows {
		docs = append(docs, documentFor(st.Names, row))
	}
	err := s.DB("").C(collection).Insert(docs...)
	if err != nil {
		return 0, errors.Wrapf(err, "inserting %d documents in %s", len(docs), collection)
	}
	return len(docs), nil
}

func projection(names []string) bson.M {
	p := bson.M{idField: 0}
	for _, n := range names {
		p[n] = 1
	}
	return p
}

func fieldNames(doc bson.D) []string {
	names := make([]string, 0, len(doc))
	for _, e := range doc {
		if e.Name != idField {
			names = append(names, e.Name)
		}
	}
	return names
}

func rowFor(doc bson.D, names []string) ([]string, error) {
	values := doc.Map()
	row := make([]string, 0, len(names))
	for _, n := range names {
		v, ok := values[n]
		if !ok || v == nil {
			return nil, errors.Errorf("no value for %s", n)
		}
		row = append(row, fmt.Sprintf("%v", v))
	}
	return row, nil
}

func documentFor(names []string, row []string) bson.D {
	doc := make(bson.D, 0, len(names))
	for i, n := range names {
		doc = append(doc, bson.DocElem{Name: n, Value: row[i]})
	}
	return doc
}
