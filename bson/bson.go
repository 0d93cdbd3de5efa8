// Package bson provides a BSON codec for mapping snapshots.
package bson

import (
	"github.com/zoobzio/pgmap"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonCodec implements pgmap.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() pgmap.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}
