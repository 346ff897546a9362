package network

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errUnknownRequest = errors.New("no collection serves this request")

// MongoSource is a Network that answers one request from raw feed records
// stored as documents in a collection.
type MongoSource struct {
	collection *mongo.Collection
	request    Request
}

func NewMongoSource(collection *mongo.Collection, request Request) *MongoSource {
	return &MongoSource{collection: collection, request: request}
}

// ConnectMongoSource connects to uri and serves request from the
// "locations" collection of database.
func ConnectMongoSource(ctx context.Context, uri, database string, request Request) (*MongoSource, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if derr := client.Disconnect(disconnectCtx); derr != nil {
			log.Printf("Failed to disconnect from MongoDB: %v", derr)
		}
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	log.Println("Connected to MongoDB")
	return NewMongoSource(client.Database(database).Collection("locations"), request), nil
}

var _ Network = (*MongoSource)(nil)

func (m *MongoSource) Send(ctx context.Context, req Request, out any) error {
	if req != m.request {
		return TransportFailure(errUnknownRequest)
	}

	opts := options.Find().
		SetProjection(bson.M{"_id": 0}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return TransportFailure(err)
	}
	defer cursor.Close(ctx)

	var docs []bson.Raw
	for cursor.Next(ctx) {
		docs = append(docs, append(bson.Raw(nil), cursor.Current...))
	}
	if err := cursor.Err(); err != nil {
		return TransportFailure(err)
	}

	payload, err := documentsJSON(docs)
	if err != nil {
		return DecodingFailed(err)
	}
	if err := decodeInto(payload, out); err != nil {
		return DecodingFailed(err)
	}
	return nil
}

// SeedFromFile loads the feed fixture at path into an empty collection.
// It returns how many documents were inserted.
func (m *MongoSource) SeedFromFile(ctx context.Context, path string) (int, error) {
	count, err := m.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	log.Printf("No locations found in MongoDB, seeding from %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read fixture: %w", err)
	}
	docs, err := feedDocuments(data)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}
	result, err := m.collection.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("seed locations: %w", err)
	}
	log.Printf("Inserted %d locations into MongoDB", len(result.InsertedIDs))
	return len(result.InsertedIDs), nil
}

// feedDocuments converts a JSON array of feed records into documents,
// keeping integers as integers and field order as written.
func feedDocuments(data []byte) ([]any, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	docs := make([]any, 0, len(records))
	for i, raw := range records {
		var doc bson.D
		if err := bson.UnmarshalExtJSON(raw, false, &doc); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// documentsJSON renders documents as a relaxed extended JSON array, which
// for feed records is plain JSON.
func documentsJSON(docs []bson.Raw) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, doc := range docs {
		if i > 0 {
			buf.WriteByte(',')
		}
		out, err := bson.MarshalExtJSON(doc, false, false)
		if err != nil {
			return nil, err
		}
		buf.Write(out)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}
