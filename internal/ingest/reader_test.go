package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory blobstore.Store keeping insertion order.
type memStore struct {
	keys    []string
	objects map[string]string
	listErr error
	getErr  error
	gets    []string
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string]string)}
}

func (m *memStore) put(key, body string) {
	m.keys = append(m.keys, key)
	m.objects[key] = body
}

func (m *memStore) List(ctx context.Context, bucket string) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]string(nil), m.keys...), nil
}

func (m *memStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	m.gets = append(m.gets, key)
	if m.getErr != nil {
		return nil, m.getErr
	}
	body, ok := m.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return []byte(body), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestReader(store *memStore) *Reader {
	return NewReader(store, ReaderConfig{Bucket: "chats"}, discardLogger())
}

const secondaryDoc = `{"messages":[
	{"senderName":"B","text":"hi","timestamp":1700000001000},
	{"senderName":"A","timestamp":1700000002000,"type":"image"},
	{"senderName":"B","text":"bye","timestamp":1700000003000}
]}`

func TestReader_ConcatenatesPrimaryObjects(t *testing.T) {
	store := newMemStore()
	store.put("message_1.json", `{"participants":[],"messages":[
		{"sender_name":"A","timestamp_ms":1700000000000,"content":"one"},
		{"sender_name":"B","timestamp_ms":1700000000500,"content":"two"}
	]}`)
	store.put("message_2.json", `{"messages":[
		{"sender_name":"A","timestamp_ms":1690000000000,"content":"three","reactions":[{"reaction":"x"}]},
		{"sender_name":"B","timestamp_ms":1690000000500,"photos":[{"uri":"p.jpg"}]}
	]}`)
	store.put("X-conversation.json", secondaryDoc)
	store.put("readme.txt", "not json at all")

	exports, err := newTestReader(store).Read(context.Background())
	require.NoError(t, err)

	require.Len(t, exports.Primary, 4)
	require.Len(t, exports.Secondary, 3)

	assert.Equal(t, "one", *exports.Primary[0].Content)
	assert.Equal(t, "three", *exports.Primary[2].Content)
	assert.Nil(t, exports.Primary[3].Content)
	assert.Equal(t, int64(1690000000500), exports.Primary[3].TimestampMS)

	assert.Equal(t, "B", exports.Secondary[0].SenderName)
	assert.Nil(t, exports.Secondary[1].Text)
	assert.NotContains(t, store.gets, "readme.txt")
}

func TestReader_SecondaryMissing(t *testing.T) {
	store := newMemStore()
	store.put("message_1.json", `{"messages":[]}`)

	_, err := newTestReader(store).Read(context.Background())
	require.Error(t, err)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "X", nf.Prefix)
	assert.Equal(t, "chats", nf.Bucket)
	assert.Empty(t, store.gets, "nothing should be fetched when the secondary export is missing")
}

func TestReader_UsesFirstSecondaryObject(t *testing.T) {
	store := newMemStore()
	store.put("X-a.json", `{"messages":[{"senderName":"A","text":"first","timestamp":1}]}`)
	store.put("X-b.json", `{"messages":[{"senderName":"A","text":"second","timestamp":2}]}`)

	exports, err := newTestReader(store).Read(context.Background())
	require.NoError(t, err)
	require.Len(t, exports.Secondary, 1)
	assert.Equal(t, "first", *exports.Secondary[0].Text)
	assert.Empty(t, exports.Primary)
}

func TestReader_CustomPrefixes(t *testing.T) {
	store := newMemStore()
	store.put("fb/inbox.json", `{"messages":[{"sender_name":"A","content":"x","timestamp_ms":1}]}`)
	store.put("ig/export.json", `{"messages":[{"senderName":"B","text":"y","timestamp":2}]}`)

	r := NewReader(store, ReaderConfig{Bucket: "b", PrimaryPrefix: "fb/", SecondaryPrefix: "ig/"}, discardLogger())
	exports, err := r.Read(context.Background())
	require.NoError(t, err)
	assert.Len(t, exports.Primary, 1)
	assert.Len(t, exports.Secondary, 1)
}

func TestReader_MalformedPrimary(t *testing.T) {
	store := newMemStore()
	store.put("message_1.json", `{"messages":[`)
	store.put("X.json", secondaryDoc)

	_, err := newTestReader(store).Read(context.Background())

	var md *MalformedDataError
	require.ErrorAs(t, err, &md)
	assert.Equal(t, "message_1.json", md.Key)
}

func TestReader_SecondaryWithoutMessagesKey(t *testing.T) {
	store := newMemStore()
	store.put("X.json", `{"conversation":[]}`)

	_, err := newTestReader(store).Read(context.Background())

	var md *MalformedDataError
	require.ErrorAs(t, err, &md)
	assert.Equal(t, "X.json", md.Key)
	assert.ErrorIs(t, err, errMissingMessages)
}

func TestReader_ListErrorPropagatesUnchanged(t *testing.T) {
	transport := errors.New("access denied")
	store := newMemStore()
	store.listErr = transport

	_, err := newTestReader(store).Read(context.Background())
	assert.Same(t, transport, err)
}

func TestReader_GetErrorPropagatesUnchanged(t *testing.T) {
	transport := errors.New("connection reset")
	store := newMemStore()
	store.put("message_1.json", `{"messages":[]}`)
	store.put("X.json", secondaryDoc)
	store.getErr = transport

	_, err := newTestReader(store).Read(context.Background())
	assert.Same(t, transport, err)
}

func TestParsePrimary_NullMessages(t *testing.T) {
	_, err := ParsePrimary("message_1.json", []byte(`{"messages":null}`))

	var md *MalformedDataError
	require.ErrorAs(t, err, &md)
}

func TestParsePrimary_EmptyArray(t *testing.T) {
	recs, err := ParsePrimary("message_1.json", []byte(`{"messages":[]}`))
	require.NoError(t, err)
	assert.Empty(t, recs)
}
