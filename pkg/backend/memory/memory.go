// Package memory provides an in-process implementation of backend.Backend.
// It is used by tests and by dry runs; failures can be injected per operation.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/agentstation/menuseed/pkg/backend"
	"github.com/agentstation/menuseed/pkg/errors"
)

// Op names an operation for failure injection.
type Op string

// Operations that can be made to fail.
const (
	OpListDocuments  Op = "list_documents"
	OpDeleteDocument Op = "delete_document"
	OpCreateDocument Op = "create_document"
	OpListFiles      Op = "list_files"
	OpDeleteFile     Op = "delete_file"
	OpCreateFile     Op = "create_file"
)

// FailFunc decides whether an operation on target fails. target is the
// collection ID for document operations and the file name or ID for files.
type FailFunc func(op Op, target string) error

// Backend stores documents and files in maps keyed by insertion order.
type Backend struct {
	mu          sync.RWMutex
	bucketID    string
	collections map[string]*collection
	files       map[string]stored
	fileOrder   []string
	fail        FailFunc
	calls       map[Op]int
}

type collection struct {
	docs  map[string]backend.Document
	order []string
}

type stored struct {
	file backend.File
	data []byte
}

// Option configures a Backend.
type Option func(*Backend)

// WithBucketID sets the bucket identifier reported by BucketID.
func WithBucketID(id string) Option {
	return func(b *Backend) {
		b.bucketID = id
	}
}

// WithFailures installs a failure injector.
func WithFailures(fn FailFunc) Option {
	return func(b *Backend) {
		b.fail = fn
	}
}

// New creates an empty in-memory backend.
func New(opts ...Option) *Backend {
	b := &Backend{
		bucketID:    "memory",
		collections: make(map[string]*collection),
		files:       make(map[string]stored),
		calls:       make(map[Op]int),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

var _ backend.Backend = (*Backend)(nil)

func (b *Backend) check(ctx context.Context, op Op, target string) error {
	if err := ctx.Err(); err != nil {
		return errors.WrapCanceled(err)
	}
	b.calls[op]++
	if b.fail != nil {
		return b.fail(op, target)
	}
	return nil
}

func (b *Backend) collection(id string) *collection {
	c, ok := b.collections[id]
	if !ok {
		c = &collection{docs: make(map[string]backend.Document)}
		b.collections[id] = c
	}
	return c
}

// ListDocuments implements backend.Documents.
func (b *Backend) ListDocuments(ctx context.Context, collectionID string, limit int) ([]backend.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.check(ctx, OpListDocuments, collectionID); err != nil {
		return nil, err
	}

	c := b.collection(collectionID)
	docs := make([]backend.Document, 0, capacity(limit, len(c.order)))
	for _, id := range c.order {
		if limit > 0 && len(docs) == limit {
			break
		}
		docs = append(docs, c.docs[id])
	}
	return docs, nil
}

// DeleteDocument implements backend.Documents.
func (b *Backend) DeleteDocument(ctx context.Context, collectionID, documentID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.check(ctx, OpDeleteDocument, collectionID); err != nil {
		return err
	}

	c := b.collection(collectionID)
	if _, ok := c.docs[documentID]; !ok {
		return errors.NewNotFoundError("document", documentID)
	}
	delete(c.docs, documentID)
	c.order = remove(c.order, documentID)
	return nil
}

// CreateDocument implements backend.Documents.
func (b *Backend) CreateDocument(ctx context.Context, collectionID, documentID string, data map[string]any) (*backend.Document, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.check(ctx, OpCreateDocument, collectionID); err != nil {
		return nil, err
	}

	c := b.collection(collectionID)
	if _, ok := c.docs[documentID]; ok {
		return nil, errors.WrapResource("create", "document", documentID, errors.ErrAlreadyExists)
	}

	fields := make(map[string]any, len(data))
	for k, v := range data {
		fields[k] = v
	}
	doc := backend.Document{ID: documentID, CollectionID: collectionID, Data: fields}
	c.docs[documentID] = doc
	c.order = append(c.order, documentID)
	return &doc, nil
}

// ListFiles implements backend.Files.
func (b *Backend) ListFiles(ctx context.Context, limit int) ([]backend.File, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.check(ctx, OpListFiles, b.bucketID); err != nil {
		return nil, err
	}

	files := make([]backend.File, 0, capacity(limit, len(b.fileOrder)))
	for _, id := range b.fileOrder {
		if limit > 0 && len(files) == limit {
			break
		}
		files = append(files, b.files[id].file)
	}
	return files, nil
}

// DeleteFile implements backend.Files.
func (b *Backend) DeleteFile(ctx context.Context, fileID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.check(ctx, OpDeleteFile, fileID); err != nil {
		return err
	}

	if _, ok := b.files[fileID]; !ok {
		return errors.NewNotFoundError("file", fileID)
	}
	delete(b.files, fileID)
	b.fileOrder = remove(b.fileOrder, fileID)
	return nil
}

// CreateFile implements backend.Files.
func (b *Backend) CreateFile(ctx context.Context, fileID string, in backend.FileInput) (*backend.File, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.check(ctx, OpCreateFile, in.Name); err != nil {
		return nil, err
	}

	if _, ok := b.files[fileID]; ok {
		return nil, errors.WrapResource("create", "file", fileID, errors.ErrAlreadyExists)
	}
	f := backend.File{
		ID:       fileID,
		BucketID: b.bucketID,
		Name:     in.Name,
		MimeType: in.MimeType,
		Size:     in.Size(),
	}
	b.files[fileID] = stored{file: f, data: append([]byte(nil), in.Data...)}
	b.fileOrder = append(b.fileOrder, fileID)
	return &f, nil
}

// FileViewURL implements backend.Files.
func (b *Backend) FileViewURL(fileID string) string {
	return fmt.Sprintf("memory://%s/files/%s/view", b.bucketID, fileID)
}

// BucketID implements backend.Files.
func (b *Backend) BucketID() string {
	return b.bucketID
}

// Documents returns a snapshot of a collection in insertion order.
func (b *Backend) Documents(collectionID string) []backend.Document {
	b.mu.RLock()
	defer b.mu.RUnlock()

	c, ok := b.collections[collectionID]
	if !ok {
		return nil
	}
	docs := make([]backend.Document, 0, len(c.order))
	for _, id := range c.order {
		docs = append(docs, c.docs[id])
	}
	return docs
}

// Files returns a snapshot of the bucket in insertion order.
func (b *Backend) Files() []backend.File {
	b.mu.RLock()
	defer b.mu.RUnlock()

	files := make([]backend.File, 0, len(b.fileOrder))
	for _, id := range b.fileOrder {
		files = append(files, b.files[id].file)
	}
	return files
}

// FileData returns the stored bytes of a file.
func (b *Backend) FileData(fileID string) ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.files[fileID]
	return s.data, ok
}

// Count returns the number of documents in a collection.
func (b *Backend) Count(collectionID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if c, ok := b.collections[collectionID]; ok {
		return len(c.order)
	}
	return 0
}

// Calls returns how many times op was invoked, including failed calls.
func (b *Backend) Calls(op Op) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.calls[op]
}

// CollectionIDs lists the collections that have been touched, sorted.
func (b *Backend) CollectionIDs() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids := make([]string, 0, len(b.collections))
	for id := range b.collections {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func capacity(limit, n int) int {
	if limit > 0 && limit < n {
		return limit
	}
	return n
}

func remove(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
