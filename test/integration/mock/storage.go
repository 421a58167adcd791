package mock

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/property-ledger/backend/internal/application/adapter"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

type storedObject struct {
	data        []byte
	contentType string
	modified    time.Time
}

// Storage is an in-memory object store used by the integration suite in
// place of MinIO.
type Storage struct {
	mu      sync.RWMutex
	objects map[string]storedObject
}

func NewStorage() *Storage {
	return &Storage{objects: map[string]storedObject{}}
}

func (s *Storage) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = storedObject{data: data, contentType: contentType, modified: time.Now().UTC()}
	return nil
}

func (s *Storage) Get(ctx context.Context, key string) (io.ReadCloser, *adapter.ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, nil, domainerror.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), s.info(key, obj), nil
}

func (s *Storage) Stat(ctx context.Context, key string) (*adapter.ObjectInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, domainerror.ErrObjectNotFound
	}
	return s.info(key, obj), nil
}

func (s *Storage) Copy(ctx context.Context, srcKey, dstKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[srcKey]
	if !ok {
		return domainerror.ErrObjectNotFound
	}
	dup := make([]byte, len(obj.data))
	copy(dup, obj.data)
	s.objects[dstKey] = storedObject{data: dup, contentType: obj.contentType, modified: time.Now().UTC()}
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *Storage) PublicURL(key string) string {
	return "http://storage.test/" + key
}

// Clear drops every stored object. Called between scenarios.
func (s *Storage) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = map[string]storedObject{}
}

// Len reports the number of stored objects.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *Storage) info(key string, obj storedObject) *adapter.ObjectInfo {
	return &adapter.ObjectInfo{
		Key:          key,
		SizeBytes:    int64(len(obj.data)),
		ContentType:  obj.contentType,
		LastModified: obj.modified,
	}
}
