package storage

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"sync"
)

// Memory keeps objects in process. It backs tests and the "memory" driver.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

func NewMemory() *Memory {
	return &Memory{objects: make(map[string]memoryObject)}
}

func (m *Memory) Put(ctx context.Context, key string, r io.Reader, opts PutOptions) (Object, error) {
	if err := ctx.Err(); err != nil {
		return Object{}, err
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return Object{}, err
	}

	m.mu.Lock()
	m.objects[key] = memoryObject{data: buf.Bytes(), contentType: opts.ContentType}
	m.mu.Unlock()

	sum := md5.Sum(buf.Bytes())
	return Object{Key: key, Size: int64(buf.Len()), ContentType: opts.ContentType, ETag: hex.EncodeToString(sum[:])}, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Stat(_ context.Context, key string) (Object, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return Object{}, ErrObjectNotFound
	}

	sum := md5.Sum(obj.data)
	return Object{Key: key, Size: int64(len(obj.data)), ContentType: obj.contentType, ETag: hex.EncodeToString(sum[:])}, nil
}

func (m *Memory) Close() error { return nil }
