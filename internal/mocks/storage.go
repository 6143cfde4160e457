package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/tastebite-server/internal/model"
)

type Storage struct {
	mock.Mock
}

func NewStorage(t testingT) *Storage {
	m := &Storage{}
	register(&m.Mock, t)
	return m
}

func (m *Storage) Upload(ctx context.Context, key, contentType string, reader io.Reader, size int64) error {
	return m.Called(ctx, key, contentType, reader, size).Error(0)
}

func (m *Storage) Open(ctx context.Context, key string) (model.Object, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(model.Object), args.Error(1)
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *Storage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
