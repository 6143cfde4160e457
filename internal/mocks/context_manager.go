package mocks

import (
	"context"
	"net"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type ContextManager struct {
	mock.Mock
}

func NewContextManager(t testingT) *ContextManager {
	m := &ContextManager{}
	register(&m.Mock, t)
	return m
}

func (m *ContextManager) SetUserIDToContext(ctx context.Context, userID uuid.UUID) context.Context {
	return m.Called(ctx, userID).Get(0).(context.Context)
}

func (m *ContextManager) GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	args := m.Called(ctx)
	return args.Get(0).(uuid.UUID), args.Bool(1)
}

type SecurityLayer struct {
	mock.Mock
}

func NewSecurityLayer(t testingT) *SecurityLayer {
	m := &SecurityLayer{}
	register(&m.Mock, t)
	return m
}

func (m *SecurityLayer) Listen(protocol, addr string) (net.Listener, error) {
	args := m.Called(protocol, addr)
	if ln := args.Get(0); ln != nil {
		return ln.(net.Listener), args.Error(1)
	}
	return nil, args.Error(1)
}
