package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type TokenManager struct {
	mock.Mock
}

func NewTokenManager(t testingT) *TokenManager {
	m := &TokenManager{}
	register(&m.Mock, t)
	return m
}

func (m *TokenManager) GenerateAccessToken(userID uuid.UUID) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) GenerateRefreshToken(userID uuid.UUID) (string, string, error) {
	args := m.Called(userID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *TokenManager) ParseAccessToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *TokenManager) ParseRefreshToken(token string) (uuid.UUID, string, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.String(1), args.Error(2)
}
