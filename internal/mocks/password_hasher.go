package mocks

import "github.com/stretchr/testify/mock"

type PasswordHasher struct {
	mock.Mock
}

func NewPasswordHasher(t testingT) *PasswordHasher {
	m := &PasswordHasher{}
	register(&m.Mock, t)
	return m
}

func (m *PasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Compare(hash, password string) error {
	return m.Called(hash, password).Error(0)
}
