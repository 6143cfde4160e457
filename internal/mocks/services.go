package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/tastebite-server/internal/model"
)

type AuthService struct {
	mock.Mock
}

func NewAuthService(t testingT) *AuthService {
	m := &AuthService{}
	register(&m.Mock, t)
	return m
}

func (m *AuthService) SignUp(ctx context.Context, params model.SignUpParams) (model.Session, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *AuthService) Login(ctx context.Context, username, password string) (model.Session, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(model.TokenPair), args.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

type TokenService struct {
	mock.Mock
}

func NewTokenService(t testingT) *TokenService {
	m := &TokenService{}
	register(&m.Mock, t)
	return m
}

func (m *TokenService) GetUserID(ctx context.Context, token string) (uuid.UUID, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

type RecipeService struct {
	mock.Mock
}

func NewRecipeService(t testingT) *RecipeService {
	m := &RecipeService{}
	register(&m.Mock, t)
	return m
}

func (m *RecipeService) List(ctx context.Context, p model.Pagination) (model.Page[model.Recipe], error) {
	args := m.Called(ctx, p)
	return args.Get(0).(model.Page[model.Recipe]), args.Error(1)
}

func (m *RecipeService) ListByOwner(ctx context.Context, callerID uuid.UUID, p model.Pagination) (model.Page[model.Recipe], error) {
	args := m.Called(ctx, callerID, p)
	return args.Get(0).(model.Page[model.Recipe]), args.Error(1)
}

func (m *RecipeService) Get(ctx context.Context, id uuid.UUID) (model.Recipe, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Recipe), args.Error(1)
}

func (m *RecipeService) Create(ctx context.Context, callerID uuid.UUID, fields model.Fields) (model.Recipe, error) {
	args := m.Called(ctx, callerID, fields)
	return args.Get(0).(model.Recipe), args.Error(1)
}

func (m *RecipeService) Update(ctx context.Context, callerID, id uuid.UUID, fields model.Fields) (model.Recipe, error) {
	args := m.Called(ctx, callerID, id, fields)
	return args.Get(0).(model.Recipe), args.Error(1)
}

func (m *RecipeService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	return m.Called(ctx, callerID, id).Error(0)
}

type FavoriteRecipeService struct {
	mock.Mock
}

func NewFavoriteRecipeService(t testingT) *FavoriteRecipeService {
	m := &FavoriteRecipeService{}
	register(&m.Mock, t)
	return m
}

func (m *FavoriteRecipeService) List(ctx context.Context, callerID uuid.UUID, p model.Pagination) (model.Page[model.FavoriteRecipe], error) {
	args := m.Called(ctx, callerID, p)
	return args.Get(0).(model.Page[model.FavoriteRecipe]), args.Error(1)
}

func (m *FavoriteRecipeService) Get(ctx context.Context, callerID, id uuid.UUID) (model.FavoriteRecipe, error) {
	args := m.Called(ctx, callerID, id)
	return args.Get(0).(model.FavoriteRecipe), args.Error(1)
}

func (m *FavoriteRecipeService) Create(ctx context.Context, callerID uuid.UUID, fields model.Fields) (model.FavoriteRecipe, error) {
	args := m.Called(ctx, callerID, fields)
	return args.Get(0).(model.FavoriteRecipe), args.Error(1)
}

func (m *FavoriteRecipeService) Update(ctx context.Context, callerID, id uuid.UUID, fields model.Fields) (model.FavoriteRecipe, error) {
	args := m.Called(ctx, callerID, id, fields)
	return args.Get(0).(model.FavoriteRecipe), args.Error(1)
}

func (m *FavoriteRecipeService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	return m.Called(ctx, callerID, id).Error(0)
}

type UserService struct {
	mock.Mock
}

func NewUserService(t testingT) *UserService {
	m := &UserService{}
	register(&m.Mock, t)
	return m
}

func (m *UserService) ListAll(ctx context.Context, callerID uuid.UUID, p model.Pagination) (model.Page[model.User], error) {
	args := m.Called(ctx, callerID, p)
	return args.Get(0).(model.Page[model.User]), args.Error(1)
}

func (m *UserService) GetSelf(ctx context.Context, callerID uuid.UUID) (model.User, error) {
	args := m.Called(ctx, callerID)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserService) Update(ctx context.Context, callerID, id uuid.UUID, fields model.Fields) (model.User, error) {
	args := m.Called(ctx, callerID, id, fields)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserService) Delete(ctx context.Context, callerID, id uuid.UUID) error {
	return m.Called(ctx, callerID, id).Error(0)
}

type ImageService struct {
	mock.Mock
}

func NewImageService(t testingT) *ImageService {
	m := &ImageService{}
	register(&m.Mock, t)
	return m
}

func (m *ImageService) Upload(ctx context.Context, callerID uuid.UUID, contentType string, r io.Reader, size int64) (string, error) {
	args := m.Called(ctx, callerID, contentType, r, size)
	return args.String(0), args.Error(1)
}

func (m *ImageService) Open(ctx context.Context, ownerID uuid.UUID, name string) (model.Object, error) {
	args := m.Called(ctx, ownerID, name)
	return args.Get(0).(model.Object), args.Error(1)
}

func (m *ImageService) Delete(ctx context.Context, callerID, ownerID uuid.UUID, name string) error {
	return m.Called(ctx, callerID, ownerID, name).Error(0)
}

type Pinger struct {
	mock.Mock
}

func NewPinger(t testingT) *Pinger {
	m := &Pinger{}
	register(&m.Mock, t)
	return m
}

func (m *Pinger) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
