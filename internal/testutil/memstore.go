package testutil

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/tastebite-server/internal/model"
)

var _ model.Transactor = (*MemStore)(nil)

// ErrForeignKey is returned when a row references a missing user.
var ErrForeignKey = errors.New("memstore: foreign key violation")

// MemStore is an in-memory Transactor for service tests. A unit of work
// operates on a snapshot that replaces the committed state on Commit.
type MemStore struct {
	mu        sync.Mutex
	data      *memData
	failures  map[string]error
	Commits   int
	Rollbacks int
}

type memData struct {
	users     map[uuid.UUID]model.User
	recipes   map[uuid.UUID]model.Recipe
	favorites map[uuid.UUID]model.FavoriteRecipe
	tokens    map[string]model.RefreshToken
	clock     time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{
		data: &memData{
			users:     map[uuid.UUID]model.User{},
			recipes:   map[uuid.UUID]model.Recipe{},
			favorites: map[uuid.UUID]model.FavoriteRecipe{},
			tokens:    map[string]model.RefreshToken{},
			clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		failures: map[string]error{},
	}
}

// Fail makes the named operation, e.g. "recipes.Create", return err.
func (s *MemStore) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

func (s *MemStore) failure(op string) error {
	return s.failures[op]
}

func (d *memData) clone() *memData {
	return &memData{
		users:     maps.Clone(d.users),
		recipes:   maps.Clone(d.recipes),
		favorites: maps.Clone(d.favorites),
		tokens:    maps.Clone(d.tokens),
		clock:     d.clock,
	}
}

func (d *memData) tick() time.Time {
	d.clock = d.clock.Add(time.Second)
	return d.clock
}

func (s *MemStore) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure("ping")
}

func (s *MemStore) Begin(context.Context) (model.UnitOfWork, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failure("begin"); err != nil {
		return nil, err
	}
	return &memUoW{store: s, data: s.data.clone()}, nil
}

func (s *MemStore) Users() model.UserStore               { return &memUsers{s: s, d: func() *memData { return s.data }} }
func (s *MemStore) Recipes() model.RecipeStore           { return &memRecipes{s: s, d: func() *memData { return s.data }} }
func (s *MemStore) Favorites() model.FavoriteRecipeStore { return &memFavorites{s: s, d: func() *memData { return s.data }} }
func (s *MemStore) RefreshTokens() model.RefreshTokenStore {
	return &memTokens{s: s, d: func() *memData { return s.data }}
}

// User returns a committed user, for assertions.
func (s *MemStore) User(id uuid.UUID) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.data.users[id]
	return u, ok
}

// RecipeCount returns the number of committed recipes.
func (s *MemStore) RecipeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.recipes)
}

type memUoW struct {
	store *MemStore
	data  *memData
	done  bool
}

func (u *memUoW) get() *memData { return u.data }

func (u *memUoW) Users() model.UserStore               { return &memUsers{s: u.store, d: u.get} }
func (u *memUoW) Recipes() model.RecipeStore           { return &memRecipes{s: u.store, d: u.get} }
func (u *memUoW) Favorites() model.FavoriteRecipeStore { return &memFavorites{s: u.store, d: u.get} }
func (u *memUoW) RefreshTokens() model.RefreshTokenStore {
	return &memTokens{s: u.store, d: u.get}
}

func (u *memUoW) Commit(context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if u.done {
		return errors.New("memstore: transaction closed")
	}
	if err := u.store.failure("commit"); err != nil {
		return err
	}
	u.store.data = u.data
	u.store.Commits++
	u.done = true
	return nil
}

func (u *memUoW) Rollback(context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	if u.done {
		return nil
	}
	u.store.Rollbacks++
	u.done = true
	return nil
}

func paginate[T any](items []T, p model.Pagination) []T {
	start := p.Offset()
	if start >= len(items) {
		return nil
	}
	end := min(start+p.PerPage, len(items))
	return items[start:end]
}

func newestFirst(aTime, bTime time.Time, aID, bID uuid.UUID) int {
	if c := bTime.Compare(aTime); c != 0 {
		return c
	}
	return strings.Compare(aID.String(), bID.String())
}

type memUsers struct {
	s *MemStore
	d func() *memData
}

func (r *memUsers) taken(d *memData, user model.User) error {
	for _, u := range d.users {
		if u.ID == user.ID {
			continue
		}
		if u.Username == user.Username {
			return model.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return model.ErrEmailTaken
		}
	}
	return nil
}

func (r *memUsers) Create(_ context.Context, user model.User) (model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.Create"); err != nil {
		return model.User{}, err
	}
	d := r.d()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	if err := r.taken(d, user); err != nil {
		return model.User{}, err
	}
	user.CreatedAt = d.tick()
	user.UpdatedAt = user.CreatedAt
	d.users[user.ID] = user
	return user, nil
}

func (r *memUsers) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.GetByID"); err != nil {
		return model.User{}, err
	}
	u, ok := r.d().users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (r *memUsers) GetByUsername(_ context.Context, username string) (model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.GetByUsername"); err != nil {
		return model.User{}, err
	}
	for _, u := range r.d().users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (r *memUsers) ExistsByUsername(_ context.Context, username string, excludeID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.d().users {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUsers) ExistsByEmail(_ context.Context, email string, excludeID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.d().users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUsers) Update(_ context.Context, user model.User) (model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.Update"); err != nil {
		return model.User{}, err
	}
	d := r.d()
	old, ok := d.users[user.ID]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	if err := r.taken(d, user); err != nil {
		return model.User{}, err
	}
	user.CreatedAt = old.CreatedAt
	user.UpdatedAt = d.tick()
	d.users[user.ID] = user
	return user, nil
}

// Delete removes the user and everything the user owns.
func (r *memUsers) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.Delete"); err != nil {
		return err
	}
	d := r.d()
	if _, ok := d.users[id]; !ok {
		return model.ErrNotFound
	}
	delete(d.users, id)
	maps.DeleteFunc(d.recipes, func(_ uuid.UUID, v model.Recipe) bool { return v.OwnerID == id })
	maps.DeleteFunc(d.favorites, func(_ uuid.UUID, v model.FavoriteRecipe) bool { return v.OwnerID == id })
	maps.DeleteFunc(d.tokens, func(_ string, v model.RefreshToken) bool { return v.UserID == id })
	return nil
}

func (r *memUsers) List(_ context.Context, p model.Pagination) ([]model.User, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.List"); err != nil {
		return nil, 0, err
	}
	all := slices.Collect(maps.Values(r.d().users))
	slices.SortFunc(all, func(a, b model.User) int { return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) })
	return paginate(all, p), len(all), nil
}

type memRecipes struct {
	s *MemStore
	d func() *memData
}

func (r *memRecipes) withOwner(d *memData, recipe model.Recipe) model.Recipe {
	recipe.OwnerUsername = d.users[recipe.OwnerID].Username
	return recipe
}

func (r *memRecipes) Create(_ context.Context, recipe model.Recipe) (model.Recipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("recipes.Create"); err != nil {
		return model.Recipe{}, err
	}
	d := r.d()
	if _, ok := d.users[recipe.OwnerID]; !ok {
		return model.Recipe{}, ErrForeignKey
	}
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	recipe.CreatedAt = d.tick()
	recipe.UpdatedAt = recipe.CreatedAt
	d.recipes[recipe.ID] = recipe
	return r.withOwner(d, recipe), nil
}

func (r *memRecipes) GetByID(_ context.Context, id uuid.UUID) (model.Recipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("recipes.GetByID"); err != nil {
		return model.Recipe{}, err
	}
	d := r.d()
	recipe, ok := d.recipes[id]
	if !ok {
		return model.Recipe{}, model.ErrNotFound
	}
	return r.withOwner(d, recipe), nil
}

func (r *memRecipes) Update(_ context.Context, recipe model.Recipe) (model.Recipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("recipes.Update"); err != nil {
		return model.Recipe{}, err
	}
	d := r.d()
	old, ok := d.recipes[recipe.ID]
	if !ok {
		return model.Recipe{}, model.ErrNotFound
	}
	recipe.OwnerID = old.OwnerID
	recipe.CreatedAt = old.CreatedAt
	recipe.UpdatedAt = d.tick()
	d.recipes[recipe.ID] = recipe
	return r.withOwner(d, recipe), nil
}

func (r *memRecipes) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("recipes.Delete"); err != nil {
		return err
	}
	d := r.d()
	if _, ok := d.recipes[id]; !ok {
		return model.ErrNotFound
	}
	delete(d.recipes, id)
	return nil
}

func (r *memRecipes) list(filter func(model.Recipe) bool, p model.Pagination) ([]model.Recipe, int) {
	d := r.d()
	var all []model.Recipe
	for _, v := range d.recipes {
		if filter(v) {
			all = append(all, r.withOwner(d, v))
		}
	}
	slices.SortFunc(all, func(a, b model.Recipe) int { return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) })
	return paginate(all, p), len(all)
}

func (r *memRecipes) List(_ context.Context, p model.Pagination) ([]model.Recipe, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("recipes.List"); err != nil {
		return nil, 0, err
	}
	items, total := r.list(func(model.Recipe) bool { return true }, p)
	return items, total, nil
}

func (r *memRecipes) ListByOwner(_ context.Context, ownerID uuid.UUID, p model.Pagination) ([]model.Recipe, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("recipes.ListByOwner"); err != nil {
		return nil, 0, err
	}
	items, total := r.list(func(v model.Recipe) bool { return v.OwnerID == ownerID }, p)
	return items, total, nil
}

type memFavorites struct {
	s *MemStore
	d func() *memData
}

func (r *memFavorites) withOwner(d *memData, fav model.FavoriteRecipe) model.FavoriteRecipe {
	fav.OwnerUsername = d.users[fav.OwnerID].Username
	return fav
}

func (r *memFavorites) Create(_ context.Context, fav model.FavoriteRecipe) (model.FavoriteRecipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("favorites.Create"); err != nil {
		return model.FavoriteRecipe{}, err
	}
	d := r.d()
	if _, ok := d.users[fav.OwnerID]; !ok {
		return model.FavoriteRecipe{}, ErrForeignKey
	}
	if fav.ID == uuid.Nil {
		fav.ID = uuid.New()
	}
	fav.CreatedAt = d.tick()
	fav.UpdatedAt = fav.CreatedAt
	d.favorites[fav.ID] = fav
	return r.withOwner(d, fav), nil
}

func (r *memFavorites) GetByID(_ context.Context, id uuid.UUID) (model.FavoriteRecipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.d()
	fav, ok := d.favorites[id]
	if !ok {
		return model.FavoriteRecipe{}, model.ErrNotFound
	}
	return r.withOwner(d, fav), nil
}

func (r *memFavorites) Update(_ context.Context, fav model.FavoriteRecipe) (model.FavoriteRecipe, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("favorites.Update"); err != nil {
		return model.FavoriteRecipe{}, err
	}
	d := r.d()
	old, ok := d.favorites[fav.ID]
	if !ok {
		return model.FavoriteRecipe{}, model.ErrNotFound
	}
	fav.OwnerID = old.OwnerID
	fav.CreatedAt = old.CreatedAt
	fav.UpdatedAt = d.tick()
	d.favorites[fav.ID] = fav
	return r.withOwner(d, fav), nil
}

func (r *memFavorites) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.d()
	if _, ok := d.favorites[id]; !ok {
		return model.ErrNotFound
	}
	delete(d.favorites, id)
	return nil
}

func (r *memFavorites) ListByOwner(_ context.Context, ownerID uuid.UUID, p model.Pagination) ([]model.FavoriteRecipe, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.d()
	var all []model.FavoriteRecipe
	for _, v := range d.favorites {
		if v.OwnerID == ownerID {
			all = append(all, r.withOwner(d, v))
		}
	}
	slices.SortFunc(all, func(a, b model.FavoriteRecipe) int { return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID) })
	return paginate(all, p), len(all), nil
}

type memTokens struct {
	s *MemStore
	d func() *memData
}

func (r *memTokens) Create(_ context.Context, token model.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("tokens.Create"); err != nil {
		return err
	}
	d := r.d()
	if _, ok := d.users[token.UserID]; !ok {
		return ErrForeignKey
	}
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	token.CreatedAt = d.tick()
	d.tokens[token.JTI] = token
	return nil
}

func (r *memTokens) GetByJTI(_ context.Context, jti string) (model.RefreshToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.d().tokens[jti]
	if !ok {
		return model.RefreshToken{}, model.ErrNotFound
	}
	return t, nil
}

func (r *memTokens) RevokeByJTI(_ context.Context, jti string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("tokens.RevokeByJTI"); err != nil {
		return err
	}
	d := r.d()
	t, ok := d.tokens[jti]
	if !ok || t.RevokedAt != nil {
		return nil
	}
	now := d.tick()
	t.RevokedAt = &now
	d.tokens[jti] = t
	return nil
}

func (r *memTokens) RevokeAllByUser(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d := r.d()
	for jti, t := range d.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			now := d.tick()
			t.RevokedAt = &now
			d.tokens[jti] = t
		}
	}
	return nil
}
