package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/tastebite-server/internal/model"
)

func TestMapError(t *testing.T) {
	other := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), want: model.ErrNotFound},
		{name: "duplicate username", err: &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}, want: model.ErrUsernameTaken},
		{name: "duplicate email", err: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, want: model.ErrEmailTaken},
		{name: "other unique violation", err: &pgconn.PgError{Code: "23505", ConstraintName: "refresh_tokens_jti_key"}},
		{name: "check violation", err: &pgconn.PgError{Code: "23514"}},
		{name: "unknown", err: other, want: other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err)
			if tt.want == nil {
				require.Equal(t, tt.err, got)
				return
			}
			var wantVerrs model.ValidationErrors
			if errors.As(tt.want, &wantVerrs) {
				var gotVerrs model.ValidationErrors
				require.ErrorAs(t, got, &gotVerrs)
				assert.Equal(t, wantVerrs, gotVerrs)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestNewRepositories(t *testing.T) {
	tx := &Tx{}
	assert.NotNil(t, tx.Users())
	assert.NotNil(t, tx.Recipes())
	assert.NotNil(t, tx.Favorites())
	assert.NotNil(t, tx.RefreshTokens())
}

func TestTx_RollbackAfterCommitIsNoop(t *testing.T) {
	tx := &Tx{committed: true}
	require.NoError(t, tx.Rollback(t.Context()))
}

func TestNonNil(t *testing.T) {
	assert.Equal(t, []string{}, nonNil(nil))
	assert.Equal(t, []string{"a"}, nonNil([]string{"a"}))
}
