package pgconflict

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/UserRegistry/internal/domain"
)

func TestFromError(t *testing.T) {
	t.Run("email constraint", func(t *testing.T) {
		err := fmt.Errorf("insert user: %w", &pq.Error{Code: "23505", Constraint: EmailConstraint})

		conflict := FromError(err)
		require.NotNil(t, conflict)
		assert.Equal(t, domain.FieldEmail, conflict.Field)
		assert.ErrorIs(t, conflict, domain.ErrConflict)
	})

	t.Run("phone constraint", func(t *testing.T) {
		conflict := FromError(&pq.Error{Code: "23505", Constraint: PhoneConstraint})
		require.NotNil(t, conflict)
		assert.Equal(t, domain.FieldPhoneNo, conflict.Field)
	})

	t.Run("unknown constraint is not a conflict", func(t *testing.T) {
		assert.Nil(t, FromError(&pq.Error{Code: "23505", Constraint: "users_pkey"}))
	})

	t.Run("other postgres error", func(t *testing.T) {
		assert.Nil(t, FromError(&pq.Error{Code: "23502", Constraint: EmailConstraint}))
	})

	t.Run("non postgres error", func(t *testing.T) {
		assert.Nil(t, FromError(errors.New("connection refused")))
		assert.Nil(t, FromError(nil))
	})
}
