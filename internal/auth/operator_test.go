package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperator_Verify(t *testing.T) {
	op, err := NewOperator("admin", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin", op.Username())

	assert.NoError(t, op.Verify("admin", "s3cret"))
	assert.ErrorIs(t, op.Verify("admin", "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, op.Verify("root", "s3cret"), ErrInvalidCredentials)

	var missing *Operator
	assert.ErrorIs(t, missing.Verify("admin", "s3cret"), ErrOperatorNotConfigured)
}

func TestNewOperator_RequiresCredentials(t *testing.T) {
	_, err := NewOperator("", "x")
	assert.ErrorIs(t, err, ErrOperatorNotConfigured)
	_, err = NewOperator("admin", "")
	assert.ErrorIs(t, err, ErrOperatorNotConfigured)
}
