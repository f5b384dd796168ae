package cnst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppConstants(t *testing.T) {
	assert.Equal(t, "inventory", AppName)
	assert.Equal(t, "apiserver", CommandName)
}
