package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusPending(t *testing.T) {
	assert.True(t, StatusEmpty.Pending())
	assert.True(t, StatusMaybe.Pending())
	assert.True(t, StatusUnknown.Pending())

	assert.False(t, StatusYes.Pending())
	assert.False(t, StatusNo.Pending())
}
