package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBaseEntity(t *testing.T) {
	entity := NewBaseEntity()

	assert.NotEqual(t, entity.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.False(t, entity.CreatedAt.IsZero())
	assert.Equal(t, entity.CreatedAt, entity.UpdatedAt)
}

func TestBaseEntity_Touch(t *testing.T) {
	entity := NewBaseEntity()
	entity.UpdatedAt = entity.UpdatedAt.Add(-time.Minute)
	before := entity.UpdatedAt

	entity.Touch()

	assert.True(t, entity.UpdatedAt.After(before))
	assert.Equal(t, before.Add(time.Minute), entity.CreatedAt)
}
