package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadgeSetAdd(t *testing.T) {
	var badges BadgeSet

	assert.True(t, badges.Add("pemimpin-muda"))
	assert.True(t, badges.Add("relawan"))
	assert.Equal(t, BadgeSet{"pemimpin-muda", "relawan"}, badges)

	// Adding an existing badge reports no change and keeps order.
	assert.False(t, badges.Add("pemimpin-muda"))
	assert.Equal(t, BadgeSet{"pemimpin-muda", "relawan"}, badges)
}

func TestBadgeSetHas(t *testing.T) {
	badges := BadgeSet{"relawan"}
	assert.True(t, badges.Has("relawan"))
	assert.False(t, badges.Has("pemimpin-muda"))

	var empty BadgeSet
	assert.False(t, empty.Has("relawan"))
}
