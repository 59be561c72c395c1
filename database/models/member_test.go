package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMemberID(t *testing.T) {
	assert.Equal(t, "00000001", FormatMemberID(1))
	assert.Equal(t, "00004217", FormatMemberID(4217))
	assert.Equal(t, "99999999", FormatMemberID(99999999))
}
