package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUSDString(t *testing.T) {
	assert.Equal(t, "$18.0000", USD(18).String())
	assert.Equal(t, "$0.0000", USD(0).String())
	assert.Equal(t, "$0.0546", USD(0.05463).String())
}
