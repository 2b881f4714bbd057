package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnums_Valid(t *testing.T) {
	assert.True(t, ServiceType("Polish").Valid())
	assert.False(t, ServiceType("polish").Valid())
	assert.True(t, FlooringType("SPC").Valid())
	assert.False(t, FlooringType("Tile").Valid())
	assert.True(t, PreferredTime("Evening 4-8").Valid())
	assert.False(t, PreferredTime("Night").Valid())
	assert.True(t, Status("completed").Valid())
	assert.False(t, Status("cancelled").Valid())
}
