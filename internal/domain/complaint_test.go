package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    ComplaintStatus
		to      ComplaintStatus
		allowed bool
	}{
		{StatusPending, StatusInProgress, true},
		{StatusInProgress, StatusResolved, true},
		{StatusPending, StatusResolved, false},
		{StatusInProgress, StatusPending, false},
		{StatusResolved, StatusInProgress, false},
		{StatusResolved, StatusPending, false},
		{StatusResolved, StatusResolved, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestValidCategory(t *testing.T) {
	for _, category := range Categories() {
		assert.True(t, ValidCategory(category))
	}
	assert.False(t, ValidCategory("Plumbing"))
	assert.False(t, ValidCategory(""))
}

func TestValidPriority(t *testing.T) {
	assert.True(t, ValidPriority(PriorityLow))
	assert.True(t, ValidPriority(PriorityMedium))
	assert.True(t, ValidPriority(PriorityHigh))
	assert.False(t, ValidPriority("Urgent"))
}

func TestLocationDisplayNames(t *testing.T) {
	for _, location := range Locations() {
		assert.True(t, ValidLocation(location))
		assert.NotEmpty(t, location.DisplayName())
	}
	assert.Equal(t, "Java Canteen", LocationJavaCanteen.DisplayName())
	assert.False(t, ValidLocation("MOON_BASE"))
}
