package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StatusNew, StatusInProgress, true},
		{StatusNew, StatusScrap, false},
		{StatusNew, StatusRepaired, false},
		{StatusInProgress, StatusRepaired, true},
		{StatusInProgress, StatusScrap, true},
		{StatusRepaired, StatusInProgress, false},
		{StatusScrap, StatusNew, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}
