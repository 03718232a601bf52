package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestConversationIDIsOrderIndependent(t *testing.T) {
	for i := 0; i < 50; i++ {
		a, b := uuid.New(), uuid.New()
		assert.Equal(t, ConversationID(a, b), ConversationID(b, a))
	}

	a, b := uuid.New(), uuid.New()
	c := uuid.New()
	assert.NotEqual(t, ConversationID(a, b), ConversationID(a, c))
	assert.True(t, strings.Contains(ConversationID(a, b), a.String()))
}

func TestChildAge(t *testing.T) {
	child := &Child{DateOfBirth: time.Date(2023, 3, 20, 0, 0, 0, 0, time.UTC)}

	cases := []struct {
		now    time.Time
		years  int
		months int
	}{
		{time.Date(2023, 3, 20, 0, 0, 0, 0, time.UTC), 0, 0},
		{time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC), 0, 12},
		{time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), 1, 12},
		{time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), 2, 27},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.years, child.Age(tc.now), tc.now.String())
		assert.Equal(t, tc.months, child.AgeInMonths(tc.now), tc.now.String())
	}
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", (&User{FirstName: "Ada", LastName: "Lovelace"}).FullName())
	assert.Equal(t, "Ada", (&User{FirstName: "Ada"}).FullName())
}
