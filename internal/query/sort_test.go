package query

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/gymdesk/internal/model"
)

func TestSort_ByNameCaseInsensitive(t *testing.T) {
	members := []model.Member{{ID: "1", Name: "bob"}, {ID: "2", Name: "Alice"}, {ID: "3", Name: "carl"}}
	got, err := Sort(members, MemberSorts, "name", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1", "3"}, ids(got, memberID))
	assert.Equal(t, "1", members[0].ID, "input must not be reordered")
}

func TestSort_StableInBothDirections(t *testing.T) {
	members := []model.Member{
		{ID: "1", MembershipStatus: model.StatusActive},
		{ID: "2", MembershipStatus: model.StatusExpired},
		{ID: "3", MembershipStatus: model.StatusActive},
	}

	asc, err := Sort(members, MemberSorts, "status", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3", "2"}, ids(asc, memberID))

	desc, err := Sort(members, MemberSorts, "status", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1", "3"}, ids(desc, memberID))
}

func TestSort_Schedule(t *testing.T) {
	classes := []model.GymClass{
		{ID: "late", Date: model.NewDate(2026, 1, 2), StartTime: model.NewClock(9, 0)},
		{ID: "evening", Date: model.NewDate(2026, 1, 1), StartTime: model.NewClock(19, 0)},
		{ID: "morning", Date: model.NewDate(2026, 1, 1), StartTime: model.NewClock(7, 0)},
	}
	got, err := Sort(classes, ClassSorts, "schedule", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"morning", "evening", "late"}, ids(got, classID))
}

func TestSort_UnknownColumn(t *testing.T) {
	_, err := Sort(sampleMembers(), MemberSorts, "shoe-size", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSortColumn))
}

func TestSort_EmptyColumnKeepsOrder(t *testing.T) {
	members := sampleMembers()
	got, err := Sort(members, MemberSorts, "", true)
	require.NoError(t, err)
	assert.Equal(t, members, got)
}
