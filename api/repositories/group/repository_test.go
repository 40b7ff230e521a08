package repositories

import (
	"context"
	"testing"

	"tourneyhub/internal/testutil"
	"tourneyhub/pkg/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedGroups(t *testing.T, db *gorm.DB) {
	t.Helper()
	testutil.Truncate(t, db, "group_members", "groups", "users")

	for _, u := range []*models.User{
		{ID: 1, Username: "creator"},
		{ID: 2, Username: "accepted"},
		{ID: 3, Username: "pending"},
		{ID: 4, Username: "outsider"},
	} {
		require.NoError(t, db.Create(u).Error)
	}

	require.NoError(t, db.Create(&models.Group{ID: 1, Name: "friends", CreatorID: 1}).Error)
	require.NoError(t, db.Create(&models.GroupMember{GroupID: 1, UserID: 2, Status: models.MemberAccepted}).Error)
	require.NoError(t, db.Create(&models.GroupMember{GroupID: 1, UserID: 3, Status: models.MemberPending}).Error)
	// The creator may also have a membership row.
	require.NoError(t, db.Create(&models.GroupMember{GroupID: 1, UserID: 1, Role: "admin", Status: models.MemberAccepted}).Error)
}

func TestGroupRepository(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	seedGroups(t, db)
	repository := NewGroupRepository(db)
	ctx := context.Background()

	tests := []struct {
		name     string
		groupId  uint
		userId   uint
		expected bool
	}{
		{name: "creator", groupId: 1, userId: 1, expected: true},
		{name: "accepted member", groupId: 1, userId: 2, expected: true},
		{name: "pending member", groupId: 1, userId: 3, expected: false},
		{name: "outsider", groupId: 1, userId: 4, expected: false},
		{name: "missing group", groupId: 9, userId: 1, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isMember, err := repository.IsMember(ctx, tt.groupId, tt.userId)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, isMember)
		})
	}

	ids, err := repository.GetMemberIds(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, ids)

	ids, err = repository.GetMemberIds(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
