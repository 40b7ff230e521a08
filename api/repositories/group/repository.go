package repositories

import (
	"context"
	"fmt"

	"tourneyhub/pkg/database/models"

	"gorm.io/gorm"
)

// GroupRepository is the public interface for the group memberships.
type GroupRepository interface {
	IsMember(ctx context.Context, groupId uint, userId uint) (bool, error)
	GetMemberIds(ctx context.Context, groupId uint) ([]uint, error)
}

// groupRepository repository structure.
type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a group repository.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

// IsMember reports whether the user is a accepted member or the creator of the group.
func (gr *groupRepository) IsMember(ctx context.Context, groupId uint, userId uint) (bool, error) {
	var isMember bool
	err := gr.db.WithContext(ctx).Raw(`
		SELECT EXISTS (
			SELECT 1 FROM group_members WHERE group_id = ? AND user_id = ? AND status = ?
		) OR EXISTS (
			SELECT 1 FROM groups WHERE id = ? AND creator_id = ?
		)`,
		groupId, userId, models.MemberAccepted, groupId, userId,
	).Scan(&isMember).Error
	if err != nil {
		return false, fmt.Errorf("couldn't check the membership on group %d: %w", groupId, err)
	}

	return isMember, nil
}

// GetMemberIds returns the accepted members and the creator of the group, without duplicates.
func (gr *groupRepository) GetMemberIds(ctx context.Context, groupId uint) ([]uint, error) {
	ids := []uint{}
	err := gr.db.WithContext(ctx).Raw(`
		SELECT user_id FROM group_members WHERE group_id = ? AND status = ?
		UNION
		SELECT creator_id FROM groups WHERE id = ?
		ORDER BY 1`,
		groupId, models.MemberAccepted, groupId,
	).Scan(&ids).Error
	if err != nil {
		return nil, fmt.Errorf("couldn't get the members of group %d: %w", groupId, err)
	}

	return ids, nil
}
