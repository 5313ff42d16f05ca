package services

import (
	"context"
	"fmt"

	"github.com/Ayam7273/Eventmories/internal/repositories"
)

func requireMember(ctx context.Context, members repositories.FeedMemberRepository, feedID, userID uint) error {
	ok, err := members.IsMember(ctx, feedID, userID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if !ok {
		return ErrNotMember
	}
	return nil
}
