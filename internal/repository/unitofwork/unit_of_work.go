package unitofwork

import (
	"context"

	"dating-app-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ProfileRepository() contract.ProfileRepository
	MatchRepository() contract.MatchRepository
	ChatRoomRepository() contract.ChatRoomRepository
	ChatMessageRepository() contract.ChatMessageRepository
	FcmTokenRepository() contract.FcmTokenRepository
}
