package contract

import (
	"context"

	"dating-app-be/internal/entity"
	"dating-app-be/internal/repository/specification"
)

type ChatRoomRepository interface {
	Create(ctx context.Context, room *entity.ChatRoom) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatRoom, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatRoom, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
