package contract

import (
	"context"

	"dating-app-be/internal/entity"
	"dating-app-be/internal/repository/specification"
)

type FcmTokenRepository interface {
	Save(ctx context.Context, token *entity.FcmToken) error
	DeleteByToken(ctx context.Context, token string) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FcmToken, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FcmToken, error)
}
