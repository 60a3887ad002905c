package contract

import (
	"context"

	"dating-app-be/internal/entity"
	"dating-app-be/internal/repository/specification"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	Update(ctx context.Context, profile *entity.Profile) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Profile, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Profile, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
