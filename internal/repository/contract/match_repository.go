package contract

import (
	"context"

	"dating-app-be/internal/entity"
	"dating-app-be/internal/repository/specification"
)

type MatchRepository interface {
	Create(ctx context.Context, match *entity.Match) error
	Update(ctx context.Context, match *entity.Match) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Match, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Match, error)
	Exists(ctx context.Context, specs ...specification.Specification) (bool, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
