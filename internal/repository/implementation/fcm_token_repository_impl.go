package implementation

import (
	"context"
	"errors"

	"dating-app-be/internal/entity"
	"dating-app-be/internal/mapper"
	"dating-app-be/internal/model"
	"dating-app-be/internal/repository/contract"
	"dating-app-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FcmTokenRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FcmTokenMapper
}

func NewFcmTokenRepository(db *gorm.DB) contract.FcmTokenRepository {
	return &FcmTokenRepositoryImpl{
		db:     db,
		mapper: mapper.NewFcmTokenMapper(),
	}
}

func (r *FcmTokenRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Save is idempotent per token string: re-registering an existing token keeps
// one row, reassigned to the given user.
func (r *FcmTokenRepositoryImpl) Save(ctx context.Context, token *entity.FcmToken) error {
	m := r.mapper.ToModel(token)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*token = *r.mapper.ToEntity(m)
	return nil
}

func (r *FcmTokenRepositoryImpl) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&model.FcmToken{}).Error
}

func (r *FcmTokenRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FcmToken, error) {
	var m model.FcmToken
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FcmTokenRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FcmToken, error) {
	var models []*model.FcmToken
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.FcmToken{}), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
