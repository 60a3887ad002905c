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
)

type ChatRoomRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatRoomMapper
}

func NewChatRoomRepository(db *gorm.DB) contract.ChatRoomRepository {
	return &ChatRoomRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatRoomMapper(),
	}
}

func (r *ChatRoomRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ChatRoomRepositoryImpl) Create(ctx context.Context, room *entity.ChatRoom) error {
	m := r.mapper.ToModel(room)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*room = *r.mapper.ToEntity(m)
	return nil
}

func (r *ChatRoomRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatRoom, error) {
	var m model.ChatRoom
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatRoom{}), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ChatRoomRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatRoom, error) {
	var models []*model.ChatRoom
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatRoom{}), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ChatRoomRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ChatRoom{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
