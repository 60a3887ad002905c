package mapper

import (
	"dating-app-be/internal/entity"
	"dating-app-be/internal/model"
)

type FcmTokenMapper struct{}

func NewFcmTokenMapper() *FcmTokenMapper {
	return &FcmTokenMapper{}
}

func (m *FcmTokenMapper) ToEntity(t *model.FcmToken) *entity.FcmToken {
	if t == nil {
		return nil
	}
	return &entity.FcmToken{
		Id:        t.Id,
		UserId:    t.UserId,
		Token:     t.Token,
		CreatedAt: t.CreatedAt,
	}
}

func (m *FcmTokenMapper) ToModel(t *entity.FcmToken) *model.FcmToken {
	if t == nil {
		return nil
	}
	return &model.FcmToken{
		Id:        t.Id,
		UserId:    t.UserId,
		Token:     t.Token,
		CreatedAt: t.CreatedAt,
	}
}

func (m *FcmTokenMapper) ToEntities(models []*model.FcmToken) []*entity.FcmToken {
	entities := make([]*entity.FcmToken, 0, len(models))
	for _, t := range models {
		entities = append(entities, m.ToEntity(t))
	}
	return entities
}
