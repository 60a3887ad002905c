package mapper

import (
	"dating-app-be/internal/entity"
	"dating-app-be/internal/model"
)

type MatchMapper struct{}

func NewMatchMapper() *MatchMapper {
	return &MatchMapper{}
}

func (m *MatchMapper) ToEntity(mm *model.Match) *entity.Match {
	if mm == nil {
		return nil
	}
	return &entity.Match{
		Id:            mm.Id,
		FromProfileId: mm.FromProfileId,
		ToProfileId:   mm.ToProfileId,
		Action:        entity.MatchAction(mm.Action),
		IsMatched:     mm.IsMatched,
		CreatedAt:     mm.CreatedAt,
	}
}

func (m *MatchMapper) ToModel(e *entity.Match) *model.Match {
	if e == nil {
		return nil
	}
	return &model.Match{
		Id:            e.Id,
		FromProfileId: e.FromProfileId,
		ToProfileId:   e.ToProfileId,
		Action:        string(e.Action),
		IsMatched:     e.IsMatched,
		CreatedAt:     e.CreatedAt,
	}
}

func (m *MatchMapper) ToEntities(models []*model.Match) []*entity.Match {
	entities := make([]*entity.Match, 0, len(models))
	for _, mm := range models {
		entities = append(entities, m.ToEntity(mm))
	}
	return entities
}
