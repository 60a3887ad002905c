package mapper

import (
	"encoding/json"

	"dating-app-be/internal/entity"
	"dating-app-be/internal/model"

	"gorm.io/datatypes"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func (m *ProfileMapper) ToEntity(p *model.Profile) *entity.Profile {
	if p == nil {
		return nil
	}
	return &entity.Profile{
		Id:               p.Id,
		UserId:           p.UserId,
		Nickname:         p.Nickname,
		BirthDate:        p.BirthDate,
		Gender:           entity.Gender(p.Gender),
		Bio:              p.Bio,
		Location:         p.Location,
		ImageUrls:        jsonToStrings(p.ImageUrls),
		Interests:        jsonToStrings(p.Interests),
		MinAgePreference: p.MinAgePreference,
		MaxAgePreference: p.MaxAgePreference,
		MaxDistance:      p.MaxDistance,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (m *ProfileMapper) ToModel(p *entity.Profile) *model.Profile {
	if p == nil {
		return nil
	}
	return &model.Profile{
		Id:               p.Id,
		UserId:           p.UserId,
		Nickname:         p.Nickname,
		BirthDate:        p.BirthDate,
		Gender:           string(p.Gender),
		Bio:              p.Bio,
		Location:         p.Location,
		ImageUrls:        stringsToJSON(p.ImageUrls),
		Interests:        stringsToJSON(p.Interests),
		MinAgePreference: p.MinAgePreference,
		MaxAgePreference: p.MaxAgePreference,
		MaxDistance:      p.MaxDistance,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (m *ProfileMapper) ToEntities(models []*model.Profile) []*entity.Profile {
	entities := make([]*entity.Profile, 0, len(models))
	for _, p := range models {
		entities = append(entities, m.ToEntity(p))
	}
	return entities
}

func jsonToStrings(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return []string{}
	}
	return values
}

func stringsToJSON(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, _ := json.Marshal(values)
	return datatypes.JSON(raw)
}
