package mapper

import (
	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/model"
)

type SessionMapper struct {
	users *UserMapper
}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{users: NewUserMapper()}
}

func (m *SessionMapper) ToEntity(t *model.RefreshToken) *entity.Session {
	if t == nil {
		return nil
	}
	return &entity.Session{
		Id:        t.Id,
		UserId:    t.UserId,
		TokenHash: t.TokenHash,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
		User:      m.users.ToEntity(t.User),
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.RefreshToken {
	if s == nil {
		return nil
	}
	return &model.RefreshToken{
		Id:        s.Id,
		UserId:    s.UserId,
		TokenHash: s.TokenHash,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
}

func (m *SessionMapper) ToEntities(models []*model.RefreshToken) []*entity.Session {
	entities := make([]*entity.Session, 0, len(models))
	for _, t := range models {
		entities = append(entities, m.ToEntity(t))
	}
	return entities
}
