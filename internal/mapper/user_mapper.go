package mapper

import (
	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:           u.Id,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		Timezone:     u.Timezone,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	timezone := u.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	return &model.User{
		Id:           u.Id,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		Timezone:     timezone,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(models []*model.User) []*entity.User {
	entities := make([]*entity.User, 0, len(models))
	for _, u := range models {
		entities = append(entities, m.ToEntity(u))
	}
	return entities
}

func (m *UserMapper) ToSummaries(rows []*model.UserSummaryRow) []*entity.UserSummary {
	summaries := make([]*entity.UserSummary, 0, len(rows))
	for _, r := range rows {
		summaries = append(summaries, &entity.UserSummary{
			User:          *m.ToEntity(&r.User),
			HabitCount:    r.HabitCount,
			HabitLogCount: r.HabitLogCount,
		})
	}
	return summaries
}
