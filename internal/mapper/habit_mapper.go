package mapper

import (
	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/model"
)

type HabitMapper struct{}

func NewHabitMapper() *HabitMapper {
	return &HabitMapper{}
}

func (m *HabitMapper) ToEntity(h *model.Habit) *entity.Habit {
	if h == nil {
		return nil
	}
	return &entity.Habit{
		Id:               h.Id,
		UserId:           h.UserId,
		Name:             h.Name,
		Color:            h.Color,
		Frequency:        entity.HabitFrequency(h.Frequency),
		HabitType:        h.HabitType,
		Category:         h.Category,
		IsActive:         h.IsActive,
		IsArchived:       h.IsArchived,
		CurrentStreak:    h.CurrentStreak,
		LongestStreak:    h.LongestStreak,
		TotalCompletions: h.TotalCompletions,
		CreatedAt:        h.CreatedAt,
	}
}

func (m *HabitMapper) ToModel(h *entity.Habit) *model.Habit {
	if h == nil {
		return nil
	}
	return &model.Habit{
		Id:               h.Id,
		UserId:           h.UserId,
		Name:             h.Name,
		Color:            h.Color,
		Frequency:        string(h.Frequency),
		HabitType:        h.HabitType,
		Category:         h.Category,
		IsActive:         h.IsActive,
		IsArchived:       h.IsArchived,
		CurrentStreak:    h.CurrentStreak,
		LongestStreak:    h.LongestStreak,
		TotalCompletions: h.TotalCompletions,
		CreatedAt:        h.CreatedAt,
	}
}

func (m *HabitMapper) ToEntities(models []*model.Habit) []*entity.Habit {
	entities := make([]*entity.Habit, 0, len(models))
	for _, h := range models {
		entities = append(entities, m.ToEntity(h))
	}
	return entities
}

func (m *HabitMapper) WithOwnerToEntities(rows []*model.HabitWithOwnerRow) []*entity.HabitWithOwner {
	entities := make([]*entity.HabitWithOwner, 0, len(rows))
	for _, r := range rows {
		entities = append(entities, &entity.HabitWithOwner{
			Habit:     *m.ToEntity(&r.Habit),
			UserName:  r.UserName,
			UserEmail: r.UserEmail,
		})
	}
	return entities
}

func (m *HabitMapper) LogToEntity(l *model.HabitLog) *entity.HabitLog {
	if l == nil {
		return nil
	}
	return &entity.HabitLog{
		Id:        l.Id,
		HabitId:   l.HabitId,
		UserId:    l.UserId,
		Date:      l.Date,
		Completed: l.Completed,
		Value:     l.Value,
		Notes:     l.Notes,
		CreatedAt: l.CreatedAt,
	}
}

func (m *HabitMapper) LogToModel(l *entity.HabitLog) *model.HabitLog {
	if l == nil {
		return nil
	}
	return &model.HabitLog{
		Id:        l.Id,
		HabitId:   l.HabitId,
		UserId:    l.UserId,
		Date:      l.Date,
		Completed: l.Completed,
		Value:     l.Value,
		Notes:     l.Notes,
		CreatedAt: l.CreatedAt,
	}
}

func (m *HabitMapper) LogsWithOwnerToEntities(rows []*model.HabitLogWithOwnerRow) []*entity.HabitLogWithOwner {
	entities := make([]*entity.HabitLogWithOwner, 0, len(rows))
	for _, r := range rows {
		entities = append(entities, &entity.HabitLogWithOwner{
			HabitLog:  *m.LogToEntity(&r.HabitLog),
			HabitName: r.HabitName,
			UserName:  r.UserName,
			UserEmail: r.UserEmail,
		})
	}
	return entities
}
