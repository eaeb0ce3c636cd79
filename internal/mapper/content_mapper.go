package mapper

import (
	"habit-tracker-be/internal/entity"
	"habit-tracker-be/internal/model"
)

// ContentMapper maps books, challenges and milestones.
type ContentMapper struct{}

func NewContentMapper() *ContentMapper {
	return &ContentMapper{}
}

func (m *ContentMapper) BookToEntity(b *model.Book) *entity.Book {
	if b == nil {
		return nil
	}
	return &entity.Book{
		Id:        b.Id,
		UserId:    b.UserId,
		Title:     b.Title,
		Author:    b.Author,
		Status:    b.Status,
		Rating:    b.Rating,
		CreatedAt: b.CreatedAt,
	}
}

func (m *ContentMapper) BookToModel(b *entity.Book) *model.Book {
	if b == nil {
		return nil
	}
	return &model.Book{
		Id:        b.Id,
		UserId:    b.UserId,
		Title:     b.Title,
		Author:    b.Author,
		Status:    b.Status,
		Rating:    b.Rating,
		CreatedAt: b.CreatedAt,
	}
}

func (m *ContentMapper) BooksToEntities(models []*model.Book) []*entity.Book {
	entities := make([]*entity.Book, 0, len(models))
	for _, b := range models {
		entities = append(entities, m.BookToEntity(b))
	}
	return entities
}

func (m *ContentMapper) ChallengeToEntity(c *model.Challenge) *entity.Challenge {
	if c == nil {
		return nil
	}
	return &entity.Challenge{
		Id:             c.Id,
		UserId:         c.UserId,
		Name:           c.Name,
		Status:         c.Status,
		Duration:       c.Duration,
		CompletionRate: c.CompletionRate,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *ContentMapper) ChallengeToModel(c *entity.Challenge) *model.Challenge {
	if c == nil {
		return nil
	}
	return &model.Challenge{
		Id:             c.Id,
		UserId:         c.UserId,
		Name:           c.Name,
		Status:         c.Status,
		Duration:       c.Duration,
		CompletionRate: c.CompletionRate,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *ContentMapper) ChallengesToEntities(models []*model.Challenge) []*entity.Challenge {
	entities := make([]*entity.Challenge, 0, len(models))
	for _, c := range models {
		entities = append(entities, m.ChallengeToEntity(c))
	}
	return entities
}

func (m *ContentMapper) MilestoneToModel(ms *entity.Milestone) *model.Milestone {
	if ms == nil {
		return nil
	}
	return &model.Milestone{
		Id:         ms.Id,
		UserId:     ms.UserId,
		HabitId:    ms.HabitId,
		Type:       ms.Type,
		Value:      ms.Value,
		AchievedAt: ms.AchievedAt,
	}
}
