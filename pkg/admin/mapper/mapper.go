package mapper

import (
	"habit-tracker-be/internal/dto"
	"habit-tracker-be/internal/entity"
)

// FlagToResponse converts a flag entity to its response DTO
func FlagToResponse(f *entity.FeatureFlag) *dto.FeatureFlagResponse {
	if f == nil {
		return nil
	}
	return &dto.FeatureFlagResponse{
		Id:          f.Id,
		Key:         f.Key,
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		Enabled:     f.Enabled,
		Metadata:    f.Metadata,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func FlagsToResponse(flags []*entity.FeatureFlag) []*dto.FeatureFlagResponse {
	res := make([]*dto.FeatureFlagResponse, 0, len(flags))
	for _, f := range flags {
		res = append(res, FlagToResponse(f))
	}
	return res
}

func AuditEntryToResponse(e *entity.FeatureFlagAuditEntry) *dto.AuditEntryResponse {
	if e == nil {
		return nil
	}
	changes := e.Changes
	if changes == nil {
		changes = map[string]interface{}{}
	}
	return &dto.AuditEntryResponse{
		Id:          e.Id,
		FlagKey:     e.FlagKey,
		Action:      string(e.Action),
		Changes:     changes,
		PerformedBy: e.PerformedBy,
		CreatedAt:   e.CreatedAt,
	}
}

func AuditEntriesToResponse(entries []*entity.FeatureFlagAuditEntry) []*dto.AuditEntryResponse {
	res := make([]*dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, AuditEntryToResponse(e))
	}
	return res
}

// UserSummaryToResponse converts a listed user with its habit counts
func UserSummaryToResponse(u *entity.UserSummary) *dto.UserSummaryResponse {
	if u == nil {
		return nil
	}
	return &dto.UserSummaryResponse{
		Id:        u.Id,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		Timezone:  u.Timezone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		Count: dto.UserCountResponse{
			Habits:    u.HabitCount,
			HabitLogs: u.HabitLogCount,
		},
	}
}

func UserSummariesToResponse(users []*entity.UserSummary) []*dto.UserSummaryResponse {
	res := make([]*dto.UserSummaryResponse, 0, len(users))
	for _, u := range users {
		res = append(res, UserSummaryToResponse(u))
	}
	return res
}

func UserToRoleResponse(u *entity.User) *dto.UserRoleResponse {
	if u == nil {
		return nil
	}
	return &dto.UserRoleResponse{
		Id:        u.Id,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

// UserToDetailResponse assembles the admin view of a single user
func UserToDetailResponse(u *entity.User, counts *entity.UserCounts, habits []*entity.Habit, books []*entity.Book, challenges []*entity.Challenge) *dto.UserDetailResponse {
	if u == nil {
		return nil
	}
	if counts == nil {
		counts = &entity.UserCounts{}
	}
	milestones, bookCount, challengeCount := counts.Milestones, counts.Books, counts.Challenges

	res := &dto.UserDetailResponse{
		UserSummaryResponse: dto.UserSummaryResponse{
			Id:        u.Id,
			Name:      u.Name,
			Email:     u.Email,
			IsAdmin:   u.IsAdmin,
			Timezone:  u.Timezone,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
			Count: dto.UserCountResponse{
				Habits:     counts.Habits,
				HabitLogs:  counts.HabitLogs,
				Milestones: &milestones,
				Books:      &bookCount,
				Challenges: &challengeCount,
			},
		},
		Habits:     make([]*dto.HabitSummaryResponse, 0, len(habits)),
		Books:      make([]*dto.BookSummaryResponse, 0, len(books)),
		Challenges: make([]*dto.ChallengeSummaryResponse, 0, len(challenges)),
	}

	for _, h := range habits {
		res.Habits = append(res.Habits, HabitToSummaryResponse(h))
	}
	for _, b := range books {
		res.Books = append(res.Books, &dto.BookSummaryResponse{
			Id:        b.Id,
			Title:     b.Title,
			Author:    b.Author,
			Status:    b.Status,
			Rating:    b.Rating,
			CreatedAt: b.CreatedAt,
		})
	}
	for _, c := range challenges {
		res.Challenges = append(res.Challenges, &dto.ChallengeSummaryResponse{
			Id:             c.Id,
			Name:           c.Name,
			Status:         c.Status,
			Duration:       c.Duration,
			CompletionRate: c.CompletionRate,
			StartDate:      c.StartDate,
			EndDate:        c.EndDate,
			CreatedAt:      c.CreatedAt,
		})
	}
	return res
}

func HabitToSummaryResponse(h *entity.Habit) *dto.HabitSummaryResponse {
	if h == nil {
		return nil
	}
	return &dto.HabitSummaryResponse{
		Id:               h.Id,
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

// SessionToResponse omits the token hash
func SessionToResponse(s *entity.Session) *dto.SessionResponse {
	if s == nil {
		return nil
	}
	res := &dto.SessionResponse{
		Id:        s.Id,
		UserId:    s.UserId,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	}
	if s.User != nil {
		res.User = &dto.SessionUserResponse{
			Id:    s.User.Id,
			Name:  s.User.Name,
			Email: s.User.Email,
		}
	}
	return res
}

func SessionsToResponse(sessions []*entity.Session) []*dto.SessionResponse {
	res := make([]*dto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		res = append(res, SessionToResponse(s))
	}
	return res
}
