package bazi

import "github.com/sensa-ai-tech/OATH/internal/domain"

// DailyTags стихия дня, десять богов, сила господина дня и оценка стихии
func DailyTags(daily *domain.DailyBaziAnalysis, natal *domain.BaziData) []domain.Tag {
	if daily == nil || natal == nil {
		return nil
	}

	dm := natal.DayMasterAnalysis
	tags := []domain.Tag{
		domain.ElementTag(daily.DayElement),
		domain.TenGodTag(daily.DayRelation),
		domain.StrengthTag(dm.Strength),
	}

	switch {
	case dm.IsFavorable(daily.DayElement):
		tags = append(tags, domain.TagFavorable)
	case dm.IsUnfavorable(daily.DayElement):
		tags = append(tags, domain.TagChallenge)
	}
	return tags
}
