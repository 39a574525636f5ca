package bazi

import "github.com/sensa-ai-tech/OATH/internal/domain"

// changshengOffset сдвиг индекса ветви дня до стадии 长生 (0 长生 ... 11 养)
var changshengOffset = map[domain.Stem]int{
	domain.StemJia:  1,
	domain.StemBing: 10,
	domain.StemWu:   10,
	domain.StemGeng: 7,
	domain.StemRen:  4,
	domain.StemYi:   6,
	domain.StemDing: 9,
	domain.StemJi:   9,
	domain.StemXin:  0,
	domain.StemGui:  3,
}

// lifeStage один и тот же прямой отсчёт для ян и инь стволов
func lifeStage(stem domain.Stem, branch domain.Branch) int {
	return (changshengOffset[stem] + branch.Index()) % 12
}

// strengthOf 长生 冠带 临官 帝旺 - сильный; 沐浴 胎 墓 养 - средний; остальные - слабый
func strengthOf(stage int) domain.Strength {
	switch stage {
	case 0, 2, 3, 4:
		return domain.StrengthStrong
	case 1, 8, 10, 11:
		return domain.StrengthModerate
	default:
		return domain.StrengthWeak
	}
}

func analyzeDayMaster(stem domain.Stem, branch domain.Branch) domain.DayMasterAnalysis {
	el := stem.Element()
	return domain.DayMasterAnalysis{
		DayMaster:           stem,
		Element:             el,
		Strength:            strengthOf(lifeStage(stem, branch)),
		FavorableElements:   []domain.Element{el, el.GeneratedBy()},
		UnfavorableElements: []domain.Element{el.Overcomes(), el.OvercomeBy()},
	}
}
