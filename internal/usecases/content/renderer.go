package content

import "github.com/sensa-ai-tech/OATH/internal/domain"

var signNames = map[domain.ZodiacSign]string{
	domain.SignAries:       "牡羊座",
	domain.SignTaurus:      "金牛座",
	domain.SignGemini:      "雙子座",
	domain.SignCancer:      "巨蟹座",
	domain.SignLeo:         "獅子座",
	domain.SignVirgo:       "處女座",
	domain.SignLibra:       "天秤座",
	domain.SignScorpio:     "天蠍座",
	domain.SignSagittarius: "射手座",
	domain.SignCapricorn:   "摩羯座",
	domain.SignAquarius:    "水瓶座",
	domain.SignPisces:      "雙魚座",
}

var elementNames = map[domain.Element]string{
	domain.ElementWood:  "木",
	domain.ElementFire:  "火",
	domain.ElementEarth: "土",
	domain.ElementMetal: "金",
	domain.ElementWater: "水",
}

var stemNames = map[domain.Stem]string{
	domain.StemJia: "甲", domain.StemYi: "乙", domain.StemBing: "丙", domain.StemDing: "丁", domain.StemWu: "戊",
	domain.StemJi: "己", domain.StemGeng: "庚", domain.StemXin: "辛", domain.StemRen: "壬", domain.StemGui: "癸",
}

// Variables значения для подстановки; пустые поля заменяются нейтральными словами
type Variables struct {
	SunSign    domain.ZodiacSign
	MoonSign   domain.ZodiacSign
	DayElement domain.Element
	DayMaster  domain.Stem
	UserName   string
}

func (v Variables) values() map[domain.TemplateVariable]string {
	return map[domain.TemplateVariable]string{
		domain.VarSunSign:    nameOr(signNames, v.SunSign, "你的星座"),
		domain.VarMoonSign:   nameOr(signNames, v.MoonSign, "月亮"),
		domain.VarDayElement: nameOr(elementNames, v.DayElement, "今日"),
		domain.VarDayMaster:  nameOr(stemNames, v.DayMaster, "你"),
		domain.VarUserName:   stringOr(v.UserName, "你"),
	}
}

func nameOr[K comparable](names map[K]string, key K, fallback string) string {
	if n, ok := names[key]; ok {
		return n
	}
	return fallback
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// render подставляет переменные; имена проверены при загрузке каталога
func render(text string, values map[domain.TemplateVariable]string) string {
	return placeholderRe.ReplaceAllStringFunc(text, func(m string) string {
		name := domain.TemplateVariable(placeholderRe.FindStringSubmatch(m)[1])
		if v, ok := values[name]; ok {
			return v
		}
		return m
	})
}
