package bazi

import (
	"fmt"

	"github.com/sensa-ai-tech/OATH/internal/domain"
)

var stemBySymbol = map[string]domain.Stem{
	"甲": domain.StemJia, "乙": domain.StemYi, "丙": domain.StemBing, "丁": domain.StemDing, "戊": domain.StemWu,
	"己": domain.StemJi, "庚": domain.StemGeng, "辛": domain.StemXin, "壬": domain.StemRen, "癸": domain.StemGui,
}

var branchBySymbol = map[string]domain.Branch{
	"子": domain.BranchZi, "丑": domain.BranchChou, "寅": domain.BranchYin, "卯": domain.BranchMao,
	"辰": domain.BranchChen, "巳": domain.BranchSi, "午": domain.BranchWu, "未": domain.BranchWei,
	"申": domain.BranchShen, "酉": domain.BranchYou, "戌": domain.BranchXu, "亥": domain.BranchHai,
}

// tenGodBySymbol традиционные и упрощённые написания; 日主 - сам господин дня
var tenGodBySymbol = map[string]domain.TenGod{
	"比肩": domain.TenGodBiJian,
	"劫財": domain.TenGodJieCai, "劫财": domain.TenGodJieCai,
	"食神": domain.TenGodShiShen,
	"傷官": domain.TenGodShangGuan, "伤官": domain.TenGodShangGuan,
	"正財": domain.TenGodZhengCai, "正财": domain.TenGodZhengCai,
	"偏財": domain.TenGodPianCai, "偏财": domain.TenGodPianCai,
	"正官": domain.TenGodZhengGuan,
	"七殺": domain.TenGodQiSha, "七杀": domain.TenGodQiSha,
	"正印": domain.TenGodZhengYin,
	"偏印": domain.TenGodPianYin,
	"日主": domain.TenGodBiJian,
}

var branchElement = map[domain.Branch]domain.Element{
	domain.BranchZi:   domain.ElementWater,
	domain.BranchChou: domain.ElementEarth,
	domain.BranchYin:  domain.ElementWood,
	domain.BranchMao:  domain.ElementWood,
	domain.BranchChen: domain.ElementEarth,
	domain.BranchSi:   domain.ElementFire,
	domain.BranchWu:   domain.ElementFire,
	domain.BranchWei:  domain.ElementEarth,
	domain.BranchShen: domain.ElementMetal,
	domain.BranchYou:  domain.ElementMetal,
	domain.BranchXu:   domain.ElementEarth,
	domain.BranchHai:  domain.ElementWater,
}

// hiddenStems скрытые стволы ветвей (藏干), главный ствол первым
var hiddenStems = map[domain.Branch][]domain.Stem{
	domain.BranchZi:   {domain.StemGui},
	domain.BranchChou: {domain.StemJi, domain.StemGui, domain.StemXin},
	domain.BranchYin:  {domain.StemJia, domain.StemBing, domain.StemWu},
	domain.BranchMao:  {domain.StemYi},
	domain.BranchChen: {domain.StemWu, domain.StemYi, domain.StemGui},
	domain.BranchSi:   {domain.StemBing, domain.StemGeng, domain.StemWu},
	domain.BranchWu:   {domain.StemDing, domain.StemJi},
	domain.BranchWei:  {domain.StemJi, domain.StemDing, domain.StemYi},
	domain.BranchShen: {domain.StemGeng, domain.StemRen, domain.StemWu},
	domain.BranchYou:  {domain.StemXin},
	domain.BranchXu:   {domain.StemWu, domain.StemXin, domain.StemDing},
	domain.BranchHai:  {domain.StemRen, domain.StemJia},
}

func lookupStem(symbol string) (domain.Stem, error) {
	s, ok := stemBySymbol[symbol]
	if !ok {
		return "", fmt.Errorf("unknown stem symbol %q", symbol)
	}
	return s, nil
}

func lookupBranch(symbol string) (domain.Branch, error) {
	b, ok := branchBySymbol[symbol]
	if !ok {
		return "", fmt.Errorf("unknown branch symbol %q", symbol)
	}
	return b, nil
}

func lookupTenGod(symbol string) (domain.TenGod, error) {
	g, ok := tenGodBySymbol[symbol]
	if !ok {
		return "", fmt.Errorf("unknown ten-god symbol %q", symbol)
	}
	return g, nil
}

// relation десять богов по стихиям и полярности двух стволов
func relation(master, target domain.Stem) domain.TenGod {
	me, other := master.Element(), target.Element()
	same := master.IsYang() == target.IsYang()

	pick := func(samePolarity, differentPolarity domain.TenGod) domain.TenGod {
		if same {
			return samePolarity
		}
		return differentPolarity
	}

	switch other {
	case me:
		return pick(domain.TenGodBiJian, domain.TenGodJieCai)
	case me.Generates():
		return pick(domain.TenGodShiShen, domain.TenGodShangGuan)
	case me.Overcomes():
		return pick(domain.TenGodPianCai, domain.TenGodZhengCai)
	case me.OvercomeBy():
		return pick(domain.TenGodQiSha, domain.TenGodZhengGuan)
	default:
		return pick(domain.TenGodPianYin, domain.TenGodZhengYin)
	}
}
