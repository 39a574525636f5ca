package fortune

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/pkg/metrics"
	"github.com/sensa-ai-tech/OATH/internal/ports/service"
	"github.com/sensa-ai-tech/OATH/internal/usecases/astrology"
	"github.com/sensa-ai-tech/OATH/internal/usecases/bazi"
	"github.com/sensa-ai-tech/OATH/internal/usecases/content"
)

const dateLayout = "2006-01-02"

// DailyFortune прогноз профиля на дату.
// L1-L4 строит генерация, при её отказе - последний успешный результат (L5), иначе ErrTemporaryUnavailable (L6).
func (s *Service) DailyFortune(ctx context.Context, profileID uuid.UUID, date time.Time, opts service.DailyFortuneOptions) (*domain.DailyFortune, error) {
	day := date.Format(dateLayout)

	if memo := s.cachedFortune(ctx, "daily", memoKey(profileID, day)); memo != nil {
		if !opts.Polish || memo.Fortune.Level == domain.LevelPolished {
			metrics.FortuneDelivered.WithLabelValues(string(memo.Fortune.Level)).Inc()
			return memo, nil
		}
	}

	fortune, err := s.generate(ctx, profileID, date, opts)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		s.Log.Error("failed to generate daily fortune",
			"profile_id", profileID,
			"date", day,
			"error", err,
		)
		return s.lastResult(ctx, profileID)
	}

	if err := s.FortuneRepo.Save(ctx, fortune); err != nil {
		s.Log.Warn("failed to save daily fortune",
			"profile_id", profileID,
			"date", day,
			"error", err,
		)
	}
	s.storeCached(ctx, memoKey(profileID, day), fortune, s.Cfg.MemoTTL)
	s.storeCached(ctx, lastResultKey(profileID), fortune, s.Cfg.LastResultTTL)

	metrics.FortuneDelivered.WithLabelValues(string(fortune.Fortune.Level)).Inc()
	s.publishFortune(ctx, fortune)

	return fortune, nil
}

func (s *Service) generate(ctx context.Context, profileID uuid.UUID, date time.Time, opts service.DailyFortuneOptions) (*domain.DailyFortune, error) {
	profile, err := s.ProfileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	chart, err := s.natalFor(ctx, profile)
	if err != nil {
		return nil, err
	}

	fortune, err := s.assemble(ctx, profile, chart, date)
	if err != nil {
		return nil, err
	}

	if opts.Polish && fortune.Fortune.Level != domain.LevelStatic {
		s.polish(ctx, profile, chart, fortune)
	}

	return fortune, nil
}

// PreviewDaily прогноз по данным рождения без профиля, сохранения и шлифовки
func (s *Service) PreviewDaily(ctx context.Context, name string, birth domain.BirthInput, date time.Time) (*domain.DailyFortune, error) {
	if err := birth.Validate(); err != nil {
		return nil, err
	}
	chart, err := s.computeNatal(ctx, uuid.Nil, birth)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, &domain.Profile{Name: name, Birth: birth}, chart, date)
}

// assemble транзиты и день бацзы поверх натальной карты, затем подбор шаблона (L2-L4)
func (s *Service) assemble(ctx context.Context, profile *domain.Profile, chart *domain.NatalChart, date time.Time) (*domain.DailyFortune, error) {
	profileID := profile.ID
	birth := profile.Birth
	var (
		warnings []string
		err      error
	)

	var transit *domain.DailyTransit
	if chart.Astrology != nil {
		transit, err = s.Engines.Astrology.ComputeDailyTransit(date, chart.Astrology.Planets, birth.Latitude, birth.Longitude)
		if err != nil {
			s.Log.Warn("daily transit failed", "profile_id", profileID, "error", err)
			warnings = append(warnings, partialWarning("transit", err))
		}
	}

	var baziDay *domain.DailyBaziAnalysis
	if chart.Bazi != nil {
		baziDay, err = s.Engines.Bazi.ComputeDailyBazi(date, chart.Bazi)
		if err != nil {
			s.Log.Warn("daily bazi failed", "profile_id", profileID, "error", err)
			warnings = append(warnings, partialWarning("bazi_day", err))
		}
	}

	if transit == nil && baziDay == nil {
		return nil, domain.NewComputationError("daily", domain.CodeComputationFailed, errors.New("no daily data available"))
	}

	transitTags := astrology.TransitTags(transit)
	if chart.Astrology != nil {
		transitTags = append(transitTags, domain.SignTag(chart.Astrology.Sun.Sign))
	}
	baziTags := bazi.DailyTags(baziDay, chart.Bazi)

	vars := content.VariablesFor(chart.Astrology, transit, baziDay, chart.Bazi, profile.Name)
	generated := s.Engines.Content.GenerateDailyFortune(transitTags, baziTags, vars)

	if generated.SafetyTriggered {
		s.publishSafety(ctx, profileID, generated)
	}

	fortune := &domain.DailyFortune{
		ID:              uuid.New(),
		ProfileID:       profileID,
		FortuneDate:     date.Format(dateLayout),
		Transit:         transit,
		BaziDay:         baziDay,
		Fortune:         generated,
		TemplateMessage: generated.Message,
		EngineVersion:   domain.EngineVersion,
		Warnings:        append(warnings, chart.Warnings...),
		CreatedAt:       s.now().UTC(),
	}
	return fortune, nil
}

// natalFor сохранённая карта; отсутствующая или устаревшая пересчитывается на лету
func (s *Service) natalFor(ctx context.Context, profile *domain.Profile) (*domain.NatalChart, error) {
	chart, err := s.ChartRepo.GetByProfileID(ctx, profile.ID)
	switch {
	case err == nil && chart.EngineVersion == domain.EngineVersion:
		return chart, nil
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("failed to get natal chart: %w", err)
	}

	chart, err = s.computeNatal(ctx, profile.ID, profile.Birth)
	if err != nil {
		return nil, err
	}
	if err := s.ChartRepo.Upsert(ctx, chart); err != nil {
		s.Log.Warn("failed to save recomputed natal chart", "profile_id", profile.ID, "error", err)
	}
	return chart, nil
}

// polish L1: при ошибке, таймауте или отклонённом тексте остаётся текст шаблона
func (s *Service) polish(ctx context.Context, profile *domain.Profile, chart *domain.NatalChart, fortune *domain.DailyFortune) {
	if s.Polisher == nil {
		return
	}

	req := domain.PolishRequest{
		TemplateMessage:  fortune.Fortune.Message,
		ActionSuggestion: fortune.Fortune.ActionSuggestion,
		Locale:           profile.Locale,
	}
	if chart.Astrology != nil {
		req.SunSign = chart.Astrology.Sun.Sign
	}
	if fortune.BaziDay != nil {
		req.DayElement = fortune.BaziDay.DayElement
	}

	polishCtx, cancel := context.WithTimeout(ctx, s.Cfg.PolishTimeout)
	defer cancel()

	resp, err := s.Polisher.Polish(polishCtx, req)
	if err != nil {
		metrics.PolishRequests.WithLabelValues("error").Inc()
		s.Log.Warn("polish unavailable, using template text",
			"profile_id", profile.ID,
			"code", domain.CodeLLMUnavailable,
			"error", err,
		)
		return
	}

	metrics.PolishTokens.WithLabelValues("input").Add(float64(resp.TokensInput))
	metrics.PolishTokens.WithLabelValues("output").Add(float64(resp.TokensOutput))
	metrics.PolishCostUSD.Add(resp.CostUSD)

	if !s.Engines.Content.AcceptPolished(resp) {
		metrics.PolishRequests.WithLabelValues("rejected").Inc()
		return
	}

	metrics.PolishRequests.WithLabelValues("ok").Inc()
	fortune.Polish = resp
	fortune.Fortune.Message = strings.TrimSpace(resp.PolishedMessage)
	fortune.Fortune.ActionSuggestion = strings.TrimSpace(resp.PolishedAction)
	fortune.Fortune.Level = domain.LevelPolished
}

// lastResult L5 из кэша или базы, иначе L6
func (s *Service) lastResult(ctx context.Context, profileID uuid.UUID) (*domain.DailyFortune, error) {
	last := s.cachedFortune(ctx, "last", lastResultKey(profileID))
	if last == nil {
		stored, err := s.FortuneRepo.GetLatest(ctx, profileID)
		if err != nil {
			s.Log.Warn("no previous fortune available",
				"profile_id", profileID,
				"error", err,
			)
			metrics.FortuneDelivered.WithLabelValues(string(domain.LevelUnavailable)).Inc()
			return nil, domain.ErrTemporaryUnavailable
		}
		last = stored
	}

	last.Fortune.Level = domain.LevelCached
	metrics.FortuneDelivered.WithLabelValues(string(domain.LevelCached)).Inc()
	return last, nil
}

func (s *Service) publishFortune(ctx context.Context, fortune *domain.DailyFortune) {
	if s.Events == nil {
		return
	}
	if err := s.Events.FortuneGenerated(ctx, fortune); err != nil {
		s.Log.Warn("failed to publish fortune generated event",
			"profile_id", fortune.ProfileID,
			"error", err,
		)
	}
}

func (s *Service) publishSafety(ctx context.Context, profileID uuid.UUID, f domain.GeneratedFortune) {
	s.Log.Warn("safety filter replaced daily fortune",
		"profile_id", profileID,
		"template_id", f.RejectedTemplateID,
		"keyword", f.SafetyKeyword,
	)
	if s.Events == nil {
		return
	}
	if err := s.Events.SafetyTriggered(ctx, profileID, f.RejectedTemplateID, f.SafetyKeyword); err != nil {
		s.Log.Warn("failed to publish safety event", "profile_id", profileID, "error", err)
	}
}
