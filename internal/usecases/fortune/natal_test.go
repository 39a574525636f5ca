package fortune

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/ports/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeNatalChart_Full(t *testing.T) {
	f := newFixture(t)

	chart, err := f.svc.ComputeNatalChart(context.Background(), taipeiBirth())
	require.NoError(t, err)

	assert.NotNil(t, chart.Astrology)
	assert.NotNil(t, chart.Bazi)
	assert.Empty(t, chart.Warnings)
	assert.False(t, chart.IsPartial())
	assert.Equal(t, domain.EngineVersion, chart.EngineVersion)
	assert.Equal(t, uuid.Nil, chart.ProfileID)
	assert.Equal(t, domain.SignTaurus, chart.Astrology.Sun.Sign)
}

func TestComputeNatalChart_Invalid(t *testing.T) {
	f := newFixture(t)
	birth := taipeiBirth()
	birth.Latitude = 91

	_, err := f.svc.ComputeNatalChart(context.Background(), birth)
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "latitude", valErr.Field)
}

func TestComputeNatalChart_AstrologyFailsPartially(t *testing.T) {
	f := newFixture(t, withBrokenAstrology())

	chart, err := f.svc.ComputeNatalChart(context.Background(), taipeiBirth())
	require.NoError(t, err)

	assert.Nil(t, chart.Astrology)
	assert.NotNil(t, chart.Bazi)
	require.Len(t, chart.Warnings, 1)
	assert.True(t, strings.HasPrefix(chart.Warnings[0], string(domain.CodePartialResult)+": astrology"))
	assert.True(t, chart.IsPartial())
}

func TestComputeNatalChart_BaziFailsPartially(t *testing.T) {
	f := newFixture(t, withBrokenBazi())

	chart, err := f.svc.ComputeNatalChart(context.Background(), taipeiBirth())
	require.NoError(t, err)

	assert.NotNil(t, chart.Astrology)
	assert.Nil(t, chart.Bazi)
	require.Len(t, chart.Warnings, 1)
	assert.Contains(t, chart.Warnings[0], "bazi")
}

func TestComputeNatalChart_BaziPanicBecomesPartial(t *testing.T) {
	f := newFixture(t, withPanickingBazi())

	chart, err := f.svc.ComputeNatalChart(context.Background(), taipeiBirth())
	require.NoError(t, err)

	assert.NotNil(t, chart.Astrology)
	assert.Nil(t, chart.Bazi)
	require.Len(t, chart.Warnings, 1)
	assert.Contains(t, chart.Warnings[0], "bazi")
	assert.Contains(t, chart.Warnings[0], string(domain.CodeComputationFailed))
}

func TestRecoverBranch(t *testing.T) {
	assert.NoError(t, recoverBranch("astrology", func() error { return nil }))
	assert.ErrorIs(t, recoverBranch("astrology", func() error { return errBoom }), errBoom)

	err := recoverBranch("bazi", func() error { panic("boom") })
	var ce *domain.ComputationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "bazi", ce.Subsystem)
}

func TestComputeNatalChart_BothFail(t *testing.T) {
	f := newFixture(t, withBrokenAstrology(), withBrokenBazi())

	_, err := f.svc.ComputeNatalChart(context.Background(), taipeiBirth())
	var compErr *domain.ComputationError
	require.ErrorAs(t, err, &compErr)
	assert.Equal(t, "natal", compErr.Subsystem)
	assert.Equal(t, domain.CodeComputationFailed, domain.CodeOf(err))
}

func TestComputeNatalChart_CanceledContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.ComputeNatalChart(ctx, taipeiBirth())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateProfile(t *testing.T) {
	f := newFixture(t)

	profile, chart, err := f.svc.CreateProfile(context.Background(), service.CreateProfileInput{
		Name:  "  小美 ",
		Birth: taipeiBirth(),
	})
	require.NoError(t, err)

	assert.Equal(t, "小美", profile.Name)
	assert.Equal(t, domain.LocaleZhTW, profile.Locale)
	assert.Equal(t, profile.ID, chart.ProfileID)
	assert.Contains(t, f.profiles.profiles, profile.ID)
	assert.Same(t, chart, f.charts.charts[profile.ID])
	require.Len(t, f.events.natal, 1)
	assert.Equal(t, profile.ID, f.events.natal[0].ProfileID)
}

func TestCreateProfile_Validation(t *testing.T) {
	f := newFixture(t)

	cases := map[string]struct {
		in   service.CreateProfileInput
		code domain.ErrorCode
	}{
		"missing name": {service.CreateProfileInput{Name: " ", Birth: taipeiBirth()}, domain.CodeMissingField},
		"long name":    {service.CreateProfileInput{Name: strings.Repeat("a", maxNameLength+1), Birth: taipeiBirth()}, domain.CodeInvalidFormat},
		"bad locale":   {service.CreateProfileInput{Name: "a", Locale: "fr", Birth: taipeiBirth()}, domain.CodeInvalidFormat},
		"bad birth":    {service.CreateProfileInput{Name: "a", Birth: domain.BirthInput{}}, domain.CodeMissingField},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := f.svc.CreateProfile(context.Background(), tc.in)
			require.Error(t, err)
			assert.Equal(t, tc.code, domain.CodeOf(err))
		})
	}
	assert.Empty(t, f.profiles.profiles)
	assert.Empty(t, f.events.natal)
}

func TestCreateProfile_TransactionFailure(t *testing.T) {
	f := newFixture(t)
	f.profiles.txErr = errors.New("tx failed")

	_, _, err := f.svc.CreateProfile(context.Background(), service.CreateProfileInput{Name: "a", Birth: taipeiBirth()})
	assert.Error(t, err)
	assert.Empty(t, f.events.natal)
}

func TestCreateProfile_EventFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("kafka down")

	_, _, err := f.svc.CreateProfile(context.Background(), service.CreateProfileInput{Name: "a", Birth: taipeiBirth()})
	assert.NoError(t, err)
}

func TestRecomputeNatalChart(t *testing.T) {
	f := newFixture(t)
	profile, _, err := f.svc.CreateProfile(context.Background(), service.CreateProfileInput{Name: "a", Birth: taipeiBirth()})
	require.NoError(t, err)
	f.charts.charts[profile.ID].EngineVersion = "0.9.0"

	done, err := f.svc.RecomputeStale(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 1, done)
	assert.Equal(t, domain.EngineVersion, f.charts.charts[profile.ID].EngineVersion)

	err = f.svc.RecomputeNatalChart(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetNatalChart(t *testing.T) {
	f := newFixture(t)
	profile, chart, err := f.svc.CreateProfile(context.Background(), service.CreateProfileInput{Name: "a", Birth: taipeiBirth()})
	require.NoError(t, err)

	got, err := f.svc.GetNatalChart(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Same(t, chart, got)

	_, err = f.svc.GetNatalChart(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
