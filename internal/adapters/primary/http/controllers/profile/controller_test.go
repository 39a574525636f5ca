package profileController

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/adapters/primary/http/middlewares"
	"github.com/sensa-ai-tech/OATH/internal/adapters/secondary/storage/inmemory"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/ports/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFortuneService struct {
	service.IFortuneService

	created   *service.CreateProfileInput
	computed  *domain.BirthInput
	chartErr  error
	dailyDate time.Time
	dailyOpts service.DailyFortuneOptions
	dailyErr  error
}

func (f *fakeFortuneService) CreateProfile(_ context.Context, in service.CreateProfileInput) (*domain.Profile, *domain.NatalChart, error) {
	f.created = &in
	p := &domain.Profile{ID: uuid.New(), Name: in.Name, Locale: in.Locale, Birth: in.Birth}
	return p, &domain.NatalChart{ProfileID: p.ID, EngineVersion: domain.EngineVersion}, nil
}

func (f *fakeFortuneService) ComputeNatalChart(_ context.Context, birth domain.BirthInput) (*domain.NatalChart, error) {
	f.computed = &birth
	return &domain.NatalChart{EngineVersion: domain.EngineVersion}, nil
}

func (f *fakeFortuneService) GetNatalChart(_ context.Context, profileID uuid.UUID) (*domain.NatalChart, error) {
	if f.chartErr != nil {
		return nil, f.chartErr
	}
	return &domain.NatalChart{ProfileID: profileID}, nil
}

func (f *fakeFortuneService) DailyFortune(_ context.Context, profileID uuid.UUID, date time.Time, opts service.DailyFortuneOptions) (*domain.DailyFortune, error) {
	f.dailyDate = date
	f.dailyOpts = opts
	if f.dailyErr != nil {
		return nil, f.dailyErr
	}
	return &domain.DailyFortune{ProfileID: profileID, FortuneDate: date.Format(dateLayout)}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code  domain.ErrorCode `json:"code"`
		Field string           `json:"field"`
	} `json:"error"`
}

func setup(t *testing.T) (*gin.Engine, *fakeFortuneService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := &fakeFortuneService{}
	limiter := middlewares.NewRateLimiter(inmemory.NewCache(), nil, log)
	loc, err := time.LoadLocation("Asia/Taipei")
	require.NoError(t, err)

	r := gin.New()
	New(svc, limiter, loc, log).RegisterRoutes(r)
	return r, svc
}

func do(t *testing.T, r http.Handler, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

const validBirth = `"birth_datetime":"1990-05-15T08:00:00+08:00","latitude":25.03,"longitude":121.56,"gender":"female"`

func TestCreateProfile(t *testing.T) {
	r, svc := setup(t)

	w, env := do(t, r, http.MethodPost, "/v1/profiles", `{"name":" 小美 ",`+validBirth+`}`, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	require.NotNil(t, svc.created)
	assert.Equal(t, "小美", svc.created.Name)
	assert.Equal(t, domain.LocaleZhTW, svc.created.Locale)
	assert.Equal(t, domain.PrecisionExact, svc.created.Birth.TimePrecision)
	assert.True(t, svc.created.Birth.DateTime.Equal(time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC)))

	var resp ProfileResp
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, resp.Profile.ID, resp.NatalChart.ProfileID)
}

func TestCreateProfile_Validation(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		code  domain.ErrorCode
		field string
	}{
		{"missing name", `{` + validBirth + `}`, domain.CodeMissingField, "name"},
		{"missing latitude", `{"name":"a","birth_datetime":"1990-05-15T08:00:00Z","longitude":1,"gender":"male"}`, domain.CodeMissingField, "latitude"},
		{"latitude range", `{"name":"a","birth_datetime":"1990-05-15T08:00:00Z","latitude":91,"longitude":1,"gender":"male"}`, domain.CodeInvalidBirthData, "latitude"},
		{"date range", `{"name":"a","birth_datetime":"1850-01-01T00:00:00Z","latitude":1,"longitude":1,"gender":"male"}`, domain.CodeInvalidDateRange, "birth_datetime"},
		{"bad locale", `{"name":"a","locale":"fr",` + validBirth + `}`, domain.CodeInvalidFormat, "locale"},
		{"bad json", `{"name":`, domain.CodeInvalidFormat, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, svc := setup(t)

			w, env := do(t, r, http.MethodPost, "/v1/profiles", tc.body, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.code, env.Error.Code)
			assert.Equal(t, tc.field, env.Error.Field)
			assert.Nil(t, svc.created)
		})
	}
}

func TestComputeNatalChart(t *testing.T) {
	r, svc := setup(t)

	w, env := do(t, r, http.MethodPost, "/v1/natal-chart", `{`+validBirth+`,"time_precision":"unknown"}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	require.NotNil(t, svc.computed)
	assert.Equal(t, domain.PrecisionUnknown, svc.computed.TimePrecision)
}

func TestComputeNatalChart_RateLimited(t *testing.T) {
	r, _ := setup(t)
	headers := map[string]string{middlewares.HeaderUserID: "u1"}

	for i := 0; i < 3; i++ {
		w, _ := do(t, r, http.MethodPost, "/v1/natal-chart", `{`+validBirth+`}`, headers)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, env := do(t, r, http.MethodPost, "/v1/natal-chart", `{`+validBirth+`}`, headers)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, domain.CodeRateLimited, env.Error.Code)
}

func TestGetNatalChart(t *testing.T) {
	r, svc := setup(t)
	id := uuid.New()

	w, env := do(t, r, http.MethodGet, "/v1/profiles/"+id.String()+"/natal-chart", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), id.String())

	w, env = do(t, r, http.MethodGet, "/v1/profiles/not-a-uuid/natal-chart", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "id", env.Error.Field)

	svc.chartErr = fmt.Errorf("profile %s: %w", id, domain.ErrNotFound)
	w, env = do(t, r, http.MethodGet, "/v1/profiles/"+id.String()+"/natal-chart", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, domain.CodeNotFound, env.Error.Code)
}

func TestDailyFortune(t *testing.T) {
	r, svc := setup(t)
	id := uuid.New()

	w, env := do(t, r, http.MethodGet, "/v1/profiles/"+id.String()+"/daily-fortune?date=2025-03-01", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), svc.dailyDate)
	assert.False(t, svc.dailyOpts.Polish)
}

func TestDailyFortune_DefaultDateIsMidnightUTC(t *testing.T) {
	r, svc := setup(t)

	w, _ := do(t, r, http.MethodGet, "/v1/profiles/"+uuid.NewString()+"/daily-fortune", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.UTC, svc.dailyDate.Location())
	assert.Zero(t, svc.dailyDate.Hour())
}

func TestDailyFortune_PolishByTier(t *testing.T) {
	r, svc := setup(t)
	path := "/v1/profiles/" + uuid.NewString() + "/daily-fortune?date=2025-03-01&polish=true"

	w, _ := do(t, r, http.MethodGet, path, "", map[string]string{middlewares.HeaderUserID: "free"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, svc.dailyOpts.Polish)
	assert.Equal(t, "rate_limited", w.Header().Get(HeaderPolishSkipped))

	w, _ = do(t, r, http.MethodGet, path, "", map[string]string{
		middlewares.HeaderUserID:   "paid",
		middlewares.HeaderUserTier: "premium",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.dailyOpts.Polish)
	assert.Empty(t, w.Header().Get(HeaderPolishSkipped))
}

func TestDailyFortune_Errors(t *testing.T) {
	r, svc := setup(t)
	base := "/v1/profiles/" + uuid.NewString() + "/daily-fortune"

	w, env := do(t, r, http.MethodGet, base+"?date=01-03-2025", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "date", env.Error.Field)

	w, env = do(t, r, http.MethodGet, base+"?polish=maybe", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "polish", env.Error.Field)

	svc.dailyErr = domain.ErrTemporaryUnavailable
	w, env = do(t, r, http.MethodGet, base, "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, domain.CodeGenerationFailed, env.Error.Code)
}
