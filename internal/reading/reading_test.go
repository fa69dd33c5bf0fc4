package reading

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ziwei/internal/almanac"
	"ziwei/internal/chart/models"
	"ziwei/internal/chart/service"
	"ziwei/internal/fortune"
	"ziwei/internal/platform/config"
)

func sampleResult() *service.Result {
	return &service.Result{
		ID:               "chart-1",
		Birth:            models.BirthRecord{Gender: models.GenderFemale},
		YearStem:         "甲",
		YearBranch:       "子",
		FiveElementClass: "水二局",
		Ages:             fortune.Ages{Calendar: 41, Traditional: 42},
		OriginPalace:     fortune.OriginPalace{Branch: "戌", PalaceName: "父母宮"},
		CurrentDecadal: &fortune.DecadalPeriod{
			Index: 5, PalaceName: "財帛宮", StartAge: 42, EndAge: 51,
		},
		YearlyPeriod: fortune.YearlyPeriod{Year: 2026, PalaceName: "官祿宮"},
		Palaces: []models.Palace{
			{
				Name:         "命宮",
				HeavenlyStem: almanac.StemJia,
				Branch:       almanac.BranchYou,
				IsLifePalace: true,
				Stars: []models.StarPlacement{
					{Name: "紫微", Brightness: models.BrightnessBright, Mutagen: models.MutagenQuan},
				},
			},
			{
				Name:         "兄弟宮",
				HeavenlyStem: almanac.StemYi,
				Branch:       almanac.BranchShen,
				IsBodyPalace: true,
			},
		},
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(sampleResult())

	assert.Contains(t, got, "性別：女")
	assert.Contains(t, got, "年齡：42歲（虛歲）")
	assert.Contains(t, got, "五行局：水二局")
	assert.Contains(t, got, "來因宮：父母宮（戌）")
	assert.Contains(t, got, "第5大限（42-51歲），走財帛宮")
	assert.Contains(t, got, "流年：2026年，走官祿宮")
	assert.Contains(t, got, "命宮［命］（甲酉）：紫微旺（權）")
	assert.Contains(t, got, "兄弟宮［身］（乙申）：無主星")
}

type stubNarrator struct {
	gotSummary string
	narrative  *Narrative
	err        error
}

func (s *stubNarrator) Narrate(_ context.Context, summary string) (*Narrative, error) {
	s.gotSummary = summary
	return s.narrative, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
}

func TestServiceReadPassesSummary(t *testing.T) {
	stub := &stubNarrator{narrative: &Narrative{OverallReading: "ok"}}
	svc := NewService(stub, nil, testLogger())

	narrative, err := svc.Read(context.Background(), sampleResult())
	require.NoError(t, err)
	assert.Equal(t, "ok", narrative.OverallReading)
	assert.Contains(t, stub.gotSummary, "五行局：水二局")
}

func TestHTTPNarrator(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var req narrateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"overall_reading":"narrative text"}`))
	}))
	defer srv.Close()

	narrator := NewHTTPNarrator(config.ReadingConfig{
		URL: srv.URL, APIKey: "secret", Model: "test-model", Timeout: time.Second,
	})
	narrative, err := narrator.Narrate(context.Background(), "summary")
	require.NoError(t, err)
	assert.Equal(t, "narrative text", narrative.OverallReading)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestUnconfiguredNarratorAnswers503(t *testing.T) {
	svc := NewService(NarratorFromConfig(config.ReadingConfig{}), nil, testLogger())
	h := NewHandler(svc, testLogger())

	body, err := json.Marshal(sampleResult())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body)))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandlerRejectsEmptyChart(t *testing.T) {
	svc := NewService(&stubNarrator{}, nil, testLogger())
	h := NewHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id":"x"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
