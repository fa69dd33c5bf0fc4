package engineclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ziwei/internal/chart/models"
	"ziwei/internal/platform/config"
)

func TestBuildChartDecodesSkeleton(t *testing.T) {
	var gotPath string
	var gotBody buildRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(Skeleton{
			ChineseDate:       "甲子年三月初五",
			FiveElementsClass: "木三局",
			BodyPalaceBranch:  "午",
			Palaces: []PalaceDTO{{
				Name:          "命宮",
				HeavenlyStem:  "丙",
				EarthlyBranch: "寅",
				MajorStars:    []StarDTO{{Name: "太陰", Brightness: "陷", Mutagen: "祿"}},
			}},
		})
	}))
	defer srv.Close()

	client := New(config.EngineConfig{URL: srv.URL, Timeout: 0})
	skeleton, err := client.BuildChart(context.Background(), models.BirthRecord{
		Year: 1984, Month: 4, Day: 5, TimeIndex: 6,
		Gender: models.GenderFemale, Calendar: models.CalendarLunar,
	})
	require.NoError(t, err)

	assert.Equal(t, "/astrolabe", gotPath)
	assert.Equal(t, 1984, gotBody.Year)
	assert.Equal(t, "女", gotBody.Gender)
	assert.True(t, gotBody.IsLunar)

	assert.Equal(t, "甲子年三月初五", skeleton.ChineseDate)
	require.Len(t, skeleton.Palaces, 1)
	assert.Equal(t, "太陰", skeleton.Palaces[0].MajorStars[0].Name)
}

func TestBuildChartSurfacesEngineErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad lunar date", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	client := New(config.EngineConfig{URL: srv.URL})
	_, err := client.BuildChart(context.Background(), models.BirthRecord{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "bad lunar date")
}
