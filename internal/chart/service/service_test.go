package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ziwei/internal/almanac"
	"ziwei/internal/chart/engineclient"
	"ziwei/internal/chart/models"
	"ziwei/internal/chart/store"
	"ziwei/pkg/requestcontext"
)

type fakeEngine struct {
	skeleton *engineclient.Skeleton
	err      error
	calls    int
}

func (f *fakeEngine) BuildChart(_ context.Context, _ models.BirthRecord) (*engineclient.Skeleton, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.skeleton, nil
}

// jiaZiSkeleton is a well-formed engine response for a 甲子-year birth with
// the life palace on 酉. Stems follow the five-tigers rule, names walk the
// ring counter-clockwise from the life palace.
func jiaZiSkeleton() *engineclient.Skeleton {
	stems := map[almanac.EarthlyBranch]almanac.HeavenlyStem{}
	stem := almanac.StemBing
	for i := 0; i < almanac.BranchCount; i++ {
		stems[almanac.BranchYin.Add(i)] = stem
		stem = almanac.HeavenlyStem((int(stem) + 1) % almanac.StemCount)
	}

	names := almanac.PalaceNames()
	dtos := make([]engineclient.PalaceDTO, 0, len(names))
	for i, name := range names {
		branch := almanac.BranchYou.Add(-i)
		dto := engineclient.PalaceDTO{
			Name:          name,
			HeavenlyStem:  stems[branch].String(),
			EarthlyBranch: branch.String(),
		}
		if branch == almanac.BranchZi {
			// The engine undershoots the Moon here; the override corrects it.
			dto.MajorStars = []engineclient.StarDTO{{Name: "太陰", Brightness: "陷", Mutagen: "忌"}}
		}
		if name == almanac.LifePalaceName {
			dto.MajorStars = []engineclient.StarDTO{{Name: "紫微", Brightness: "旺"}}
		}
		dtos = append(dtos, dto)
	}

	return &engineclient.Skeleton{
		Palaces:           dtos,
		ChineseDate:       "甲子年 十月 初二",
		FiveElementsClass: "水二局",
		BodyPalaceBranch:  almanac.BranchChou.String(),
	}
}

func testBirth() models.BirthRecord {
	return models.BirthRecord{
		Year: 1984, Month: 11, Day: 2, TimeIndex: 3,
		Gender: models.GenderMale, Calendar: models.CalendarSolar,
		Name: "測試",
	}
}

func fixedCtx() context.Context {
	return requestcontext.WithTime(context.Background(), time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC))
}

func TestComputeEnrichesSkeleton(t *testing.T) {
	engine := &fakeEngine{skeleton: jiaZiSkeleton()}
	svc := New(engine, store.NewInMemoryCache(8), time.Hour, 5)

	result, err := svc.Compute(fixedCtx(), testBirth())
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "甲", result.YearStem)
	assert.Equal(t, "子", result.YearBranch)
	assert.Equal(t, "水二局", result.FiveElementClass)

	assert.Equal(t, 41, result.Ages.Calendar)
	assert.Equal(t, 42, result.Ages.Traditional)

	require.Len(t, result.Palaces, 12)
	life := result.Palaces[0]
	assert.True(t, life.IsLifePalace)
	assert.Equal(t, almanac.BranchYou, life.Branch)

	var body int
	for _, p := range result.Palaces {
		if p.IsBodyPalace {
			body++
			assert.Equal(t, almanac.BranchChou, p.Branch)
		}
	}
	assert.Equal(t, 1, body, "exactly one body palace")

	// Moon on 子 is corrected to temple brightness and keeps its mutagen.
	for _, p := range result.Palaces {
		if p.Branch != almanac.BranchZi {
			continue
		}
		require.Len(t, p.Stars, 1)
		assert.Equal(t, models.BrightnessTemple, p.Stars[0].Brightness)
		assert.Equal(t, models.MutagenJi, p.Stars[0].Mutagen)
	}

	// 甲 birth year puts the origin palace on 戌, which here is 父母宮.
	assert.Equal(t, "戌", result.OriginPalace.Branch)
	assert.Equal(t, "父母宮", result.OriginPalace.PalaceName)

	require.Len(t, result.DecadalPeriods, 12)
	assert.Equal(t, 2, result.DecadalPeriods[0].StartAge, "水二局 starts at two")
	require.NotNil(t, result.CurrentDecadal)
	assert.True(t, result.CurrentDecadal.Contains(result.Ages.Traditional))

	assert.Equal(t, 2026, result.YearlyPeriod.Year)
}

func TestComputeServesCachedResult(t *testing.T) {
	engine := &fakeEngine{skeleton: jiaZiSkeleton()}
	svc := New(engine, store.NewInMemoryCache(8), time.Hour, 5)

	first, err := svc.Compute(fixedCtx(), testBirth())
	require.NoError(t, err)
	require.Equal(t, 1, engine.calls)

	// Same chart, different display name: no second engine call, caller's
	// name wins.
	again := testBirth()
	again.Name = "別名"
	second, err := svc.Compute(fixedCtx(), again)
	require.NoError(t, err)
	assert.Equal(t, 1, engine.calls)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "別名", second.Birth.Name)
}

func TestComputeRejectsInvalidBirth(t *testing.T) {
	engine := &fakeEngine{skeleton: jiaZiSkeleton()}
	svc := New(engine, store.NewInMemoryCache(8), time.Hour, 5)

	bad := testBirth()
	bad.Month = 13
	_, err := svc.Compute(fixedCtx(), bad)
	require.Error(t, err)
	assert.Zero(t, engine.calls)
}

func TestComputeSurfacesEngineFailure(t *testing.T) {
	engine := &fakeEngine{err: errors.New("engine down")}
	svc := New(engine, store.NewInMemoryCache(8), time.Hour, 5)

	_, err := svc.Compute(fixedCtx(), testBirth())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chart engine")
}

func TestComputeRejectsMalformedChineseDate(t *testing.T) {
	skeleton := jiaZiSkeleton()
	skeleton.ChineseDate = "??"
	engine := &fakeEngine{skeleton: skeleton}
	svc := New(engine, store.NewInMemoryCache(8), time.Hour, 5)

	_, err := svc.Compute(fixedCtx(), testBirth())
	require.Error(t, err)
}

func TestRecentReturnsNewestFirst(t *testing.T) {
	engine := &fakeEngine{skeleton: jiaZiSkeleton()}
	svc := New(engine, store.NewInMemoryCache(8), time.Hour, 5)

	older := testBirth()
	newer := testBirth()
	newer.TimeIndex = 5

	_, err := svc.Compute(fixedCtx(), older)
	require.NoError(t, err)
	later := requestcontext.WithTime(context.Background(), time.Date(2026, 8, 23, 12, 1, 0, 0, time.UTC))
	_, err = svc.Compute(later, newer)
	require.NoError(t, err)

	recent, err := svc.Recent(fixedCtx())
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 5, recent[0].Birth.TimeIndex)
	assert.Equal(t, 3, recent[1].Birth.TimeIndex)
}
