package db

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"holocene/internal/types"
)

func TestRecordViewQuery_FilterPredicate(t *testing.T) {
	base := types.RecordViewFilter{DataSourceID: 1, AssetID: 2, MetricID: 3, StatID: 4, PeriodTypeID: 5}

	sql, args := recordViewQuery(base)
	assert.NotContains(t, sql, "filter_id = $6")
	assert.True(t, strings.HasSuffix(sql, "order by period_end"))
	assert.Equal(t, []any{int64(1), int64(2), int64(3), int64(4), int64(5)}, args)

	withFilter := base
	withFilter.FilterID = 9
	sql, args = recordViewQuery(withFilter)
	assert.Contains(t, sql, "and filter_id = $6")
	assert.True(t, strings.HasSuffix(sql, "order by period_end"))
	assert.Len(t, args, 6)
	assert.Equal(t, int64(9), args[5])
}

func TestAltDataRepository_GetRecordView(t *testing.T) {
	db := new(mockDBTX)
	repo := NewAltDataRepository(newTestPG(db))

	filter := types.RecordViewFilter{DataSourceID: 1, AssetID: 2, MetricID: 3, StatID: 4, PeriodTypeID: 5}
	sql, args := recordViewQuery(filter)

	columns := []string{
		"datasource_id", "asset_id", "metric_id", "filter_id", "period_id", "stat_id",
		"period_type_name", "period_start", "period_end", "stat_name", "stat_description",
		"value", "is_actual", "upload_datetime", "modified_by",
	}
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	db.On("Query", mock.Anything, sql, args).Return(newFakeRows(columns,
		[]any{int64(1), int64(2), int64(3), nil, int64(77), int64(4), "Quarter", start, end, "yoy", "Year over year", "0.042", true, nil, ""},
	), nil)

	got, err := repo.GetRecordView(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].FilterID)
	assert.True(t, got[0].IsActual)
	require.NotNil(t, got[0].Value)
	assert.Equal(t, "0.042", got[0].Value.String())
	assert.Nil(t, got[0].UploadTimestamp)
	assert.True(t, end.Equal(got[0].PeriodEnd))
}

func TestAltDataRepository_GetBreakdownView(t *testing.T) {
	db := new(mockDBTX)
	repo := NewAltDataRepository(newTestPG(db))

	columns := []string{
		"breakdown_id", "asset_id", "datasource_id", "metric_id", "datasource_provider",
		"datasource_name", "datasource_desc", "asset_name", "metric_name", "metric_description",
		"metric_frequency", "metric_lag",
	}
	db.On("Query", mock.Anything, breakdownViewSQL, []any{"wmt"}).Return(newFakeRows(columns,
		[]any{int64(10), int64(2), int64(1), int64(3), "Vendor", "cards", "Card panel", "WMT", "sales", "Net sales", "W", "7"},
	), nil)

	got, err := repo.GetBreakdownView(context.Background(), "wmt")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "WMT", got[0].AssetName)
	assert.Equal(t, "7", got[0].MetricLag)
}

func TestAltDataRepository_GetStatView_Empty(t *testing.T) {
	db := new(mockDBTX)
	repo := NewAltDataRepository(newTestPG(db))

	db.On("Query", mock.Anything, statViewSQL, []any(nil)).Return(newFakeRows([]string{"stat_id", "name", "description"}), nil)

	got, err := repo.GetStatView(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAltDataRepository_InsertDashQuery(t *testing.T) {
	db := new(mockDBTX)
	repo := NewAltDataRepository(newTestPG(db))

	row := &mockRow{scanFn: func(dest ...any) error {
		*dest[0].(*int64) = 314
		return nil
	}}
	db.On("QueryRow", mock.Anything, insertDashQuerySQL, []any{"sales", "Weekly sales", "{}", 4}).Return(row)

	id, err := repo.InsertDashQuery(context.Background(), types.AltDataDashQuery{
		QueryName: "sales", QueryDesc: "Weekly sales", Query: "select 1", Aesthetic: "{}", UserID: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(314), id)
}

func TestAltDataRepository_InsertDashViewQuery_PgError(t *testing.T) {
	db := new(mockDBTX)
	repo := NewAltDataRepository(newTestPG(db))

	pgErr := &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
	db.On("QueryRow", mock.Anything, insertDashViewQuerySQL, mock.Anything).Return(&mockRow{scanErr: pgErr})

	_, err := repo.InsertDashViewQuery(context.Background(), 1, 2, 0, true)
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeInternalDB, appErr.Code)
	assert.Equal(t, "InsertDashViewQuery", appErr.Details["operation"])
}
