package services

import (
	"testing"

	"reims-http-service/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestKPIService(t *testing.T) (*KPIService, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return &KPIService{
		DB:     db,
		Config: &config.Config{KPIRefreshInterval: 30},
	}, mock
}

func TestRefresh_AggregatesPortfolio(t *testing.T) {
	svc, mock := newTestKPIService(t)

	rows := sqlmock.NewRows([]string{"portfolio_value", "total_count", "occupied_count", "monthly_income"}).
		AddRow(12500000.0, 8, 6, 43200.0)
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(market_value\\),0\\)").WillReturnRows(rows)

	snapshot, err := svc.Refresh()

	require.NoError(t, err)
	assert.Equal(t, "$12.5M", snapshot.CoreKPIs.PortfolioValue.Display)
	assert.Equal(t, 12500000.0, snapshot.CoreKPIs.PortfolioValue.Raw)
	assert.Equal(t, "8", snapshot.CoreKPIs.TotalProperties.Display)
	assert.Equal(t, "6", snapshot.CoreKPIs.OccupiedProperties.Display)
	assert.Equal(t, "75.0%", snapshot.CoreKPIs.OccupancyRate.Display)
	assert.Equal(t, 75.0, snapshot.CoreKPIs.OccupancyRate.Raw)
	assert.Equal(t, "$43.2K", snapshot.CoreKPIs.MonthlyIncome.Display)
	assert.False(t, snapshot.GeneratedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefresh_EmptyPortfolioHasZeroRate(t *testing.T) {
	svc, mock := newTestKPIService(t)

	rows := sqlmock.NewRows([]string{"portfolio_value", "total_count", "occupied_count", "monthly_income"}).
		AddRow(0.0, 0, 0, 0.0)
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(market_value\\),0\\)").WillReturnRows(rows)

	snapshot, err := svc.Refresh()

	require.NoError(t, err)
	assert.Equal(t, "0.0%", snapshot.CoreKPIs.OccupancyRate.Display)
	assert.Equal(t, 0.0, snapshot.CoreKPIs.OccupancyRate.Raw)
	assert.Equal(t, "$0", snapshot.CoreKPIs.PortfolioValue.Display)
}

func TestFormatCurrency(t *testing.T) {
	cases := map[float64]string{
		0:          "$0",
		320:        "$320",
		999:        "$999",
		1000:       "$1.0K",
		850000:     "$850.0K",
		1200000:    "$1.2M",
		12500000:   "$12.5M",
		3400000000: "$3.4B",
	}
	for input, expected := range cases {
		assert.Equal(t, expected, formatCurrency(input), "%v", input)
	}
}
