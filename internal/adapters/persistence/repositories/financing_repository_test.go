package repositories

import (
	"context"
	"testing"

	"revendapro/internal/core/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestFinancingRepository_CountByStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFinancingRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM .financing_proposals. WHERE status = \?`).
		WithArgs("PAID").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(7))

	count, err := repo.CountByStatus(context.Background(), domain.FinancingPaid)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinancingRepository_SumNetProfit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFinancingRepository(db)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(net_profit\), 0\) FROM .financing_proposals. WHERE status = \?`).
		WithArgs("PAID").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(1860000))

	total, err := repo.SumNetProfit(context.Background(), domain.FinancingPaid)
	require.NoError(t, err)
	assert.Equal(t, int64(1860000), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinancingRepository_SumNetProfit_NoRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFinancingRepository(db)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(net_profit\), 0\) FROM .financing_proposals.`).
		WithArgs("PAID").
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(0))

	total, err := repo.SumNetProfit(context.Background(), domain.FinancingPaid)
	require.NoError(t, err)
	assert.Zero(t, total)
}
