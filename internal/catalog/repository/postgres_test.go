package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return NewPGRepository(sqlx.NewDb(mockDB, "postgres")), mock
}

func listingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "publisher_id", "title", "author", "illustrator",
		"cost", "price", "cover_url", "synopsis", "publisher_name", "available",
	})
}

func TestFindAvailableFiltersZeroLedgerSum(t *testing.T) {
	repo, mock := newMock(t)

	// A sold-out book must never reach the listing, so the query itself has
	// to carry the positive-sum filter.
	mock.ExpectQuery(regexp.QuoteMeta(`HAVING COALESCE(SUM(s.quantity), 0) > 0`)).
		WillReturnRows(listingRows().
			AddRow("book-a", "pub-1", "El Principito", "Saint-Exupery", nil,
				"120.00", "250.00", nil, nil, "Salamandra", 3))

	listings, err := repo.FindAvailable(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "El Principito", listings[0].Title)
	assert.Equal(t, 3, listings[0].Available)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAvailableAppliesQueryFilter(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`ILIKE`).
		WithArgs("%principito%").
		WillReturnRows(listingRows())

	_, err := repo.FindAvailable(context.Background(), "principito")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAvailableByIDsOrdersByTitle(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY b.title`)).
		WithArgs("book-b", "book-a").
		WillReturnRows(listingRows().
			AddRow("book-a", "pub-1", "El Principito", "Saint-Exupery", nil,
				"120.00", "250.00", nil, nil, "Salamandra", 3).
			AddRow("book-b", "pub-1", "Rayuela", "Cortazar", nil,
				"100.00", "180.00", nil, nil, "Sudamericana", 5))

	listings, err := repo.FindAvailableByIDs(context.Background(), []string{"book-b", "book-a"})

	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "El Principito", listings[0].Title)
	assert.Equal(t, "Rayuela", listings[1].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAvailableByIDsEmptyInput(t *testing.T) {
	repo, mock := newMock(t)

	listings, err := repo.FindAvailableByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, listings)
	assert.NoError(t, mock.ExpectationsWereMet())
}
