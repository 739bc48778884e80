package repository

import (
	"context"
	"regexp"
	"testing"

	"critica/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestReviewRepository_Create_Duplicate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReviewRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "reviews"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_reviews_author_title"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Review{
		Text:     "second opinion",
		Score:    4,
		AuthorID: 1,
		TitleID:  2,
	})

	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
	assert.Contains(t, err.Error(), "already reviewed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_GetForTitle_ScopedToParent(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReviewRepository(db)

	// Review 5 exists, but under title 9, not title 2.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reviews" WHERE id = $1 AND title_id = $2 ORDER BY "reviews"."id" LIMIT $3`)).
		WithArgs(5, 2, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	review, err := repo.GetForTitle(context.Background(), 2, 5)
	require.Error(t, err)
	assert.Nil(t, review)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReviewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "reviews" WHERE "reviews"."id" = $1`)).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Delete(context.Background(), 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "reviews" WHERE "reviews"."id" = $1`)).
			WithArgs(99).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.Delete(context.Background(), 99)
		assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
