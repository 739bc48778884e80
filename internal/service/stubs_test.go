package service

import (
	"context"
	"testing"

	"critica/internal/models"
	"critica/internal/policy"
	"critica/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, models.ErrorCode(err))
}

func anonCaller() policy.Caller { return policy.Caller{} }

func userCaller(id uint) policy.Caller {
	return policy.Caller{Authenticated: true, UserID: id, Role: models.RoleUser}
}

func moderatorCaller(id uint) policy.Caller {
	return policy.Caller{Authenticated: true, UserID: id, Role: models.RoleModerator}
}

func adminCaller(id uint) policy.Caller {
	return policy.Caller{Authenticated: true, UserID: id, Role: models.RoleAdmin}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn        func(context.Context, uint) (*models.User, error)
	getByUsernameFn  func(context.Context, string) (*models.User, error)
	getByEmailFn     func(context.Context, string) (*models.User, error)
	createFn         func(context.Context, *models.User) error
	updateFn         func(context.Context, *models.User) error
	deleteFn         func(context.Context, string) error
	listFn           func(context.Context, string, int, int) ([]models.User, int64, error)
	regenerateCodeFn func(context.Context, string, string, string) (*models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) DeleteByUsername(ctx context.Context, username string) error {
	return s.deleteFn(ctx, username)
}
func (s *userRepoStub) List(ctx context.Context, search string, limit, offset int) ([]models.User, int64, error) {
	return s.listFn(ctx, search, limit, offset)
}
func (s *userRepoStub) RegenerateConfirmationCode(ctx context.Context, username, email, code string) (*models.User, error) {
	return s.regenerateCodeFn(ctx, username, email, code)
}

func emptyUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(_ context.Context, id uint) (*models.User, error) { return nil, models.NewNotFoundError("User", id) },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ string) error { return nil },
		listFn:          func(_ context.Context, _ string, _, _ int) ([]models.User, int64, error) { return nil, 0, nil },
		regenerateCodeFn: func(_ context.Context, _, _, _ string) (*models.User, error) {
			return nil, nil
		},
	}
}

// mailerStub records sent messages instead of talking to SMTP.
type mailerStub struct {
	sent   []sentMail
	sendFn func(context.Context, string, string, string) error
}

type sentMail struct {
	To       string
	Username string
	Code     string
}

func (m *mailerStub) SendConfirmationCode(ctx context.Context, to, username, code string) error {
	if m.sendFn != nil {
		if err := m.sendFn(ctx, to, username, code); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, sentMail{To: to, Username: username, Code: code})
	return nil
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	listFn      func(context.Context, string, int, int) ([]models.Category, int64, error)
	getBySlugFn func(context.Context, string) (*models.Category, error)
	createFn    func(context.Context, *models.Category) error
	deleteFn    func(context.Context, string) error
}

func (s *categoryRepoStub) List(ctx context.Context, search string, limit, offset int) ([]models.Category, int64, error) {
	return s.listFn(ctx, search, limit, offset)
}
func (s *categoryRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) DeleteBySlug(ctx context.Context, slug string) error {
	return s.deleteFn(ctx, slug)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		listFn:      func(_ context.Context, _ string, _, _ int) ([]models.Category, int64, error) { return nil, 0, nil },
		getBySlugFn: func(_ context.Context, _ string) (*models.Category, error) { return nil, nil },
		createFn:    func(_ context.Context, _ *models.Category) error { return nil },
		deleteFn:    func(_ context.Context, _ string) error { return nil },
	}
}

// genreRepoStub is a stub for repository.GenreRepository.
type genreRepoStub struct {
	listFn       func(context.Context, string, int, int) ([]models.Genre, int64, error)
	getBySlugFn  func(context.Context, string) (*models.Genre, error)
	getBySlugsFn func(context.Context, []string) ([]models.Genre, error)
	createFn     func(context.Context, *models.Genre) error
	deleteFn     func(context.Context, string) error
}

func (s *genreRepoStub) List(ctx context.Context, search string, limit, offset int) ([]models.Genre, int64, error) {
	return s.listFn(ctx, search, limit, offset)
}
func (s *genreRepoStub) GetBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	return s.getBySlugFn(ctx, slug)
}
func (s *genreRepoStub) GetBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	return s.getBySlugsFn(ctx, slugs)
}
func (s *genreRepoStub) Create(ctx context.Context, genre *models.Genre) error {
	return s.createFn(ctx, genre)
}
func (s *genreRepoStub) DeleteBySlug(ctx context.Context, slug string) error {
	return s.deleteFn(ctx, slug)
}

func noopGenreRepo() *genreRepoStub {
	return &genreRepoStub{
		listFn:       func(_ context.Context, _ string, _, _ int) ([]models.Genre, int64, error) { return nil, 0, nil },
		getBySlugFn:  func(_ context.Context, _ string) (*models.Genre, error) { return nil, nil },
		getBySlugsFn: func(_ context.Context, _ []string) ([]models.Genre, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.Genre) error { return nil },
		deleteFn:     func(_ context.Context, _ string) error { return nil },
	}
}

// titleRepoStub is a stub for repository.TitleRepository.
type titleRepoStub struct {
	listFn          func(context.Context, repository.TitleFilter, int, int) ([]models.Title, int64, error)
	getByIDFn       func(context.Context, uint) (*models.Title, error)
	createFn        func(context.Context, *models.Title) error
	updateFn        func(context.Context, *models.Title) error
	deleteFn        func(context.Context, uint) error
	replaceGenresFn func(context.Context, *models.Title, []models.Genre) error
}

func (s *titleRepoStub) List(ctx context.Context, filter repository.TitleFilter, limit, offset int) ([]models.Title, int64, error) {
	return s.listFn(ctx, filter, limit, offset)
}
func (s *titleRepoStub) GetByID(ctx context.Context, id uint) (*models.Title, error) {
	return s.getByIDFn(ctx, id)
}
func (s *titleRepoStub) Create(ctx context.Context, title *models.Title) error {
	return s.createFn(ctx, title)
}
func (s *titleRepoStub) Update(ctx context.Context, title *models.Title) error {
	return s.updateFn(ctx, title)
}
func (s *titleRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *titleRepoStub) ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error {
	return s.replaceGenresFn(ctx, title, genres)
}

func noopTitleRepo() *titleRepoStub {
	return &titleRepoStub{
		listFn: func(_ context.Context, _ repository.TitleFilter, _, _ int) ([]models.Title, int64, error) {
			return nil, 0, nil
		},
		getByIDFn:       func(_ context.Context, id uint) (*models.Title, error) { return &models.Title{ID: id}, nil },
		createFn:        func(_ context.Context, _ *models.Title) error { return nil },
		updateFn:        func(_ context.Context, _ *models.Title) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		replaceGenresFn: func(_ context.Context, _ *models.Title, _ []models.Genre) error { return nil },
	}
}

// reviewRepoStub is a stub for repository.ReviewRepository.
type reviewRepoStub struct {
	listByTitleFn func(context.Context, uint, int, int) ([]models.Review, int64, error)
	getForTitleFn func(context.Context, uint, uint) (*models.Review, error)
	createFn      func(context.Context, *models.Review) error
	updateFn      func(context.Context, *models.Review) error
	deleteFn      func(context.Context, uint) error
}

func (s *reviewRepoStub) ListByTitle(ctx context.Context, titleID uint, limit, offset int) ([]models.Review, int64, error) {
	return s.listByTitleFn(ctx, titleID, limit, offset)
}
func (s *reviewRepoStub) GetForTitle(ctx context.Context, titleID, reviewID uint) (*models.Review, error) {
	return s.getForTitleFn(ctx, titleID, reviewID)
}
func (s *reviewRepoStub) Create(ctx context.Context, review *models.Review) error {
	return s.createFn(ctx, review)
}
func (s *reviewRepoStub) Update(ctx context.Context, review *models.Review) error {
	return s.updateFn(ctx, review)
}
func (s *reviewRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopReviewRepo() *reviewRepoStub {
	return &reviewRepoStub{
		listByTitleFn: func(_ context.Context, _ uint, _, _ int) ([]models.Review, int64, error) {
			return nil, 0, nil
		},
		getForTitleFn: func(_ context.Context, titleID, reviewID uint) (*models.Review, error) {
			return &models.Review{ID: reviewID, TitleID: titleID}, nil
		},
		createFn: func(_ context.Context, _ *models.Review) error { return nil },
		updateFn: func(_ context.Context, _ *models.Review) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	listByReviewFn func(context.Context, uint, int, int) ([]models.Comment, int64, error)
	getForReviewFn func(context.Context, uint, uint) (*models.Comment, error)
	createFn       func(context.Context, *models.Comment) error
	updateFn       func(context.Context, *models.Comment) error
	deleteFn       func(context.Context, uint) error
}

func (s *commentRepoStub) ListByReview(ctx context.Context, reviewID uint, limit, offset int) ([]models.Comment, int64, error) {
	return s.listByReviewFn(ctx, reviewID, limit, offset)
}
func (s *commentRepoStub) GetForReview(ctx context.Context, reviewID, commentID uint) (*models.Comment, error) {
	return s.getForReviewFn(ctx, reviewID, commentID)
}
func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		listByReviewFn: func(_ context.Context, _ uint, _, _ int) ([]models.Comment, int64, error) {
			return nil, 0, nil
		},
		getForReviewFn: func(_ context.Context, reviewID, commentID uint) (*models.Comment, error) {
			return &models.Comment{ID: commentID, ReviewID: reviewID}, nil
		},
		createFn: func(_ context.Context, _ *models.Comment) error { return nil },
		updateFn: func(_ context.Context, _ *models.Comment) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}
