package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nichenav/nichenav-api/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	SetRecoveryCode(ctx context.Context, userID uint, code string, sentAt time.Time) error
	IncrementReportsUsed(ctx context.Context, userID uint) error
	ResetReportsUsed(ctx context.Context, plan string) (int64, error)
	FindExpiredPremium(ctx context.Context, now time.Time) ([]models.User, error)
	List(ctx context.Context, query *ListQuery) ([]models.User, int64, error)
	CountByPlan(ctx context.Context, plan string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateKeyError(err, "users_email_key") {
			return errors.New("an account with this email already exists")
		}
		return err
	}
	return nil
}

func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraintName
	}
	return false
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) SetRecoveryCode(ctx context.Context, userID uint, code string, sentAt time.Time) error {
	sentAt = sentAt.UTC()
	u := &models.User{
		RecoveryCode:       &code,
		RecoveryCodeSentAt: &sentAt,
	}
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Select("RecoveryCode", "RecoveryCodeSentAt").
		Updates(u).Error
}

func (r *userRepository) IncrementReportsUsed(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("reports_used", gorm.Expr("reports_used + 1")).Error
}

// ResetReportsUsed zeroes the monthly usage counter for every user on the
// given plan. Returns the number of affected rows.
func (r *userRepository) ResetReportsUsed(ctx context.Context, plan string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("subscription_type = ?", plan).
		Update("reports_used", 0)
	return result.RowsAffected, result.Error
}

func (r *userRepository) FindExpiredPremium(ctx context.Context, now time.Time) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("subscription_type = ?", models.PlanPremium).
		Where("subscription_status = ?", models.SubscriptionActive).
		Where("subscription_end_date IS NOT NULL AND subscription_end_date < ?", now).
		Find(&users).Error
	return users, err
}

func (r *userRepository) List(ctx context.Context, query *ListQuery) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	db := r.db.WithContext(ctx).Model(&models.User{})

	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		db = db.Where("email ILIKE ? OR display_name ILIKE ?", pattern, pattern)
	}
	for key, value := range query.Filters {
		if value == "" {
			continue
		}
		switch key {
		case "subscription_type":
			db = db.Where("subscription_type = ?", value)
		case "role":
			db = db.Where("role = ?", value)
		case "status":
			db = db.Where("status = ?", value)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	dir := "desc"
	if query.SortDir == "asc" {
		dir = "asc"
	}

	err := db.Order(sortBy + " " + dir).
		Offset((query.Page - 1) * query.PerPage).
		Limit(query.PerPage).
		Find(&users).Error

	return users, total, err
}

func (r *userRepository) CountByPlan(ctx context.Context, plan string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("subscription_type = ?", plan).
		Count(&count).Error
	return count, err
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}
