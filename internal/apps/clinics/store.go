package clinics

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/identity"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"gorm.io/gorm"
)

var ErrDuplicateReview = errors.New("you have already reviewed this clinic")

type Store interface {
	List(ctx context.Context, search, service string) ([]models.Clinic, error)
	Nearby(ctx context.Context, lng, lat, maxMeters float64, limit int) ([]models.Clinic, error)
	FindActive(ctx context.Context, id uuid.UUID) (*models.Clinic, error)
	Create(ctx context.Context, clinic *models.Clinic) error
	AddReview(ctx context.Context, review *models.ClinicReview) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) List(ctx context.Context, search, service string) ([]models.Clinic, error) {
	q := s.db.WithContext(ctx).Scopes(identity.Active)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR address_city ILIKE ? OR address_full_address ILIKE ?", like, like, like)
	}
	if service != "" {
		q = q.Where("? = ANY(services)", service)
	}

	var list []models.Clinic
	err := q.Order("rating_average DESC").Find(&list).Error
	return list, err
}

// nearbySQL orders active clinics by haversine distance in meters and keeps
// those within the radius.
const nearbySQL = `
SELECT * FROM (
	SELECT clinics.*,
		6371000 * 2 * ASIN(SQRT(
			POWER(SIN(RADIANS(latitude - @lat) / 2), 2) +
			COS(RADIANS(@lat)) * COS(RADIANS(latitude)) * POWER(SIN(RADIANS(longitude - @lng) / 2), 2)
		)) AS distance_m
	FROM clinics
	WHERE is_active = true
) AS ranked
WHERE distance_m <= @max
ORDER BY distance_m ASC
LIMIT @limit`

func (s *gormStore) Nearby(ctx context.Context, lng, lat, maxMeters float64, limit int) ([]models.Clinic, error) {
	var list []models.Clinic
	err := s.db.WithContext(ctx).Raw(nearbySQL, map[string]interface{}{
		"lat":   lat,
		"lng":   lng,
		"max":   maxMeters,
		"limit": limit,
	}).Scan(&list).Error
	return list, err
}

func (s *gormStore) FindActive(ctx context.Context, id uuid.UUID) (*models.Clinic, error) {
	var clinic models.Clinic
	err := s.db.WithContext(ctx).
		Scopes(identity.Active).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Where("id = ?", id).
		First(&clinic).Error
	if err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (s *gormStore) Create(ctx context.Context, clinic *models.Clinic) error {
	return s.db.WithContext(ctx).Create(clinic).Error
}

// AddReview inserts the review and folds its rating into the clinic aggregate
// in one transaction. The aggregate is updated in place so concurrent reviews
// cannot lose each other's contribution.
func (s *gormStore) AddReview(ctx context.Context, review *models.ClinicReview) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var clinic models.Clinic
		if err := tx.Scopes(identity.Active).Where("id = ?", review.ClinicID).First(&clinic).Error; err != nil {
			return err
		}

		if err := tx.Create(review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateReview
			}
			return err
		}

		return tx.Model(&models.Clinic{}).
			Where("id = ?", review.ClinicID).
			UpdateColumns(map[string]interface{}{
				"rating_average": gorm.Expr("(rating_average * rating_count + ?) / (rating_count + 1)", review.Rating),
				"rating_count":   gorm.Expr("rating_count + 1"),
			}).Error
	})
}
