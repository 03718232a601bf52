package clinics

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"gorm.io/gorm"
)

// memStore mimics the database: nearby filtering happens here, as in Postgres.
type memStore struct {
	clinics map[uuid.UUID]*models.Clinic
	reviews []models.ClinicReview
}

func newMemStore(clinics ...*models.Clinic) *memStore {
	s := &memStore{clinics: map[uuid.UUID]*models.Clinic{}}
	for _, c := range clinics {
		s.clinics[c.ID] = c
	}
	return s
}

func (s *memStore) List(_ context.Context, _, _ string) ([]models.Clinic, error) {
	var out []models.Clinic
	for _, c := range s.clinics {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *memStore) Nearby(_ context.Context, lng, lat, maxMeters float64, limit int) ([]models.Clinic, error) {
	var out []models.Clinic
	for _, c := range s.clinics {
		if c.IsActive && haversineKm(lng, lat, c.Longitude, c.Latitude)*1000 <= maxMeters {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return haversineKm(lng, lat, out[i].Longitude, out[i].Latitude) < haversineKm(lng, lat, out[j].Longitude, out[j].Latitude)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) FindActive(_ context.Context, id uuid.UUID) (*models.Clinic, error) {
	c, ok := s.clinics[id]
	if !ok || !c.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	for _, r := range s.reviews {
		if r.ClinicID == id {
			cp.Reviews = append(cp.Reviews, r)
		}
	}
	return &cp, nil
}

func (s *memStore) Create(_ context.Context, clinic *models.Clinic) error {
	s.clinics[clinic.ID] = clinic
	return nil
}

func (s *memStore) AddReview(_ context.Context, review *models.ClinicReview) error {
	c, ok := s.clinics[review.ClinicID]
	if !ok || !c.IsActive {
		return gorm.ErrRecordNotFound
	}
	for _, r := range s.reviews {
		if r.ClinicID == review.ClinicID && r.UserID == review.UserID {
			return ErrDuplicateReview
		}
	}
	s.reviews = append(s.reviews, *review)
	c.Rating.Average = nextAverage(c.Rating.Average, c.Rating.Count, review.Rating)
	c.Rating.Count++
	return nil
}

// nextAverage is the in-memory form of the aggregate UPDATE issued by
// gormStore.AddReview (see TestAddReviewUpdatesAggregateInPlace).
func nextAverage(avg float64, count, rating int) float64 {
	return (avg*float64(count) + float64(rating)) / float64(count+1)
}

func clinicAt(name string, lng, lat float64) *models.Clinic {
	return &models.Clinic{
		ID:        uuid.New(),
		Name:      name,
		Longitude: lng,
		Latitude:  lat,
		IsActive:  true,
		Reviews:   []models.ClinicReview{{ID: uuid.New(), Rating: 5}},
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// Nairobi CBD to Jomo Kenyatta airport.
	d := haversineKm(36.8219, -1.2921, 36.9278, -1.3192)
	assert.InDelta(t, 12.15, d, 0.01)
	assert.Zero(t, haversineKm(36.82, -1.29, 36.82, -1.29))
}

func TestNearbyFiltersOrdersAndStripsReviews(t *testing.T) {
	near := clinicAt("Near", 36.821, -1.291)
	mid := clinicAt("Mid", 36.84, -1.30)
	far := clinicAt("Far", 36.95, -1.40)
	inactive := clinicAt("Closed", 36.8201, -1.2901)
	inactive.IsActive = false
	svc := NewClinicService(newMemStore(near, mid, far, inactive))

	resp, err := svc.Nearby(context.Background(), 36.82, -1.29, 5000)
	require.NoError(t, err)

	require.Equal(t, 2, resp.Results)
	assert.Equal(t, "Near", resp.Clinics[0].Name)
	assert.Equal(t, "Mid", resp.Clinics[1].Name)
	assert.LessOrEqual(t, resp.Clinics[0].Distance, resp.Clinics[1].Distance)
	for _, c := range resp.Clinics {
		assert.LessOrEqual(t, c.Distance, 5.0)
		assert.Nil(t, c.Reviews)
		assert.Equal(t, round2(c.Distance), c.Distance)
	}
}

func TestNearbyCapsResults(t *testing.T) {
	var list []*models.Clinic
	for i := 0; i < 30; i++ {
		list = append(list, clinicAt("C", 36.82+float64(i)*0.0001, -1.29))
	}
	svc := NewClinicService(newMemStore(list...))

	resp, err := svc.Nearby(context.Background(), 36.82, -1.29, 5000)
	require.NoError(t, err)
	assert.Equal(t, nearbyLimit, resp.Results)
}

func TestNearbyPayloadHasNoReviews(t *testing.T) {
	app := fiber.New()
	app.Get("/clinics/nearby", NewClinicHandler(NewClinicService(newMemStore(clinicAt("Near", 36.821, -1.291)))).Nearby)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/clinics/nearby?longitude=36.82&latitude=-1.29&maxDistance=5000", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	var out struct {
		Clinics []map[string]interface{} `json:"clinics"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out.Clinics, 1)
	assert.NotContains(t, out.Clinics[0], "reviews")
	assert.Contains(t, out.Clinics[0], "distance")

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/clinics/nearby?latitude=-1.29", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAverageRatingIsMeanOfReviews(t *testing.T) {
	clinic := clinicAt("Rated", 36.82, -1.29)
	clinic.Reviews = nil
	store := newMemStore(clinic)
	svc := NewClinicService(store)

	ratings := []int{5, 3, 4, 1, 2, 5}
	sum := 0
	for i, r := range ratings {
		sum += r
		updated, err := svc.Review(context.Background(), uuid.New(), clinic.ID, &ReviewRequest{Rating: r})
		require.NoError(t, err)
		assert.Equal(t, i+1, updated.Rating.Count)
		assert.InDelta(t, float64(sum)/float64(i+1), updated.Rating.Average, 1e-9)
		assert.Len(t, updated.Reviews, i+1)
	}
}

func TestDuplicateReviewRejected(t *testing.T) {
	clinic := clinicAt("Rated", 36.82, -1.29)
	svc := NewClinicService(newMemStore(clinic))
	user := uuid.New()

	_, err := svc.Review(context.Background(), user, clinic.ID, &ReviewRequest{Rating: 4})
	require.NoError(t, err)
	_, err = svc.Review(context.Background(), user, clinic.ID, &ReviewRequest{Rating: 1})
	assert.ErrorIs(t, err, ErrDuplicateReview)
	assert.Equal(t, 1, clinic.Rating.Count)
}

func TestReviewUnknownClinic(t *testing.T) {
	svc := NewClinicService(newMemStore())
	_, err := svc.Review(context.Background(), uuid.New(), uuid.New(), &ReviewRequest{Rating: 4})
	assert.ErrorIs(t, err, ErrClinicNotFound)
}
