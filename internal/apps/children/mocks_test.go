package children

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/vaxtrack/vaxtrack-backend/internal/models"
	"github.com/vaxtrack/vaxtrack-backend/internal/services"
	"gorm.io/gorm"
)

var _ Store = (*memStore)(nil)

type memStore struct {
	children     map[uuid.UUID]*models.Child
	vaccinations map[uuid.UUID][]models.Vaccination
	WriteErr     error
}

func newMemStore(children ...*models.Child) *memStore {
	s := &memStore{children: map[uuid.UUID]*models.Child{}, vaccinations: map[uuid.UUID][]models.Vaccination{}}
	for _, c := range children {
		s.children[c.ID] = c
	}
	return s
}

func (s *memStore) ListByParent(_ context.Context, parentID uuid.UUID) ([]models.Child, error) {
	var out []models.Child
	for _, c := range s.children {
		if c.ParentID == parentID && c.IsActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *memStore) FindOwned(_ context.Context, id, parentID uuid.UUID) (*models.Child, error) {
	c, ok := s.children[id]
	if !ok || c.ParentID != parentID || !c.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *memStore) Vaccinations(_ context.Context, childID uuid.UUID) ([]models.Vaccination, error) {
	return s.vaccinations[childID], nil
}

func (s *memStore) Create(_ context.Context, child *models.Child) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.children[child.ID] = child
	return nil
}

func (s *memStore) Save(_ context.Context, child *models.Child) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	cp := *child
	s.children[child.ID] = &cp
	return nil
}

var _ services.MediaStore = (*fakeMedia)(nil)

type fakeMedia struct {
	UploadErr error
	DeleteErr error
	uploads   int
	deleted   []string
}

func (m *fakeMedia) Upload(_ context.Context, file io.Reader, folder string) (models.Asset, error) {
	if m.UploadErr != nil {
		return models.Asset{}, m.UploadErr
	}
	if _, err := io.ReadAll(file); err != nil {
		return models.Asset{}, err
	}
	m.uploads++
	id := folder + "/" + uuid.NewString()
	return models.Asset{URL: "https://media.example/" + id, PublicID: id}, nil
}

func (m *fakeMedia) Delete(_ context.Context, publicID string) error {
	m.deleted = append(m.deleted, publicID)
	return m.DeleteErr
}

var (
	errMediaDown = errors.New("media host unavailable")
	errDBDown    = errors.New("connection refused")
)
