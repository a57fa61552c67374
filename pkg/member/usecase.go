package member

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// CreateInput — текстовые поля формы создания участника.
type CreateInput struct {
	Name    string
	Role    string
	Email   string
	Contact string
}

// UseCase инкапсулирует создание и чтение участников.
type UseCase interface {
	Create(ctx context.Context, in CreateInput, image *ImageUpload) (Member, error)
	List(ctx context.Context) ([]Member, error)
	GetByID(ctx context.Context, id string) (Member, error)
}

type service struct {
	repo  Repository
	blobs BlobStore
	probe ReadinessProbe
}

func NewService(repo Repository, blobs BlobStore, probe ReadinessProbe) UseCase {
	return &service{repo: repo, blobs: blobs, probe: probe}
}

// Create runs the cheap checks first (store readiness, image presence, field
// presence), then writes the image blob and only after that the record, since
// the record embeds the blob reference.
func (s *service) Create(ctx context.Context, in CreateInput, image *ImageUpload) (Member, error) {
	if err := s.probe.Ready(ctx); err != nil {
		return Member{}, ErrStoreUnavailable
	}
	if image == nil || image.Reader == nil {
		return Member{}, ErrMissingImage
	}
	if missing := missingFields(in); len(missing) > 0 {
		return Member{}, &MissingFieldsError{Fields: missing}
	}

	ref, err := s.blobs.Save(ctx, image.Filename, image.Reader)
	if err != nil {
		return Member{}, &StoreError{Err: err}
	}

	m := Member{
		ID:       uuid.New(),
		Name:     in.Name,
		Role:     in.Role,
		Email:    in.Email,
		Contact:  in.Contact,
		ImageURL: ref,
	}
	m.Normalize()

	// If the record write fails here the blob stays orphaned on disk; there
	// is no compensating delete (see DESIGN.md).
	saved, err := s.repo.Create(ctx, m)
	if err != nil {
		return Member{}, err
	}
	return saved, nil
}

func (s *service) List(ctx context.Context) ([]Member, error) {
	return s.repo.List(ctx)
}

// GetByID treats a malformed identifier the same as an absent one: an id
// that cannot exist matches nothing.
func (s *service) GetByID(ctx context.Context, id string) (Member, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return Member{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, uid)
}

func missingFields(in CreateInput) []string {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"name", in.Name},
		{"role", in.Role},
		{"email", in.Email},
		{"contact", in.Contact},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
