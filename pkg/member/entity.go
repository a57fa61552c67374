package member

import (
	"context"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Member — запись участника команды с фото профиля.
type Member struct {
	ID        uuid.UUID
	Name      string
	Role      string
	Email     string
	Contact   string
	ImageURL  string
	CreatedAt time.Time
}

// Тот же шаблон, что и в схеме хранилища.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// Normalize trims surrounding whitespace and lowercases the email, so
// uniqueness is enforced on the canonical form.
func (m *Member) Normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Role = strings.TrimSpace(m.Role)
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	m.Contact = strings.TrimSpace(m.Contact)
}

// Validate mirrors the store schema constraints and returns one message per
// violated field. Runs right before insert; an empty result means the record
// is storable.
func (m Member) Validate() []string {
	var msgs []string
	if m.Name == "" {
		msgs = append(msgs, "Name is required")
	}
	if m.Role == "" {
		msgs = append(msgs, "Role is required")
	}
	switch {
	case m.Email == "":
		msgs = append(msgs, "Email is required")
	case !emailPattern.MatchString(m.Email):
		msgs = append(msgs, "Please enter a valid email")
	}
	if m.Contact == "" {
		msgs = append(msgs, "Contact number is required")
	}
	if m.ImageURL == "" {
		msgs = append(msgs, "Profile image is required")
	}
	return msgs
}

// ImageUpload — содержимое загружаемого фото профиля.
type ImageUpload struct {
	Filename string
	Size     int64
	Reader   io.Reader
}

// Repository — порт для хранилища участников.
type Repository interface {
	Create(ctx context.Context, m Member) (Member, error)
	List(ctx context.Context) ([]Member, error)
	GetByID(ctx context.Context, id uuid.UUID) (Member, error)
}

// BlobStore persists an uploaded binary and returns its public reference.
type BlobStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// ReadinessProbe reports whether the record store can currently be reached.
type ReadinessProbe interface {
	Ready(ctx context.Context) error
}
