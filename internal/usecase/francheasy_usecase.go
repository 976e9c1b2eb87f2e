package usecase

import (
	"context"
	"io"

	"francheasy/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateFrancheasyInput defines the data required to publish a listing.
// Photos are optional and uploaded as part of the create.
type CreateFrancheasyInput struct {
	Title        string
	EBITDA       float64
	StartCapital float64
	OpenStore    float64
	PhoneNumber  string
	Photos       []PhotoUpload
}

// UpdateFrancheasyInput defines the mutable fields of a listing.
type UpdateFrancheasyInput struct {
	Title        string
	EBITDA       float64
	StartCapital float64
	OpenStore    float64
	PhoneNumber  string
}

// PhotoUpload is a single photo file attached to a listing.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// FrancheasyOutput is a listing together with resolved photo download URLs.
// PreviewPhotoURL is the first resolvable photo, empty when there is none.
type FrancheasyOutput struct {
	Francheasy      *entity.Francheasy
	PhotoURLs       []string
	PreviewPhotoURL string
}

// FrancheasyUsecase defines the interface for franchise listing operations.
type FrancheasyUsecase interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateFrancheasyInput) (*FrancheasyOutput, error)
	List(ctx context.Context) ([]*FrancheasyOutput, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*FrancheasyOutput, error)
	Get(ctx context.Context, id uuid.UUID) (*FrancheasyOutput, error)
	Update(ctx context.Context, userID, id uuid.UUID, input UpdateFrancheasyInput) (*entity.Francheasy, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// AddPhotos uploads photo files to blob storage and appends their keys to
	// the listing. Only the listing owner may add photos.
	AddPhotos(ctx context.Context, userID, id uuid.UUID, photos []PhotoUpload) ([]string, error)
}
