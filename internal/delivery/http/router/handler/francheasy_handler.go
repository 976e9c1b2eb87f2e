package handler

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"francheasy/internal/delivery/http/middleware"
	"francheasy/internal/delivery/http/response"
	domainerrors "francheasy/internal/domain/errors"
	"francheasy/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// FrancheasyHandler holds dependencies for franchise listing handlers.
type FrancheasyHandler struct {
	uc     usecase.FrancheasyUsecase
	logger *slog.Logger
}

// NewFrancheasyHandler is the constructor for FrancheasyHandler, injected by Fx.
func NewFrancheasyHandler(uc usecase.FrancheasyUsecase, logger *slog.Logger) *FrancheasyHandler {
	return &FrancheasyHandler{uc: uc, logger: logger}
}

type francheasyRequest struct {
	Title        string  `json:"title" form:"title" validate:"required"`
	EBITDA       float64 `json:"ebitda" form:"ebitda"`
	StartCapital float64 `json:"start_capital" form:"start_capital"`
	OpenStore    float64 `json:"open_store" form:"open_store"`
	PhoneNumber  string  `json:"phone_number" form:"phone_number"`
}

type francheasyResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Title           string    `json:"title"`
	EBITDA          float64   `json:"ebitda"`
	StartCapital    float64   `json:"start_capital"`
	OpenStore       float64   `json:"open_store"`
	PhoneNumber     string    `json:"phone_number"`
	PhotoURLs       []string  `json:"photo_urls"`
	PreviewPhotoURL string    `json:"preview_photo_url"`
	CreatedAt       time.Time `json:"created_at"`
}

// Create publishes a new franchise listing. The body is either JSON or a
// multipart form whose "photos" files are uploaded as part of the create.
func (h *FrancheasyHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	var req francheasyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid listing input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := usecase.CreateFrancheasyInput{
		Title:        req.Title,
		EBITDA:       req.EBITDA,
		StartCapital: req.StartCapital,
		OpenStore:    req.OpenStore,
		PhoneNumber:  req.PhoneNumber,
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		uploads, closeFiles, err := openUploads(form.File["photos"])
		if err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Failed to read photo files")
		}
		defer closeFiles()
		input.Photos = uploads
	}

	output, err := h.uc.Create(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toFrancheasyResponse(output), "Listing created successfully")
}

// List returns the whole listing catalog.
func (h *FrancheasyHandler) List(c echo.Context) error {
	outputs, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toFrancheasyResponses(outputs), "")
}

// ListMine returns the authenticated user's listings.
func (h *FrancheasyHandler) ListMine(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	outputs, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toFrancheasyResponses(outputs), "")
}

// Get returns a single listing with resolved photo URLs.
func (h *FrancheasyHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	output, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toFrancheasyResponse(output), "")
}

// Update replaces the mutable fields of an owned listing.
func (h *FrancheasyHandler) Update(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req francheasyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid listing input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	listing, err := h.uc.Update(c.Request().Context(), userID, id, usecase.UpdateFrancheasyInput{
		Title:        req.Title,
		EBITDA:       req.EBITDA,
		StartCapital: req.StartCapital,
		OpenStore:    req.OpenStore,
		PhoneNumber:  req.PhoneNumber,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toFrancheasyResponse(&usecase.FrancheasyOutput{
		Francheasy: listing,
		PhotoURLs:  []string{},
	}), "Listing updated successfully")
}

// Delete removes an owned listing.
func (h *FrancheasyHandler) Delete(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), userID, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AddPhotos uploads multipart photo files and attaches them to an owned listing.
func (h *FrancheasyHandler) AddPhotos(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Missing authentication")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Expected multipart form with photo files")
	}

	files := form.File["photos"]
	uploads, closeFiles, err := openUploads(files)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Failed to read photo files")
	}
	defer closeFiles()

	keys, err := h.uc.AddPhotos(c.Request().Context(), userID, id, uploads)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{"photo_keys": keys}, "Photos uploaded successfully")
}

func openUploads(files []*multipart.FileHeader) ([]usecase.PhotoUpload, func(), error) {
	uploads := make([]usecase.PhotoUpload, 0, len(files))
	opened := make([]multipart.File, 0, len(files))
	closeFiles := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			closeFiles()

			return nil, nil, err
		}
		opened = append(opened, file)
		uploads = append(uploads, usecase.PhotoUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
		})
	}

	return uploads, closeFiles, nil
}

func parseIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WrapMessage("invalid id parameter")
	}

	return id, nil
}

func toFrancheasyResponses(outputs []*usecase.FrancheasyOutput) []francheasyResponse {
	responses := make([]francheasyResponse, 0, len(outputs))
	for _, output := range outputs {
		responses = append(responses, toFrancheasyResponse(output))
	}

	return responses
}

func toFrancheasyResponse(output *usecase.FrancheasyOutput) francheasyResponse {
	listing := output.Francheasy
	urls := output.PhotoURLs
	if urls == nil {
		urls = []string{}
	}

	return francheasyResponse{
		ID:              listing.ID.String(),
		UserID:          listing.UserID.String(),
		Title:           listing.Title,
		EBITDA:          listing.EBITDA,
		StartCapital:    listing.StartCapital,
		OpenStore:       listing.OpenStore,
		PhoneNumber:     listing.PhoneNumber,
		PhotoURLs:       urls,
		PreviewPhotoURL: output.PreviewPhotoURL,
		CreatedAt:       listing.CreatedAt,
	}
}
