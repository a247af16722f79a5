package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"legalplatform/internal/dto"
	"legalplatform/internal/entity"
	"legalplatform/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const defaultMaxUploadBytes = 100 << 20

// MultipartOverhead covers part headers and boundaries around the file.
const MultipartOverhead = 64 << 10

type DocumentService interface {
	StoreDocument(ctx context.Context, ownerID uuid.UUID, fileName string, contentType string, content []byte) (*entity.Document, error)
	ListDocuments(ctx context.Context, ownerID uuid.UUID) ([]entity.Document, error)
	FetchDocument(ctx context.Context, requesterID uuid.UUID, documentID uuid.UUID) (*service.DocumentContent, error)
}

type DocumentHandler struct {
	Service        DocumentService
	MaxUploadBytes int64
}

func NewDocumentHandler(svc DocumentService, maxUploadBytes int64) *DocumentHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &DocumentHandler{Service: svc, MaxUploadBytes: maxUploadBytes}
}

func (h *DocumentHandler) Upload(c echo.Context) error {
	ownerID, ok := currentAccountID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errUnauthorized)
	}
	limitRequestBody(c, h.MaxUploadBytes)
	upload, err := readUpload(c, "file", h.MaxUploadBytes)
	if err != nil {
		return writeUploadError(c, err)
	}
	document, err := h.Service.StoreDocument(c.Request().Context(), ownerID, upload.name, upload.contentType, upload.data)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, dto.DocumentResponseFromEntity(document))
}

func (h *DocumentHandler) List(c echo.Context) error {
	ownerID, ok := currentAccountID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errUnauthorized)
	}
	documents, err := h.Service.ListDocuments(c.Request().Context(), ownerID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, dto.DocumentResponsesFromEntities(documents))
}

func (h *DocumentHandler) Download(c echo.Context) error {
	requesterID, ok := currentAccountID(c)
	if !ok {
		return writeError(c, http.StatusUnauthorized, errUnauthorized)
	}
	documentID, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	content, err := h.Service.FetchDocument(c.Request().Context(), requesterID, documentID)
	if err != nil {
		return writeServiceError(c, err)
	}
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": content.FileName})
	if disposition != "" {
		c.Response().Header().Set(echo.HeaderContentDisposition, disposition)
	}
	return c.Blob(http.StatusOK, content.ContentType, content.Data)
}

var errUploadTooLarge = errors.New("file exceeds upload limit")

type upload struct {
	name        string
	contentType string
	data        []byte
}

// limitRequestBody caps how much of the request body multipart parsing may
// consume. It must run before anything touches the form.
func limitRequestBody(c echo.Context, limit int64) {
	req := c.Request()
	req.Body = http.MaxBytesReader(c.Response(), req.Body, limit+MultipartOverhead)
}

func readUpload(c echo.Context, field string, limit int64) (*upload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, echo.ErrStatusRequestEntityTooLarge) {
			return nil, errUploadTooLarge
		}
		return nil, fmt.Errorf("multipart field %q: %w", field, err)
	}
	if header.Size > limit {
		return nil, errUploadTooLarge
	}
	data, err := readAllLimited(header, limit)
	if err != nil {
		return nil, err
	}
	return &upload{
		name:        header.Filename,
		contentType: header.Header.Get(echo.HeaderContentType),
		data:        data,
	}, nil
}

func readAllLimited(header *multipart.FileHeader, limit int64) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, errUploadTooLarge
	}
	return data, nil
}

func writeUploadError(c echo.Context, err error) error {
	if errors.Is(err, errUploadTooLarge) {
		return writeError(c, http.StatusRequestEntityTooLarge, err)
	}
	return writeError(c, http.StatusBadRequest, err)
}
