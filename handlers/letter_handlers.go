package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strconv"

	letterdto "github.com/goyibnazarovasliddin/letters-registery/dto/letters"
	"github.com/goyibnazarovasliddin/letters-registery/middleware"
	"github.com/goyibnazarovasliddin/letters-registery/models"
	"github.com/goyibnazarovasliddin/letters-registery/registry"
	"github.com/goyibnazarovasliddin/letters-registery/utils"
	"github.com/goyibnazarovasliddin/letters-registery/utils/events"
	"github.com/goyibnazarovasliddin/letters-registery/utils/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LetterHandler struct {
	svc *registry.Service
}

func NewLetterHandler(db *gorm.DB) *LetterHandler {
	return &LetterHandler{svc: registry.NewService(db)}
}

// POST /api/letters
func (h *LetterHandler) CreateLetter(c *fiber.Ctx) error {
	jsonData := c.FormValue("data")
	if jsonData == "" {
		return utils.ErrorResponse(c, fiber.ErrBadRequest.Code, "form field 'data' (JSON string) is required", nil)
	}

	var req letterdto.CreateLetterRequest
	if err := json.Unmarshal([]byte(jsonData), &req); err != nil {
		return utils.ErrorResponse(c, fiber.ErrBadRequest.Code, "invalid 'data' field (must be a valid JSON string)", err.Error())
	}

	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		return utils.ErrorResponse(c, fiber.ErrBadRequest.Code, "validation error", validationErrors)
	}

	actor, ok := middleware.GetActor(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "authorization context missing", nil)
	}

	files, keys, err := collectUploads(c, actor.UserID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.ErrBadRequest.Code, "file upload error", err.Error())
	}

	letter, err := h.svc.CreateLetter(c.Context(), req.ToInput(files), actor)
	if err != nil {
		cleanupUploads(keys)
		return respondEngineError(c, err, "failed to create letter")
	}

	events.Publish(events.LetterEvent{Type: events.LetterCreated, Letter: *letter, ActorID: actor.UserID})
	if letter.IsRegistered() {
		events.Publish(events.LetterEvent{Type: events.LetterRegistered, Letter: *letter, ActorID: actor.UserID})
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "letter created successfully", presentLetter(letter))
}

// GET /api/letters/:id
func (h *LetterHandler) GetLetterByID(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "authorization context missing", nil)
	}

	letter, err := h.svc.GetLetter(c.Context(), c.Params("id"), actor)
	if err != nil {
		return respondEngineError(c, err, "failed to retrieve letter")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "letter retrieved successfully", presentLetter(letter))
}

// GET /api/letters?page=&limit=&status=&year=&q=
func (h *LetterHandler) ListLetters(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "authorization context missing", nil)
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	year, _ := strconv.Atoi(c.Query("year", "0"))

	status := models.LetterStatus(c.Query("status"))
	if status == "all" || !status.IsValid() {
		status = ""
	}

	filter := registry.ListFilter{
		Status: status,
		Year:   year,
		Query:  c.Query("q"),
		Page:   page,
		Limit:  limit,
	}

	result, err := h.svc.ListLetters(c.Context(), filter, actor)
	if err != nil {
		return respondEngineError(c, err, "failed to retrieve letters")
	}

	responses := make([]letterdto.LetterResponse, 0, len(result.Items))
	for i := range result.Items {
		responses = append(responses, presentLetter(&result.Items[i]))
	}

	meta := utils.PaginationMeta{Page: result.Page, Limit: result.Limit, Total: result.Total}
	return utils.PaginatedResponse(c, fiber.StatusOK, "letters retrieved successfully", responses, meta)
}

// PUT /api/letters/:id
func (h *LetterHandler) UpdateLetter(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "authorization context missing", nil)
	}

	var req letterdto.UpdateLetterRequest
	if jsonData := c.FormValue("data"); jsonData != "" {
		if err := json.Unmarshal([]byte(jsonData), &req); err != nil {
			return utils.ErrorResponse(c, fiber.ErrBadRequest.Code, "invalid 'data' field (must be a valid JSON string)", err.Error())
		}
	} else if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, fiber.ErrBadRequest.Code, "invalid request body", err.Error())
	}

	if validationErrors := req.Validate(); len(validationErrors) > 0 {
		return utils.ErrorResponse(c, fiber.ErrBadRequest.Code, "validation error", validationErrors)
	}

	files, keys, err := collectUploads(c, actor.UserID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.ErrBadRequest.Code, "file upload error", err.Error())
	}

	letter, err := h.svc.UpdateLetter(c.Context(), c.Params("id"), req.ToInput(files), actor)
	if err != nil {
		cleanupUploads(keys)
		return respondEngineError(c, err, "failed to update letter")
	}

	if letter.IsRegistered() {
		events.Publish(events.LetterEvent{Type: events.LetterRegistered, Letter: *letter, ActorID: actor.UserID})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "letter updated successfully", presentLetter(letter))
}

// POST /api/letters/:id/register
func (h *LetterHandler) RegisterLetter(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "authorization context missing", nil)
	}

	letter, err := h.svc.Register(c.Context(), c.Params("id"), actor)
	if err != nil {
		return respondEngineError(c, err, "failed to register letter")
	}

	events.Publish(events.LetterEvent{Type: events.LetterRegistered, Letter: *letter, ActorID: actor.UserID})

	return utils.SuccessResponse(c, fiber.StatusOK, "letter registered successfully", presentLetter(letter))
}

// DELETE /api/letters/:id
func (h *LetterHandler) DeleteLetter(c *fiber.Ctx) error {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "authorization context missing", nil)
	}

	letter, err := h.svc.DeleteLetter(c.Context(), c.Params("id"), actor)
	if err != nil {
		return respondEngineError(c, err, "failed to delete letter")
	}

	for _, f := range letter.Files {
		go func(key string) {
			if err := storage.DeleteFile(context.Background(), key); err != nil {
				log.Printf("Failed to delete S3 object %s during letter deletion: %v", key, err)
			}
		}(f.StorageKey)
	}

	events.Publish(events.LetterEvent{Type: events.LetterDeleted, Letter: *letter, ActorID: actor.UserID})

	return utils.SuccessResponse(c, fiber.StatusOK, "letter deleted successfully", nil)
}

// collectUploads stores the optional primary letter file and any attachments
// in S3 and returns their metadata rows plus the raw keys for cleanup.
func collectUploads(c *fiber.Ctx, userID uint) ([]models.File, []string, error) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		// Not a multipart request; nothing to upload.
		return nil, nil, nil
	}

	var files []models.File
	var keys []string

	if primary := form.File["letter_file"]; len(primary) > 0 {
		fh := primary[0]
		key := fmt.Sprintf("letters/%d/%s%s", userID, uuid.NewString(), filepath.Ext(fh.Filename))
		if _, err := storage.UploadFile(c.Context(), fh, key); err != nil {
			cleanupUploads(keys)
			return nil, nil, err
		}
		keys = append(keys, key)
		files = append(files, models.File{
			Kind:       models.FilePrimary,
			FileName:   fh.Filename,
			MimeType:   fh.Header.Get("Content-Type"),
			Size:       fh.Size,
			StorageKey: key,
		})
	}

	for _, fh := range form.File["attachments"] {
		key := fmt.Sprintf("letters/%d/%s%s", userID, uuid.NewString(), filepath.Ext(fh.Filename))
		if _, err := storage.UploadFile(c.Context(), fh, key); err != nil {
			cleanupUploads(keys)
			return nil, nil, err
		}
		keys = append(keys, key)
		files = append(files, models.File{
			Kind:       models.FileAttachment,
			FileName:   fh.Filename,
			MimeType:   fh.Header.Get("Content-Type"),
			Size:       fh.Size,
			StorageKey: key,
		})
	}

	return files, keys, nil
}

func cleanupUploads(keys []string) {
	for _, key := range keys {
		go storage.DeleteFile(context.Background(), key)
	}
}

// presentLetter maps a letter to its response and swaps stored S3 keys for
// presigned URLs. A failed presign leaves the URL empty rather than failing
// the whole response.
func presentLetter(letter *models.Letter) letterdto.LetterResponse {
	resp := letterdto.NewLetterResponse(letter)

	presign := func(f *letterdto.FileResponse) {
		url, err := storage.GetPresignedURL(f.URL)
		if err != nil {
			log.Printf("Failed to presign URL for key %s: %v", f.URL, err)
			f.URL = ""
			return
		}
		f.URL = url
	}

	if resp.Files.Primary != nil {
		presign(resp.Files.Primary)
	}
	for i := range resp.Files.Attachments {
		presign(&resp.Files.Attachments[i])
	}
	return resp
}

// respondEngineError maps engine sentinels onto stable HTTP codes.
func respondEngineError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "letter not found", nil)
	case errors.Is(err, registry.ErrForbidden):
		return utils.ErrorResponse(c, fiber.StatusForbidden, "you do not have permission for this letter", nil)
	case errors.Is(err, registry.ErrMissingIndex):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "an index must be selected before registration", nil)
	case errors.Is(err, registry.ErrMissingRecipient):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "a recipient is required before registration", nil)
	case errors.Is(err, registry.ErrMissingSubject):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "a subject is required before registration", nil)
	case errors.Is(err, registry.ErrInvalidDate):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid letter date", err.Error())
	case errors.Is(err, registry.ErrInvalidState):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "letter status does not allow this operation", err.Error())
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, fallback, err.Error())
	}
}
