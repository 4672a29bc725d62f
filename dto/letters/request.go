package letters

import (
	"strings"
	"time"

	"github.com/goyibnazarovasliddin/letters-registery/models"
)

type CreateLetterRequest struct {
	LetterDate      string              `json:"letter_date"`
	Recipient       string              `json:"recipient"`
	Subject         string              `json:"subject"`
	Summary         string              `json:"summary"`
	LetterPages     int                 `json:"letter_pages"`
	AttachmentPages int                 `json:"attachment_pages"`
	IndexID         *string             `json:"index_id"`
	Status          models.LetterStatus `json:"status"`
}

type UpdateLetterRequest struct {
	LetterDate      *string              `json:"letter_date"`
	Recipient       *string              `json:"recipient"`
	Subject         *string              `json:"subject"`
	Summary         *string              `json:"summary"`
	LetterPages     *int                 `json:"letter_pages"`
	AttachmentPages *int                 `json:"attachment_pages"`
	IndexID         *string              `json:"index_id"`
	Status          *models.LetterStatus `json:"status"`
}

func (r *CreateLetterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if d := strings.TrimSpace(r.LetterDate); d != "" {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			errors["letter_date"] = "letter_date must be YYYY-MM-DD"
		}
	}
	if r.Status != "" && !r.Status.IsValid() {
		errors["status"] = "status must be DRAFT or REGISTERED"
	}
	if r.LetterPages < 0 {
		errors["letter_pages"] = "letter_pages must not be negative"
	}
	if r.AttachmentPages < 0 {
		errors["attachment_pages"] = "attachment_pages must not be negative"
	}

	return errors
}

func (r *UpdateLetterRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.LetterDate != nil {
		if _, err := time.Parse("2006-01-02", strings.TrimSpace(*r.LetterDate)); err != nil {
			errors["letter_date"] = "letter_date must be YYYY-MM-DD"
		}
	}
	if r.Status != nil && !r.Status.IsValid() {
		errors["status"] = "status must be DRAFT or REGISTERED"
	}
	if r.LetterPages != nil && *r.LetterPages < 0 {
		errors["letter_pages"] = "letter_pages must not be negative"
	}
	if r.AttachmentPages != nil && *r.AttachmentPages < 0 {
		errors["attachment_pages"] = "attachment_pages must not be negative"
	}

	return errors
}
