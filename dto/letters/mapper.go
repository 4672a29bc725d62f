package letters

import (
	"strings"

	"github.com/goyibnazarovasliddin/letters-registery/models"
	"github.com/goyibnazarovasliddin/letters-registery/registry"
)

func (r *CreateLetterRequest) ToInput(files []models.File) registry.CreateLetterInput {
	return registry.CreateLetterInput{
		LetterDate:          strings.TrimSpace(r.LetterDate),
		Recipient:           strings.TrimSpace(r.Recipient),
		Subject:             strings.TrimSpace(r.Subject),
		Content:             r.Summary,
		PageCount:           r.LetterPages,
		AttachmentPageCount: r.AttachmentPages,
		IndexID:             r.IndexID,
		Status:              r.Status,
		Files:               files,
	}
}

func (r *UpdateLetterRequest) ToInput(files []models.File) registry.UpdateLetterInput {
	in := registry.UpdateLetterInput{
		Recipient:           r.Recipient,
		Subject:             r.Subject,
		Content:             r.Summary,
		PageCount:           r.LetterPages,
		AttachmentPageCount: r.AttachmentPages,
		IndexID:             r.IndexID,
		Status:              r.Status,
		Files:               files,
	}
	if r.LetterDate != nil {
		date := strings.TrimSpace(*r.LetterDate)
		in.LetterDate = &date
	}
	return in
}
