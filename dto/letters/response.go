package letters

import (
	"time"

	"github.com/goyibnazarovasliddin/letters-registery/models"
)

type FileResponse struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	// URL is a time-limited download link, filled in by the handler.
	URL string `json:"url"`
}

type LetterFiles struct {
	Primary     *FileResponse  `json:"primary"`
	Attachments []FileResponse `json:"attachments"`
}

type LetterResponse struct {
	ID              string              `json:"id"`
	LetterNumber    string              `json:"letter_number,omitempty"`
	LetterDate      string              `json:"letter_date"`
	Recipient       string              `json:"recipient"`
	Subject         string              `json:"subject"`
	Summary         string              `json:"summary"`
	LetterPages     int                 `json:"letter_pages"`
	AttachmentPages int                 `json:"attachment_pages"`
	Status          models.LetterStatus `json:"status"`
	IndexID         *string             `json:"index_id"`
	IndexCode       string              `json:"index_code,omitempty"`
	IndexName       string              `json:"index_name,omitempty"`
	UserID          uint                `json:"user_id"`
	UserFullName    string              `json:"user_full_name,omitempty"`
	UserPosition    string              `json:"user_position,omitempty"`
	RegisteredAt    *time.Time          `json:"registered_at"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Files           LetterFiles         `json:"files"`
}

func NewLetterResponse(letter *models.Letter) LetterResponse {
	if letter == nil {
		return LetterResponse{}
	}

	resp := LetterResponse{
		ID:              letter.ID,
		LetterNumber:    letter.LetterNumber,
		LetterDate:      letter.LetterDate,
		Recipient:       letter.Recipient,
		Subject:         letter.Subject,
		Summary:         letter.Content,
		LetterPages:     letter.PageCount,
		AttachmentPages: letter.AttachmentPageCount,
		Status:          letter.Status,
		IndexID:         letter.IndexID,
		UserID:          letter.UserID,
		RegisteredAt:    letter.RegisteredAt,
		CreatedAt:       letter.CreatedAt,
		UpdatedAt:       letter.UpdatedAt,
		Files:           LetterFiles{Attachments: []FileResponse{}},
	}

	if letter.Index != nil {
		resp.IndexCode = letter.Index.Code
		resp.IndexName = letter.Index.Name
	}
	if letter.User != nil {
		resp.UserFullName = letter.User.FullName
		resp.UserPosition = letter.User.Position
	}

	for i := range letter.Files {
		f := &letter.Files[i]
		fr := FileResponse{
			ID:       f.ID,
			FileName: f.FileName,
			MimeType: f.MimeType,
			Size:     f.Size,
			URL:      f.StorageKey,
		}
		if f.Kind == models.FilePrimary && resp.Files.Primary == nil {
			primary := fr
			resp.Files.Primary = &primary
		} else {
			resp.Files.Attachments = append(resp.Files.Attachments, fr)
		}
	}

	return resp
}
