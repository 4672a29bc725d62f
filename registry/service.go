package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goyibnazarovasliddin/letters-registery/models"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Actor identifies who is performing an operation. Ownership checks compare
// UserID; admins override them.
type Actor struct {
	UserID uint
	Role   models.Role
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// Service is the letter registration engine: creation, draft updates, the
// registration transition with its sequence allocation, and reconciled reads.
type Service struct {
	db *gorm.DB

	// now is swappable in tests.
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

type CreateLetterInput struct {
	LetterDate          string
	Recipient           string
	Subject             string
	Content             string
	PageCount           int
	AttachmentPageCount int
	IndexID             *string
	// Status may be DRAFT (default) or REGISTERED. Requesting REGISTERED
	// persists the draft first and then runs the registration transaction,
	// so both paths share identical allocation semantics and failures.
	Status models.LetterStatus

	Files []models.File
}

type UpdateLetterInput struct {
	LetterDate          *string
	Recipient           *string
	Subject             *string
	Content             *string
	PageCount           *int
	AttachmentPageCount *int
	IndexID             *string
	Status              *models.LetterStatus

	Files []models.File
}

// ListFilter narrows ListLetters. Zero values mean "no filter"; pagination
// falls back to page 1 / limit 10.
type ListFilter struct {
	Status models.LetterStatus
	Year   int
	Query  string
	Page   int
	Limit  int
}

type LetterPage struct {
	Items []models.Letter
	Total int64
	Page  int
	Limit int
}

// CreateLetter persists a new letter owned by the actor. Inactive or deleted
// accounts may not create letters.
func (s *Service) CreateLetter(ctx context.Context, in CreateLetterInput, actor Actor) (*models.Letter, error) {
	db := s.db.WithContext(ctx)

	var creator models.User
	if err := db.First(&creator, actor.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown user", ErrForbidden)
		}
		return nil, fmt.Errorf("load creator: %w", err)
	}
	if !creator.IsActive() {
		return nil, fmt.Errorf("%w: account is not active", ErrForbidden)
	}

	target := in.Status
	if target == "" {
		target = models.StatusDraft
	}
	if !target.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidState, in.Status)
	}

	date, err := s.normalizeDate(db, in.LetterDate)
	if err != nil {
		return nil, err
	}

	letter := models.Letter{
		LetterDate:          date,
		Recipient:           strings.TrimSpace(in.Recipient),
		Subject:             strings.TrimSpace(in.Subject),
		Content:             in.Content,
		PageCount:           in.PageCount,
		AttachmentPageCount: in.AttachmentPageCount,
		Status:              models.StatusDraft,
		IndexID:             in.IndexID,
		UserID:              actor.UserID,
		Files:               in.Files,
	}
	if err := db.Create(&letter).Error; err != nil {
		return nil, fmt.Errorf("create letter: %w", err)
	}

	if target == models.StatusRegistered {
		return s.Register(ctx, letter.ID, actor)
	}
	return s.load(ctx, letter.ID)
}

// UpdateLetter applies partial field updates to a draft. Registered letters
// are immutable; requesting status REGISTERED triggers the registration
// transaction after the field updates are persisted. The write carries a
// draft-status guard so a registration committing between the read and the
// write can never be rolled back to DRAFT by a stale row image.
func (s *Service) UpdateLetter(ctx context.Context, id string, in UpdateLetterInput, actor Actor) (*models.Letter, error) {
	target := models.StatusDraft

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var letter models.Letter
		if err := tx.First(&letter, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load letter %s: %w", id, err)
		}
		if !actor.IsAdmin() && letter.UserID != actor.UserID {
			return ErrForbidden
		}
		if letter.Status != models.StatusDraft {
			return fmt.Errorf("%w: only drafts are editable", ErrInvalidState)
		}

		if in.Status != nil {
			if err := Transition(letter.Status, *in.Status); err != nil {
				return err
			}
			target = *in.Status
		}

		updates := map[string]interface{}{}
		if in.LetterDate != nil {
			date, err := s.normalizeDate(tx, *in.LetterDate)
			if err != nil {
				return err
			}
			updates["letter_date"] = date
		}
		if in.Recipient != nil {
			updates["recipient"] = strings.TrimSpace(*in.Recipient)
		}
		if in.Subject != nil {
			updates["subject"] = strings.TrimSpace(*in.Subject)
		}
		if in.Content != nil {
			updates["content"] = *in.Content
		}
		if in.PageCount != nil {
			updates["page_count"] = *in.PageCount
		}
		if in.AttachmentPageCount != nil {
			updates["attachment_page_count"] = *in.AttachmentPageCount
		}
		if in.IndexID != nil {
			if *in.IndexID == "" {
				updates["index_id"] = nil
			} else {
				updates["index_id"] = *in.IndexID
			}
		}

		if len(updates) > 0 {
			stillDraft, err := updateDraft(tx, id, updates)
			if err != nil {
				return fmt.Errorf("update letter %s: %w", id, err)
			}
			if !stillDraft {
				return fmt.Errorf("%w: only drafts are editable", ErrInvalidState)
			}
		}

		if len(in.Files) > 0 {
			files := in.Files
			for i := range files {
				files[i].LetterID = id
			}
			if err := tx.Create(&files).Error; err != nil {
				return fmt.Errorf("attach files to letter %s: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if target == models.StatusRegistered {
		return s.Register(ctx, id, actor)
	}
	return s.load(ctx, id)
}

// errRegistrationRaced aborts a registration transaction whose persist hit
// a row that stopped being a draft after the transactional read. The abort
// rolls the sequence allocation back; the caller then reports the winning
// registration, so the raced call degrades into the idempotent retry path.
var errRegistrationRaced = errors.New("registration raced")

// Register performs the DRAFT -> REGISTERED transition. The letter is
// re-read inside the transaction and every precondition is re-validated
// against that read; values observed before the transaction are not
// trusted. Registering an already-registered letter returns it unchanged
// without touching the year counter, so the call is safe to retry.
//
// Under REPEATABLE READ two concurrent calls can both snapshot the letter
// as DRAFT. The persist is guarded on the current status, so the loser
// matches zero rows, its allocation rolls back, and the first assigned
// number is never overwritten.
func (s *Service) Register(ctx context.Context, id string, actor Actor) (*models.Letter, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var letter models.Letter
		if err := tx.Preload("Index").First(&letter, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load letter %s: %w", id, err)
		}

		if !actor.IsAdmin() && letter.UserID != actor.UserID {
			return ErrForbidden
		}
		if letter.IndexID == nil || letter.Index == nil {
			return ErrMissingIndex
		}
		if strings.TrimSpace(letter.Recipient) == "" {
			return ErrMissingRecipient
		}
		if strings.TrimSpace(letter.Subject) == "" {
			return ErrMissingSubject
		}

		// Idempotent: a concurrent or earlier registration already won.
		if letter.Status == models.StatusRegistered {
			return nil
		}
		if err := Transition(letter.Status, models.StatusRegistered); err != nil {
			return err
		}

		year, err := YearOf(letter.LetterDate)
		if err != nil {
			return err
		}

		sequence, err := NextSequence(tx, year)
		if err != nil {
			return err
		}

		number := fmt.Sprintf("%s/%d", letter.Index.Code, sequence)
		won, err := persistRegistration(tx, letter.ID, number, s.now())
		if err != nil {
			return fmt.Errorf("persist registration of %s: %w", id, err)
		}
		if !won {
			return errRegistrationRaced
		}
		return nil
	})
	if err != nil && !errors.Is(err, errRegistrationRaced) {
		return nil, err
	}
	return s.load(ctx, id)
}

// persistRegistration flips a draft to REGISTERED. The status guard makes
// the write match zero rows when a concurrent registration committed after
// this transaction's snapshot, so an assigned number and timestamp are
// never overwritten.
func persistRegistration(tx *gorm.DB, id, number string, registeredAt time.Time) (bool, error) {
	res := tx.Model(&models.Letter{}).
		Where("id = ? AND status = ?", id, models.StatusDraft).
		Updates(map[string]interface{}{
			"status":        models.StatusRegistered,
			"letter_number": number,
			"registered_at": registeredAt,
		})
	return res.RowsAffected > 0, res.Error
}

// updateDraft applies field updates only while the row is still a draft.
func updateDraft(tx *gorm.DB, id string, updates map[string]interface{}) (bool, error) {
	res := tx.Model(&models.Letter{}).
		Where("id = ? AND status = ?", id, models.StatusDraft).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

// deleteDraft removes a draft and its file rows. A row that is no longer a
// draft is left untouched; the caller must roll the file deletes back.
func deleteDraft(tx *gorm.DB, id string) (bool, error) {
	if err := tx.Delete(&models.File{}, "letter_id = ?", id).Error; err != nil {
		return false, err
	}
	res := tx.Delete(&models.Letter{}, "id = ? AND status = ?", id, models.StatusDraft)
	return res.RowsAffected > 0, res.Error
}

// GetLetter returns one letter visible to the actor, reconciled.
func (s *Service) GetLetter(ctx context.Context, id string, actor Actor) (*models.Letter, error) {
	letter, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && letter.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	return letter, nil
}

// ListLetters pages through letters visible to the actor. Non-admins only
// see their own letters; admins browsing without a status filter see the
// registry itself, not other people's drafts. Every row passes through the
// reconciler before it leaves the engine.
func (s *Service) ListLetters(ctx context.Context, filter ListFilter, actor Actor) (*LetterPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 10
	}

	q := s.db.WithContext(ctx).Model(&models.Letter{})
	if !actor.IsAdmin() {
		q = q.Where("letters.user_id = ?", actor.UserID)
	} else if filter.Status == "" {
		q = q.Where("letters.status <> ?", models.StatusDraft)
	}
	if filter.Status != "" {
		q = q.Where("letters.status = ?", filter.Status)
	}
	if filter.Year != 0 {
		q = q.Where("letters.letter_date LIKE ?", fmt.Sprintf("%04d-%%", filter.Year))
	}
	if needle := strings.TrimSpace(filter.Query); needle != "" {
		pattern := "%" + needle + "%"
		if actor.IsAdmin() {
			// Admins browse the whole registry, so the search also covers
			// the owning user's name.
			q = q.Joins("LEFT JOIN users ON users.id = letters.user_id").Where(
				"letters.letter_number LIKE ? OR letters.subject LIKE ? OR letters.recipient LIKE ? OR letters.content LIKE ? OR users.full_name LIKE ?",
				pattern, pattern, pattern, pattern, pattern,
			)
		} else {
			q = q.Where(
				"letters.letter_number LIKE ? OR letters.subject LIKE ? OR letters.recipient LIKE ? OR letters.content LIKE ?",
				pattern, pattern, pattern, pattern,
			)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count letters: %w", err)
	}

	var letters []models.Letter
	err := q.Preload("Index").Preload("User").Preload("Files").
		Order("letters.created_at DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&letters).Error
	if err != nil {
		return nil, fmt.Errorf("list letters: %w", err)
	}

	for i := range letters {
		s.reconcile(&letters[i])
	}

	return &LetterPage{
		Items: letters,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// DeleteLetter removes a draft. Registered letters are part of the registry
// and cannot be deleted by anyone; the delete itself is guarded on the
// draft status so a registration committing after the read cannot be wiped
// out by a stale delete.
func (s *Service) DeleteLetter(ctx context.Context, id string, actor Actor) (*models.Letter, error) {
	var letter models.Letter

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Files").First(&letter, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load letter %s: %w", id, err)
		}
		if !actor.IsAdmin() && letter.UserID != actor.UserID {
			return ErrForbidden
		}
		if letter.Status != models.StatusDraft {
			return fmt.Errorf("%w: registered letters cannot be deleted", ErrInvalidState)
		}

		deleted, err := deleteDraft(tx, id)
		if err != nil {
			return fmt.Errorf("delete letter %s: %w", id, err)
		}
		if !deleted {
			return fmt.Errorf("%w: registered letters cannot be deleted", ErrInvalidState)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &letter, nil
}

// load fetches a letter with its relations and reconciles it. Permission
// checks are the caller's business.
func (s *Service) load(ctx context.Context, id string) (*models.Letter, error) {
	var letter models.Letter
	err := s.db.WithContext(ctx).
		Preload("Index").Preload("User").Preload("Files").
		First(&letter, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load letter %s: %w", id, err)
	}
	s.reconcile(&letter)
	return &letter, nil
}

// normalizeDate validates a letter date and applies the past-date policy.
// Empty input defaults to today. Future dates are rejected regardless of
// policy; past dates are clamped to today unless the settings row allows
// them.
func (s *Service) normalizeDate(db *gorm.DB, letterDate string) (string, error) {
	today := s.now().Format(dateLayout)
	if letterDate == "" {
		return today, nil
	}
	if _, err := time.Parse(dateLayout, letterDate); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, letterDate)
	}
	if letterDate > today {
		return "", fmt.Errorf("%w: %s is in the future", ErrInvalidDate, letterDate)
	}
	if letterDate < today && !s.allowPastDates(db) {
		return today, nil
	}
	return letterDate, nil
}

func (s *Service) allowPastDates(db *gorm.DB) bool {
	var settings models.SystemSettings
	if err := db.First(&settings).Error; err != nil {
		// No settings row yet: past dates stay disallowed.
		return false
	}
	return settings.AllowPastDates
}
