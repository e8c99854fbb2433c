package issue

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/civic-issues/backend/internal/models"
)

// Submission is the multipart form posted to /issue.
type Submission struct {
	Description string                `form:"description" validate:"required"`
	Location    string                `form:"location" validate:"required"`
	CitizenID   string                `form:"citizenId" validate:"required"`
	IssueType   string                `form:"issueType"`
	Image       *multipart.FileHeader `form:"image" validate:"required"`
}

type ImageStore interface {
	Save(fh *multipart.FileHeader) (string, error)
}

type Service struct {
	Store     ImageStore
	Validator *validator.Validate
	Logger    zerolog.Logger
}

func NewService(store ImageStore, logger zerolog.Logger) *Service {
	return &Service{Store: store, Validator: validator.New(), Logger: logger}
}

func (s *Service) Report(ctx context.Context, sub Submission) (report models.IssueReport, err error) {
	if err := s.validate(sub); err != nil {
		return models.IssueReport{}, err
	}

	defer func() {
		if r := recover(); r != nil {
			err = &ServerError{Err: fmt.Errorf("panic: %v", r)}
		}
		if err != nil {
			s.Logger.Error().Err(err).Str("citizen_id", sub.CitizenID).Msg("issue report failed")
		}
	}()

	if err := ctx.Err(); err != nil {
		return models.IssueReport{}, &ServerError{Err: err}
	}

	path, err := s.Store.Save(sub.Image)
	if err != nil {
		return models.IssueReport{}, &ServerError{Err: err}
	}

	report = models.IssueReport{
		CitizenID:   sub.CitizenID,
		Location:    sub.Location,
		IssueType:   sub.IssueType,
		Description: sub.Description,
		ImagePath:   path,
	}

	s.Logger.Info().
		Str("citizen_id", report.CitizenID).
		Str("location", report.Location).
		Str("issue_type", report.IssueType).
		Str("description", report.Description).
		Str("image_path", report.ImagePath).
		Msg("new issue reported")

	return report, nil
}

func (s *Service) validate(sub Submission) error {
	var missing []string
	if err := s.Validator.Struct(sub); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return &ServerError{Err: err}
		}
		for _, fe := range verrs {
			missing = append(missing, fe.Field())
		}
	}
	if sub.Image != nil && (sub.Image.Size == 0 || sub.Image.Filename == "") {
		missing = append(missing, "Image")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
