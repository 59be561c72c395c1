package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/komunitas-muda/backoffice/database/models"
	"github.com/komunitas-muda/backoffice/database/repositories"
)

var (
	// ErrCertificateNotAvailable means the registration has not reached
	// the graduated status.
	ErrCertificateNotAvailable = errors.New("certificate not available for this registration")
	// ErrNoCertificateTemplate means the activity has no active template
	// bound to it.
	ErrNoCertificateTemplate = errors.New("activity has no certificate template")
)

// CertificateData is everything the frontend renderer needs to draw one
// certificate.
type CertificateData struct {
	MemberID        string          `json:"member_id"`
	MemberName      string          `json:"member_name"`
	ActivityName    string          `json:"activity_name"`
	BackgroundImage string          `json:"background_image"`
	TemplateData    json.RawMessage `json:"template_data,omitempty"`
	IssuedAt        time.Time       `json:"issued_at"`
}

// CertificateService resolves certificate payloads for graduated
// registrations from the template bound to the activity.
type CertificateService struct {
	registrations repositories.ActivityRegistrationRepository
	activities    repositories.ActivityRepository
	templates     repositories.CertificateTemplateRepository
}

func NewCertificateService(
	registrations repositories.ActivityRegistrationRepository,
	activities repositories.ActivityRepository,
	templates repositories.CertificateTemplateRepository,
) *CertificateService {
	return &CertificateService{
		registrations: registrations,
		activities:    activities,
		templates:     templates,
	}
}

// ForActivity assembles certificates for every registration of an
// activity holding the given status (graduated by default).
func (s *CertificateService) ForActivity(ctx context.Context, activityID int64, status string) ([]*CertificateData, error) {
	if status == "" {
		status = models.RegistrationStatusGraduated
	}

	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if activity.AdditionalConfig.CertificateTemplateID == 0 {
		return nil, ErrNoCertificateTemplate
	}
	template, err := s.templates.GetByID(ctx, activity.AdditionalConfig.CertificateTemplateID)
	if err != nil {
		return nil, err
	}
	if !template.IsActive {
		return nil, ErrNoCertificateTemplate
	}

	registrations, _, err := s.registrations.ListByActivity(ctx, activityID, status, 0, 0)
	if err != nil {
		return nil, err
	}

	certificates := make([]*CertificateData, 0, len(registrations))
	for _, registration := range registrations {
		data := &CertificateData{
			ActivityName:    activity.Name,
			BackgroundImage: template.BackgroundImage,
			TemplateData:    template.TemplateData,
			IssuedAt:        registration.UpdatedAt,
		}
		if registration.Member != nil {
			data.MemberID = registration.Member.MemberID
			if registration.Member.Profile != nil {
				data.MemberName = registration.Member.Profile.Name
			}
		}
		certificates = append(certificates, data)
	}
	return certificates, nil
}

func (s *CertificateService) ForRegistration(ctx context.Context, registrationID int64) (*CertificateData, error) {
	registration, err := s.registrations.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}
	if registration.Status != models.RegistrationStatusGraduated {
		return nil, ErrCertificateNotAvailable
	}
	if registration.Activity == nil || registration.Activity.AdditionalConfig.CertificateTemplateID == 0 {
		return nil, ErrNoCertificateTemplate
	}

	template, err := s.templates.GetByID(ctx, registration.Activity.AdditionalConfig.CertificateTemplateID)
	if err != nil {
		return nil, err
	}
	if !template.IsActive {
		return nil, ErrNoCertificateTemplate
	}

	data := &CertificateData{
		ActivityName:    registration.Activity.Name,
		BackgroundImage: template.BackgroundImage,
		TemplateData:    template.TemplateData,
		IssuedAt:        registration.UpdatedAt,
	}
	if registration.Member != nil {
		data.MemberID = registration.Member.MemberID
		if registration.Member.Profile != nil {
			data.MemberName = registration.Member.Profile.Name
		}
	}
	return data, nil
}
