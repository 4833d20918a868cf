package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"assekura/internal/models"
	"assekura/internal/pdf"
	"assekura/internal/utils"
)

var ErrPhoneNotVerified = errors.New("phone not verified")

// LeadStore is implemented by repositories.LeadRepository.
type LeadStore interface {
	Create(lead *models.Lead) error
	UpdateStatus(id int, status string) error
	ListPaginated(limit, offset int) ([]*models.Lead, error)
	GetByReference(reference string) (*models.Lead, error)
}

// VerificationChecker is the authoritative verified-state lookup.
type VerificationChecker interface {
	IsVerified(phone string) (bool, error)
}

type LeadService struct {
	Repo          LeadStore
	Verifications VerificationChecker
	Webhook       *utils.WebhookClient
	Email         EmailService
	Telegram      *TelegramService
	PDF           pdf.Generator
	Logger        *logrus.Logger
}

func NewLeadService(
	repo LeadStore,
	verifications VerificationChecker,
	webhook *utils.WebhookClient,
	email EmailService,
	telegram *TelegramService,
	pdfGen pdf.Generator,
	logger *logrus.Logger,
) *LeadService {
	return &LeadService{
		Repo:          repo,
		Verifications: verifications,
		Webhook:       webhook,
		Email:         email,
		Telegram:      telegram,
		PDF:           pdfGen,
		Logger:        logger,
	}
}

// Submit accepts the funnel's final payload. The client tracks its own
// "this phone was verified" flag, but the stored verification record is
// what decides here: an unverified (or edited) number is rejected.
func (s *LeadService) Submit(lead *models.Lead) error {
	normalized := utils.NormalizePhone(lead.Phone)
	verified, err := s.Verifications.IsVerified(normalized)
	if err != nil {
		return err
	}
	if !verified {
		return ErrPhoneNotVerified
	}

	lead.Phone = normalized
	lead.Reference = uuid.NewString()
	lead.Status = models.LeadStatusNew

	if err := s.Repo.Create(lead); err != nil {
		return err
	}

	// the lead row is the source of truth; delivery failures downstream
	// are recorded but no longer fail the submission
	status := models.LeadStatusForwarded
	if s.Webhook != nil {
		if err := s.Webhook.Forward(lead); err != nil {
			s.Logger.WithError(err).WithField("reference", lead.Reference).Error("lead webhook delivery failed")
			status = models.LeadStatusFailed
		}
	}
	if err := s.Repo.UpdateStatus(lead.ID, status); err != nil {
		s.Logger.WithError(err).WithField("reference", lead.Reference).Error("lead status update failed")
	}
	lead.Status = status

	s.notify(lead)
	return nil
}

func (s *LeadService) notify(lead *models.Lead) {
	var attachment string
	if s.PDF != nil {
		path, err := s.PDF.GenerateLeadSummary(pdf.LeadSummaryData{
			Reference:     lead.Reference,
			Name:          lead.Name,
			Email:         lead.Email,
			Phone:         lead.Phone,
			InsuranceType: lead.InsuranceType,
			Message:       lead.Message,
			CreatedAt:     lead.CreatedAt,
		})
		if err != nil {
			s.Logger.WithError(err).WithField("reference", lead.Reference).Error("lead summary pdf failed")
		} else {
			attachment = path
		}
	}

	if s.Email != nil {
		if err := s.Email.SendLeadNotification(lead, attachment); err != nil {
			s.Logger.WithError(err).WithField("reference", lead.Reference).Error("lead email notification failed")
		}
	}
	if s.Telegram != nil {
		if err := s.Telegram.NotifyLead(lead); err != nil {
			s.Logger.WithError(err).WithField("reference", lead.Reference).Error("lead telegram notification failed")
		}
	}
}

func (s *LeadService) ListPaginated(limit, offset int) ([]*models.Lead, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListPaginated(limit, offset)
}

func (s *LeadService) GetByReference(reference string) (*models.Lead, error) {
	return s.Repo.GetByReference(reference)
}
