package usecase

import (
	"context"
	"strings"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
	"portfolio-cms-backend/pkg/email"
	"portfolio-cms-backend/pkg/logger"
)

// Mailer is satisfied by *email.Sender.
type Mailer interface {
	IsConfigured() bool
	SendContactEmail(to string, data email.ContactEmailData) error
}

type contactUsecase struct {
	profileRepo domain.ProfileRepository
	mailer      Mailer
}

func NewContactUsecase(profileRepo domain.ProfileRepository, mailer Mailer) domain.ContactUsecase {
	return &contactUsecase{profileRepo: profileRepo, mailer: mailer}
}

func (u *contactUsecase) SendToProfile(ctx context.Context, profileID int64, msg domain.ContactMessage) error {
	data := email.ContactEmailData{
		SenderName:  strings.TrimSpace(msg.Name),
		SenderEmail: normalizeEmail(msg.Email),
		Subject:     strings.TrimSpace(msg.Subject),
		Message:     strings.TrimSpace(msg.Message),
	}
	if data.SenderName == "" || data.SenderEmail == "" || data.Subject == "" || data.Message == "" {
		return apperror.BadRequest("Name, email, subject and message are required")
	}

	profile, err := u.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return notFoundAs(err, profileNotFoundMsg)
	}

	if u.mailer == nil || !u.mailer.IsConfigured() {
		return apperror.Unavailable("Contact service temporarily unavailable", nil)
	}

	data.ProfileName = profile.FullName
	if err := u.mailer.SendContactEmail(profile.Email, data); err != nil {
		logger.Log.Error("contact email failed", "profile_id", profileID, "error", err)
		return apperror.Unavailable("Failed to send message. Please try again later.", err)
	}
	return nil
}
