package domain

import "context"

// ContactMessage is a visitor message addressed to a profile owner.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

type ContactUsecase interface {
	// SendToProfile mails the message to the profile's email address.
	SendToProfile(ctx context.Context, profileID int64, msg ContactMessage) error
}
