// Package notify delivers family invitations. The AMQP notifier hands the
// message to a mail worker; the log notifier is used when no broker is set.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

type Invitation struct {
	Email           string    `json:"email"`
	FamilyID        string    `json:"family_id"`
	InviterName     string    `json:"inviter_name"`
	InviterEmail    string    `json:"inviter_email"`
	RegistrationURL string    `json:"registration_url"`
	Subject         string    `json:"subject"`
	Text            string    `json:"text"`
	CreatedAt       time.Time `json:"created_at"`
}

const invitationSubject = "Join your family on FinPal"

// NewInvitation fills in the message text shown to the invitee.
func NewInvitation(email, familyID, inviterName, inviterEmail, registrationURL string) Invitation {
	who := inviterName
	if who == "" {
		who = inviterEmail
	}
	return Invitation{
		Email:           email,
		FamilyID:        familyID,
		InviterName:     inviterName,
		InviterEmail:    inviterEmail,
		RegistrationURL: registrationURL,
		Subject:         invitationSubject,
		Text: who + " invited you to join a family on FinPal. " +
			"Open the link below to create your account and join:\n\n" + registrationURL,
		CreatedAt: time.Now().UTC(),
	}
}

func (i Invitation) ToJSON() ([]byte, error) {
	return json.Marshal(i)
}

type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendInvitation(_ context.Context, inv Invitation) error {
	n.logger.Info("Invitation created",
		zap.String("email", inv.Email),
		zap.String("family_id", inv.FamilyID),
		zap.String("registration_url", inv.RegistrationURL),
	)
	return nil
}

func (n *LogNotifier) Close() error {
	return nil
}
