package notifications

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperrors "github.com/tiltlabs/engineer-on-demand/pkg/errors"
)

// SMTPSender delivers notifications over plain SMTP. Authentication is
// optional so local relays (mailhog, postfix on localhost) work without
// credentials.
type SMTPSender struct {
	addr string
	host string
	from string
	auth smtp.Auth
}

// NewSMTPSender builds a sender for the given relay. Password may be
// empty, in which case no AUTH is attempted.
func NewSMTPSender(addr, host, from, username, password string) *SMTPSender {
	var auth smtp.Auth
	if password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{
		addr: addr,
		host: host,
		from: from,
		auth: auth,
	}
}

// Send delivers a single message and returns a delivery id for logging.
func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) (string, error) {
	select {
	case <-ctx.Done():
		return "", apperrors.NewExternalError("notification cancelled", ctx.Err())
	default:
	}

	messageID := uuid.New().String()

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "Message-ID: <%s@%s>\r\n", messageID, s.host)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg.String())); err != nil {
		return "", apperrors.NewExternalError("failed to send notification email", err)
	}

	log.Debug().
		Str("to", to).
		Str("message_id", messageID).
		Msg("notification email sent")

	return messageID, nil
}
