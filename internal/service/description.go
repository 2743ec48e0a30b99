package service

import (
	"fmt"
	"strings"

	"github.com/spec-kit/ticket-gateway/internal/domain"
)

// DescriptionInput carries everything the description builder may render.
type DescriptionInput struct {
	Channel       domain.Channel
	OrderNumber   string
	Details       string
	RecordingURL  string
	Transcription string
	Customer      *domain.CustomerProfile
	Orders        []domain.OrderRecord
}

// customerMatchDisclaimer precedes customer lines because the phone-derived
// match may point at the wrong customer.
const customerMatchDisclaimer = "Customer match below is based on the caller's details and may be inaccurate."

// BuildDescription assembles the ticket description as HTML fragment lines
// joined with <br>. Line order: order number (when present), detail, voicemail
// recording and transcription, customer disclaimer/name/email (when a profile
// matched), then one line per order in the order the backend returned them.
// With nothing but details present the result is the single detail line.
func BuildDescription(in DescriptionInput) string {
	lines := make([]string, 0, 8)

	if in.OrderNumber != "" {
		lines = append(lines, descriptionLine("Order Number", in.OrderNumber))
	}
	lines = append(lines, descriptionLine("Detail", in.Details))

	if in.Channel == domain.ChannelVoicemail {
		if in.RecordingURL != "" {
			anchor := fmt.Sprintf(`<a href="%s">%s</a>`, in.RecordingURL, in.RecordingURL)
			lines = append(lines, descriptionLine("Recording", anchor))
		}
		if in.Transcription != "" {
			lines = append(lines, descriptionLine("Transcription", in.Transcription))
		}
	}

	if in.Customer != nil {
		lines = append(lines, "<div><em>"+customerMatchDisclaimer+"</em></div>")
		lines = append(lines, descriptionLine("Name", in.Customer.FullName()))
		lines = append(lines, descriptionLine("Email", in.Customer.Email))
	}

	if len(in.Orders) > 0 {
		lines = append(lines, "<div><strong>Recent Orders:</strong></div>")
		for _, order := range in.Orders {
			lines = append(lines, fmt.Sprintf("<div>#%s - %s %s - %s</div>",
				orderIdentifier(order), order.Total, order.Currency, order.Status))
		}
	}

	return strings.Join(lines, "<br>")
}

// BuildSubject composes the downstream subject. Form submissions join store,
// subject and name with " | ", skipping empty parts; voicemail subjects pass
// through unchanged.
func BuildSubject(channel domain.Channel, store, subject, name string) string {
	if channel == domain.ChannelVoicemail {
		return subject
	}
	parts := make([]string, 0, 3)
	for _, part := range []string{store, subject, name} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " | ")
}

func descriptionLine(label, value string) string {
	return fmt.Sprintf("<div><strong>%s:</strong> %s</div>", label, value)
}

func orderIdentifier(order domain.OrderRecord) string {
	if order.Number != "" {
		return order.Number
	}
	return order.ID
}
