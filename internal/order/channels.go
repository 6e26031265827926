package order

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
)

// Channel identifies an outbound order destination.
type Channel string

const (
	ChannelWhatsApp Channel = "WHATSAPP"
	ChannelEmail    Channel = "EMAIL"
	ChannelPaystack Channel = "PAYSTACK"
	ChannelStripe   Channel = "STRIPE"
)

// ErrChannelNotConfigured indicates the channel's destination is missing or
// still carries a placeholder value.
var ErrChannelNotConfigured = errors.New("channel not configured")

// placeholderMarker flags template links that were never filled in.
const placeholderMarker = "REPLACE_ME"

var nonDigits = regexp.MustCompile(`\D`)

// WhatsAppURL builds a wa.me deep link carrying the message as prefilled text.
func WhatsAppURL(number, text string) (string, error) {
	digits := nonDigits.ReplaceAllString(number, "")
	if digits == "" {
		return "", fmt.Errorf("%w: whatsapp number missing", ErrChannelNotConfigured)
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, url.QueryEscape(text)), nil
}

// MailtoURL builds a mailto link with subject and body prefilled.
func MailtoURL(to, subject, body string) (string, error) {
	if strings.TrimSpace(to) == "" {
		return "", fmt.Errorf("%w: email address missing", ErrChannelNotConfigured)
	}
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		to, url.QueryEscape(subject), url.QueryEscape(body)), nil
}

// SplitName splits a full name into first and last parts; everything after
// the first word is the last name.
func SplitName(full string) (first, last string) {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// PaystackURL builds the hosted payment page link. Paystack amounts are in
// kobo (hundredths of the base currency).
func PaystackURL(pageURL string, amountBase float64, customerName string) (string, error) {
	if pageURL == "" || strings.Contains(pageURL, placeholderMarker) {
		return "", fmt.Errorf("%w: paystack payment page missing", ErrChannelNotConfigured)
	}
	kobo := int64(math.Round(amountBase * 100))

	params := url.Values{}
	first, last := SplitName(customerName)
	if first != "" {
		params.Set("first_name", first)
	}
	if last != "" {
		params.Set("last_name", last)
	}
	params.Set("amount", fmt.Sprintf("%d", kobo))
	return pageURL + "?" + params.Encode(), nil
}

// StripeURL validates and passes through the configured payment link.
func StripeURL(link string) (string, error) {
	if link == "" || strings.Contains(link, placeholderMarker) {
		return "", fmt.Errorf("%w: stripe payment link missing", ErrChannelNotConfigured)
	}
	return link, nil
}
