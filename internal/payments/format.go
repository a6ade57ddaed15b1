package payments

import "strings"

// MaskCard keeps only the last four digits for logs and reports.
func MaskCard(number string) string {
	if number == "" {
		return ""
	}
	if len(number) <= 4 {
		return "**** " + number
	}
	return "**** **** **** " + number[len(number)-4:]
}

// MaskEmail keeps the first rune of the local part and the full domain.
func MaskEmail(email string) string {
	user, domain, ok := strings.Cut(email, "@")
	if !ok || user == "" {
		return email
	}
	return user[:1] + "***@" + domain
}
