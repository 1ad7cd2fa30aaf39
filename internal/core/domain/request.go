package domain

import "time"

// Locale selects the assistant's response language. Two values only;
// anything unrecognised falls back to Arabic, the default.
type Locale string

const (
	// LocaleArabic is the default interface and assistant language.
	LocaleArabic Locale = "ar"

	// LocaleEnglish is the alternative language.
	LocaleEnglish Locale = "en"
)

// ParseLocale maps a raw selector to a supported locale.
func ParseLocale(s string) Locale {
	if s == string(LocaleEnglish) {
		return LocaleEnglish
	}
	return LocaleArabic
}

// RequestInfo is the request-scoped context passed into every core
// call. It replaces ambient session state: core components never read
// identity or locale from global storage.
type RequestInfo struct {
	// Authenticated is true when the request carries a valid session.
	Authenticated bool

	// Identity is the opaque identity claim from the session,
	// an email address in this deployment.
	Identity string

	// Locale is the caller's language selection.
	Locale Locale
}

// Session is the server-side record behind a session cookie. The
// session carries an identity claim only; there is no password or
// token verification in this system.
type Session struct {
	// Token is the opaque session identifier issued at login.
	Token string

	// FirstName and LastName are display names entered at login.
	FirstName string
	LastName  string

	// Email is the identity claim used for the ingestion allow-list.
	Email string

	// Locale is the per-session language selection.
	Locale Locale

	// CreatedAt records when the session was issued.
	CreatedAt time.Time
}

// Info converts the session to request-scoped context.
func (s *Session) Info() RequestInfo {
	if s == nil {
		return RequestInfo{Locale: LocaleArabic}
	}
	return RequestInfo{
		Authenticated: true,
		Identity:      s.Email,
		Locale:        s.Locale,
	}
}
