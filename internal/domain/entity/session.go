package entity

import (
	"strings"
	"unicode"
)

// initialsAvatarPrefix marks an avatar reference that is rendered from the holder's initials.
const initialsAvatarPrefix = "initials:"

// Session is the authentication credential handed out by the backend.
// The token is opaque: it is stored and passed back verbatim, never parsed here.
type Session struct {
	AccountID string   `json:"accountId"`
	Token     string   `json:"token"`
	Profile   *Profile `json:"profile,omitempty"`
}

// Profile is the account holder's profile document. Empty optional fields mean "not provided".
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	HomeAddress string `json:"homeAddress,omitempty"`
	WorkAddress string `json:"workAddress,omitempty"`
	AvatarRef   string `json:"avatarRef,omitempty"`
}

// Clone returns a copy of the profile, or nil for a nil receiver.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	cloned := *p

	return &cloned
}

// AccountRef identifies a freshly created remote account.
type AccountRef struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	HomeAddress string `json:"homeAddress"`
	WorkAddress string `json:"workAddress"`
}

// InitialsAvatar returns the avatar reference used when the backend supplies no image.
// It takes the first letter of the first and last words of name, upper-cased.
func InitialsAvatar(name string) string {
	words := strings.Fields(name)
	if len(words) == 0 {
		return initialsAvatarPrefix + "?"
	}

	initials := []rune{firstLetter(words[0])}
	if len(words) > 1 {
		initials = append(initials, firstLetter(words[len(words)-1]))
	}

	return initialsAvatarPrefix + string(initials)
}

func firstLetter(word string) rune {
	for _, r := range word {
		return unicode.ToUpper(r)
	}

	return '?'
}
