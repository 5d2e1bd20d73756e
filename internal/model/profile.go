package model

import (
	"fmt"
	"strings"
	"time"
)

const avatarBaseURL = "https://api.dicebear.com/7.x/avataaars/svg?seed="

type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
	Bio   string `json:"bio"`
}

func DefaultProfile() Profile {
	return Profile{
		Name:  "User",
		Email: "user@example.com",
		Image: AvatarURL("user"),
		Bio:   "",
	}
}

// ProfileForEmail is the profile written after a successful sign-in or sign-up.
func ProfileForEmail(email string) Profile {
	name, _, _ := strings.Cut(email, "@")
	return Profile{
		Name:  name,
		Email: email,
		Image: AvatarURL(email),
		Bio:   "",
	}
}

func AvatarURL(seed string) string {
	return avatarBaseURL + seed
}

// CredentialID accepts the numeric millisecond ids older sign-ups wrote as
// well as the uuid strings written now.
type CredentialID string

func (id *CredentialID) UnmarshalJSON(data []byte) error {
	s, err := decodeID(data)
	if err != nil {
		return fmt.Errorf("model: credential id: %w", err)
	}
	*id = CredentialID(s)
	return nil
}

// Credential is a mock sign-in record. Passwords are stored as typed.
type Credential struct {
	ID        CredentialID `json:"id"`
	Email     string       `json:"email"`
	Password  string       `json:"password"`
	CreatedAt string       `json:"createdAt"`
}

func (c Credential) Created() (time.Time, error) {
	return time.Parse(time.RFC3339, c.CreatedAt)
}
