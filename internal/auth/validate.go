package auth

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/shared"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateCredentialsForm checks sign-in and sign-up input before it reaches the provider.
// The first failing field wins.
func ValidateCredentialsForm(email, password, confirm string, signUp bool) error {
	switch {
	case strings.TrimSpace(email) == "":
		return shared.EmptyField("email", "Email is required")
	case password == "":
		return shared.EmptyField("password", "Password is required")
	case !emailPattern.MatchString(email):
		return shared.InvalidField("email", shared.ErrInvalidEmail, "Please enter a valid email address")
	case len(password) < minPasswordLength:
		return shared.InvalidField("password", shared.ErrWeakPassword, "Password must be at least 6 characters")
	case signUp && password != confirm:
		return shared.InvalidField("confirm", shared.ErrPasswordMismatch, "Passwords do not match")
	}
	return nil
}

// ValidateListForm requires a list title and a title on every item.
func ValidateListForm(title string, items []models.NewItem) error {
	if strings.TrimSpace(title) == "" {
		return shared.EmptyField("title", "Please provide a title for your list")
	}
	for i, it := range items {
		if strings.TrimSpace(it.Title) == "" {
			rank := it.Rank
			if rank == 0 {
				rank = i + 1
			}
			return shared.EmptyField(fmt.Sprintf("items[%d].title", i), fmt.Sprintf("Please provide a title for item #%d", rank))
		}
	}
	return nil
}
