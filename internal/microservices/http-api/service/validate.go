package service

import "unicode/utf8"

// Bounds match the column widths in database/migrations. VARCHAR(n) counts
// characters, bcrypt reads at most 72 bytes.
const (
	maxUsernameLength   = 50
	maxEmailLength      = 100
	maxPasswordBytes    = 72
	maxExternalIDLength = 50
	maxTitleLength      = 255
	maxImageURLLength   = 255
	maxStatusLength     = 20

	minRating = 0
	maxRating = 10
)

func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

func validateUsername(username string) error {
	if tooLong(username, maxUsernameLength) {
		return ErrUsernameTooLong
	}
	return nil
}

func validateEmail(email string) error {
	if tooLong(email, maxEmailLength) {
		return ErrEmailTooLong
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// validateMediaInput checks the fields that end up in the media row.
func validateMediaInput(externalID, title string, imageURL *string) error {
	if tooLong(externalID, maxExternalIDLength) {
		return ErrExternalIDTooLong
	}
	if tooLong(title, maxTitleLength) {
		return ErrTitleTooLong
	}
	if imageURL != nil && tooLong(*imageURL, maxImageURLLength) {
		return ErrPosterPathTooLong
	}
	return nil
}

func validateStatus(status string) error {
	if n := utf8.RuneCountInString(status); n == 0 || n > maxStatusLength {
		return ErrInvalidStatus
	}
	return nil
}

func validateRating(rating *int) error {
	if rating != nil && (*rating < minRating || *rating > maxRating) {
		return ErrInvalidRating
	}
	return nil
}
