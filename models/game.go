// models/game.go
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

const (
	MinRating = 0
	MaxRating = 100
)

// ReleaseDateLayout is the wire format of release dates: no timezone.
const ReleaseDateLayout = "2006-01-02T15:04:05"

type Genre string

const (
	GenreRolePlaying Genre = "ROLE_PLAYING"
	GenreStrategy    Genre = "STRATEGY"
	GenreShooter     Genre = "SHOOTER"
)

func (g Genre) Valid() bool {
	switch g {
	case GenreRolePlaying, GenreStrategy, GenreShooter:
		return true
	}
	return false
}

func (g *Genre) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("genre must be a string: %w", err)
	}
	genre := Genre(raw)
	if !genre.Valid() {
		return fmt.Errorf("unknown genre %q, expected one of ROLE_PLAYING, STRATEGY, SHOOTER", raw)
	}
	*g = genre
	return nil
}

// ReleaseDate is a calendar date and time without a timezone, kept in UTC.
type ReleaseDate struct {
	time.Time
}

func NewReleaseDate(year int, month time.Month, day int) ReleaseDate {
	return ReleaseDate{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d ReleaseDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.UTC().Format(ReleaseDateLayout + ".999999999"))
}

func (d *ReleaseDate) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("releaseDate must be a string: %w", err)
	}
	// time.Parse accepts a fractional seconds suffix even though the layout has none
	t, err := time.Parse(ReleaseDateLayout, raw)
	if err != nil {
		return fmt.Errorf("releaseDate must look like YYYY-MM-DDTHH:MM:SS: %w", err)
	}
	d.Time = t
	return nil
}

// Game is a single catalog entry. ID is chosen by the caller.
type Game struct {
	ID          uint64      `json:"id"`
	Title       string      `json:"title"`
	Rating      uint8       `json:"rating"`
	Genre       Genre       `json:"genre"`
	Description *string     `json:"description"`
	ReleaseDate ReleaseDate `json:"releaseDate"`
}

// gameJSON mirrors Game with pointers so missing fields can be told apart
// from zero values.
type gameJSON struct {
	ID          *uint64      `json:"id"`
	Title       *string      `json:"title"`
	Rating      *uint8       `json:"rating"`
	Genre       *Genre       `json:"genre"`
	Description *string      `json:"description"`
	ReleaseDate *ReleaseDate `json:"releaseDate"`
}

// UnmarshalJSON decodes a game and rejects payloads missing any required
// field. Range checks are left to Validate.
func (g *Game) UnmarshalJSON(data []byte) error {
	var raw gameJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var missing []string
	if raw.ID == nil {
		missing = append(missing, "id")
	}
	if raw.Title == nil {
		missing = append(missing, "title")
	}
	if raw.Rating == nil {
		missing = append(missing, "rating")
	}
	if raw.Genre == nil {
		missing = append(missing, "genre")
	}
	if raw.ReleaseDate == nil {
		missing = append(missing, "releaseDate")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	*g = Game{
		ID:          *raw.ID,
		Title:       *raw.Title,
		Rating:      *raw.Rating,
		Genre:       *raw.Genre,
		Description: raw.Description,
		ReleaseDate: *raw.ReleaseDate,
	}
	return nil
}

// ValidationError reports a field holding a value outside its allowed set.
type ValidationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// IsValidationError reports whether err carries a *ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// ValidateRating checks that a rating lies in [MinRating, MaxRating].
func ValidateRating(rating int) error {
	if !govalidator.InRangeInt(rating, MinRating, MaxRating) {
		return &ValidationError{
			Field:  "rating",
			Value:  rating,
			Reason: fmt.Sprintf("rating must be a number between %d and %d", MinRating, MaxRating),
		}
	}
	return nil
}

// Validate runs after decoding and before encoding a game.
func (g Game) Validate() error {
	if err := ValidateRating(int(g.Rating)); err != nil {
		return err
	}
	if !g.Genre.Valid() {
		return &ValidationError{Field: "genre", Value: g.Genre, Reason: "unknown genre"}
	}
	return nil
}

// StringPtr is a small helper for optional descriptions.
func StringPtr(s string) *string {
	return &s
}
