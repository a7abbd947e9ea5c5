// internal/players/player.go
//
// Player is the fixed-shape record every guess and every secret is drawn from.
// Records are validated once at load time; after that they are read-only and
// shared by the roster, the daily selector and the game engine.

package players

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Age bounds accepted at load time.
const (
	MinAge = 15
	MaxAge = 50
)

// Player is one candidate footballer.
type Player struct {
	Name        string `json:"name" validate:"required"`
	Nationality string `json:"nationality" validate:"required"`
	League      string `json:"league" validate:"required"`
	Club        string `json:"club" validate:"required"`
	Position    string `json:"position" validate:"required"`
	Age         int    `json:"age" validate:"gte=15,lte=50"`
	ImageURL    string `json:"img_url,omitempty"` // display only
}

var validate = validator.New()

// normalizeFields trims the text fields in place.
func (p *Player) normalizeFields() {
	p.Name = strings.TrimSpace(p.Name)
	p.Nationality = strings.TrimSpace(p.Nationality)
	p.League = strings.TrimSpace(p.League)
	p.Club = strings.TrimSpace(p.Club)
	p.Position = strings.TrimSpace(p.Position)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
}

// Validate reports the first invalid field of p in a readable form.
func (p Player) Validate() error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("%s is required", strings.ToLower(fe.Field()))
		case "gte", "lte":
			return fmt.Errorf("age %d outside %d-%d", p.Age, MinAge, MaxAge)
		}
		return fmt.Errorf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag())
	}
	return err
}
