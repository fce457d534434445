// Package hunt defines the scavenger hunt's waypoints, the QR codes that
// lead between them, and the clues shown along the way.
package hunt

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

type Component struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type QRCode struct {
	ID                  string    `json:"id"`
	ComponentID         string    `json:"componentId"`
	PointsToComponentID string    `json:"pointsToComponentId"`
	Clue                string    `json:"clue"`
	Hint                string    `json:"hint"`
	Difficulty          string    `json:"difficulty"`
	Location            string    `json:"location"`
	CreatedAt           time.Time `json:"createdAt"`
}

type Clue struct {
	ID             int      `json:"id"`
	Title          string   `json:"title"`
	Clue           string   `json:"clue"`
	Hint           string   `json:"hint"`
	AlternateClues []string `json:"alternateClues,omitempty"`
}

// FirstComponentID is where the entry QR code is displayed.
const FirstComponentID = "hedy-lamarr"

// knownCode ties one of the printed QR tokens to the component it is
// displayed at. Order defines the hunt sequence.
type knownCode struct {
	Token     string
	Component Component
}

// The printed tokens are part of the wire contract and must never change.
var knownCodes = []knownCode{
	{
		Token: "550e8400-e29b-41d4-a716-446655440000",
		Component: Component{
			ID:          "hedy-lamarr",
			Name:        "Hedy Lamarr",
			Description: "Pioneer of wireless communication technologies.",
		},
	},
	{
		Token: "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		Component: Component{
			ID:          "emilie-du-chatelet",
			Name:        "Émilie du Châtelet",
			Description: "Translated and explained Newton's laws of motion.",
		},
	},
	{
		Token: "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d",
		Component: Component{
			ID:          "kimberly-bryant",
			Name:        "Kimberly Bryant",
			Description: "Founder of Black Girls CODE.",
		},
	},
	{
		Token: "1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed",
		Component: Component{
			ID:          "jess-wade",
			Name:        "Jess Wade",
			Description: "Physicist and advocate for diversity in STEM.",
		},
	},
	{
		Token: "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		Component: Component{
			ID:          "4as",
			Name:        "The 4 A's",
			Description: "Afua Bruce, Alan Turing, Alice Ball, and Asmaa Boujibar.",
		},
	},
}

// KnownTokens returns the printed QR tokens in hunt order.
func KnownTokens() []string {
	tokens := make([]string, len(knownCodes))
	for i, k := range knownCodes {
		tokens[i] = k.Token
	}
	return tokens
}

// DefaultComponents returns the seeded components in hunt order.
func DefaultComponents() []Component {
	out := make([]Component, len(knownCodes))
	for i, k := range knownCodes {
		out[i] = k.Component
	}
	return out
}

func lookupKnown(token string) (knownCode, bool) {
	for _, k := range knownCodes {
		if k.Token == token {
			return k, true
		}
	}
	return knownCode{}, false
}

// Ordinal returns the 1-based catalog ordinal of a component, or 0 when the
// component is not part of the default hunt.
func Ordinal(componentID string) int {
	for i, k := range knownCodes {
		if k.Component.ID == componentID {
			return i + 1
		}
	}
	return 0
}
