package game

import "github.com/trongtricoder/Footy-Feud/internal/players"

// Evaluate compares guess against secret attribute by attribute.
//
// Categorical attributes are exact or none, each on its own; a shared league
// with a different club is league exact, club none. Age is exact when equal,
// near within NearAgeGap years, none otherwise, and always carries a direction.
// Correct depends on the name alone.
func Evaluate(guess, secret players.Player) Verdict {
	return Verdict{
		Guess:        guess,
		Nationality:  categorical(guess.Nationality, secret.Nationality),
		League:       categorical(guess.League, secret.League),
		Club:         categorical(guess.Club, secret.Club),
		Position:     categorical(guess.Position, secret.Position),
		Age:          ageTier(guess.Age, secret.Age),
		AgeDirection: ageDirection(guess.Age, secret.Age),
		Correct:      guess.Name == secret.Name,
	}
}

func categorical(guess, secret string) Tier {
	if guess == secret {
		return TierExact
	}
	return TierNone
}

func ageTier(guess, secret int) Tier {
	diff := guess - secret
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return TierExact
	case diff <= NearAgeGap:
		return TierNear
	default:
		return TierNone
	}
}

func ageDirection(guess, secret int) Direction {
	switch {
	case guess < secret:
		return DirHigher
	case guess > secret:
		return DirLower
	default:
		return DirEqual
	}
}
