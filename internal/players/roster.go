// internal/players/roster.go
//
// Roster is the in-memory entity store.
//
// Responsibilities:
//   - Hold the validated player list in its load order.
//   - Exact lookup by display name (the natural key).
//   - Approximate lookup by WRatio similarity with a fixed acceptance threshold.
//   - Substring search and random suggestions for pickers.
//   - Uniform random choice for Random mode secrets.
//
// A Roster never changes after NewRoster returns, so it is safe for
// concurrent readers without locking.

package players

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// FuzzyThreshold is the minimum WRatio score (exclusive) a fuzzy match needs.
const FuzzyThreshold = 70

// ErrDatasetLoad marks any failure to produce a usable roster.
var ErrDatasetLoad = errors.New("players: dataset load failed")

// Roster holds the immutable player dataset.
type Roster struct {
	players []Player
	byName  map[string]int
	folded  []string // normalized names, same order as players
}

// NewRoster validates list and builds a Roster.
// Any malformed record, duplicate name or an empty list is an ErrDatasetLoad.
func NewRoster(list []Player) (*Roster, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no players", ErrDatasetLoad)
	}
	r := &Roster{
		players: make([]Player, 0, len(list)),
		byName:  make(map[string]int, len(list)),
		folded:  make([]string, 0, len(list)),
	}
	for i, p := range list {
		p.normalizeFields()
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%w: record %d (%q): %v", ErrDatasetLoad, i, p.Name, err)
		}
		if _, dup := r.byName[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrDatasetLoad, p.Name)
		}
		r.byName[p.Name] = len(r.players)
		r.players = append(r.players, p)
		r.folded = append(r.folded, normalize(p.Name))
	}
	return r, nil
}

// All returns the players in load order. The slice is a copy.
func (r *Roster) All() []Player {
	out := make([]Player, len(r.players))
	copy(out, r.players)
	return out
}

// Len reports the number of players.
func (r *Roster) Len() int { return len(r.players) }

// FindExact looks a player up by exact display name.
func (r *Roster) FindExact(name string) (Player, bool) {
	i, ok := r.byName[strings.TrimSpace(name)]
	if !ok {
		return Player{}, false
	}
	return r.players[i], true
}

// FindFuzzy returns the player whose name scores the highest WRatio against
// query, provided the score is above FuzzyThreshold. Ties keep the earliest
// player in load order.
func (r *Roster) FindFuzzy(query string) (Player, bool) {
	p, score := r.bestMatch(query)
	if score <= FuzzyThreshold {
		return Player{}, false
	}
	return p, true
}

// bestMatch scans every name and returns the top scorer.
// UWRatio keeps accented letters that WRatio would strip.
func (r *Roster) bestMatch(query string) (Player, int) {
	q := normalize(query)
	if q == "" {
		return Player{}, 0
	}
	best, bestScore := -1, -1
	for i, name := range r.folded {
		s := fuzzy.UWRatio(q, name)
		if s > bestScore {
			best, bestScore = i, s
			if s == 100 {
				break
			}
		}
	}
	if best < 0 {
		return Player{}, 0
	}
	return r.players[best], bestScore
}

// normalize lower-cases s, turns non-alphanumerics into spaces and
// collapses whitespace.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Search returns up to limit players whose name contains term
// (case-insensitive), shuffled. An empty term yields a random sample.
func (r *Roster) Search(term string, limit int) []Player {
	if limit <= 0 {
		limit = 10
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return r.Sample(limit)
	}
	var hits []Player
	for _, p := range r.players {
		if strings.Contains(strings.ToLower(p.Name), term) {
			hits = append(hits, p)
		}
	}
	rand.Shuffle(len(hits), func(i, j int) { hits[i], hits[j] = hits[j], hits[i] })
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// Sample returns n distinct players chosen at random (fewer if the roster is smaller).
func (r *Roster) Sample(n int) []Player {
	if n > len(r.players) {
		n = len(r.players)
	}
	idx := rand.Perm(len(r.players))[:n]
	out := make([]Player, 0, n)
	for _, i := range idx {
		out = append(out, r.players[i])
	}
	return out
}

// Random returns a uniformly chosen player using the process-wide source.
func (r *Roster) Random() Player {
	return r.players[rand.IntN(len(r.players))]
}

// ------------------------------ resolution ---------------------------------

// Resolution selects how a raw guess string is turned into a Player.
type Resolution string

const (
	ResolveExact Resolution = "exact" // name must match exactly
	ResolveFuzzy Resolution = "fuzzy" // exact first, then best WRatio match
)

// ParseResolution validates a configured resolution name.
func ParseResolution(s string) (Resolution, error) {
	switch Resolution(strings.ToLower(strings.TrimSpace(s))) {
	case ResolveExact, "":
		return ResolveExact, nil
	case ResolveFuzzy:
		return ResolveFuzzy, nil
	}
	return "", fmt.Errorf("unknown guess resolution %q", s)
}

// ResolverFunc adapts a function to the game engine's resolver contract.
type ResolverFunc func(query string) (Player, bool)

// Resolve calls f.
func (f ResolverFunc) Resolve(query string) (Player, bool) { return f(query) }

// Resolver returns a ResolverFunc implementing mode against r.
func (r *Roster) Resolver(mode Resolution) ResolverFunc {
	if mode == ResolveFuzzy {
		return func(q string) (Player, bool) {
			if p, ok := r.FindExact(q); ok {
				return p, true
			}
			return r.FindFuzzy(q)
		}
	}
	return r.FindExact
}
