// cmd/footyfeud-cli/main.go
//
// Terminal front-end for FootyFeud.
// Plays random games by default (-daily for today's puzzle) against the
// bundled roster or -players FILE, resolving typed names fuzzily unless
// -exact is given. Stats live for the process only.
//
// Commands at the guess prompt:
//   ?TEXT   list players whose name contains TEXT
//   quit    leave

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/trongtricoder/Footy-Feud/internal/game"
	"github.com/trongtricoder/Footy-Feud/internal/logger"
	"github.com/trongtricoder/Footy-Feud/internal/play"
	"github.com/trongtricoder/Footy-Feud/internal/players"
	"github.com/trongtricoder/Footy-Feud/internal/stats"
	"github.com/trongtricoder/Footy-Feud/internal/store"
)

const cliUser = "cli"

type options struct {
	daily    bool
	exact    bool
	color    bool
	file     string
	salt     string
	logLevel string
}

func main() {
	var o options
	flag.BoolVar(&o.daily, "daily", false, "play today's daily puzzle instead of a random player")
	flag.BoolVar(&o.exact, "exact", false, "accept exact player names only (no fuzzy matching)")
	flag.BoolVar(&o.color, "color", true, "colour the attribute rows")
	flag.StringVar(&o.file, "players", os.Getenv("PLAYERS_FILE"), "player dataset (.json, .csv, .xlsx, .html); bundled list when empty")
	flag.StringVar(&o.salt, "salt", envOr("DAILY_SALT", "local_dev_salt"), "daily selection salt")
	flag.StringVar(&o.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	lg, err := logger.New(&logger.LoggerConfig{Env: "dev", Level: o.logLevel})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdin, os.Stdout, o, lg); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error().Err(err).Msg("footyfeud")
		os.Exit(1)
	}
}

func run(ctx context.Context, in io.Reader, out io.Writer, o options, lg zerolog.Logger) error {
	roster, err := players.Open(o.file)
	if err != nil {
		return err
	}
	resolution := players.ResolveFuzzy
	if o.exact {
		resolution = players.ResolveExact
	}
	svc := play.New(roster, store.NewMemoryStore(), stats.NewTracker(stats.NewMemoryStore(), lg), play.Options{
		Salt:     o.salt,
		Location: time.Local,
		Resolver: roster.Resolver(resolution),
	}, lg)

	mode := game.ModeRandom
	if o.daily {
		mode = game.ModeDaily
	}
	r := renderer{color: o.color}
	lines := bufio.NewScanner(in)

	fmt.Fprintf(out, "FootyFeud: guess the footballer in %d tries (%d players loaded).\n", game.MaxGuesses, roster.Len())
	for {
		sess, err := svc.Start(ctx, cliUser, mode)
		if err != nil {
			return err
		}
		if sess.Locked || sess.CurrentStatus().Terminal() {
			fmt.Fprintln(out, "You already played today's puzzle. Come back tomorrow!")
			break
		}
		fmt.Fprintln(out, r.header())

		quit, err := playOne(ctx, svc, sess, lines, out, r)
		if err != nil || quit {
			if err == nil {
				err = summary(ctx, svc, out)
			}
			return err
		}
		if mode == game.ModeDaily || !ask(lines, out, "Play again? [y/N] ") {
			break
		}
	}
	return summary(ctx, svc, out)
}

// playOne runs the guess loop for one session. It reports whether the user quit.
func playOne(ctx context.Context, svc *play.Service, sess *game.Session, lines *bufio.Scanner, out io.Writer, r renderer) (bool, error) {
	for !sess.CurrentStatus().Terminal() {
		if err := ctx.Err(); err != nil {
			return true, err
		}
		fmt.Fprintf(out, "Guess %d/%d: ", sess.GuessCount()+1, game.MaxGuesses)
		if !lines.Scan() {
			fmt.Fprintln(out)
			return true, lines.Err()
		}
		text := strings.TrimSpace(lines.Text())
		switch {
		case text == "":
			continue
		case text == "quit" || text == "exit":
			return true, nil
		case strings.HasPrefix(text, "?"):
			for _, p := range svc.Roster().Search(strings.TrimSpace(text[1:]), 10) {
				fmt.Fprintln(out, "  "+p.Name)
			}
			continue
		}

		_, o, err := svc.Guess(ctx, cliUser, sess.ID, text)
		switch {
		case errors.Is(err, game.ErrNotFound):
			fmt.Fprintf(out, "No player matches %q. Try ?%s for suggestions.\n", text, text)
			continue
		case errors.Is(err, game.ErrDuplicateGuess):
			fmt.Fprintln(out, "You already guessed that player.")
			continue
		case err != nil:
			return true, err
		}
		fmt.Fprintln(out, r.row(o.Verdict))
	}

	snap := sess.Snapshot()
	if snap.Status == game.StatusWon {
		fmt.Fprintf(out, "Correct! It was %s, found in %d.\n", snap.Secret.Name, len(snap.Verdicts))
	} else {
		fmt.Fprintf(out, "Out of guesses. It was %s (%s, %s).\n", snap.Secret.Name, snap.Secret.Club, snap.Secret.Nationality)
	}
	return false, nil
}

func summary(ctx context.Context, svc *play.Service, out io.Writer) error {
	sums, err := svc.Stats(ctx, cliUser)
	if err != nil {
		return err
	}
	for _, s := range sums {
		if s.Played == 0 {
			continue
		}
		fmt.Fprintf(out, "%s: played %d, won %d (%d%%), streak %d, avg %.2f guesses\n",
			s.Mode, s.Played, s.Won, s.WinPct, s.CurrentStreak, s.MeanGuesses)
	}
	return nil
}

func ask(lines *bufio.Scanner, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	if !lines.Scan() {
		return false
	}
	a := strings.ToLower(strings.TrimSpace(lines.Text()))
	return a == "y" || a == "yes"
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
