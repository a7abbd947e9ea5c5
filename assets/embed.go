package assets

import (
	"embed"
	"io"
)

//go:embed players.json
var FS embed.FS

// PlayersFile is the name of the bundled dataset inside FS.
const PlayersFile = "players.json"

// Players opens the bundled player dataset.
func Players() (io.ReadCloser, error) {
	return FS.Open(PlayersFile)
}
