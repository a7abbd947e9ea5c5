// internal/players/load.go
//
// Dataset sources for the roster.
//
// Open(path) picks a reader by extension:
//   .json        → array of player objects
//   .csv         → header row + one player per row
//   .xlsx        → first sheet, header row + one player per row
//   .html/.htm   → first <table> whose header has a name/player column
// An empty path falls back to the dataset bundled in assets.
//
// Every failure here is wrapped in ErrDatasetLoad; the server treats it as fatal.

package players

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"github.com/trongtricoder/Footy-Feud/assets"
)

// Open loads a roster from path, or from the bundled dataset when path is empty.
func Open(path string) (*Roster, error) {
	if path == "" {
		return LoadDefault()
	}
	list, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewRoster(list)
}

// LoadDefault builds a roster from the bundled players.json.
func LoadDefault() (*Roster, error) {
	f, err := assets.Players()
	if err != nil {
		return nil, fmt.Errorf("%w: open bundled dataset: %w", ErrDatasetLoad, err)
	}
	defer f.Close()
	list, err := LoadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDatasetLoad, assets.PlayersFile, err)
	}
	return NewRoster(list)
}

// Load reads raw player records from a file without validating them.
func Load(path string) ([]Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDatasetLoad, err)
	}
	defer f.Close()

	var list []Player
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		list, err = LoadJSON(f)
	case ".csv":
		list, err = LoadCSV(f)
	case ".xlsx":
		list, err = LoadXLSX(f)
	case ".html", ".htm":
		list, err = LoadHTML(f)
	default:
		err = fmt.Errorf("unsupported dataset format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDatasetLoad, path, err)
	}
	return list, nil
}

// record mirrors the JSON shape; both img_url and image_url are accepted.
type record struct {
	Name        string `json:"name"`
	Nationality string `json:"nationality"`
	League      string `json:"league"`
	Club        string `json:"club"`
	Position    string `json:"position"`
	Age         *int   `json:"age"`
	ImgURL      string `json:"img_url"`
	ImageURL    string `json:"image_url"`
}

// LoadJSON decodes an array of player objects.
func LoadJSON(r io.Reader) ([]Player, error) {
	var recs []record
	dec := json.NewDecoder(r)
	if err := dec.Decode(&recs); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	out := make([]Player, 0, len(recs))
	for i, rec := range recs {
		if rec.Age == nil {
			return nil, fmt.Errorf("record %d (%q): age is required", i, rec.Name)
		}
		img := rec.ImgURL
		if img == "" {
			img = rec.ImageURL
		}
		out = append(out, Player{
			Name:        rec.Name,
			Nationality: rec.Nationality,
			League:      rec.League,
			Club:        rec.Club,
			Position:    rec.Position,
			Age:         *rec.Age,
			ImageURL:    img,
		})
	}
	return out, nil
}

// LoadCSV reads a header row followed by player rows.
func LoadCSV(r io.Reader) ([]Player, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return fromRows(rows)
}

// LoadXLSX reads the first sheet of a workbook.
func LoadXLSX(r io.Reader) ([]Player, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromRows(rows)
}

// LoadHTML extracts players from the first table with a name column.
func LoadHTML(r io.Reader) ([]Player, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	var rows [][]string
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		var candidate [][]string
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(cell.Text()))
			})
			if len(cells) > 0 {
				candidate = append(candidate, cells)
			}
		})
		if len(candidate) > 0 {
			if _, ok := columnIndex(candidate[0])["name"]; ok {
				rows = candidate
				return false
			}
		}
		return true
	})
	if rows == nil {
		return nil, fmt.Errorf("no table with a name column")
	}
	return fromRows(rows)
}

// headerAliases maps accepted header spellings to canonical columns.
var headerAliases = map[string]string{
	"name":        "name",
	"player":      "name",
	"nationality": "nationality",
	"nation":      "nationality",
	"country":     "nationality",
	"league":      "league",
	"club":        "club",
	"team":        "club",
	"position":    "position",
	"pos":         "position",
	"age":         "age",
	"img_url":     "img_url",
	"image_url":   "img_url",
	"image":       "img_url",
}

func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		key = strings.ReplaceAll(key, " ", "_")
		if canon, ok := headerAliases[key]; ok {
			if _, seen := idx[canon]; !seen {
				idx[canon] = i
			}
		}
	}
	return idx
}

// fromRows converts a header row plus data rows into players.
func fromRows(rows [][]string) ([]Player, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("need a header row and at least one player row")
	}
	idx := columnIndex(rows[0])
	for _, col := range []string{"name", "nationality", "league", "club", "position", "age"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing %q column", col)
		}
	}
	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]Player, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if len(strings.TrimSpace(strings.Join(row, ""))) == 0 {
			continue
		}
		age, err := strconv.Atoi(cell(row, "age"))
		if err != nil {
			return nil, fmt.Errorf("row %d (%q): bad age %q", n+2, cell(row, "name"), cell(row, "age"))
		}
		out = append(out, Player{
			Name:        cell(row, "name"),
			Nationality: cell(row, "nationality"),
			League:      cell(row, "league"),
			Club:        cell(row, "club"),
			Position:    cell(row, "position"),
			Age:         age,
			ImageURL:    cell(row, "img_url"),
		})
	}
	return out, nil
}
