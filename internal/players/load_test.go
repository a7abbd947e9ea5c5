package players

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadDefault(t *testing.T) {
	r, err := LoadDefault()
	require.NoError(t, err)
	assert.Greater(t, r.Len(), 10)

	p, ok := r.FindExact("Lionel Messi")
	require.True(t, ok)
	assert.Equal(t, "Argentina", p.Nationality)
}

func TestOpenEmptyPathUsesBundled(t *testing.T) {
	r, err := Open("")
	require.NoError(t, err)
	assert.Greater(t, r.Len(), 0)
}

func TestLoadJSON(t *testing.T) {
	in := `[
	  {"name":"Alex","nationality":"X","league":"L","club":"C","position":"Forward","age":25,"image_url":"http://img/a.png"},
	  {"name":"Sam","nationality":"Y","league":"L","club":"D","position":"Defender","age":27,"img_url":"http://img/s.png"}
	]`
	list, err := LoadJSON(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "http://img/a.png", list[0].ImageURL)
	assert.Equal(t, "http://img/s.png", list[1].ImageURL)
	assert.Equal(t, 27, list[1].Age)
}

func TestLoadJSONMissingAge(t *testing.T) {
	_, err := LoadJSON(strings.NewReader(`[{"name":"Alex","nationality":"X","league":"L","club":"C","position":"F"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "age is required")
}

func TestLoadCSV(t *testing.T) {
	in := "Player,Nation,League,Team,Pos,Age\nAlex,X,L,C,Forward,25\n,,,,,\nSam,Y,L,D,Defender,27\n"
	list, err := LoadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Sam", list[1].Name)
	assert.Equal(t, "D", list[1].Club)
}

func TestLoadCSVErrors(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("name,nationality,league,club,position\nAlex,X,L,C,F\n"))
	assert.ErrorContains(t, err, `missing "age" column`)

	_, err = LoadCSV(strings.NewReader("name,nationality,league,club,position,age\nAlex,X,L,C,F,old\n"))
	assert.ErrorContains(t, err, "bad age")
}

func TestLoadHTML(t *testing.T) {
	in := `<html><body>
	<table><tr><th>Fixture</th><th>Date</th></tr><tr><td>A v B</td><td>Sat</td></tr></table>
	<table>
	  <tr><th>Name</th><th>Nationality</th><th>League</th><th>Club</th><th>Position</th><th>Age</th></tr>
	  <tr><td>Alex</td><td>X</td><td>L</td><td>C</td><td>Forward</td><td> 25 </td></tr>
	  <tr><td>Sam</td><td>Y</td><td>L</td><td>D</td><td>Defender</td><td>27</td></tr>
	</table></body></html>`
	list, err := LoadHTML(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alex", list[0].Name)
	assert.Equal(t, 25, list[0].Age)
}

func TestLoadHTMLNoTable(t *testing.T) {
	_, err := LoadHTML(strings.NewReader("<p>nothing</p>"))
	assert.ErrorContains(t, err, "no table")
}

func TestLoadXLSX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "players.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Name", "Nationality", "League", "Club", "Position", "Age"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Alex", "X", "L", "C", "Forward", 25}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"Sam", "Y", "L", "D", "Defender", 27}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	r, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
	p, ok := r.FindExact("Sam")
	require.True(t, ok)
	assert.Equal(t, 27, p.Age)
}

func TestOpenFailures(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, ErrDatasetLoad))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = Open(bad)
	assert.True(t, errors.Is(err, ErrDatasetLoad))

	txt := filepath.Join(dir, "players.txt")
	require.NoError(t, os.WriteFile(txt, []byte("Alex"), 0o644))
	_, err = Open(txt)
	assert.True(t, errors.Is(err, ErrDatasetLoad))
	assert.ErrorContains(t, err, "unsupported dataset format")

	dup := filepath.Join(dir, "dup.json")
	rec := `{"name":"Alex","nationality":"X","league":"L","club":"C","position":"F","age":25}`
	require.NoError(t, os.WriteFile(dup, []byte("["+rec+","+rec+"]"), 0o644))
	_, err = Open(dup)
	assert.True(t, errors.Is(err, ErrDatasetLoad))
}
