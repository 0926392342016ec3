package export

import (
	"bytes"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abdulachik/novelpair/internal/headline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyPath(t *testing.T) {
	day := time.Date(2026, 10, 17, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, filepath.Join("data", "2026-10-17_news.csv"), DailyPath("data", day))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []headline.Headline{
		{
			Title:       "Markets, again, surge",
			Description: "Quoted \"text\"",
			URL:         "https://example.com/m",
			Source:      "Reuters",
			PublishedAt: time.Date(2026, 10, 17, 6, 0, 0, 0, time.UTC),
		},
		{Title: "No date"},
	})
	require.NoError(t, err)

	want := "title,description,url,source,publishedAt\n" +
		"\"Markets, again, surge\",\"Quoted \"\"text\"\"\",https://example.com/m,Reuters,2026-10-17T06:00:00Z\n" +
		"No date,,,,\n"
	assert.Equal(t, want, buf.String())
}

func TestSaveDailyAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	in := []headline.Headline{
		{Title: "First", Source: "a", PublishedAt: now},
		{Title: "", Source: "b"},
		{Title: "Third", URL: "https://example.com/3"},
	}

	path, err := SaveDaily(dir, now, in)
	require.NoError(t, err)
	assert.Equal(t, DailyPath(dir, now), path)

	out, err := LoadCSV(path)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "First", out[0].Title)
	assert.True(t, out[0].PublishedAt.Equal(now))
	assert.Equal(t, "", out[1].Title)
	assert.Equal(t, "b", out[1].Source)
	assert.Equal(t, "https://example.com/3", out[2].URL)

	// Saving again the same day replaces the snapshot.
	_, err = SaveDaily(dir, now, in[:1])
	require.NoError(t, err)
	out, err = LoadCSV(path)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestReadCSV(t *testing.T) {
	t.Run("columns matched by name", func(t *testing.T) {
		data := "source,title\nbbc,Flood warning\nap,Election results\n"
		out, err := ReadCSV(strings.NewReader(data))
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.Equal(t, "Flood warning", out[0].Title)
		assert.Equal(t, "bbc", out[0].Source)
		assert.Empty(t, out[0].URL)
	})

	t.Run("short rows yield empty cells", func(t *testing.T) {
		data := "description,title\nonly description\n"
		out, err := ReadCSV(strings.NewReader(data))
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "", out[0].Title)
		assert.Equal(t, "only description", out[0].Description)
	})

	t.Run("byte order mark", func(t *testing.T) {
		out, err := ReadCSV(strings.NewReader("\ufefftitle\nHello\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Hello"}, headline.Titles(out))
	})

	t.Run("missing title column", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader("headline,url\nx,y\n"))
		assert.ErrorIs(t, err, ErrNoTitleColumn)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ReadCSV(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrNoTitleColumn)
	})

	t.Run("unparseable date ignored", func(t *testing.T) {
		out, err := ReadCSV(strings.NewReader("title,publishedAt\nX,yesterday\n"))
		require.NoError(t, err)
		assert.True(t, out[0].PublishedAt.IsZero())
	})
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
