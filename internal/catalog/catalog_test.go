package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "units.json")
	payload := `{
		"units": [
			{
				"section_title": "睡眠",
				"title": "失眠的自我照顧",
				"content_text": "失眠是常見的困擾。",
				"is_article": true,
				"article_url": "https://example.org/a"
			},
			{
				"section_title": "睡眠",
				"title": "睡前放鬆",
				"youtube_url": "https://youtu.be/v",
				"subtitles": [
					{"text": "睡不著的時候", "start_sec": 12.5}
				]
			}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	cat, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())

	article := cat.Units()[0]
	assert.Equal(t, "unit-0", article.ID)
	assert.Equal(t, "睡眠失眠的自我照顧", article.FullTitle())
	assert.Equal(t, "https://example.org/a", article.MediaURL())
	assert.Contains(t, article.SearchText(), "失眠是常見的困擾。")

	video := cat.Units()[1]
	assert.Equal(t, "https://youtu.be/v", video.MediaURL())
	assert.Contains(t, video.SearchText(), "睡不著的時候")
	require.Len(t, video.Subtitles, 1)
	assert.InDelta(t, 12.5, video.Subtitles[0].StartSec, 1e-9)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "units.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestNewKeepsExplicitIDs(t *testing.T) {
	cat := New([]*ContentUnit{
		{ID: "custom", Title: "甲"},
		{Title: "乙"},
	})

	assert.Equal(t, "custom", cat.Units()[0].ID)
	assert.Equal(t, "unit-1", cat.Units()[1].ID)
}
