package model_test

import (
	"encoding/json"
	"testing"

	"cdn-service/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamVideo_RoundTripKeepsUnmodeledFields(t *testing.T) {
	var video model.StreamVideo
	require.NoError(t, json.Unmarshal([]byte(`{"guid":"v1","title":"Pilot","averageWatchTime":42,"metaTags":[{"property":"description","value":"x"}]}`), &video))
	assert.Equal(t, "v1", video.Guid)
	assert.Len(t, video.Extra, 2)

	video.PlaylistURL = "https://vz-test.b-cdn.net/v1/playlist.m3u8"
	encoded, err := json.Marshal(video)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &out))
	assert.Equal(t, float64(42), out["averageWatchTime"])
	assert.Len(t, out["metaTags"], 1)
	assert.Equal(t, "Pilot", out["title"])
	assert.Equal(t, "https://vz-test.b-cdn.net/v1/playlist.m3u8", out["playlistUrl"])
}

func TestStreamVideo_ModeledFieldsWinOverExtra(t *testing.T) {
	video := model.StreamVideo{
		Guid:  "v1",
		Title: "Pilot",
		Extra: map[string]json.RawMessage{"title": json.RawMessage(`"stale"`)},
	}
	encoded, err := json.Marshal(video)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &out))
	assert.Equal(t, "Pilot", out["title"])
}

func TestStreamVideo_WithoutExtraIsPlainObject(t *testing.T) {
	encoded, err := json.Marshal(model.StreamVideo{Guid: "v1"})
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "Extra")
	assert.Contains(t, string(encoded), `"guid":"v1"`)
}

func TestStreamCollection_RoundTripKeepsUnmodeledFields(t *testing.T) {
	var collection model.StreamCollection
	require.NoError(t, json.Unmarshal([]byte(`{"guid":"c1","name":"Morning","dateCreated":"2024-01-01T00:00:00"}`), &collection))
	assert.Equal(t, "Morning", collection.Name)

	encoded, err := json.Marshal([]model.StreamCollection{collection})
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"dateCreated":"2024-01-01T00:00:00"`)
	assert.Contains(t, string(encoded), `"name":"Morning"`)
}
