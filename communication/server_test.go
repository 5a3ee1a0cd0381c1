package communication

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jthemphill/htmf/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createTestGame(t *testing.T, r *gin.Engine) string {
	t.Helper()
	seed := uint64(7)
	w := doJSON(t, r, http.MethodPost, "/games", map[string]any{"seed": seed})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.ID)
	return body.ID
}

func TestCreateGameStartsADraft(t *testing.T) {
	r := NewServer(config.LoadSearch()).Router()
	id := createTestGame(t, r)

	w := doJSON(t, r, http.MethodGet, "/games/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp GameStateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.State.Drafting)
	require.False(t, resp.LastMoveWasIllegal)
}

func TestMovePenguinRejectsAnIllegalPlacement(t *testing.T) {
	r := NewServer(config.LoadSearch()).Router()
	id := createTestGame(t, r)

	w := doJSON(t, r, http.MethodGet, "/games/"+id, nil)
	var state GameStateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))

	// Find a cell guaranteed not to be a draftable one-fish tile.
	nonDraftable := -1
	for c, fish := range state.State.Board.Fish {
		if fish != 1 {
			nonDraftable = c
			break
		}
	}
	require.NotEqual(t, -1, nonDraftable)

	w = doJSON(t, r, http.MethodPost, "/games/"+id+"/move", map[string]any{"dst": nonDraftable})
	require.Equal(t, http.StatusOK, w.Code)

	var resp GameStateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.LastMoveWasIllegal)
}

func TestPonderGrowsTheTreeAndReportsProgress(t *testing.T) {
	r := NewServer(config.LoadSearch()).Router()
	id := createTestGame(t, r)

	w := doJSON(t, r, http.MethodPost, "/games/"+id+"/ponder", map[string]any{"n": 25})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ThinkingProgressResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 25, resp.Visits)
	require.Equal(t, 25, resp.TotalPlayouts)
}

func TestTakeActionCommitsAMove(t *testing.T) {
	r := NewServer(config.LoadSearch()).Router()
	id := createTestGame(t, r)

	doJSON(t, r, http.MethodPost, "/games/"+id+"/ponder", map[string]any{"n": 25})
	w := doJSON(t, r, http.MethodPost, "/games/"+id+"/takeAction", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp GameStateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.LastMoveWasIllegal)
	require.Equal(t, 1, resp.State.Turn)
}

func TestGameStateOnUnknownSessionIsNotFound(t *testing.T) {
	r := NewServer(config.LoadSearch()).Router()
	w := doJSON(t, r, http.MethodGet, "/games/does-not-exist", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
