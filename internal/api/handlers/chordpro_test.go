package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupChordProRouter() *gin.Engine {
	router := newTestRouter()
	h := NewChordProHandler(testMaxTranspose, nil)
	router.GET("/api/v1/keys", h.Keys)
	router.POST("/api/v1/chordpro/parse", h.Parse)
	router.POST("/api/v1/chordpro/transpose", h.Transpose)
	router.POST("/api/v1/chordpro/plain", h.Plain)
	return router
}

func TestChordProHandler_Keys(t *testing.T) {
	router := setupChordProRouter()

	w := doJSON(t, router, http.MethodGet, "/api/v1/keys", nil)

	require.Equal(t, http.StatusOK, w.Code)
	keys := decode(t, w)["keys"].([]any)
	assert.Len(t, keys, 12)
	assert.Equal(t, "C", keys[0])
}

func TestChordProHandler_Parse(t *testing.T) {
	router := setupChordProRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/chordpro/parse", gin.H{"content": amazingGrace})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "Amazing Grace", resp["title"])
	assert.Equal(t, "G", resp["key"])

	sections := resp["sections"].([]any)
	require.Len(t, sections, 1)
	section := sections[0].(map[string]any)
	assert.Equal(t, "verse", section["section_type"])
	line := section["lines"].([]any)[0].(map[string]any)
	assert.Equal(t, "Amazing grace, how sweet the sound", line["text"])
	assert.Len(t, line["chords"], 4)
}

func TestChordProHandler_Transpose(t *testing.T) {
	router := setupChordProRouter()

	tests := []struct {
		name           string
		body           gin.H
		expectedStatus int
		validateResp   func(t *testing.T, resp map[string]any)
	}{
		{
			name:           "by semitones",
			body:           gin.H{"content": "{key: C}\n[C]Hello [G]world", "semitones": 2},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "{key: D}\n[D]Hello [A]world", resp["content"])
				assert.Equal(t, float64(2), resp["semitones"])
				assert.Equal(t, "D", resp["key"])
			},
		},
		{
			name:           "to key takes the shortest path",
			body:           gin.H{"content": "{key: C}\n[C]Hello", "to_key": "A"},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, float64(-3), resp["semitones"])
				assert.Equal(t, "A", resp["key"])
				assert.Equal(t, "{key: A}\n[A]Hello", resp["content"])
			},
		},
		{
			name:           "no key directive",
			body:           gin.H{"content": "[C]Hello", "semitones": 1},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, resp map[string]any) {
				assert.Equal(t, "[C#]Hello", resp["content"])
				assert.Nil(t, resp["key"])
			},
		},
		{
			name:           "out of range",
			body:           gin.H{"content": "[C]Hello", "semitones": 13},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "to key without a source key",
			body:           gin.H{"content": "[C]Hello", "to_key": "D"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown target key",
			body:           gin.H{"content": "{key: C}\n[C]Hello", "to_key": "Q"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "neither semitones nor key",
			body:           gin.H{"content": "[C]Hello"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing content",
			body:           gin.H{"semitones": 1},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, router, http.MethodPost, "/api/v1/chordpro/transpose", tt.body)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.validateResp != nil {
				tt.validateResp(t, decode(t, w))
			}
		})
	}
}

func TestChordProHandler_Plain(t *testing.T) {
	router := setupChordProRouter()

	w := doJSON(t, router, http.MethodPost, "/api/v1/chordpro/plain", gin.H{"content": amazingGrace})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "Amazing grace, how sweet the sound", resp["text"])
	assert.Equal(t, "Amazing grace, how sweet the sound", resp["first_line"])
	assert.Equal(t, "Amazing Grace", resp["title"])
	assert.Equal(t, "G", resp["key"])
	assert.Equal(t, true, resp["has_chords"])
}
