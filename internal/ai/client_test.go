package ai_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"techpartner-api-server/internal/ai"
	"techpartner-api-server/internal/store"
)

func TestChat_ReturnsCandidateText(t *testing.T) {
	var gotKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Periksa kapasitor terlebih dahulu."}]}}]}`))
	}))
	defer srv.Close()

	client := ai.NewClient(srv.URL, nil)
	reply, err := client.Chat(context.Background(), "test-key", "system prompt", "AC tidak dingin")
	require.NoError(t, err)
	require.Equal(t, "Periksa kapasitor terlebih dahulu.", reply)
	require.Equal(t, "test-key", gotKey)
	require.Contains(t, gotBody, "systemInstruction")
}

func TestChat_EmptyCandidatesFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := ai.NewClient(srv.URL, nil)
	reply, err := client.Chat(context.Background(), "test-key", "sys", "halo")
	require.NoError(t, err)
	require.Contains(t, reply, "tidak mendapatkan respon")
}

func TestChat_MissingKey(t *testing.T) {
	client := ai.NewClient("http://127.0.0.1:0", nil)
	_, err := client.Chat(context.Background(), "", "sys", "halo")
	require.ErrorIs(t, err, ai.ErrNotConfigured)
}

func TestChat_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	client := ai.NewClient(srv.URL, nil)
	_, err := client.Chat(context.Background(), "bad-key", "sys", "halo")
	require.ErrorContains(t, err, "API key not valid")
}

func TestSystemPrompt_IncludesStats(t *testing.T) {
	st := store.Stats{
		Agency:         "UPT Teknis",
		TotalAssets:    12,
		BrokenAssets:   2,
		NeedService:    3,
		ActiveWO:       4,
		RecentFinances: []string{"Freon R32: Rp 350.000"},
		UrgentWO:       []string{"Perbaikan AC Server Room"},
	}

	prompt := ai.SystemPrompt(st)
	require.Contains(t, prompt, "UPT Teknis")
	require.Contains(t, prompt, "Total Aset: 12")
	require.Contains(t, prompt, "Freon R32: Rp 350.000")
	require.Contains(t, prompt, "Perbaikan AC Server Room")
}

func TestSystemPrompt_EmptySections(t *testing.T) {
	prompt := ai.SystemPrompt(store.Stats{Agency: "X"})
	require.Contains(t, prompt, "Belum ada")
	require.Contains(t, prompt, "Tidak ada")
}
