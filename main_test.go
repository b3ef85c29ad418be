package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agriconnect/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvLogLevel, "error")

	configPath, verbose = "", false
	profilesSearch, profilesSort = "", "trust_score"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestProfilesCommand(t *testing.T) {
	out, err := execute(t, "profiles", "--search", "kenya")
	require.NoError(t, err)

	assert.Contains(t, out, "Akinyi Odhiambo")
	assert.Contains(t, out, "Amina Guyo")
	assert.Contains(t, out, "12 camels, 60 goats")
	assert.NotContains(t, out, "Kofi Mensah")
	assert.NotContains(t, out, "Bello Adebayo")
}

func TestProfilesCommand_NoMatch(t *testing.T) {
	out, err := execute(t, "profiles", "--search", "quinoa")
	require.NoError(t, err)
	assert.Contains(t, out, "No profiles match.")
}

func TestProfilesCommand_BadSort(t *testing.T) {
	_, err := execute(t, "profiles", "--sort", "age")
	assert.Error(t, err)
}

func TestConnectionsCommand(t *testing.T) {
	out, err := execute(t, "connections")
	require.NoError(t, err)

	assert.Contains(t, out, "Lent (outstanding $500.00)")
	assert.Contains(t, out, "Borrowed (outstanding $1200.00)")
	assert.Contains(t, out, "Bello Adebayo")
	assert.Contains(t, out, "Loan requests: 0 incoming, 0 outgoing")
}

func TestPlanCommand_NotConfigured(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")

	_, err := execute(t, "plan", "1")
	require.Error(t, err)
	assert.Equal(t, "API key is not configured.", err.Error())
}

func TestPlanCommand_UnknownProfile(t *testing.T) {
	t.Setenv(config.EnvAPIKey, "")
	_, err := execute(t, "plan", "404")
	assert.ErrorContains(t, err, "profile not found")
}

func TestPlanCommand(t *testing.T) {
	plan := `[
		{"installment": 1, "amount": 250, "suggestedDate": "March 2025", "reasoning": "Short rains harvest."},
		{"installment": 2, "amount": 250, "suggestedDate": "July 2025", "reasoning": "Long rains maize."},
		{"installment": 3, "amount": 250, "suggestedDate": "September 2025", "reasoning": "Sorghum sales."},
		{"installment": 4, "amount": 250, "suggestedDate": "December 2025", "reasoning": "Holiday prices."}
	]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": plan}},
				},
			}},
		})
	}))
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ai:\n  base_url: "+srv.URL+"/\n"), 0o600))
	t.Setenv(config.EnvAPIKey, "test-key")

	out, err := execute(t, "plan", "1", "--config", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Akinyi Odhiambo (Kisumu, Kenya)")
	assert.Contains(t, out, "Short rains harvest.")
	assert.Contains(t, out, "$1000.00")
}
