package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bandup/internal/inference"
)

func TestClient_Generate(t *testing.T) {
	sentenceJSON := `{"vietnamese":"Tôi đi làm mỗi ngày.","topic":"work","targetBand":"6.5","hint":"daily routine","keyStructures":["mỗi ngày"]}`

	var mu sync.Mutex
	var prompts []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		mu.Lock()
		prompts = append(prompts, userPrompt(t, r))
		mu.Unlock()
		_, _ = w.Write(completionBody(t, "```json\n"+sentenceJSON+"\n```"))
	}))
	defer server.Close()

	client := newTestClient("test-key", server.URL)
	defer client.Close()

	sentence, err := client.Generate(context.Background(), "work", "6.5")
	require.NoError(t, err)
	assert.Equal(t, inference.Sentence{
		Vietnamese:    "Tôi đi làm mỗi ngày.",
		Topic:         "work",
		TargetBand:    "6.5",
		Hint:          "daily routine",
		KeyStructures: []string{"mỗi ngày"},
	}, sentence)

	require.Len(t, prompts, 1)
	assert.Contains(t, prompts[0], "Topic: work")
	assert.Contains(t, prompts[0], "Target band: 6.5")
	assert.NotContains(t, prompts[0], "Do not repeat")

	_, err = client.Generate(context.Background(), "work", "6.5")
	require.NoError(t, err)
	require.Len(t, prompts, 2)
	assert.Contains(t, prompts[1], "Do not repeat any of these recently generated sentences:")
	assert.Contains(t, prompts[1], "Tôi đi làm mỗi ngày.")
}

func TestClient_Generate_SchemaMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(completionBody(t, `{"topic":"work","targetBand":"6.5"}`))
	}))
	defer server.Close()

	client := newTestClient("test-key", server.URL)
	defer client.Close()

	_, err := client.Generate(context.Background(), "work", "6.5")
	require.Error(t, err)
	assert.True(t, inference.IsKind(err, inference.KindSchemaMismatch), "sentence without vietnamese text is rejected")
}

func TestClient_Evaluate(t *testing.T) {
	payload := `{"overallBand":6.5,"criteria":{"taskResponse":{"band":7,"comment":"meaning preserved"},"coherenceCohesion":{"band":6.5,"comment":"natural flow"},"lexicalResource":{"band":6,"comment":"basic vocabulary"},"grammaticalAccuracy":{"band":6.5,"comment":"one tense slip"}},"strengths":["clear structure"],"issues":["minor tense slip"],"upgrades":[{"original":"go to work","context":"daily commute","alternatives":[{"word":"commute","partOfSpeech":"verb","meaning":"travel regularly to work","meaningVi":"đi làm hằng ngày","example":"I commute by bus.","level":"B2"}]}],"improvedVersion":"I commute to work every day.","rationale":"Commute is more precise."}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(completionBody(t, payload))
	}))
	defer server.Close()

	client := newTestClient("test-key", server.URL)
	defer client.Close()

	feedback, err := client.Evaluate(context.Background(), "Tôi đi làm mỗi ngày.", "I go to work every day.", "6.5")
	require.NoError(t, err)

	assert.Equal(t, 6.5, feedback.OverallBand)
	assert.Equal(t, 7.0, feedback.Criteria.TaskResponse.Band)
	assert.Equal(t, []string{"clear structure"}, feedback.Strengths)
	require.Len(t, feedback.Upgrades, 1)
	require.Len(t, feedback.Upgrades[0].Alternatives, 1)
	assert.Equal(t, "commute", feedback.Upgrades[0].Alternatives[0].Word)
	assert.Equal(t, "I commute to work every day.", feedback.ImprovedVersion)
}

func TestClient_Evaluate_RejectsOutOfRangeBand(t *testing.T) {
	payload := `{"overallBand":9.3,"criteria":{"taskResponse":{"band":7},"coherenceCohesion":{"band":7},"lexicalResource":{"band":7},"grammaticalAccuracy":{"band":7}},"improvedVersion":"x","rationale":"y"}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(completionBody(t, payload))
	}))
	defer server.Close()

	client := newTestClient("test-key", server.URL)
	defer client.Close()

	_, err := client.Evaluate(context.Background(), "source", "translation", "6.5")
	require.Error(t, err)
	assert.True(t, inference.IsKind(err, inference.KindSchemaMismatch), "bands must land on half-band steps within 0-9")
}

func TestClient_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := newTestClient("test-key", server.URL, WithMaxRetries(0))
	defer client.Close()

	_, err := client.Generate(context.Background(), "work", "6.5")
	require.Error(t, err)
	assert.True(t, inference.IsKind(err, inference.KindEmptyResponse))
}

func TestClient_GetModel(t *testing.T) {
	client := NewClient("test-key", "gpt-4o-mini")
	defer client.Close()
	assert.Equal(t, "gpt-4o-mini", client.GetModel())
}
