package llm

import (
	"context"
	"strings"
	"time"
)

// mockDelay simulates network latency so async call paths in callers get
// exercised without real I/O.
const mockDelay = 100 * time.Millisecond

// MockClient is a deterministic Client with no network access. It matches
// known action markers in the rendered prompt against canned responses and
// never fails, so the resolve→complete pipeline can run end to end in tests
// and demos without credentials.
type MockClient struct {
	markers         []string // match order is fixed so results are reproducible
	responses       map[string]string
	defaultResponse string
}

// NewMockClient seeds the canned responses for the stock actions.
func NewMockClient() *MockClient {
	m := &MockClient{
		responses:       make(map[string]string),
		defaultResponse: "[Mock LLM Response] Processed successfully.",
	}
	m.AddResponse("polite", "こんにちは、お元気でしょうか。いつもありがとうございます。")
	m.AddResponse("organize", "整理されたテキスト：\n\n1. 主要ポイント\n   - 項目A\n   - 項目B\n\n2. 詳細説明\n   - 説明1\n   - 説明2\n\n3. まとめ\n   - 結論")
	m.AddResponse("summarize", "要約: このテキストは主要な3つのポイントを含んでいます。")
	return m
}

// AddResponse registers or replaces a canned response for a marker.
func (m *MockClient) AddResponse(marker, response string) {
	if _, ok := m.responses[marker]; !ok {
		m.markers = append(m.markers, marker)
	}
	m.responses[marker] = response
}

// SetDefaultResponse replaces the fallback response.
func (m *MockClient) SetDefaultResponse(response string) {
	m.defaultResponse = response
}

func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(mockDelay):
	}

	if marker, ok := m.matchMarker(prompt); ok {
		return m.responses[marker], nil
	}
	return m.defaultResponse, nil
}

func (m *MockClient) ProviderName() string { return "mock" }

func (m *MockClient) ModelName() string { return "mock-model-v1" }

// matchMarker finds a known marker in the prompt: a registered marker name,
// or one of the Japanese phrases the stock templates contain.
func (m *MockClient) matchMarker(prompt string) (string, bool) {
	for _, marker := range m.markers {
		if strings.Contains(prompt, marker) {
			return marker, true
		}
	}
	switch {
	case strings.Contains(prompt, "丁寧"):
		return "polite", true
	case strings.Contains(prompt, "整理"):
		return "organize", true
	case strings.Contains(prompt, "要約"):
		return "summarize", true
	}
	return "", false
}
