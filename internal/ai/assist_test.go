package ai_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Abhishek200416/p2/internal/ai"
)

// fakeChat replays a scripted response (or error) and records prompts.
type fakeChat struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func (c *fakeChat) Send(ctx context.Context, prompt string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return "", c.err
	}
	return c.response, nil
}

type fakeFactory struct {
	mu         sync.Mutex
	chats      map[string]*fakeChat
	next       *fakeChat
	created    int
	configured bool
}

func newFakeFactory(next *fakeChat) *fakeFactory {
	return &fakeFactory{chats: map[string]*fakeChat{}, next: next, configured: true}
}

func (f *fakeFactory) NewChat(systemMessage string) (ai.Chat, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
	f.chats[systemMessage] = f.next
	return f.next, nil
}

func (f *fakeFactory) IsConfigured() bool { return f.configured }

func newAssist(chat *fakeChat) (*ai.Assist, *fakeFactory) {
	factory := newFakeFactory(chat)
	return ai.NewAssist(factory, zap.NewNop().Sugar()), factory
}

func TestGenerateCSSStripsCodeFence(t *testing.T) {
	chat := &fakeChat{response: "```css\n.hero { color: red; }\n```"}
	assist, _ := newAssist(chat)

	env := assist.GenerateCSS(context.Background(), "a red hero", "div")
	assert.Equal(t, true, env["success"])
	assert.Equal(t, ".hero { color: red; }", env["css"])
}

func TestDesignSuggestionsParsesJSONArray(t *testing.T) {
	chat := &fakeChat{response: `[{"name":"Glass","css":".x{}","description":"clean"}]`}
	assist, _ := newAssist(chat)

	env := assist.DesignSuggestions(context.Background(), ai.ElementInfo{TagName: "DIV"})
	assert.Equal(t, true, env["success"])
	suggestions, ok := env["suggestions"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Glass", suggestions[0]["name"])
}

func TestDesignSuggestionsFallsBackOnProse(t *testing.T) {
	chat := &fakeChat{response: "Try a softer gradient."}
	assist, _ := newAssist(chat)

	env := assist.DesignSuggestions(context.Background(), ai.ElementInfo{})
	assert.Equal(t, true, env["success"])
	suggestions := env["suggestions"].([]map[string]any)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "AI Design Suggestion", suggestions[0]["name"])
	assert.Equal(t, "Try a softer gradient.", suggestions[0]["description"])
}

func TestDesignSuggestionsTruncatesContentPreview(t *testing.T) {
	chat := &fakeChat{response: "[]"}
	assist, _ := newAssist(chat)

	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}
	assist.DesignSuggestions(context.Background(), ai.ElementInfo{TextContent: string(long)})

	require.Len(t, chat.prompts, 1)
	assert.NotContains(t, chat.prompts[0], string(long))
}

func TestUpstreamFailureReportsEnvelope(t *testing.T) {
	chat := &fakeChat{err: errors.New("provider unreachable")}
	assist, _ := newAssist(chat)

	env := assist.ImproveContent(context.Background(), "text", "general")
	assert.Equal(t, false, env["success"])
	assert.Contains(t, env["error"], "provider unreachable")
}

func TestColorPaletteParseFailure(t *testing.T) {
	chat := &fakeChat{response: "here is a nice palette"}
	assist, _ := newAssist(chat)

	env := assist.ColorPalette(context.Background(), "modern")
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "failed to parse color palette response", env["error"])
}

func TestColorPaletteParsesJSON(t *testing.T) {
	chat := &fakeChat{response: `{"palette":{"primary":{"hex":"#112233"}},"css_variables":":root{}"}`}
	assist, _ := newAssist(chat)

	env := assist.ColorPalette(context.Background(), "modern")
	assert.Equal(t, true, env["success"])
	assert.NotNil(t, env["palette"])
	assert.Equal(t, ":root{}", env["css_variables"])
}

func TestSessionsReusedPerFeature(t *testing.T) {
	chat := &fakeChat{response: "ok"}
	assist, factory := newAssist(chat)

	assist.ImproveContent(context.Background(), "a", "general")
	assist.ImproveContent(context.Background(), "b", "general")
	assist.GenerateCSS(context.Background(), "c", "div")

	// two feature areas touched, two chats created, not three
	assert.Equal(t, 2, factory.created)
	assert.Equal(t, 2, assist.SessionCount())
}

func TestOptimizeStylesRoundTrip(t *testing.T) {
	chat := &fakeChat{response: `{"color":"red","transition":"all 0.3s ease"}`}
	assist, _ := newAssist(chat)

	out, err := assist.OptimizeStyles(context.Background(), map[string]any{"color": "red"})
	require.NoError(t, err)
	assert.Equal(t, "all 0.3s ease", out["transition"])
}

func TestProbeUnconfigured(t *testing.T) {
	factory := newFakeFactory(&fakeChat{response: "yes"})
	factory.configured = false
	assist := ai.NewAssist(factory, zap.NewNop().Sugar())

	assert.False(t, assist.Probe(context.Background()))
}

func TestProbeConfigured(t *testing.T) {
	assist, _ := newAssist(&fakeChat{response: "yes, working"})
	assert.True(t, assist.Probe(context.Background()))
}
