package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Abhishek200416/p2/internal/ai"
	"github.com/Abhishek200416/p2/internal/auth"
	"github.com/Abhishek200416/p2/internal/handlers"
	"github.com/Abhishek200416/p2/internal/media"
	"github.com/Abhishek200416/p2/internal/middleware"
	"github.com/Abhishek200416/p2/internal/models"
	"github.com/Abhishek200416/p2/internal/repository"
	"github.com/Abhishek200416/p2/internal/routes"
	"github.com/Abhishek200416/p2/internal/services"
)

const testPassphrase = "shipfast"

type fakeContentRepo struct {
	mu  sync.Mutex
	doc models.ContentDocument
}

func (r *fakeContentRepo) GetCurrent(ctx context.Context) (models.ContentDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.doc == nil {
		return nil, nil
	}
	out := models.ContentDocument{}
	for k, v := range r.doc {
		out[k] = v
	}
	return out, nil
}

func (r *fakeContentRepo) ReplaceCurrent(ctx context.Context, doc models.ContentDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doc = doc
	return nil
}

type fakeSubscriberRepo struct {
	mu   sync.Mutex
	rows []models.Subscriber
}

func (r *fakeSubscriberRepo) FindByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].Email == email {
			return &r.rows[i], nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriberRepo) Create(ctx context.Context, s *models.Subscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].Email == s.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.rows = append(r.rows, *s)
	return nil
}

func (r *fakeSubscriberRepo) ListAll(ctx context.Context) ([]models.Subscriber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Subscriber(nil), r.rows...), nil
}

func (r *fakeSubscriberRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

type fakeFeedbackRepo struct {
	mu   sync.Mutex
	rows []models.Feedback
}

func (r *fakeFeedbackRepo) Create(ctx context.Context, f *models.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *f)
	return nil
}

func (r *fakeFeedbackRepo) ListAll(ctx context.Context) ([]models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Feedback(nil), r.rows...), nil
}

func (r *fakeFeedbackRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func (r *fakeFeedbackRepo) ListSince(ctx context.Context, since time.Time) ([]models.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Feedback
	for _, f := range r.rows {
		if !f.Timestamp.Before(since) {
			out = append(out, f)
		}
	}
	return out, nil
}

type fakeContactRepo struct {
	mu   sync.Mutex
	rows []models.Contact
}

func (r *fakeContactRepo) Create(ctx context.Context, c *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *c)
	return nil
}

func (r *fakeContactRepo) ListAll(ctx context.Context) ([]models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Contact(nil), r.rows...), nil
}

func (r *fakeContactRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func (r *fakeContactRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.rows {
		if !c.Timestamp.Before(since) {
			n++
		}
	}
	return n, nil
}

type fakeStatusRepo struct {
	mu   sync.Mutex
	rows []models.StatusCheck
}

func (r *fakeStatusRepo) Create(ctx context.Context, s *models.StatusCheck) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *s)
	return nil
}

func (r *fakeStatusRepo) ListAll(ctx context.Context) ([]models.StatusCheck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.StatusCheck(nil), r.rows...), nil
}

type scriptedChat struct{ response string }

func (c *scriptedChat) Send(ctx context.Context, prompt string) (string, error) {
	return c.response, nil
}

type scriptedFactory struct {
	response   string
	configured bool
}

func (f *scriptedFactory) NewChat(systemMessage string) (ai.Chat, error) {
	return &scriptedChat{response: f.response}, nil
}

func (f *scriptedFactory) IsConfigured() bool { return f.configured }

type fixture struct {
	app    *fiber.App
	tokens *auth.TokenService
}

func newFixture(t *testing.T, factory ai.ChatFactory) *fixture {
	t.Helper()
	logger := zap.NewNop().Sugar()

	contentRepo := &fakeContentRepo{}
	tokens := auth.NewTokenService("test-secret", testPassphrase)
	contentSvc := services.NewContentService(contentRepo, logger)
	intakeSvc := services.NewIntakeService(&fakeSubscriberRepo{}, &fakeFeedbackRepo{}, &fakeContactRepo{}, logger)
	statusSvc := services.NewStatusService(&fakeStatusRepo{}, logger)

	store, err := media.NewStore(t.TempDir(), logger)
	require.NoError(t, err)

	if factory == nil {
		factory = &scriptedFactory{response: "ok", configured: false}
	}
	assist := ai.NewAssist(factory, logger)

	h := handlers.NewHandler(tokens, contentSvc, intakeSvc, statusSvc, store, assist, logger)
	app := fiber.New()
	routes.Setup(app, h, tokens, middleware.NewRateLimiter(nil, "test:rl", 20, time.Minute))

	return &fixture{app: app, tokens: tokens}
}

func (f *fixture) ownerToken(t *testing.T) string {
	t.Helper()
	token, err := f.tokens.Issue(testPassphrase)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && json.Unmarshal(raw, &decoded) != nil {
		decoded = nil
	}
	return resp.StatusCode, decoded
}

func fullContentDoc() map[string]any {
	doc := map[string]any{}
	for _, key := range models.RequiredSections {
		doc[key] = map[string]any{"placeholder": true}
	}
	return doc
}

func TestRootEndpoint(t *testing.T) {
	f := newFixture(t, nil)
	code, body := doJSON(t, f.app, http.MethodGet, "/api/", nil, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Abhishek Kolluri Portfolio API", body["message"])
	assert.Equal(t, "1.0.0", body["version"])
}

func TestLoginIssuesToken(t *testing.T) {
	f := newFixture(t, nil)
	code, body := doJSON(t, f.app, http.MethodPost, "/api/login", map[string]any{"passphrase": testPassphrase}, "")
	assert.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["token"])
	assert.Equal(t, "Login successful. Edit mode enabled for 24 hours.", body["message"])
}

func TestLoginRejectsWrongPassphrase(t *testing.T) {
	f := newFixture(t, nil)
	code, body := doJSON(t, f.app, http.MethodPost, "/api/login", map[string]any{"passphrase": "guess"}, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid passphrase", body["detail"])
}

func TestOwnerRouteWithoutHeader(t *testing.T) {
	f := newFixture(t, nil)
	code, body := doJSON(t, f.app, http.MethodGet, "/api/subscribers", nil, "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Not authenticated", body["detail"])
}

func TestOwnerRouteWithGarbageToken(t *testing.T) {
	f := newFixture(t, nil)
	code, body := doJSON(t, f.app, http.MethodGet, "/api/subscribers", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid token", body["detail"])
}

func TestGetContentPlaceholder(t *testing.T) {
	f := newFixture(t, nil)
	code, body := doJSON(t, f.app, http.MethodGet, "/api/content", nil, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "No content found, using defaults", body["message"])
}

func TestSaveContentRequiresAuth(t *testing.T) {
	f := newFixture(t, nil)
	code, _ := doJSON(t, f.app, http.MethodPost, "/api/save-content", fullContentDoc(), "")
	assert.Equal(t, http.StatusForbidden, code)
}

func TestSaveContentRejectsIncompleteDocument(t *testing.T) {
	f := newFixture(t, nil)
	doc := fullContentDoc()
	delete(doc, "projects")
	delete(doc, "contact")
	code, body := doJSON(t, f.app, http.MethodPost, "/api/save-content", doc, f.ownerToken(t))
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, body["detail"], "projects")
	assert.Contains(t, body["detail"], "contact")
}

func TestSaveContentRoundTrip(t *testing.T) {
	f := newFixture(t, nil)
	doc := fullContentDoc()
	doc["pwa_config"] = map[string]any{"theme_color": "#112233"}

	code, body := doJSON(t, f.app, http.MethodPost, "/api/save-content", doc, f.ownerToken(t))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Content saved successfully", body["message"])
	assert.NotEmpty(t, body["timestamp"])

	code, got := doJSON(t, f.app, http.MethodGet, "/api/content", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "owner", got["updated_by"])
	pwa, ok := got["pwa_config"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "#112233", pwa["theme_color"])
}

func TestSubscribeNewThenExisting(t *testing.T) {
	f := newFixture(t, nil)

	code, body := doJSON(t, f.app, http.MethodPost, "/api/subscribe", map[string]any{"email": "a@b.dev"}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "new", body["status"])

	code, body = doJSON(t, f.app, http.MethodPost, "/api/subscribe", map[string]any{"email": "a@b.dev"}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "existing", body["status"])
	assert.Equal(t, "Already subscribed!", body["message"])

	code, body = doJSON(t, f.app, http.MethodGet, "/api/subscribers", nil, f.ownerToken(t))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["count"])
}

func TestSubscribeRequiresEmail(t *testing.T) {
	f := newFixture(t, nil)
	code, _ := doJSON(t, f.app, http.MethodPost, "/api/subscribe", map[string]any{}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestFeedbackDefaultsAndListing(t *testing.T) {
	f := newFixture(t, nil)

	code, body := doJSON(t, f.app, http.MethodPost, "/api/feedback", map[string]any{
		"name":    "Dana",
		"email":   "dana@b.dev",
		"message": "great site",
	}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, body["id"])

	code, body = doJSON(t, f.app, http.MethodGet, "/api/feedback", nil, f.ownerToken(t))
	require.Equal(t, http.StatusOK, code)
	items, ok := body["feedback"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	entry := items[0].(map[string]any)
	assert.Equal(t, "general", entry["category"])
	assert.Equal(t, float64(5), entry["rating"])
	assert.Equal(t, true, entry["wouldRecommend"])
	assert.NotContains(t, entry, "ip_address")
	assert.NotContains(t, entry, "user_agent")
}

func TestContactDefaults(t *testing.T) {
	f := newFixture(t, nil)

	code, body := doJSON(t, f.app, http.MethodPost, "/api/contact", map[string]any{
		"name":    "Lee",
		"email":   "lee@b.dev",
		"message": "need an mvp",
	}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Message sent successfully! I'll get back to you soon.", body["message"])

	code, body = doJSON(t, f.app, http.MethodGet, "/api/contacts", nil, f.ownerToken(t))
	require.Equal(t, http.StatusOK, code)
	items := body["contacts"].([]any)
	require.Len(t, items, 1)
	entry := items[0].(map[string]any)
	assert.Equal(t, "mvp", entry["projectType"])
	assert.Equal(t, "under-25k", entry["budget"])
	assert.Equal(t, "1-week", entry["timeline"])
	assert.Equal(t, "email", entry["preferredContact"])
	assert.Equal(t, "normal", entry["urgency"])
	assert.Equal(t, "new", entry["status"])
}

func TestAnalyticsRequiresOwner(t *testing.T) {
	f := newFixture(t, nil)
	code, _ := doJSON(t, f.app, http.MethodGet, "/api/analytics", nil, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, body := doJSON(t, f.app, http.MethodGet, "/api/analytics", nil, f.ownerToken(t))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(0), body["subscribers"])
	assert.Equal(t, float64(0), body["avg_rating"])
}

func TestStatusCheckRoundTrip(t *testing.T) {
	f := newFixture(t, nil)

	code, body := doJSON(t, f.app, http.MethodPost, "/api/status", map[string]any{"client_name": "probe"}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "probe", body["client_name"])
	assert.NotEmpty(t, body["id"])

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	resp, err := f.app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()
	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "probe", list[0]["client_name"])
}

func uploadFile(t *testing.T, app *fiber.App, path, filename, contentType string, payload []byte) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && json.Unmarshal(raw, &decoded) != nil {
		decoded = nil
	}
	return resp.StatusCode, decoded
}

func TestUploadRejectsWrongFamily(t *testing.T) {
	f := newFixture(t, nil)
	code, body := uploadFile(t, f.app, "/api/super/video/upload", "photo.png", "image/png", []byte("png"))
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "File must be a video", body["detail"])
}

func TestUploadAndListVideo(t *testing.T) {
	f := newFixture(t, nil)
	code, asset := uploadFile(t, f.app, "/api/super/video/upload", "demo.mp4", "video/mp4", []byte("mp4 bytes"))
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, asset["id"])
	assert.Contains(t, asset["url"], "/api/super/video/serve/")

	code, body := doJSON(t, f.app, http.MethodGet, "/api/super/video/list", nil, "")
	require.Equal(t, http.StatusOK, code)
	videos := body["videos"].([]any)
	require.Len(t, videos, 1)
}

func TestAIAssistUnconfiguredFallback(t *testing.T) {
	f := newFixture(t, nil)
	code, body := doJSON(t, f.app, http.MethodPost, "/api/ai-assist", map[string]any{"prompt": "make it pop"}, f.ownerToken(t))
	require.Equal(t, http.StatusOK, code)
	suggestions := body["suggestions"].([]any)
	assert.Len(t, suggestions, 4)
}

func TestAIAssistRequiresOwner(t *testing.T) {
	f := newFixture(t, nil)
	code, _ := doJSON(t, f.app, http.MethodPost, "/api/ai-assist", map[string]any{"prompt": "make it pop"}, "")
	assert.Equal(t, http.StatusForbidden, code)
}

func TestAIAssistConfigured(t *testing.T) {
	f := newFixture(t, &scriptedFactory{response: "use a softer palette", configured: true})
	code, body := doJSON(t, f.app, http.MethodPost, "/api/ai-assist", map[string]any{"prompt": "colors?"}, f.ownerToken(t))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "use a softer palette", body["response"])
}

func TestGenerateCSSEndpoint(t *testing.T) {
	f := newFixture(t, &scriptedFactory{response: "```css\n.btn { color: blue; }\n```", configured: true})
	code, body := doJSON(t, f.app, http.MethodPost, "/api/super/ai/generate-css", map[string]any{
		"description": "a blue button",
	}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, ".btn { color: blue; }", body["css_code"])
}

func TestUpdateDimensionsEcho(t *testing.T) {
	f := newFixture(t, nil)
	code, body := doJSON(t, f.app, http.MethodPost, "/api/super/dimensions/update", map[string]any{
		"element_id": "hero-1",
		"width":      320.0,
		"height":     200.0,
	}, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "updated", body["status"])
	dims := body["dimensions"].(map[string]any)
	assert.Equal(t, float64(320), dims["width"])
}

func TestUpdateStylesFallsBackWithoutAI(t *testing.T) {
	f := newFixture(t, nil)
	styles := map[string]any{"color": "red", "margin": "0", "padding": "4px", "border": "none"}
	code, body := doJSON(t, f.app, http.MethodPost, "/api/super/styles/update", map[string]any{
		"element_id": "hero-1",
		"styles":     styles,
	}, "")
	require.Equal(t, http.StatusOK, code)
	got := body["styles"].(map[string]any)
	assert.Equal(t, "red", got["color"])
	assert.Equal(t, "none", got["border"])
}

func TestSuperHealthReportsFeatures(t *testing.T) {
	f := newFixture(t, nil)
	code, body := doJSON(t, f.app, http.MethodGet, "/api/super/health", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
	features := body["features"].(map[string]any)
	assert.Equal(t, true, features["video_upload"])
	assert.Equal(t, false, features["ai_integration"])
}

func TestAdvancedAnalyticsShape(t *testing.T) {
	f := newFixture(t, nil)
	uploadFile(t, f.app, "/api/super/image/upload", "a.jpg", "image/jpeg", []byte("jpg"))

	code, body := doJSON(t, f.app, http.MethodGet, "/api/super/analytics/advanced", nil, "")
	require.Equal(t, http.StatusOK, code)
	mediaStats := body["media"].(map[string]any)
	assert.Equal(t, float64(1), mediaStats["images"])
	assert.Equal(t, float64(0), mediaStats["videos"])
}
