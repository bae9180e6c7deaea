package webapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	imglib "image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/zip"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"brandkit-server-go/internal/domain/auth"
	authstore "brandkit-server-go/internal/domain/auth/store"
	"brandkit-server-go/internal/domain/brandkit"
	"brandkit-server-go/internal/domain/export"
	"brandkit-server-go/internal/domain/generation"
	"brandkit-server-go/internal/domain/imageresolver"
	"brandkit-server-go/internal/platform/config"
	"brandkit-server-go/internal/platform/logging"
	"brandkit-server-go/internal/platform/storage"
)

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := imglib.NewRGBA(imglib.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

type stubProvider struct {
	image string
	text  string
}

func (p *stubProvider) GenerateImage(context.Context, generation.ImageRequest) (generation.ImageResult, error) {
	return generation.ImageResult{Base64: p.image, Format: "png"}, nil
}

func (p *stubProvider) GenerateText(context.Context, generation.TextRequest) (string, error) {
	return p.text, nil
}

type testAPI struct {
	engine *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger, err := logging.New(logging.Config{Level: "error", Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	t.Cleanup(func() { logger.Close() })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&storage.User{}, &storage.BrandKitRecord{}, &storage.AssetRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	manager, err := auth.NewManager(auth.Options{
		Store:      authstore.NewMemory(authstore.Config{TTL: time.Hour}),
		Logger:     logger,
		Secret:     "test-secret",
		SessionTTL: time.Hour,
	})
	if err != nil {
		t.Fatalf("auth manager: %v", err)
	}
	t.Cleanup(func() { _ = manager.Close(context.Background()) })

	rawPNG := pngDataURI(t)
	provider := &stubProvider{
		image: rawPNG[len("data:image/png;base64,"):],
		text:  "Brew boldly.",
	}

	svc, err := NewService(Options{
		Config:    config.Default(),
		Logger:    logger,
		Auth:      manager,
		Users:     storage.NewUserRepository(db),
		Kits:      brandkit.NewService(storage.NewBrandKitRepository(db), logger),
		Generator: generation.NewService(provider, logger, 2),
		Assembler: export.NewAssembler(export.AssemblerOptions{Logger: logger}),
		Resolver:  imageresolver.New(imageresolver.Options{Logger: logger}),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	engine := gin.New()
	api := engine.Group("/api")
	secured := api.Group("")
	secured.Use(auth.Middleware(manager))
	if err := svc.Register(context.Background(), api, secured); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return &testAPI{engine: engine}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			t.Fatalf("decode data: %v (data %s)", err, envelope.Data)
		}
	}
}

func (a *testAPI) registerUser(t *testing.T, username string) string {
	t.Helper()
	rec := a.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"password": "longenough",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register = %d: %s", rec.Code, rec.Body.String())
	}
	var session sessionResponse
	decodeData(t, rec, &session)
	return session.Token
}

func TestAuthEndpoints(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerUser(t, "ada")

	rec := api.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "ada",
		"password": "longenough",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register = %d, want 400: %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "ada",
		"password": "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login = %d, want 401", rec.Code)
	}

	rec = api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "ada",
		"password": "longenough",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d: %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodGet, "/api/auth/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me = %d: %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodGet, "/api/auth/me", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("me without token = %d, want 401", rec.Code)
	}

	rec = api.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout = %d: %s", rec.Code, rec.Body.String())
	}
	rec = api.do(t, http.MethodGet, "/api/auth/me", token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("me after logout = %d, want 401", rec.Code)
	}
}

func TestKitCRUD(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerUser(t, "ada")

	rec := api.do(t, http.MethodPost, "/api/kits", token, gin.H{
		"name":     "Northwind",
		"industry": "coffee",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", rec.Code, rec.Body.String())
	}
	var kit kitView
	decodeData(t, rec, &kit)
	if kit.ID == 0 || kit.Step != "draft" {
		t.Fatalf("unexpected kit: %+v", kit)
	}

	rec = api.do(t, http.MethodGet, "/api/kits", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list = %d", rec.Code)
	}
	var kits []kitView
	decodeData(t, rec, &kits)
	if len(kits) != 1 {
		t.Fatalf("list returned %d kits, want 1", len(kits))
	}

	otherToken := api.registerUser(t, "grace")
	rec = api.do(t, http.MethodGet, fmt.Sprintf("/api/kits/%d", kit.ID), otherToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("cross-owner get = %d, want 404", rec.Code)
	}

	rec = api.do(t, http.MethodDelete, fmt.Sprintf("/api/kits/%d", kit.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete = %d", rec.Code)
	}
	rec = api.do(t, http.MethodGet, fmt.Sprintf("/api/kits/%d", kit.ID), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete = %d, want 404", rec.Code)
	}
}

func TestWizardGenerationAndExport(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerUser(t, "ada")

	rec := api.do(t, http.MethodPost, "/api/kits", token, gin.H{"name": "Northwind"})
	var kit kitView
	decodeData(t, rec, &kit)
	base := fmt.Sprintf("/api/kits/%d", kit.ID)

	// draft -> identity -> palette
	for i := 0; i < 2; i++ {
		rec = api.do(t, http.MethodPost, base+"/advance", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("advance %d = %d: %s", i, rec.Code, rec.Body.String())
		}
	}

	rec = api.do(t, http.MethodPut, base+"/palette", token, gin.H{
		"primary":    "#112233",
		"secondary":  "#445566",
		"accent":     "#778899",
		"background": "#ffffff",
		"text":       "#000000",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("palette = %d: %s", rec.Code, rec.Body.String())
	}
	decodeData(t, rec, &kit)
	if kit.Step != "typography" {
		t.Fatalf("step after palette = %s, want typography", kit.Step)
	}

	rec = api.do(t, http.MethodPut, base+"/typography", token, gin.H{
		"headingFont": "Playfair Display",
		"bodyFont":    "Open Sans",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("typography = %d: %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodPost, base+"/generate/concepts", token, gin.H{"count": 3})
	if rec.Code != http.StatusOK {
		t.Fatalf("generate = %d: %s", rec.Code, rec.Body.String())
	}
	var genResult struct {
		Kit kitView `json:"kit"`
	}
	decodeData(t, rec, &genResult)
	if len(genResult.Kit.Assets) != 3 {
		t.Fatalf("expected 3 generated assets, got %d", len(genResult.Kit.Assets))
	}

	rec = api.do(t, http.MethodPost, base+"/logo/select", token, gin.H{
		"asset_id": genResult.Kit.Assets[0].ID,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("select logo = %d: %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodPost, base+"/export", token, gin.H{})
	if rec.Code != http.StatusOK {
		t.Fatalf("export = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/zip" {
		t.Fatalf("export content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd == "" {
		t.Fatal("expected Content-Disposition header")
	}

	zr, err := zip.NewReader(bytes.NewReader(rec.Body.Bytes()), int64(rec.Body.Len()))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"README.md", "styles/colors.css", "styles/typography.css", "guidelines.md", "logos/main-logo.png"} {
		if !names[want] {
			t.Fatalf("archive missing %s (have %v)", want, names)
		}
	}
}

func TestResolveEndpoint(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerUser(t, "ada")

	rec := api.do(t, http.MethodPost, "/api/kits", token, gin.H{"name": "Northwind"})
	var kit kitView
	decodeData(t, rec, &kit)

	inline := pngDataURI(t)
	rec = api.do(t, http.MethodPost, fmt.Sprintf("/api/kits/%d/resolve", kit.ID), token, gin.H{
		"source":    inline,
		"thumbnail": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("resolve = %d: %s", rec.Code, rec.Body.String())
	}
	var result struct {
		State string `json:"state"`
		URL   string `json:"url"`
	}
	decodeData(t, rec, &result)
	if result.State != "loaded" {
		t.Fatalf("state = %s, want loaded", result.State)
	}
	if result.URL != inline {
		t.Fatal("inline source must resolve to itself")
	}
}

func TestGenerateTagline(t *testing.T) {
	api := newTestAPI(t)
	token := api.registerUser(t, "ada")

	rec := api.do(t, http.MethodPost, "/api/kits", token, gin.H{"name": "Northwind"})
	var kit kitView
	decodeData(t, rec, &kit)

	rec = api.do(t, http.MethodPost, fmt.Sprintf("/api/kits/%d/generate/tagline", kit.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("tagline = %d: %s", rec.Code, rec.Body.String())
	}
	var result struct {
		Tagline string `json:"tagline"`
	}
	decodeData(t, rec, &result)
	if result.Tagline != "Brew boldly." {
		t.Fatalf("tagline = %q", result.Tagline)
	}
}
