package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/excel"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de test: API completa sobre el almacén en memoria y un directorio temporal
// ──────────────────────────────────────────────────────────────────────────────

const (
	featuredDefault = 2
	featuredMax     = 5
	galleryMax      = 3
)

type testEnv struct {
	app       *fiber.App
	store     *memory.Store
	uploadDir string
	admin     string
	customer  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	upload := config.UploadConfig{
		Dir:             t.TempDir(),
		PublicPath:      "/public/uploads",
		MaxFileSize:     1 << 20,
		MaxGalleryFiles: galleryMax,
		AllowedTypes:    config.DefaultAllowedTypes(),
	}
	images, err := storage.NewLocalStorage(upload, zerolog.Nop())
	require.NoError(t, err)

	productUC := usecase.NewProductUseCase(
		store.Products(), store.Categories(), store.TxRunner(), images,
		usecase.ProductConfig{
			FeaturedDefaultLimit: featuredDefault,
			FeaturedMaxLimit:     featuredMax,
			MaxGalleryFiles:      galleryMax,
		},
	)
	app := fiber.New(fiber.Config{BodyLimit: upload.BodyLimit()})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		UserUC:     usecase.NewUserUseCase(store.Users()),
		CategoryUC: usecase.NewCategoryUseCase(store.Categories(), store.TxRunner()),
		ProductUC:  productUC,
		ExportUC: usecase.NewCatalogExportUseCase(
			store.Products(), pdf.NewMarotoPDFGenerator(), excel.NewXLSXCatalogExporter(), "Catálogo",
		),
		Upload:    upload,
		JWTSecret: testJWTSecret,
	})

	return &testEnv{
		app:       app,
		store:     store,
		uploadDir: upload.Dir,
		admin:     tokenForRole(t, entity.RoleAdmin),
		customer:  tokenForRole(t, entity.RoleCustomer),
	}
}

// seedCategory inserta una categoría directamente en el almacén.
func (e *testEnv) seedCategory(t *testing.T, name string) string {
	t.Helper()
	now := time.Now().UTC()
	c := &entity.Category{ID: uuid.NewString(), Name: name, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, e.store.Categories().Create(context.Background(), c))
	return c.ID
}

// seedProduct inserta un producto directamente en el almacén.
func (e *testEnv) seedProduct(t *testing.T, name, categoryID string, featured bool) string {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{
		ID: uuid.NewString(), Name: name, Description: "desc",
		Image:      "http://example.com/public/uploads/" + name + ".png",
		Images:     []string{},
		Price:      decimal.NewFromInt(1000),
		CategoryID: categoryID, IsFeatured: featured,
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, e.store.Products().Create(context.Background(), p))
	return p.ID
}

// uploadedFiles nombres de archivo presentes en el directorio de subidas.
func (e *testEnv) uploadedFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(e.uploadDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, en := range entries {
		names = append(names, en.Name())
	}
	return names
}

func (e *testEnv) do(t *testing.T, req *http.Request, token string) *http.Response {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Construcción de peticiones
// ──────────────────────────────────────────────────────────────────────────────

type upload struct {
	field       string
	filename    string
	contentType string
	content     []byte
}

func pngFile(field, name string) upload {
	return upload{field: field, filename: name, contentType: "image/png", content: []byte("\x89PNG fake")}
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, files ...upload) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, target string, payload interface{}) *http.Request {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	decode(t, resp, &body)
	return body.Code
}
