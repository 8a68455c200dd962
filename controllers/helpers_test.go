package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ohm-hive/orders-api/config"
	"github.com/ohm-hive/orders-api/middleware"
	"github.com/ohm-hive/orders-api/models"
	"github.com/ohm-hive/orders-api/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testSignature = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="
	adminUser     = "admin"
	adminPass     = "s3cret-pass"
)

type testEnv struct {
	db       *gorm.DB
	store    *services.MockFileStore
	notifier *services.MockNotifier
	auth     *services.AuthService
	router   *gin.Engine
}

// setupTestEnv wires the services against sqlite and in-memory mocks and
// mounts every order route
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.UploadedFile{}, &models.Admin{}))
	config.SetDB(db)

	store := services.NewMockFileStore()
	store.SetAsMockForTesting()
	services.SetOrderService(services.NewOrderService(db, store))

	notifier := services.NewMockNotifier()
	notifier.SetAsMockForTesting()

	auth, err := services.NewAuthService(db, services.NewMemorySessionStore(), &config.Config{
		JWTSecret:     "0123456789abcdef0123456789abcdef",
		TokenIssuer:   "ohm-hive",
		TokenAudience: "ohm-hive-admin",
		SessionTTL:    time.Hour,
	})
	require.NoError(t, err)
	require.NoError(t, auth.SeedAdmin(context.Background(), adminUser, adminPass))
	services.SetAuthService(auth)

	router := gin.New()
	admin := middleware.RequireAdmin(auth)
	v1 := router.Group("/api/v1")
	{
		v1.GET("/services", ListServices)
		v1.POST("/pricing/quote", QuotePricing)

		v1.POST("/orders", SubmitOrder)
		v1.GET("/orders", admin, ListOrders)
		v1.GET("/orders/:orderNumber", GetOrder)
		v1.PATCH("/orders/:orderNumber", admin, UpdateOrder)
		v1.DELETE("/orders/:orderNumber", admin, DeleteOrder)
		v1.GET("/orders/:orderNumber/receipt", GetReceipt)
		v1.GET("/orders/:orderNumber/receipt/qr", GetReceiptQR)
		v1.GET("/orders/:orderNumber/receipt/qr.png", GetReceiptQRImage)

		v1.GET("/uploads/:filename", admin, DownloadFile)

		v1.POST("/admin/login", Login)
		v1.POST("/admin/logout", Logout)
		v1.GET("/admin/verify", admin, Verify)
	}

	return &testEnv{db: db, store: store, notifier: notifier, auth: auth, router: router}
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()
	result, err := e.auth.Login(context.Background(), adminUser, adminPass)
	require.NoError(t, err)
	return result.Token
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// createOrder stores an order directly through the service
func (e *testEnv) createOrder(t *testing.T, serviceType string, details map[string]interface{}) *models.Order {
	t.Helper()
	order, err := services.GetOrderService().CreateOrder(context.Background(), services.OrderInput{
		FirstName:      "Sara",
		LastName:       "Alharbi",
		Phone:          "0500000000",
		Email:          "sara@example.com",
		ServiceType:    serviceType,
		ServiceDetails: details,
		Signature:      testSignature,
	}, nil)
	require.NoError(t, err)
	return order
}

type testFile struct {
	name    string
	content []byte
}

func orderFields(serviceType string) map[string]string {
	return map[string]string{
		"firstName":   "Sara",
		"lastName":    "Alharbi",
		"phone":       "0500000000",
		"email":       "sara@example.com",
		"serviceType": serviceType,
		"signature":   testSignature,
	}
}

// multipartRequest builds a multipart POST like the order form sends
func multipartRequest(t *testing.T, url string, fields map[string]string, files ...testFile) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile("files", f.name)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	response := decode(t, w)
	errObj, ok := response["error"].(map[string]interface{})
	require.True(t, ok, "response has no error object: %s", w.Body.String())
	return errObj["code"].(string)
}
