package services

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"github.com/ohm-hive/orders-api/config"
	"github.com/ohm-hive/orders-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSignature = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// setupTestDB opens a migrated sqlite database in a temp directory
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Order{}, &models.UploadedFile{}, &models.Admin{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "0123456789abcdef0123456789abcdef",
		TokenIssuer:   "ohm-hive",
		TokenAudience: "ohm-hive-admin",
		SessionTTL:    time.Hour,
	}
}

type testFile struct {
	name    string
	content []byte
}

// fileHeaders builds multipart headers the way gin hands them to handlers
func fileHeaders(t *testing.T, files ...testFile) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="files"; filename="`+f.name+`"`)
		h.Set("Content-Type", "application/octet-stream")
		part, err := writer.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["files"]
}

// fixedNumbers replays a list of order numbers, repeating the last one
type fixedNumbers struct {
	numbers []string
	calls   int
}

func (f *fixedNumbers) Next() string {
	i := f.calls
	if i >= len(f.numbers) {
		i = len(f.numbers) - 1
	}
	f.calls++
	return f.numbers[i]
}
