package http

import (
	"bytes"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"charity-fund-backend/internal/adapter/repository/mysql"
	"charity-fund-backend/internal/domain/donation"
	"charity-fund-backend/internal/domain/project"
	locks "charity-fund-backend/internal/infrastructure/lock"
	donationuc "charity-fund-backend/internal/usecase/donation"
	"charity-fund-backend/internal/usecase/investing"
	projectuc "charity-fund-backend/internal/usecase/project"
)

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func itoa(id uint64) string { return strconv.FormatUint(id, 10) }

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// newServer wires the real usecases over an in-memory sqlite database.
func newServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&project.CharityProject{}, &donation.Donation{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}

	inv := investing.NewService(mysql.NewGormUoW(db), locks.NewLocalLocker(), zerolog.Nop())
	e := newEchoWithValidator()
	Register(e,
		NewHandler(),
		NewProjectHandler(projectuc.NewUsecase(mysql.NewProjectRepository(db), inv)),
		NewDonationHandler(donationuc.NewUsecase(mysql.NewDonationRepository(db), inv)),
	)
	return e, db
}

func do(t *testing.T, e *echo.Echo, method, path string, body io.Reader, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
	return out
}

func wantStatus(t *testing.T, rec *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("status = %d (%s), want %d; body=%s", rec.Code, stdhttp.StatusText(rec.Code), code, rec.Body.String())
	}
}
