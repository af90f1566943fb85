package v1

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/opspulse/dashboard/internal/config"
	"github.com/opspulse/dashboard/internal/service"
	"github.com/opspulse/dashboard/internal/store"
	"github.com/opspulse/dashboard/tests/helpers"
)

func newTestHandler(t *testing.T) (*Handler, store.Store) {
	t.Helper()
	cfg := &config.Config{Identity: "dashboard_user"}
	db := helpers.NewTestSQLiteStore(t)
	svc := service.New(db, cfg, zerolog.Nop())
	return NewHandler(svc), db
}
