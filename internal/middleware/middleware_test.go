package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func TestRequireAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		presented  string
		wantStatus int
	}{
		{"no key configured passes through", "", "", fiber.StatusOK},
		{"correct key", "secret", "secret", fiber.StatusOK},
		{"wrong key", "secret", "nope", fiber.StatusUnauthorized},
		{"missing key", "secret", "", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/guarded", RequireAPIKey(tt.configured), func(c fiber.Ctx) error {
				return c.SendString("ok")
			})

			req := httptest.NewRequest("GET", "/guarded", nil)
			if tt.presented != "" {
				req.Header.Set(APIKeyHeader, tt.presented)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestCorrelation_HonorsInboundID(t *testing.T) {
	app := fiber.New()
	app.Use(Correlation())
	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString(c.Locals(CorrelationLocal).(string))
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(CorrelationHeader, "req-12345")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get(CorrelationHeader); got != "req-12345" {
		t.Errorf("echoed header = %q, want the inbound ID", got)
	}
}

func TestCorrelation_GeneratesID(t *testing.T) {
	app := fiber.New()
	app.Use(Correlation())
	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	id := resp.Header.Get(CorrelationHeader)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("generated ID %q is not a UUID: %v", id, err)
	}
}
