package http

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	idempotencyTTL       = 24 * time.Hour
	maxIdempotencyKeyLen = 128
)

// RequestLogger writes one access log record per request.
func RequestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			switch {
			case v.Status >= http.StatusInternalServerError:
				level = slog.LevelError
			case v.Status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("remote_ip", v.RemoteIP),
			}
			if v.RequestID != "" {
				attrs = append(attrs, slog.String("request_id", v.RequestID))
			}
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
			}
			logger.LogAttrs(c.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}

// IdempotencyStore keeps the first response for an idempotency key.
type IdempotencyStore interface {
	Key(scope, id string) string
	Get(ctx context.Context, key string) (string, bool, error)
	Save(ctx context.Context, key, record string, ttl time.Duration) (bool, error)
}

type idempotencyRecord struct {
	Status      int    `json:"status"`
	Body        string `json:"body"`
	ContentType string `json:"content_type,omitempty"`
	RequestHash string `json:"request_hash"`
}

// Idempotency replays the stored response of a POST that carries an
// Idempotency-Key the caller already used on the same route. Reusing a key with
// a different body is a conflict. Server errors are not stored, so they can be retried.
// It must run after authentication; keys are scoped per caller.
func Idempotency(store IdempotencyStore, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			idempotencyKey := strings.TrimSpace(req.Header.Get(HeaderIdempotencyKey))
			if store == nil || req.Method != http.MethodPost || idempotencyKey == "" {
				return next(c)
			}
			if len(idempotencyKey) > maxIdempotencyKeyLen {
				return echo.NewHTTPError(http.StatusBadRequest, "Idempotency-Key is too long")
			}

			body, err := io.ReadAll(req.Body)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "read request body")
			}
			req.Body = io.NopCloser(bytes.NewReader(body))

			requestHash := hashBody(body)
			key := store.Key(idempotencyScope(c), idempotencyKey)

			stored, found, err := store.Get(req.Context(), key)
			if err != nil {
				return err
			}
			if found {
				var record idempotencyRecord
				if err := json.Unmarshal([]byte(stored), &record); err != nil {
					return err
				}
				if record.RequestHash != requestHash {
					return echo.NewHTTPError(http.StatusConflict, "Idempotency-Key reused with a different request body")
				}
				return replay(c, record)
			}

			capture := &responseCapture{ResponseWriter: c.Response().Writer}
			c.Response().Writer = capture

			if err := next(c); err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			if status >= http.StatusInternalServerError {
				return nil
			}

			record := idempotencyRecord{
				Status:      status,
				Body:        base64.StdEncoding.EncodeToString(capture.body.Bytes()),
				ContentType: c.Response().Header().Get(echo.HeaderContentType),
				RequestHash: requestHash,
			}
			payload, err := json.Marshal(record)
			if err != nil {
				logger.Error("marshal idempotency record", slog.Any("error", err))
				return nil
			}
			if _, err := store.Save(req.Context(), key, string(payload), idempotencyTTL); err != nil {
				logger.Error("persist idempotency record", slog.String("key", key), slog.Any("error", err))
			}
			return nil
		}
	}
}

func idempotencyScope(c echo.Context) string {
	parts := []string{"anonymous", c.Request().Method, c.Request().URL.Path}
	if actor, err := ActorFrom(c); err == nil {
		parts[0] = actor.UserID().String()
	}
	return strings.Join(parts, "|")
}

func replay(c echo.Context, record idempotencyRecord) error {
	body, err := base64.StdEncoding.DecodeString(record.Body)
	if err != nil {
		return err
	}
	c.Response().Header().Set("Idempotent-Replayed", "true")
	if record.ContentType == "" {
		return c.NoContent(record.Status)
	}
	return c.Blob(record.Status, record.ContentType, body)
}

func hashBody(payload []byte) string {
	sum := sha256.Sum256(payload)
	return base64.StdEncoding.EncodeToString(sum[:])
}

type responseCapture struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (r *responseCapture) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// requestValidator plugs validator/v10 into echo's Context.Validate. Field
// names in errors are the JSON names.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validate: v}
}

func (r *requestValidator) Validate(i any) error {
	return r.validate.Struct(i)
}
