package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/logging"
)

const (
	requestBodyLogKey  = "http.request.body.summary"
	responseBodyLogKey = "http.response.body.summary"
	maxLoggedBody      = 2048
	redacted           = "redacted"
	binaryBody         = "binary"
)

var sensitiveKeys = []string{"password", "token", "secret"}

func registerLogging(e *echo.Echo) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRoutePath: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			event := logging.Info(ctx)
			if v.Error != nil || v.Status >= 500 {
				event = logging.Error(ctx).Err(v.Error)
			} else if v.Status >= 400 {
				event = logging.Warn(ctx)
			}

			userID := "anonymous"
			if user, ok := CurrentUser(c); ok && user != nil {
				userID = user.ID.String()
			}

			event.
				Str("user_id", userID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("route", v.RoutePath).
				Int("status", v.Status).
				Int64("latency_ms", v.Latency.Milliseconds())
			addBodySummary(event, "request_body", c.Get(requestBodyLogKey))
			addBodySummary(event, "response_body", c.Get(responseBodyLogKey))
			event.Msg("http request")
			return nil
		},
	}))

	e.Use(middleware.BodyDumpWithConfig(middleware.BodyDumpConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return path == "/metrics" || strings.HasPrefix(path, "/swagger")
		},
		Handler: func(c echo.Context, reqBody, resBody []byte) {
			if summary := sanitizeBody(reqBody, c.Request().Header.Get(echo.HeaderContentType)); summary != nil {
				c.Set(requestBodyLogKey, summary)
			}
			if summary := sanitizeBody(resBody, c.Response().Header().Get(echo.HeaderContentType)); summary != nil {
				c.Set(responseBodyLogKey, summary)
			}
		},
	}))
}

func addBodySummary(event *zerolog.Event, key string, summary interface{}) {
	switch v := summary.(type) {
	case nil:
	case string:
		event.Str(key, v)
	default:
		event.Interface(key, v)
	}
}

// sanitizeBody turns a raw body into something safe to log: credentials are
// redacted, file parts and binary payloads are replaced, large bodies clipped.
func sanitizeBody(body []byte, contentType string) interface{} {
	if len(body) == 0 {
		return nil
	}

	trimmedType := strings.TrimSpace(contentType)
	loweredType := strings.ToLower(trimmedType)

	switch {
	case strings.HasPrefix(loweredType, "multipart/form-data"):
		return sanitizeMultipart(body, trimmedType)
	case strings.HasPrefix(loweredType, "application/x-www-form-urlencoded"):
		if values, err := url.ParseQuery(string(body)); err == nil {
			fields := make(map[string]interface{}, len(values))
			for key, vals := range values {
				for _, v := range vals {
					addFormField(fields, key, sanitizeStringValue(v, strings.ToLower(key)))
				}
			}
			return limitJSONSize(fields)
		}
	}

	if strings.HasPrefix(loweredType, "application/json") || json.Valid(body) {
		var data interface{}
		if err := json.Unmarshal(body, &data); err == nil {
			return limitJSONSize(sanitizeJSON(data, ""))
		}
	}

	if containsBinaryBytes(body) {
		return binaryBody
	}
	text := string(body)
	if isSensitiveKey(text) {
		return redacted
	}
	return clampString(text)
}

func isSensitiveKey(key string) bool {
	lowered := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lowered, s) {
			return true
		}
	}
	return false
}

func limitJSONSize(value interface{}) interface{} {
	buf, err := json.Marshal(value)
	if err != nil || len(buf) <= maxLoggedBody {
		return value
	}
	return map[string]interface{}{
		"_truncated": true,
		"_bytes":     len(buf),
	}
}

func sanitizeJSON(value interface{}, keyHint string) interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, val := range v {
			if isSensitiveKey(key) {
				result[key] = redacted
				continue
			}
			result[key] = sanitizeJSON(val, strings.ToLower(key))
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = sanitizeJSON(item, keyHint)
		}
		return result
	case string:
		return sanitizeStringValue(v, keyHint)
	default:
		return v
	}
}

func sanitizeStringValue(value string, keyHint string) string {
	if keyHint != "" && isSensitiveKey(keyHint) {
		return redacted
	}
	if containsBinaryBytes([]byte(value)) {
		return binaryBody
	}
	return clampString(value)
}

func sanitizeMultipart(body []byte, contentType string) interface{} {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") || params["boundary"] == "" {
		return binaryBody
	}

	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	fields := make(map[string]interface{})
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return binaryBody
		}

		name := part.FormName()
		if name == "" {
			_ = part.Close()
			continue
		}

		var value interface{} = binaryBody
		if part.FileName() == "" {
			if data, err := io.ReadAll(part); err == nil {
				value = sanitizeStringValue(string(data), strings.ToLower(name))
			}
		}
		_ = part.Close()
		addFormField(fields, name, value)
	}

	if len(fields) == 0 {
		return binaryBody
	}
	return limitJSONSize(fields)
}

func containsBinaryBytes(data []byte) bool {
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			return true
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return true
		}
		data = data[size:]
	}
	return false
}

func clampString(value string) string {
	if len(value) <= maxLoggedBody {
		return value
	}
	truncated := value[:maxLoggedBody]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "...(truncated)"
}

func addFormField(fields map[string]interface{}, key string, value interface{}) {
	if existing, ok := fields[key]; ok {
		switch items := existing.(type) {
		case []interface{}:
			fields[key] = append(items, value)
		default:
			fields[key] = []interface{}{items, value}
		}
		return
	}
	fields[key] = value
}
