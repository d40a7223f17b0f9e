package http

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/njprem/Recipe_share_APP_BackEnd/internal/logging"
	"github.com/njprem/Recipe_share_APP_BackEnd/internal/util"
)

// SwaggerPath is read on every request so doc edits show up without a restart.
var SwaggerPath = filepath.Join("docs", "swagger.yaml")

// RegisterSwagger serves docs/swagger.yaml as JSON and the UI under /swagger.
func RegisterSwagger(e *echo.Echo) {
	e.GET("/swagger/doc.json", serveSwaggerDoc)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

func serveSwaggerDoc(c echo.Context) error {
	ctx := c.Request().Context()
	data, err := os.ReadFile(SwaggerPath)
	if err != nil {
		logging.Error(ctx).Err(err).Str("path", SwaggerPath).Msg("load swagger doc")
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load api docs"))
	}
	jsonDoc, err := yaml.YAMLToJSON(data)
	if err != nil {
		logging.Error(ctx).Err(err).Msg("convert swagger doc")
		return c.JSON(http.StatusInternalServerError, util.Error("unable to parse api docs"))
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, jsonDoc)
}
