package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/heat2go/internal/display"
)

type DisplayContent struct {
	Columns int      `json:"columns"`
	Rows    int      `json:"rows"`
	Lines   []string `json:"lines"`
}

func registerDisplayEndpoints(rest *echo.Echo, buffer *display.TextBuffer) {
	rest.GET("/display/", func(c echo.Context) error {
		if buffer == nil {
			return returnNotFound(c, "display")
		}
		return c.JSONPretty(http.StatusOK, DisplayContent{
			Columns: buffer.Columns(),
			Rows:    buffer.Rows(),
			Lines:   buffer.Lines(),
		}, indentationChar)
	})
}
