package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

const MIMETextCSV = "text/csv"

// CSVSuccessResponse writes body as a csv attachment named fileName.
func CSVSuccessResponse(c echo.Context, fileName string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment;filename=%s", fileName))
	return c.Blob(http.StatusOK, MIMETextCSV, body)
}
