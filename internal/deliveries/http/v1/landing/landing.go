package landing

import (
	"bytes"
	"errors"
	"net/http"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	commonhttp "bitbucket.org/Amartha/go-accounting-landing/internal/common/http"
	"bitbucket.org/Amartha/go-accounting-landing/internal/common/validation"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
	"bitbucket.org/Amartha/go-accounting-landing/internal/repositories"
	"bitbucket.org/Amartha/go-accounting-landing/internal/services"

	"github.com/labstack/echo/v4"
)

const formatCSV = "csv"

type landingHandler struct {
	batchSvc services.BatchService
	fileRepo repositories.FileRepository
}

// New landing handler will initialize the landing/ resources endpoint
func New(app *echo.Group, batchSvc services.BatchService, fileRepo repositories.FileRepository) {
	handler := landingHandler{
		batchSvc: batchSvc,
		fileRepo: fileRepo,
	}

	landing := app.Group("/landing")
	landing.GET("/error-codes", handler.listErrorCodes())
	landing.GET("/batches/:batchId", handler.getBatchSummary())
	landing.POST("/:sourceSystem/transform", handler.transform())
	landing.POST("/:sourceSystem/upload", handler.upload())
}

// transform API transform source records into landing records
// @Summary Transform source records
// @Description Transform rows of one source system without writing any file. HR rows must carry their payroll columns.
// @Tags Landing
// @Accept  json
// @Produce  json
// @Param 	sourceSystem path string true "SALE, HR or INV"
// @Param 	format query string false "csv returns the landing file instead of json"
// @Param body body models.TransformRequest true "body"
// @Success 200 {object} models.TransformResponse
// @Failure 400 {object} http.RestErrorResponseModel
// @Failure 422 {object} http.RestErrorValidationResponseModel
// @Failure 500 {object} http.RestErrorResponseModel
// @Router /v1/landing/{sourceSystem}/transform [post]
func (h *landingHandler) transform() echo.HandlerFunc {
	return func(c echo.Context) error {
		system, err := models.ParseSourceSystem(c.Param("sourceSystem"))
		if err != nil {
			return commonhttp.RestErrorResponse(c, http.StatusBadRequest, err)
		}

		var req models.TransformRequest
		if err = c.Bind(&req); err != nil {
			return commonhttp.RestErrorResponse(c, http.StatusBadRequest, err)
		}

		if err = validation.ValidateStruct(&req); err != nil {
			return commonhttp.RestErrorValidationResponse(c, err)
		}

		return h.transformAndRespond(c, system, req)
	}
}

// upload API transform the rows of an uploaded source csv
// @Summary Transform an uploaded source file
// @Description Transform the rows of a csv export without writing any file. The header row names the source columns.
// @Tags Landing
// @Accept  multipart/form-data
// @Produce  json
// @Param 	sourceSystem path string true "SALE, HR or INV"
// @Param 	format query string false "csv returns the landing file instead of json"
// @Param 	file formData file true "source csv"
// @Param 	batch_id formData string false "batch id"
// @Success 200 {object} models.TransformResponse
// @Failure 400 {object} http.RestErrorResponseModel
// @Failure 422 {object} http.RestErrorValidationResponseModel
// @Failure 500 {object} http.RestErrorResponseModel
// @Router /v1/landing/{sourceSystem}/upload [post]
func (h *landingHandler) upload() echo.HandlerFunc {
	return func(c echo.Context) error {
		system, err := models.ParseSourceSystem(c.Param("sourceSystem"))
		if err != nil {
			return commonhttp.RestErrorResponse(c, http.StatusBadRequest, err)
		}

		file, err := c.FormFile("file")
		if err != nil {
			return commonhttp.RestErrorResponse(c, http.StatusBadRequest, err)
		}

		req := models.TransformRequest{BatchID: c.FormValue("batch_id")}
		for res := range h.fileRepo.StreamReadMultipartFile(c.Request().Context(), file) {
			if res.Err != nil {
				return commonhttp.RestErrorResponse(c, http.StatusBadRequest, res.Err)
			}
			req.Records = append(req.Records, res.Record)
		}

		if err = validation.ValidateStruct(&req); err != nil {
			return commonhttp.RestErrorValidationResponse(c, err)
		}

		return h.transformAndRespond(c, system, req)
	}
}

func (h *landingHandler) transformAndRespond(c echo.Context, system models.SourceSystem, req models.TransformRequest) error {
	result, err := h.batchSvc.TransformRecords(c.Request().Context(), system, req.BatchID, req.Records)
	if err != nil {
		if errors.Is(err, common.ErrUnableGetTransformer) {
			return commonhttp.RestErrorResponse(c, http.StatusBadRequest, err)
		}
		return commonhttp.RestErrorResponse(c, http.StatusInternalServerError, err)
	}

	if c.QueryParam("format") == formatCSV {
		var buf bytes.Buffer
		if err = h.fileRepo.WriteLandingCSV(&buf, result.LandingRecords); err != nil {
			return commonhttp.RestErrorResponse(c, http.StatusInternalServerError, err)
		}
		return commonhttp.CSVSuccessResponse(c, models.LandingFileNameFor(system), buf.Bytes())
	}

	return commonhttp.RestSuccessResponse(c, http.StatusOK, models.NewTransformResponse(result))
}

// listErrorCodes API get the landing error catalog
// @Summary Get all landing error codes
// @Description Get all landing error codes
// @Tags Landing
// @Accept  json
// @Produce  json
// @Success 200 {object} http.RestTotalRowResponseModel
// @Router /v1/landing/error-codes [get]
func (h *landingHandler) listErrorCodes() echo.HandlerFunc {
	return func(c echo.Context) error {
		data := h.batchSvc.ListErrorCodes(c.Request().Context())
		return commonhttp.RestSuccessResponseListWithTotalRows(c, data, len(data))
	}
}

// getBatchSummary API get the outcome of a landing batch
// @Summary Get landing batch summary
// @Description Get the stored summary of a worker batch
// @Tags Landing
// @Accept  json
// @Produce  json
// @Param 	batchId path string true "batch id"
// @Success 200 {object} models.BatchSummary
// @Failure 404 {object} http.RestErrorResponseModel
// @Failure 500 {object} http.RestErrorResponseModel
// @Router /v1/landing/batches/{batchId} [get]
func (h *landingHandler) getBatchSummary() echo.HandlerFunc {
	return func(c echo.Context) error {
		summary, err := h.batchSvc.GetBatchSummary(c.Request().Context(), c.Param("batchId"))
		if err != nil {
			if errors.Is(err, common.ErrDataNotFound) {
				return commonhttp.RestErrorResponse(c, http.StatusNotFound, err)
			}
			return commonhttp.RestErrorResponse(c, http.StatusInternalServerError, err)
		}

		return commonhttp.RestSuccessResponse(c, http.StatusOK, summary)
	}
}
