package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/deckoracle/backend/internal/exporters"
	"github.com/deckoracle/backend/internal/formats"
	"github.com/deckoracle/backend/internal/importers"
)

type ImportExportController struct {
	importer       *importers.Importer
	validator      *importers.Validator
	exporter       *exporters.Exporter
	maxUploadBytes int64
}

func NewImportExportController(importer *importers.Importer, validator *importers.Validator, exporter *exporters.Exporter, maxUploadBytes int64) *ImportExportController {
	return &ImportExportController{
		importer:       importer,
		validator:      validator,
		exporter:       exporter,
		maxUploadBytes: maxUploadBytes,
	}
}

// readUpload pulls the payload and format out of a multipart import
// request. Responds and reports false on any problem.
func (ie *ImportExportController) readUpload(c *gin.Context) ([]byte, formats.Format, bool) {
	format, err := formats.ParseFormat(c.PostForm("format"))
	if err != nil {
		respondBadRequest(c, "format must be one of json, csv, anki, markdown")
		return nil, "", false
	}

	header, err := c.FormFile("file")
	if err != nil {
		respondBadRequest(c, "file is required")
		return nil, "", false
	}
	if header.Size > ie.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: fmt.Sprintf("file exceeds the %d byte upload limit", ie.maxUploadBytes),
		})
		return nil, "", false
	}

	file, err := header.Open()
	if err != nil {
		respondInternalError(c, err, "open upload")
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, ie.maxUploadBytes+1))
	if err != nil {
		respondInternalError(c, err, "read upload")
		return nil, "", false
	}
	if int64(len(data)) > ie.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: fmt.Sprintf("file exceeds the %d byte upload limit", ie.maxUploadBytes),
		})
		return nil, "", false
	}
	return data, format, true
}

// Import persists an uploaded deck payload. Structural problems come
// back as a failed ImportResult, not an HTTP error; a duplicate title
// without merge_duplicates is rejected outright.
func (ie *ImportExportController) Import(c *gin.Context) {
	data, format, ok := ie.readUpload(c)
	if !ok {
		return
	}

	var folderID *string
	if raw := c.PostForm("folder_id"); raw != "" {
		folderID = &raw
	}
	merge := c.PostForm("merge_duplicates") == "true"

	result, err := ie.importer.Import(c.Request.Context(), data, format, GetUserID(c), folderID, merge)
	if err != nil {
		if errors.Is(err, importers.ErrDuplicateDeck) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "import")
		return
	}

	// Decode and validation failures ride inside the result body with
	// Success=false; the HTTP status stays 200.
	c.JSON(http.StatusOK, result)
}

// Validate dry-runs an import without persisting anything.
func (ie *ImportExportController) Validate(c *gin.Context) {
	data, format, ok := ie.readUpload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ie.validator.Validate(data, format))
}

// Template returns a minimal example payload for a format.
func (ie *ImportExportController) Template(c *gin.Context) {
	format, err := formats.ParseFormat(c.Param("format"))
	if err != nil {
		respondBadRequest(c, "format must be one of json, csv, anki, markdown")
		return
	}
	template, err := formats.Template(format)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	c.Data(http.StatusOK, format.ContentType(), template)
}

// ExportDeck streams one deck as a downloadable document.
func (ie *ImportExportController) ExportDeck(c *gin.Context) {
	format, err := formats.ParseFormat(c.DefaultQuery("format", string(formats.FormatJSON)))
	if err != nil {
		respondBadRequest(c, "format must be one of json, csv, anki, markdown")
		return
	}
	includeProgress := c.Query("include_progress") == "true"
	includeMedia := c.Query("include_media") == "true"

	export, err := ie.exporter.ExportDeck(GetUserID(c), c.Param("deckId"), format, includeProgress, includeMedia)
	if err != nil {
		if errors.Is(err, exporters.ErrDeckNotFound) {
			respondNotFound(c, "deck")
			return
		}
		respondInternalError(c, err, "export deck")
		return
	}
	serveExport(c, export)
}

type bulkExportRequest struct {
	DeckIDs         []string `json:"deck_ids" binding:"required"`
	Format          string   `json:"format" binding:"required"`
	IncludeProgress bool     `json:"include_progress"`
	IncludeMedia    bool     `json:"include_media"`
}

// ExportBulk streams several decks as one combined document.
func (ie *ImportExportController) ExportBulk(c *gin.Context) {
	var req bulkExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "deck_ids and format are required")
		return
	}
	if len(req.DeckIDs) == 0 {
		respondBadRequest(c, "deck_ids must not be empty")
		return
	}

	format, err := formats.ParseFormat(req.Format)
	if err != nil {
		respondBadRequest(c, "format must be one of json, csv, anki, markdown")
		return
	}

	export, err := ie.exporter.ExportDecks(GetUserID(c), req.DeckIDs, format, req.IncludeProgress, req.IncludeMedia)
	if err != nil {
		if errors.Is(err, exporters.ErrDeckNotFound) {
			respondNotFound(c, "deck")
			return
		}
		respondInternalError(c, err, "export decks")
		return
	}
	serveExport(c, export)
}

func serveExport(c *gin.Context, export *exporters.Export) {
	c.Header("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	c.Header("Content-Length", strconv.Itoa(len(export.Data)))
	c.Data(http.StatusOK, export.ContentType, export.Data)
}
