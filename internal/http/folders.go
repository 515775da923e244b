package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/deckoracle/backend/internal/database/folders"
	"github.com/deckoracle/backend/internal/entities"
)

type FoldersController struct {
	folders *folders.Repository
}

func NewFoldersController(repo *folders.Repository) *FoldersController {
	return &FoldersController{folders: repo}
}

type folderRequest struct {
	Name           string  `json:"name" binding:"required"`
	ParentFolderID *string `json:"parent_folder_id"`
	Position       int     `json:"position"`
}

func (f *FoldersController) ListFolders(c *gin.Context) {
	list, err := f.folders.ListForUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list folders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"folders": list})
}

func (f *FoldersController) CreateFolder(c *gin.Context) {
	var req folderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	folder := entities.Folder{
		UserID:         GetUserID(c),
		ParentFolderID: req.ParentFolderID,
		Name:           req.Name,
		Position:       req.Position,
	}
	if err := f.folders.CreateFolder(&folder); err != nil {
		respondInternalError(c, err, "create folder")
		return
	}
	respondCreated(c, folder)
}

func (f *FoldersController) UpdateFolder(c *gin.Context) {
	folder, err := f.folders.GetFolder(c.Param("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "folder")
			return
		}
		respondInternalError(c, err, "get folder")
		return
	}

	var req folderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}

	folder.Name = req.Name
	folder.ParentFolderID = req.ParentFolderID
	folder.Position = req.Position
	if err := f.folders.UpdateFolder(folder); err != nil {
		respondInternalError(c, err, "update folder")
		return
	}
	c.JSON(http.StatusOK, folder)
}

// DeleteFolder removes a folder; decks and subfolders inside it are
// detached, never deleted.
func (f *FoldersController) DeleteFolder(c *gin.Context) {
	folder, err := f.folders.GetFolder(c.Param("id"), GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "folder")
			return
		}
		respondInternalError(c, err, "get folder")
		return
	}

	if err := f.folders.DeleteFolder(folder.ID); err != nil {
		respondInternalError(c, err, "delete folder")
		return
	}
	respondSuccess(c, "folder deleted")
}
