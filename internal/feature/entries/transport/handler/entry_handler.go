// Package handler はentriesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mindscan_backend/internal/api"
	analysisusecase "mindscan_backend/internal/feature/analysis/usecase"
	"mindscan_backend/internal/feature/entries/domain/entity"
	"mindscan_backend/internal/feature/entries/usecase"
	jwtmw "mindscan_backend/internal/platform/jwt"
)

// noticeImageSkipped は画像が添付されたものの分析に寄与しなかった場合の通知文です。
const noticeImageSkipped = "image was not analyzed; only text was used"

// EntriesUsecase はジャーナルエントリー操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type EntriesUsecase interface {
	CreateEntry(ctx context.Context, userID uint, text string, imageData []byte) (*usecase.CreateEntryResult, error)
	ListEntries(ctx context.Context, userID uint, days int) ([]entity.Entry, error)
	GetEntry(ctx context.Context, userID, entryID uint) (*entity.Entry, error)
}

// EntriesHandler はジャーナルエントリーのHTTPリクエストを処理します。
type EntriesHandler struct {
	uc EntriesUsecase
}

// NewEntriesHandler は指定されたusecaseでEntriesHandlerの新しいインスタンスを生成します。
func NewEntriesHandler(uc EntriesUsecase) *EntriesHandler {
	return &EntriesHandler{uc: uc}
}

// CreateEntry は本文と（任意の）顔写真を受け取り、分析済みエントリーとして保存します。
//
// エンドポイント: POST /entries
// Content-Type: multipart/form-data
// フィールド: text（本文）、image（顔写真ファイル、任意、最大10MB）
func (h *EntriesHandler) CreateEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	text := c.PostForm("text")

	var imageData []byte
	if file, err := c.FormFile("image"); err == nil {
		f, err := file.Open()
		if err != nil {
			slog.Error("failed to open uploaded image", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
			return
		}
		defer func() {
			if err := f.Close(); err != nil {
				slog.Warn("failed to close uploaded image", "error", err)
			}
		}()

		imageData, err = io.ReadAll(f)
		if err != nil {
			slog.Error("failed to read uploaded image", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
			return
		}
	}

	result, err := h.uc.CreateEntry(c.Request.Context(), userID, text, imageData)
	if err != nil {
		h.writeCreateEntryError(c, err)
		return
	}

	e := result.Entry
	slog.Info("journal entry created",
		"user_id", userID, "entry_id", e.ID, "sentiment", e.Sentiment, "emotion", e.Emotion)

	resp := api.CreateEntryResponse{
		Id:        int64(e.ID),
		Text:      e.Text,
		Sentiment: e.Sentiment,
		Emotion:   e.Emotion,
		CreatedAt: e.CreatedAt,
	}
	// 画像が添付されたのに顔分析が寄与しなかった場合はその旨を伝える
	if len(imageData) > 0 && !result.FaceAnalyzed {
		resp.Notice = noticeImageSkipped
	}
	c.JSON(http.StatusCreated, resp)
}

// writeCreateEntryError はCreateEntryのエラーをHTTPステータスへ対応付けます。
func (h *EntriesHandler) writeCreateEntryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, analysisusecase.ErrNothingToAnalyze):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "text or image is required"})
	case errors.Is(err, usecase.ErrEntryTooLong):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "entry text is too long"})
	case errors.Is(err, analysisusecase.ErrImageTooLarge):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "image is too large"})
	case errors.Is(err, analysisusecase.ErrTextAnalysisFailed):
		// 外部分類器の失敗はクライアントの入力ミスではないため502で返す
		slog.Error("text analysis failed", "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "text analysis failed"})
	default:
		slog.Error("failed to create entry", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to save entry"})
	}
}

// ListEntries は直近days日分のエントリーを新しい順でJSONで返します。
//
// エンドポイント例:
// GET /entries?days=7
func (h *EntriesHandler) ListEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	// 未指定・不正値はusecase側でデフォルトに補正される
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	entries, err := h.uc.ListEntries(c.Request.Context(), userID, days)
	if err != nil {
		slog.Error("failed to list entries", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list entries"})
		return
	}

	out := make([]api.EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

// GetEntry はエントリーを1件JSONで返します。他ユーザーのエントリーは404になります。
//
// エンドポイント: GET /entries/:id
func (h *EntriesHandler) GetEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	entryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid entry id"})
		return
	}

	e, err := h.uc.GetEntry(c.Request.Context(), userID, uint(entryID))
	if errors.Is(err, usecase.ErrEntryNotFound) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "entry not found"})
		return
	}
	if err != nil {
		slog.Error("failed to get entry", "error", err, "user_id", userID, "entry_id", entryID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to get entry"})
		return
	}

	c.JSON(http.StatusOK, toEntryResponse(*e))
}

// currentUserID はJWTミドルウェアが設定した認証済みユーザーIDを取り出します。
func currentUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint(jwtmw.ContextUserID)
	return userID, userID != 0
}

func toEntryResponse(e entity.Entry) api.EntryResponse {
	return api.EntryResponse{
		Id:        int64(e.ID),
		Text:      e.Text,
		Sentiment: e.Sentiment,
		Emotion:   e.Emotion,
		CreatedAt: e.CreatedAt,
	}
}
