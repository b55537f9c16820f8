package dashboard

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"climate-dashboard/internal/domain/entity"
	"climate-dashboard/internal/handler/http/respond"
	updateUC "climate-dashboard/internal/usecase/update"
)

// SubmitHandler serves POST /api/updates. Roster membership is checked by
// the update service, so the handler needs no roster of its own.
type SubmitHandler struct {
	Updates Updates
}

// ServeHTTP accepts a manual update as JSON.
// @Summary      手動アップデート投稿
// @Description  企業の手動アップデートを保存します。不足・不正な項目は missing / invalid で返します
// @Tags         updates
// @Accept       json
// @Produce      json
// @Param        update body dashboard.SubmitRequest true "アップデート内容"
// @Success      201 {object} entity.ManualUpdate
// @Failure      400 {object} dashboard.ValidationErrorResponse
// @Failure      500 {string} string "サーバーエラー"
// @Router       /api/updates [post]
func (h SubmitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}

	u, err := h.Updates.Submit(r.Context(), updateUC.Submission{
		Company:     req.Company,
		Category:    req.Type,
		Title:       req.Title,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		var vf *updateUC.ValidationFailure
		if errors.As(err, &vf) {
			respond.JSON(w, http.StatusBadRequest, validationResponse(vf))
			return
		}
		respond.Fail(w, http.StatusInternalServerError, storeFailure(err))
		return
	}
	respond.JSON(w, http.StatusCreated, u)
}

func validationResponse(vf *updateUC.ValidationFailure) ValidationErrorResponse {
	resp := ValidationErrorResponse{Error: vf.Error(), Missing: vf.Missing, Invalid: vf.Invalid}
	if resp.Missing == nil {
		resp.Missing = []string{}
	}
	if resp.Invalid == nil {
		resp.Invalid = []string{}
	}
	return resp
}

type HistoryHandler struct{ Updates Updates }

// ServeHTTP lists every stored update for the insights view.
// @Summary      アップデート履歴
// @Description  保存済みの手動アップデートを企業の登録順・投稿順で返します
// @Tags         updates
// @Produce      json
// @Success      200 {object} dashboard.HistoryResponse
// @Failure      500 {string} string "サーバーエラー"
// @Router       /api/updates [get]
func (h HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	history, err := h.Updates.History(r.Context())
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, storeFailure(err))
		return
	}
	if history == nil {
		history = []entity.ManualUpdate{}
	}
	respond.JSON(w, http.StatusOK, HistoryResponse{Updates: history})
}

// Form status flags carried back to the page after a redirect.
const (
	statusSubmitted = "submitted"
	statusInvalid   = "invalid"
	statusFailed    = "failed"
)

// FormHandler accepts the HTML form post and redirects back to the page
// (post/redirect/get), keeping the visitor's selection.
type FormHandler struct {
	Roster  Roster
	Updates Updates
}

func (h FormHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid form body"))
		return
	}

	// フォームの hidden 項目で現在の絞り込みを受け取る
	sel := parseSelection(r.PostForm, h.Roster)
	back := sel.query()

	_, err := h.Updates.Submit(r.Context(), updateUC.Submission{
		Company:     r.PostForm.Get("update_company"),
		Category:    r.PostForm.Get("type"),
		Title:       r.PostForm.Get("title"),
		Description: r.PostForm.Get("description"),
		Available:   companyNames(sel.Filtered),
	})

	var vf *updateUC.ValidationFailure
	switch {
	case err == nil:
		back.Set("status", statusSubmitted)
	case errors.As(err, &vf):
		back.Set("status", statusInvalid)
		if len(vf.Missing) > 0 {
			back.Set("missing", strings.Join(vf.Missing, ","))
		}
		if len(vf.Invalid) > 0 {
			back.Set("invalid", strings.Join(vf.Invalid, ","))
		}
	default:
		slog.ErrorContext(r.Context(), "form submission failed",
			slog.String("error", respond.SanitizeError(err)))
		back.Set("status", statusFailed)
	}

	http.Redirect(w, r, "/?"+back.Encode()+"#submit", http.StatusSeeOther)
}
