package dashboard

import (
	"errors"
	"net/http"

	"climate-dashboard/internal/domain/entity"
	"climate-dashboard/internal/handler/http/respond"
	feedUC "climate-dashboard/internal/usecase/feed"
)

// storeFailure maps an update store error to the response sent to clients.
// A corrupt state file gets its own message so operators know where to look.
func storeFailure(err error) error {
	if errors.Is(err, entity.ErrCorruptState) {
		return respond.NewAppError(http.StatusInternalServerError, "stored updates could not be read", err)
	}
	return respond.NewAppError(http.StatusInternalServerError, "internal server error", err)
}

type CompaniesHandler struct{ Roster Roster }

// ServeHTTP lists the roster.
// @Summary      企業一覧
// @Description  グループで絞り込んだ企業一覧を登録順で返します
// @Tags         companies
// @Produce      json
// @Param        group query string false "グループ名 (All で全件)"
// @Success      200 {object} dashboard.CompaniesResponse
// @Router       /api/companies [get]
func (h CompaniesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sel := parseSelection(r.URL.Query(), h.Roster)
	respond.JSON(w, http.StatusOK, CompaniesResponse{Group: sel.Group, Companies: sel.Filtered})
}

type GroupsHandler struct{ Roster Roster }

// ServeHTTP lists the groups for the scope selector.
// @Summary      グループ一覧
// @Description  スコープ選択用のグループ一覧 (先頭は All)
// @Tags         companies
// @Produce      json
// @Success      200 {object} dashboard.GroupsResponse
// @Router       /api/groups [get]
func (h GroupsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	groups := append([]string{feedUC.AllGroups}, h.Roster.Groups()...)
	respond.JSON(w, http.StatusOK, GroupsResponse{Groups: groups})
}

type FeedHandler struct {
	Roster Roster
	Feed   FeedBuilder
}

// ServeHTTP renders the feed for the selected companies.
// @Summary      ニュースフィード
// @Description  手動アップデートと取得ニュースを企業ごとにまとめたカードを返します
// @Tags         feed
// @Produce      json
// @Param        group   query string false "グループ名"
// @Param        company query []string false "企業名 (複数指定可)" collectionFormat(multi)
// @Success      200 {array}  feed.EntityFeed
// @Failure      500 {string} string "サーバーエラー"
// @Router       /api/feed [get]
func (h FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sel := parseSelection(r.URL.Query(), h.Roster)

	feeds, err := h.Feed.Build(r.Context(), sel.Selected)
	if err != nil {
		respond.Fail(w, http.StatusInternalServerError, storeFailure(err))
		return
	}
	if feeds == nil {
		feeds = []feedUC.EntityFeed{}
	}
	respond.JSON(w, http.StatusOK, feeds)
}
