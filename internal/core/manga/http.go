package manga

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/kaminari/internal/platform/middleware"
	requestutil "github.com/taibuivan/kaminari/internal/platform/request"
	"github.com/taibuivan/kaminari/internal/platform/respond"
	"github.com/taibuivan/kaminari/internal/platform/sec"
	"github.com/taibuivan/kaminari/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the public catalogue and the staff-only write routes.
// The router passed in must already carry the authentication middleware for
// the staff group to resolve the current user.
func (handler *Handler) RegisterRoutes(router chi.Router, authenticate func(http.Handler) http.Handler) {
	// Public
	router.Get("/", handler.listManga)
	router.Get("/{id}", handler.getManga)
	router.Get("/{id}/chapters", handler.listChapters)

	// Staff only
	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(authenticate)
		staffRoute.Use(middleware.RequireRoles(sec.RoleAdmin, sec.RoleManager))

		staffRoute.Post("/", handler.createManga)
		staffRoute.Put("/{id}", handler.updateManga)
		staffRoute.Delete("/{id}", handler.deleteManga)
		staffRoute.Post("/{id}/chapters", handler.createChapter)
		staffRoute.Delete("/{id}/chapters/{chapterID}", handler.deleteChapter)
	})
}

func (handler *Handler) listManga(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query:  request.URL.Query().Get("q"),
		Status: request.URL.Query().Get("status"),
	}

	series, total, err := handler.service.ListManga(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, series, pagination.MetaFor(paginationParams, total))
}

func (handler *Handler) getManga(writer http.ResponseWriter, request *http.Request) {
	series, err := handler.service.GetManga(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, series)
}

func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	chapters, err := handler.service.ListChapters(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapters)
}

func (handler *Handler) createManga(writer http.ResponseWriter, request *http.Request) {
	var input Manga
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateManga(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateManga(writer http.ResponseWriter, request *http.Request) {
	var input Manga
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateManga(request.Context(), requestutil.Param(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteManga(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteManga(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {
	var input Chapter
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateChapter(request.Context(), requestutil.Param(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
	mangaID := requestutil.Param(request, "id")
	chapterID := requestutil.Param(request, "chapterID")

	if err := handler.service.DeleteChapter(request.Context(), mangaID, chapterID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
