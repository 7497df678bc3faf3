// internal/api/news/handlers.go
package news

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dvera/barrioliga/internal/api/apiutil"
	"github.com/dvera/barrioliga/internal/db"
	"github.com/dvera/barrioliga/internal/store"
)

var database *db.DB

func InitHandlers(d *db.DB) {
	database = d
}

func HandleNews(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		handleList(w, r)
	case http.MethodPost:
		handleCreate(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func HandleNewsByID(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if id == "" {
		apiutil.WriteError(w, r, http.StatusBadRequest, "ID de noticia inválido", nil)
		return
	}

	switch r.Method {
	case http.MethodGet:
		handleGet(w, r, id)
	case http.MethodPatch:
		handleUpdate(w, r, id)
	case http.MethodDelete:
		handleDelete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func handleList(w http.ResponseWriter, r *http.Request) {
	items, err := database.Queries.ListNews(r.Context())
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al obtener las noticias", err)
		return
	}
	if items == nil {
		items = []store.News{}
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, items)
}

func handleGet(w http.ResponseWriter, r *http.Request, id string) {
	item, err := database.Queries.GetNews(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, http.StatusNotFound, "Noticia no encontrada", nil)
			return
		}
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al obtener la noticia", err)
		return
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, item)
}

type createNewsRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	Summary  *string `json:"summary"`
	ImageURL *string `json:"imageUrl"`
	Author   *string `json:"author"`
	Featured bool    `json:"featured"`
}

func handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createNewsRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Solicitud inválida", nil)
		return
	}
	if req.Title == "" || req.Content == "" {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Título y contenido son requeridos", nil)
		return
	}

	item, err := database.Queries.CreateNews(r.Context(), store.CreateNewsParams{
		Title:    req.Title,
		Content:  req.Content,
		Summary:  req.Summary,
		ImageURL: req.ImageURL,
		Author:   req.Author,
		Featured: req.Featured,
	})
	if err != nil {
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al crear la noticia", err)
		return
	}

	log.Ctx(r.Context()).Info().Str("news_id", item.ID).Msg("News created")
	_ = apiutil.WriteJSON(w, http.StatusCreated, item)
}

type updateNewsRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Summary  *string `json:"summary"`
	ImageURL *string `json:"imageUrl"`
	Author   *string `json:"author"`
	Featured *bool   `json:"featured"`
}

func handleUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var req updateNewsRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, http.StatusBadRequest, "Solicitud inválida", nil)
		return
	}

	item, err := database.Queries.UpdateNews(r.Context(), store.UpdateNewsParams{
		ID:       id,
		Title:    req.Title,
		Content:  req.Content,
		Summary:  req.Summary,
		ImageURL: req.ImageURL,
		Author:   req.Author,
		Featured: req.Featured,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, http.StatusNotFound, "Noticia no encontrada", nil)
			return
		}
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al actualizar la noticia", err)
		return
	}

	_ = apiutil.WriteJSON(w, http.StatusOK, item)
}

func handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := database.Queries.DeleteNews(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, r, http.StatusNotFound, "Noticia no encontrada", nil)
			return
		}
		apiutil.WriteError(w, r, http.StatusInternalServerError, "Error al eliminar la noticia", err)
		return
	}

	log.Ctx(r.Context()).Info().Str("news_id", id).Msg("News deleted")
	apiutil.WriteSuccess(w)
}

func pathID(r *http.Request) string {
	parts := strings.Split(strings.TrimSuffix(r.URL.Path, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}
