// Package web sirve la página HTML del inventario: la tabla de items con el
// formulario como última fila y la línea de error debajo.
package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Lelo88/item-manager/internal/httpx"
	"github.com/Lelo88/item-manager/internal/items"
	"github.com/Lelo88/item-manager/internal/logger"
	"github.com/Lelo88/item-manager/internal/session"
)

//go:embed templates/index.html
var templatesFS embed.FS

//go:embed assets
var assetsFS embed.FS

// categoryIcons es responsabilidad de la presentación, no del modelo.
var categoryIcons = map[items.Category]string{
	items.CategoryStationary:  "/assets/ink_pen.svg",
	items.CategoryKitchenware: "/assets/flatware.svg",
	items.CategoryAppliance:   "/assets/electrical_services.svg",
}

// CategoryIcon devuelve la URL del ícono de una categoría ("" si no tiene).
func CategoryIcon(category items.Category) string {
	return categoryIcons[category]
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

var page = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"categoryIcon": CategoryIcon,
	"formatPrice":  formatPrice,
}).ParseFS(templatesFS, "templates/index.html"))

// Handler traduce formularios HTML a operaciones del service.
type Handler struct {
	service items.ServiceAPI
	log     logger.Logger
}

// NewHandler crea el handler de la UI.
func NewHandler(service items.ServiceAPI, log logger.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Page maneja GET /.
func (handler *Handler) Page(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := session.IDFromCtx(request.Context())
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "missing_session", "session cookie required")
		return
	}

	state, err := handler.service.State(request.Context(), sessionID)
	if err != nil {
		handler.log.ErrorContext(request.Context(), "load page state", "error", err)
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		return
	}

	// Render a buffer: si el template falla no queda una página a medias.
	var body bytes.Buffer
	if err := page.Execute(&body, state); err != nil {
		handler.log.ErrorContext(request.Context(), "render page", "error", err)
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.Header().Set("Cache-Control", "no-store")
	writer.WriteHeader(http.StatusOK)
	_, _ = writer.Write(body.Bytes())
}

// Add maneja POST /ui/items. Un rechazo de validación no es error HTTP:
// queda guardado en la sesión y se ve al volver a la página.
func (handler *Handler) Add(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := session.IDFromCtx(request.Context())
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "missing_session", "session cookie required")
		return
	}

	if err := request.ParseForm(); err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_form", "invalid form body")
		return
	}

	_, err = handler.service.Create(request.Context(), sessionID, items.CreateItemInput{
		Name:     request.PostFormValue("name"),
		Category: request.PostFormValue("category"),
		Price:    items.RawPrice(request.PostFormValue("price")),
	})
	var validationError *items.ValidationError
	if err != nil && !errors.As(err, &validationError) {
		handler.log.ErrorContext(request.Context(), "add item", "error", err)
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		return
	}

	http.Redirect(writer, request, "/", http.StatusSeeOther)
}

// Delete maneja POST /ui/items/{id}/delete.
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	sessionID, err := session.IDFromCtx(request.Context())
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "missing_session", "session cookie required")
		return
	}

	id, err := items.ParseID(chi.URLParam(request, "id"))
	if err != nil {
		httpx.Fail(writer, request, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}

	if err := handler.service.Delete(request.Context(), sessionID, id); err != nil {
		handler.log.ErrorContext(request.Context(), "delete item", "error", err, "item_id", id)
		httpx.Fail(writer, request, http.StatusInternalServerError, "internal_error", "unexpected error")
		return
	}

	http.Redirect(writer, request, "/", http.StatusSeeOther)
}

// RegisterRoutes monta la página, los formularios y los assets embebidos.
func RegisterRoutes(route chi.Router, handler *Handler) {
	route.Get("/", handler.Page)
	route.Post("/ui/items", handler.Add)
	route.Post("/ui/items/{id}/delete", handler.Delete)

	assets, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		panic(err)
	}
	route.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assets))))
}
