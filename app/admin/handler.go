package admin

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/mytheresa/category-admin/models"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"id": func(id *uint) string {
		if id == nil {
			return ""
		}
		return strconv.FormatUint(uint64(*id), 10)
	},
}

// page is the data every template receives.
type page struct {
	Title  string
	Flash  *Flash
	Alerts []string
	List   *ListView
	Form   *FormView
	Action string
	Target *models.Category
}

// Handler serves the admin pages. Every request builds its own view, so
// views never share state.
type Handler struct {
	svc   CategoryProvider
	log   *zap.Logger
	pages map[string]*template.Template
}

func NewHandler(svc CategoryProvider, log *zap.Logger) (*Handler, error) {
	h := &Handler{svc: svc, log: log, pages: map[string]*template.Template{}}
	for _, name := range []string{"list", "form", "confirm"} {
		tmpl, err := template.New(name).Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		h.pages[name] = tmpl
	}
	return h, nil
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	flash := PopFlash(w, r)
	view := NewListView(h.svc, flash, nil)
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		view.Page = p
	}

	if err := view.Init(r.Context()); err != nil {
		h.log.Warn("load categories", zap.Error(err))
	}

	h.render(w, http.StatusOK, "list", page{Title: "Categorias", Flash: flash, List: view})
}

// HandleDelete asks for confirmation first. Once confirmed, the list is
// rendered from the view's local state without fetching it again.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := routeID(w, r)
	if !ok {
		return
	}

	flash := PopFlash(w, r)
	view := NewListView(h.svc, flash, formConfirmer{r})
	if err := view.Init(r.Context()); err != nil {
		h.log.Warn("load categories", zap.Error(err))
	}

	confirmed, err := view.DeleteCategory(r.Context(), id)
	if !confirmed {
		target := &models.Category{ID: &id}
		for _, c := range view.Categories {
			if c.ID != nil && *c.ID == id {
				target = &c
				break
			}
		}
		h.render(w, http.StatusOK, "confirm", page{Title: "Excluir Categoria", Flash: flash, Target: target})
		return
	}
	if err != nil {
		h.log.Warn("delete category", zap.Uint("id", id), zap.Error(err))
	}

	h.render(w, http.StatusOK, "list", page{Title: "Categorias", Flash: flash, List: view})
}

func (h *Handler) HandleNewForm(w http.ResponseWriter, r *http.Request) {
	flash := PopFlash(w, r)
	view, alerts := h.initForm(r, "new", nil, flash, nil)
	h.renderForm(w, http.StatusOK, view, flash, alerts, "/categories/new")
}

func (h *Handler) HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := routeID(w, r)
	if !ok {
		return
	}

	flash := PopFlash(w, r)
	view, alerts := h.initForm(r, mux.Vars(r)["id"], []uint{id}, flash, nil)
	h.renderForm(w, http.StatusOK, view, flash, alerts, editPath(id))
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, "new", 0, "/categories/new")
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := routeID(w, r)
	if !ok {
		return
	}
	h.submit(w, r, mux.Vars(r)["id"], id, editPath(id))
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, segment string, id uint, action string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	flash := &Flash{}
	nav := &redirectNavigator{}
	view, alerts := h.initForm(r, segment, nil, flash, nav)

	view.Form.Name = r.PostForm.Get("name")
	view.Form.Description = r.PostForm.Get("description")
	if view.Mode == ModeEdit {
		view.Form.ID = &id
		// The record is not fetched again on save; the title keeps the
		// name it was loaded with.
		view.Category = models.Category{ID: &id, Name: r.PostForm.Get("loaded_name")}
	}

	err := view.Submit(r.Context())
	switch {
	case err == nil:
		flash.Save(w)
		http.Redirect(w, r, nav.target, http.StatusSeeOther)
	case errors.Is(err, ErrInvalidForm):
		h.renderForm(w, http.StatusUnprocessableEntity, view, flash, alerts, action)
	default:
		h.log.Warn("save category", zap.Stringer("mode", view.Mode), zap.Error(err))
		h.renderForm(w, http.StatusOK, view, flash, alerts, action)
	}
}

// initForm builds a form view for the route. ids is the route parameter
// stream for this request; nil means the record is not loaded.
func (h *Handler) initForm(r *http.Request, segment string, ids []uint, flash *Flash, nav Navigator) (*FormView, *pageAlerts) {
	alerts := &pageAlerts{}
	if nav == nil {
		nav = &redirectNavigator{}
	}
	view := NewFormView(h.svc, flash, alerts, nav)

	params := make(chan uint, len(ids))
	for _, id := range ids {
		params <- id
	}
	close(params)

	view.Init(r.Context(), Route{Segment: segment, Params: params})
	return view, alerts
}

func (h *Handler) renderForm(w http.ResponseWriter, status int, view *FormView, flash *Flash, alerts *pageAlerts, action string) {
	h.render(w, status, "form", page{
		Title:  view.Title(),
		Flash:  flash,
		Alerts: alerts.msgs,
		Form:   view,
		Action: action,
	})
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.pages[name].ExecuteTemplate(w, "layout", data); err != nil {
		h.log.Error("render page", zap.String("page", name), zap.Error(err))
	}
}

func routeID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 0)
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}
	return uint(id), true
}

func editPath(id uint) string {
	return fmt.Sprintf("/categories/%d/edit", id)
}

// formConfirmer treats a posted confirm=yes as the user's approval.
type formConfirmer struct {
	r *http.Request
}

func (c formConfirmer) Confirm(string) bool {
	return c.r.PostFormValue("confirm") == "yes"
}

type pageAlerts struct {
	msgs []string
}

func (a *pageAlerts) Alert(msg string) {
	a.msgs = append(a.msgs, msg)
}

// redirectNavigator remembers the target so the handler can answer with a
// 303, which makes the browser load a brand-new view.
type redirectNavigator struct {
	target string
}

func (n *redirectNavigator) Navigate(path string) {
	n.target = path
}
