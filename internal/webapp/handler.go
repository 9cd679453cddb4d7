// Package webapp serves the HTML pages: register, login and the dashboard
// with its category rows, search results and detail modal. Forms drive every
// action so the pages work without scripts; static/app.js only adds the
// keyboard shortcuts and live reloads on top.
package webapp

import (
	"errors"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"moviehub/internal/accounts"
	"moviehub/internal/catalog"
	"moviehub/internal/live"
	"moviehub/internal/modal"
	"moviehub/internal/view"
)

// Literal banner texts, kept identical across reloads so tests can match
// them.
const (
	loadErrorMessage   = "Failed to load movies. Please try again later."
	searchErrorMessage = "Failed to search movies. Please try again later."
	loginErrorMessage  = "Invalid email or password"
)

type Broadcaster interface {
	BroadcastJSON(v any)
}

// authPageData feeds the login and register templates.
type authPageData struct {
	Notice      string
	Error       string
	Name        string
	Email       string
	FieldErrors map[string]string
}

// dashboardData feeds the dashboard template.
type dashboardData struct {
	Name  string
	View  view.Snapshot
	Modal modal.View
}

type Handler struct {
	Store   *accounts.Store
	Tokens  accounts.TokenService
	Catalog *catalog.Client
	View    *view.State
	Modal   *modal.Presenter
	Events  Broadcaster
}

func NewHandler(store *accounts.Store, tokens accounts.TokenService, c *catalog.Client, v *view.State, m *modal.Presenter, events Broadcaster) *Handler {
	return &Handler{
		Store:   store,
		Tokens:  tokens,
		Catalog: c,
		View:    v,
		Modal:   m,
		Events:  events,
	}
}

// Mount parses the embedded templates, serves the static assets and wires
// every page route onto the router.
func (h *Handler) Mount(router *gin.Engine) error {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return err
	}
	router.SetHTMLTemplate(tmpl)

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return err
	}
	router.StaticFS("/static", http.FS(staticSub))

	router.GET("/", h.root)
	router.POST("/register", h.register)
	router.POST("/login", h.login)

	public := router.Group("/", accounts.RedirectIfAuthenticated(h.Tokens, h.Store, "/dashboard"))
	{
		public.GET("/register", h.registerPage)
		public.GET("/login", h.loginPage)
	}

	private := router.Group("/", accounts.PageAuth(h.Tokens, h.Store, "/login"))
	{
		private.GET("/dashboard", h.dashboard)
		private.POST("/logout", h.logout)
		private.POST("/movies/:id/open", h.openModal)
		private.POST("/modal/close", h.closeModal)
	}
	return nil
}

func (h *Handler) root(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) registerPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register", authPageData{})
}

func (h *Handler) register(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")

	_, err := h.Store.Register(c.Request.Context(), name, email, password)
	if err != nil {
		data := authPageData{Name: name, Email: email}
		var verr *accounts.ValidationError
		switch {
		case errors.As(err, &verr):
			data.FieldErrors = map[string]string{verr.Field: verr.Reason}
			c.HTML(http.StatusBadRequest, "register", data)
		case errors.Is(err, accounts.ErrDuplicateEmail):
			data.Error = "An account with this email already exists"
			c.HTML(http.StatusConflict, "register", data)
		default:
			log.Printf("[web] register: %v", err)
			data.Error = "Something went wrong. Please try again."
			c.HTML(http.StatusInternalServerError, "register", data)
		}
		return
	}

	// no auto-login; the login page confirms the account was created
	c.Redirect(http.StatusSeeOther, "/login?registered=1")
}

func (h *Handler) loginPage(c *gin.Context) {
	data := authPageData{}
	if c.Query("registered") == "1" {
		data.Notice = "Account created. Please log in."
	}
	c.HTML(http.StatusOK, "login", data)
}

func (h *Handler) login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	session, err := h.Store.Login(c.Request.Context(), email, password)
	if err != nil {
		data := authPageData{Email: email}
		var verr *accounts.ValidationError
		switch {
		case errors.As(err, &verr):
			data.FieldErrors = map[string]string{verr.Field: verr.Reason}
			c.HTML(http.StatusBadRequest, "login", data)
		case errors.Is(err, accounts.ErrNoAccount), errors.Is(err, accounts.ErrInvalidCredentials):
			// same message for both, nothing leaks which part failed
			data.Error = loginErrorMessage
			c.HTML(http.StatusUnauthorized, "login", data)
		default:
			log.Printf("[web] login: %v", err)
			data.Error = "Something went wrong. Please try again."
			c.HTML(http.StatusInternalServerError, "login", data)
		}
		return
	}

	token, exp, err := h.Tokens.Sign(session)
	if err != nil {
		log.Printf("[web] sign token: %v", err)
		c.HTML(http.StatusInternalServerError, "login", authPageData{Error: "Something went wrong. Please try again."})
		return
	}

	c.SetCookie(accounts.SessionCookie, token, int(time.Until(exp).Seconds()), "/", "", false, true)
	h.broadcast(live.Event{Type: live.TypeLogin, Email: session.Email, At: time.Now().UTC()})

	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *Handler) logout(c *gin.Context) {
	claims := accounts.MustGetClaims(c)

	if err := h.Store.Logout(c.Request.Context()); err != nil {
		log.Printf("[web] logout: %v", err)
	}
	c.SetCookie(accounts.SessionCookie, "", -1, "/", "", false, true)

	if claims != nil {
		h.broadcast(live.Event{Type: live.TypeLogout, Email: claims.Email, At: time.Now().UTC()})
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// dashboard re-fetches its data on every view: the five category rows, or
// the search results when a query is active.
func (h *Handler) dashboard(c *gin.Context) {
	claims := accounts.MustGetClaims(c)
	query := strings.TrimSpace(c.Query("q"))

	if query == "" {
		h.loadCategories(c)
	} else {
		h.loadSearch(c, query)
	}

	c.HTML(http.StatusOK, "dashboard", dashboardData{
		Name:  claims.Name,
		View:  h.View.Snapshot(),
		Modal: h.Modal.Snapshot(),
	})
}

func (h *Handler) loadCategories(c *gin.Context) {
	h.View.HideSearchResults()
	h.View.ShowLoading()
	set, err := h.Catalog.FetchHomeSet(c.Request.Context())
	h.View.HideLoading()

	if err != nil {
		log.Printf("[web] dashboard load: %v", err)
		h.View.ShowError(loadErrorMessage)
		h.broadcast(live.Event{Type: live.TypeCatalogFailed, At: time.Now().UTC()})
		return
	}

	h.View.HideError()
	h.View.ApplyHomeSet(set)
	h.broadcast(live.Event{Type: live.TypeCatalogLoaded, At: time.Now().UTC()})
}

func (h *Handler) loadSearch(c *gin.Context, query string) {
	gen := h.View.BeginSearch(query)
	h.View.ShowLoading()
	movies, err := h.Catalog.Search(c.Request.Context(), query)
	h.View.HideLoading()

	if err != nil {
		log.Printf("[web] search %q: %v", query, err)
		h.View.ShowError(searchErrorMessage)
		return
	}

	h.View.HideError()
	h.View.ApplySearchResults(gen, movies)
	h.broadcast(live.Event{Type: live.TypeSearch, Query: query, At: time.Now().UTC()})
}

// openModal records which movie is open and bounces straight back to the
// dashboard; the detail fetch keeps running in the background and is
// announced over the live socket once it settles.
func (h *Handler) openModal(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Redirect(http.StatusSeeOther, dashboardPath(c.PostForm("q")))
		return
	}

	h.Modal.Open(id)
	c.Redirect(http.StatusSeeOther, dashboardPath(c.PostForm("q")))
}

func (h *Handler) closeModal(c *gin.Context) {
	h.Modal.Close()
	c.Redirect(http.StatusSeeOther, dashboardPath(c.PostForm("q")))
}

func (h *Handler) broadcast(event live.Event) {
	if h.Events != nil {
		h.Events.BroadcastJSON(event)
	}
}

func dashboardPath(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return "/dashboard"
	}
	return "/dashboard?q=" + url.QueryEscape(query)
}
