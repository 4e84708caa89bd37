package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"shreekara.in/catalog-web/internal/catalog"
	"shreekara.in/catalog-web/internal/config"
	"shreekara.in/catalog-web/internal/content"
	"shreekara.in/catalog-web/internal/enquiry"
	"shreekara.in/catalog-web/internal/format"
	handlersPkg "shreekara.in/catalog-web/internal/handlers"
	mw "shreekara.in/catalog-web/internal/middleware"
	"shreekara.in/catalog-web/internal/nav"
	"shreekara.in/catalog-web/internal/observability"
	"shreekara.in/catalog-web/internal/populate"
	"shreekara.in/catalog-web/internal/seo"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	// devMode reparses templates on every request (SITE_DEV).
	devMode   bool
	tmplCache *template.Template

	catalogStore *catalog.Store
	pageLibrary  *content.Library
	enquiries    *enquiry.Service
	site         handlersPkg.Site
	analytics    handlersPkg.Analytics
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var (
		addr     string
		tmplPath string
		pubPath  string
	)
	flag.StringVar(&addr, "addr", cfg.Server.Addr, "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", cfg.Server.TemplatesDir, "templates directory")
	flag.StringVar(&pubPath, "public", cfg.Server.PublicDir, "public assets directory")
	flag.Parse()

	logger, err := observability.NewLogger(observability.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	templatesDir = tmplPath
	publicDir = pubPath
	devMode = cfg.Server.DevMode
	site = handlersPkg.SiteFromConfig(cfg.Site)
	analytics = handlersPkg.AnalyticsFromConfig(cfg.Analytics)

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		tmplCache = tc
	}

	catalogStore = catalog.NewStore(newCatalogSource(cfg.Catalog), catalog.WithObserver(catalog.ObserverFunc(
		func(ctx context.Context, err error) {
			observability.FromContext(ctx).Error("catalog load failed", zap.Error(err))
		},
	)))
	pageLibrary = content.NewLibrary(cfg.Server.ContentDir, 0)

	if dir := filepath.Dir(cfg.Enquiry.DBPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Fatal("enquiry dir", zap.Error(err))
		}
	}
	enquiryDB, err := enquiry.OpenBolt(cfg.Enquiry.DBPath)
	if err != nil {
		logger.Fatal("open enquiry store", zap.Error(err))
	}
	defer enquiryDB.Close()
	enquiries = enquiry.NewService(enquiryDB)

	sessions := mw.NewSessions(cfg.Session.SigningKey, cfg.Prod())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(middleware.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Logger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(sessions.Handler)
	r.Use(sessions.CSRF)
	routes(r)

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("web listening", zap.String("addr", addr), zap.Bool("dev_mode", devMode))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("listen", zap.Error(err))
	}
}

func newCatalogSource(cfg config.CatalogConfig) catalog.Source {
	if u := strings.TrimSpace(cfg.URL); u != "" {
		return catalog.HTTPSource{URL: u, Client: &http.Client{Timeout: cfg.FetchTimeout}}
	}
	return catalog.NewSource(cfg.Path, "")
}

// routes registers every page and fragment route.
func routes(r chi.Router) {
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})

	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(publicDir, "assets"))))

	r.Get("/", HomeHandler)
	r.Get("/index.html", HomeHandler)
	r.Get("/products", ProductsHandler)
	r.Get("/products.html", ProductsHandler)
	r.Get("/product", ProductHandler)
	r.Get("/product.html", ProductHandler)
	r.Get("/products/{id}/pricing", ProductPricingFrag)
	r.Get("/products/{id}/quick-view", QuickViewHandler)
	r.Get("/products/{id}/quick-view/price", QuickViewPriceFrag)
	r.Post("/cart/items", CartAddHandler)

	r.Get("/contact", ContactHandler)
	r.Get("/contact.html", ContactHandler)
	r.Post("/contact", ContactSubmitHandler)
	r.Get("/about", ContentPageHandler("about"))
	r.Get("/about.html", ContentPageHandler("about"))
	r.Get("/clients", ContentPageHandler("clients"))
	r.Get("/clients.html", ContentPageHandler("clients"))

	r.NotFound(NotFoundHandler)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"now":    time.Now,
		"inr":    format.Price,
		"date":   format.Date,
		"inline": content.Inline,
		// JSON-LD payloads are produced by seo.JSON, never from user input.
		"safeJS": func(s string) template.JS { return template.JS(s) },
	}
}

func parseTemplates() (*template.Template, error) {
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(templateFuncs()).ParseFiles(files...)
}

func loadTemplates() (*template.Template, error) {
	if devMode || tmplCache == nil {
		return parseTemplates()
	}
	return tmplCache, nil
}

// fillLayout sets the layout fields every page shares.
func fillLayout(r *http.Request, vm *handlersPkg.PageData) {
	vm.Site = site
	vm.Analytics = analytics
	vm.Path = r.URL.Path
	if vm.Nav == nil {
		vm.Nav = nav.Build(r.URL.Path)
	}
	if vm.Breadcrumbs == nil {
		vm.Breadcrumbs = nav.Breadcrumbs(r.URL.Path)
	}
	sess := mw.GetSession(r)
	vm.CartCount = sess.CartCount
	vm.CSRFToken = sess.CSRFToken

	vm.SEO.Title = seo.Title(vm.Title, site.Name)
	vm.SEO.Canonical = seo.Canonical(site.BaseURL, r.URL.RequestURI())
	vm.SEO.OG.URL = vm.SEO.Canonical
	vm.SEO.OG.SiteName = site.Name
	vm.SEO.OG.Title = vm.SEO.Title
	if vm.SEO.OG.Description == "" {
		vm.SEO.OG.Description = vm.SEO.Description
	}
	if vm.SEO.OG.Type == "" {
		vm.SEO.OG.Type = "website"
	}
	if vm.SEO.Twitter.Card == "" {
		vm.SEO.Twitter.Card = "summary_large_image"
	}
}

const catalogErrorMessage = "Unable to load products. Please refresh the page."

// catalogNotice returns the user-facing message when the last catalog load failed.
func catalogNotice() string {
	if catalogStore != nil && catalogStore.Err() != nil {
		return catalogErrorMessage
	}
	return ""
}

// notifyCatalogFailure queues the catalog failure toast on htmx responses.
func notifyCatalogFailure(w http.ResponseWriter) {
	if msg := catalogNotice(); msg != "" {
		mw.Notify(w, msg, "error")
	}
}

// renderPage executes the base layout for the named page and fills the card
// price slots before writing.
func renderPage(w http.ResponseWriter, r *http.Request, page string, vm handlersPkg.PageData) {
	renderPageStatus(w, r, http.StatusOK, page, vm)
}

func renderPageStatus(w http.ResponseWriter, r *http.Request, status int, page string, vm handlersPkg.PageData) {
	vm.Page = page
	fillLayout(r, &vm)
	t, err := loadTemplates()
	if err != nil {
		http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", vm); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
		return
	}
	body := buf.Bytes()
	if catalogStore != nil {
		filled, err := populate.Populator{Catalog: catalogStore}.Render(r.Context(), body)
		if err != nil {
			observability.FromContext(r.Context()).Warn("populate prices", zap.Error(err))
		} else {
			body = filled
		}
	}
	writeHTML(w, status, body)
}

// renderTemplate executes a named fragment template (htmx swaps).
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	renderTemplateStatus(w, r, http.StatusOK, name, data)
}

func renderTemplateStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t, err := loadTemplates()
	if err != nil {
		http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		observability.FromContext(r.Context()).Error("template exec", zap.String("template", name), zap.Error(err))
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf.Bytes())
}

func writeHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// loadCatalog returns the product list, or an empty list when no store is wired.
func loadCatalog(ctx context.Context) []catalog.Product {
	if catalogStore == nil {
		return []catalog.Product{}
	}
	return catalogStore.Load(ctx)
}

func findProduct(ctx context.Context, id string) (catalog.Product, bool) {
	if catalogStore == nil {
		return catalog.Product{}, false
	}
	return catalogStore.Get(ctx, id)
}
