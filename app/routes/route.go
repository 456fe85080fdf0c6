package routes

import (
	"net/http"

	"github.com/ghecrochet/storefront/app/configs"
	"github.com/ghecrochet/storefront/app/handlers"
	"github.com/ghecrochet/storefront/app/handlers/admin"
	"github.com/ghecrochet/storefront/app/middlewares"
	"github.com/ghecrochet/storefront/app/repositories"
	"github.com/ghecrochet/storefront/app/services"
	"github.com/ghecrochet/storefront/app/storage"
	"github.com/ghecrochet/storefront/app/utils/renderer"
	"github.com/ghecrochet/storefront/app/utils/sessions"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	Env         configs.ENV
	Keys        *configs.SessionKeys
	Bucket      *storage.FileBucket
	TemplateDir string
	StaticDir   string
}

func NewRouter(db *gorm.DB, opts Options) http.Handler {
	env := opts.Env
	if opts.StaticDir == "" {
		opts.StaticDir = "static"
	}

	render := renderer.New(opts.TemplateDir, !env.IsProduction())
	validate := validator.New()
	sessionStore := sessions.NewCookieSessionStore(env.IsProduction(), opts.Keys.AuthKey, opts.Keys.EncKey)

	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	settingRepo := repositories.NewSiteSettingRepository(db)
	userRepo := repositories.NewUserRepository(db)

	catalogSvc := services.NewCatalogService(productRepo, categoryRepo, settingRepo, env.PageSize)
	productSvc := services.NewProductService(productRepo, categoryRepo, opts.Bucket)
	categorySvc := services.NewCategoryService(categoryRepo)
	imageSvc := services.NewImageService(productRepo, settingRepo, opts.Bucket, env.MaxProductImages)

	homeHandler := handlers.NewHomeHandler(render, catalogSvc)
	productHandler := handlers.NewProductHandler(catalogSvc, render)
	pageHandler := handlers.NewPageHandler(render)
	sitemapHandler := handlers.NewSitemapHandler(render, catalogSvc, categoryRepo, env.APP_URL)
	authHandler := handlers.NewAuthHandler(render, userRepo, sessionStore, validate)
	adminHandler := admin.NewAdminHandler(render, validate, productSvc, categorySvc, imageSvc)

	router := mux.NewRouter()
	router.Use(middlewares.RequestLogger)

	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(opts.StaticDir))))
	router.PathPrefix(env.UploadURL + "/").Handler(http.StripPrefix(env.UploadURL+"/", http.FileServer(afero.NewHttpFs(opts.Bucket.Fs()))))
	router.HandleFunc("/sitemap.xml", sitemapHandler.Sitemap).Methods("GET")

	app := router.PathPrefix("/").Subrouter()
	app.Use(csrf.Protect(
		opts.Keys.CSRFKey,
		csrf.Secure(env.IsProduction()),
		csrf.Path("/"),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailed)),
	))
	app.Use(middlewares.AuthMiddleware(sessionStore, userRepo))

	app.HandleFunc("/", homeHandler.Home).Methods("GET")
	app.HandleFunc("/products", productHandler.Products).Methods("GET")
	app.HandleFunc("/products/{id}", productHandler.ProductDetail).Methods("GET")
	app.HandleFunc("/about", pageHandler.About).Methods("GET")
	app.HandleFunc("/contact", pageHandler.Contact).Methods("GET")

	app.HandleFunc("/login", authHandler.LoginGetHandler).Methods("GET")
	app.HandleFunc("/login", authHandler.LoginPostHandler).Methods("POST")
	app.HandleFunc("/logout", authHandler.LogoutHandler).Methods("POST")

	adminRouter := app.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middlewares.AdminAuthMiddleware)

	adminRouter.HandleFunc("", adminHandler.Dashboard).Methods("GET")
	adminRouter.HandleFunc("/", adminHandler.Dashboard).Methods("GET")

	adminRouter.HandleFunc("/products", adminHandler.GetProductsPage).Methods("GET")
	adminRouter.HandleFunc("/products/new", adminHandler.AddProductPage).Methods("GET")
	adminRouter.HandleFunc("/products/new", adminHandler.AddProductPost).Methods("POST")
	adminRouter.HandleFunc("/products/{id}/edit", adminHandler.EditProductPage).Methods("GET")
	adminRouter.HandleFunc("/products/{id}/edit", adminHandler.EditProductPost).Methods("POST")
	adminRouter.HandleFunc("/products/{id}/delete", adminHandler.DeleteProductPost).Methods("POST")

	adminRouter.HandleFunc("/products/{id}/images", adminHandler.ProductImagesPage).Methods("GET")
	adminRouter.HandleFunc("/products/{id}/images", adminHandler.AddProductImagesPost).Methods("POST")
	adminRouter.HandleFunc("/products/{id}/images/remove", adminHandler.RemoveProductImagePost).Methods("POST")
	adminRouter.HandleFunc("/products/{id}/images/replace", adminHandler.ReplaceProductImagePost).Methods("POST")
	adminRouter.HandleFunc("/products/{id}/images/primary", adminHandler.PromoteProductImagePost).Methods("POST")

	adminRouter.HandleFunc("/categories", adminHandler.GetCategoriesPage).Methods("GET")
	adminRouter.HandleFunc("/categories/new", adminHandler.AddCategoryPage).Methods("GET")
	adminRouter.HandleFunc("/categories/new", adminHandler.AddCategoryPost).Methods("POST")
	adminRouter.HandleFunc("/categories/{id}/edit", adminHandler.EditCategoryPage).Methods("GET")
	adminRouter.HandleFunc("/categories/{id}/edit", adminHandler.EditCategoryPost).Methods("POST")
	adminRouter.HandleFunc("/categories/{id}/delete", adminHandler.DeleteCategoryPost).Methods("POST")

	adminRouter.HandleFunc("/home-images", adminHandler.HomeImagesPage).Methods("GET")
	adminRouter.HandleFunc("/home-images/{key}", adminHandler.SetHomeImagePost).Methods("POST")
	adminRouter.HandleFunc("/home-images/{key}/clear", adminHandler.ClearHomeImagePost).Methods("POST")

	return router
}

func csrfFailed(w http.ResponseWriter, r *http.Request) {
	zap.S().Warnf("csrf: rejected %s %s: %v", r.Method, r.URL.Path, csrf.FailureReason(r))
	http.Error(w, "Phiên làm việc đã hết hạn, vui lòng tải lại trang.", http.StatusForbidden)
}
