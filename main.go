package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
	"github.com/joho/godotenv"
	ginmiddleware "github.com/oapi-codegen/gin-middleware"

	"bangohan/api"
	"bangohan/clients/gcp"
	"bangohan/envvars"
	"bangohan/identity"
	"bangohan/services/calendar"
	"bangohan/services/export"
	"bangohan/services/notify"
	"bangohan/services/preference"
	"bangohan/services/record"
	"bangohan/web"
	"bangohan/ws"
)

func main() {
	_ = godotenv.Load()
	env := envvars.GetEvn()

	firestore := gcp.CreateFirestore(context.Background(), env.ProjectID)
	defer firestore.Close()

	calendarService := calendar.NewService(firestore)
	recordService := record.NewService(firestore)
	preferenceService := preference.NewService(firestore)
	notifyService := notify.NewService(resty.New(), env.WebhookURL)
	exportService := export.NewService(firestore, env.ExportBucket)
	identityManager := identity.NewManager([]byte(env.IdentitySecret))
	hub := ws.NewHub(recordService)

	// Load OpenAPI spec file
	swagger, err := api.GetSwagger()
	if err != nil {
		slog.With("error", err.Error()).Error("failed to load swagger spec file")
		return
	}
	// Clear out the servers array in the swagger spec, that skips validating
	// that server names match. We don't know how this thing will be run.
	swagger.Servers = nil

	if envvars.IsProd(env) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/openapi", func(c *gin.Context) {
		c.Header("Content-Type", "application/x-yaml")
		c.File("./api/openapi.yaml")
	})

	r.LoadHTMLGlob("web/templates/*.html")
	r.Static("/static", "./web/static")

	pages := web.NewHandler(calendarService, recordService, preferenceService, identityManager, env.BaseURL)
	pages.Register(r)

	r.GET("/ws", hub.Serve)

	server := api.NewServer(
		calendarService,
		recordService,
		preferenceService,
		notifyService,
		exportService,
		identityManager,
		env.BaseURL,
	)
	apiGroup := r.Group("/api/v1")
	apiGroup.Use(ginmiddleware.OapiRequestValidator(swagger))
	api.RegisterHandlers(apiGroup, server)

	s := &http.Server{
		Handler: r,
		Addr:    env.Addr,
	}

	slog.Info("Starting HTTP server", "addr", env.Addr)
	log.Fatal(s.ListenAndServe())
}
