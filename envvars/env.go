package envvars

import (
	"log"
	"os"
)

// Environment variable names.
const (
	ProjectID      = "GCP_PROJECT_ID"
	Environment    = "ENVIRONMENT"
	Addr           = "ADDR"
	BaseURL        = "BASE_URL"
	IdentitySecret = "IDENTITY_SECRET"
	WebhookURL     = "FAMILY_WEBHOOK_URL"
	ExportBucket   = "EXPORT_BUCKET"
)

const (
	DevEnv        = "dev"
	ProductionEnv = "production"
)

type Env struct {
	ProjectID      string
	Environment    string
	Addr           string
	BaseURL        string
	IdentitySecret string
	WebhookURL     string
	ExportBucket   string
}

func GetEvn() Env {
	projectID, ok := os.LookupEnv(ProjectID)
	if !ok {
		log.Fatalf("%s required", ProjectID)
	}
	secret, ok := os.LookupEnv(IdentitySecret)
	if !ok {
		log.Fatalf("%s required", IdentitySecret)
	}
	environment, ok := os.LookupEnv(Environment)
	if !ok {
		environment = DevEnv
	}
	addr, ok := os.LookupEnv(Addr)
	if !ok {
		addr = "0.0.0.0:8080"
	}
	baseURL, ok := os.LookupEnv(BaseURL)
	if !ok {
		baseURL = "http://localhost:8080"
	}
	return Env{
		ProjectID:      projectID,
		Environment:    environment,
		Addr:           addr,
		BaseURL:        baseURL,
		IdentitySecret: secret,
		WebhookURL:     os.Getenv(WebhookURL),
		ExportBucket:   os.Getenv(ExportBucket),
	}
}

func IsProd(env Env) bool {
	return env.Environment == ProductionEnv
}

func IsDev(env Env) bool {
	return env.Environment == DevEnv
}
