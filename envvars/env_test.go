package envvars

import (
	"os"
	"reflect"
	"testing"
)

func TestGetEvn(t *testing.T) {
	// Backup and defer restore of environment variables
	backup := os.Environ()
	defer func() {
		os.Clearenv()
		for _, env := range backup {
			pair := splitEnv(env)
			os.Setenv(pair[0], pair[1])
		}
	}()

	t.Run("all env vars set", func(t *testing.T) {
		os.Clearenv()
		os.Setenv(ProjectID, "test-project")
		os.Setenv(IdentitySecret, "test-secret")
		os.Setenv(Environment, "production")
		os.Setenv(Addr, "127.0.0.1:9000")
		os.Setenv(BaseURL, "https://bangohan.example.com")
		os.Setenv(WebhookURL, "https://hooks.example.com/family")
		os.Setenv(ExportBucket, "bangohan-exports")

		expected := Env{
			ProjectID:      "test-project",
			Environment:    ProductionEnv,
			Addr:           "127.0.0.1:9000",
			BaseURL:        "https://bangohan.example.com",
			IdentitySecret: "test-secret",
			WebhookURL:     "https://hooks.example.com/family",
			ExportBucket:   "bangohan-exports",
		}

		if got := GetEvn(); !reflect.DeepEqual(got, expected) {
			t.Errorf("GetEvn() = %v, want %v", got, expected)
		}
	})

	t.Run("optional vars default", func(t *testing.T) {
		os.Clearenv()
		os.Setenv(ProjectID, "test-project")
		os.Setenv(IdentitySecret, "test-secret")

		got := GetEvn()
		if got.Environment != DevEnv {
			t.Errorf("Expected environment to default to dev, got %s", got.Environment)
		}
		if got.Addr != "0.0.0.0:8080" {
			t.Errorf("Expected addr to default to 0.0.0.0:8080, got %s", got.Addr)
		}
		if got.BaseURL != "http://localhost:8080" {
			t.Errorf("Expected base URL to default to localhost, got %s", got.BaseURL)
		}
		if got.WebhookURL != "" {
			t.Errorf("Expected webhook URL to default to empty, got %s", got.WebhookURL)
		}
	})
}

func TestIsProd(t *testing.T) {
	tests := []struct {
		name string
		env  Env
		want bool
	}{
		{"production env", Env{Environment: ProductionEnv}, true},
		{"dev env", Env{Environment: DevEnv}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsProd(tt.env); got != tt.want {
				t.Errorf("IsProd() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDev(t *testing.T) {
	tests := []struct {
		name string
		env  Env
		want bool
	}{
		{"production env", Env{Environment: ProductionEnv}, false},
		{"dev env", Env{Environment: DevEnv}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDev(tt.env); got != tt.want {
				t.Errorf("IsDev() = %v, want %v", got, tt.want)
			}
		})
	}
}

func splitEnv(env string) []string {
	var s []string
	for i := 0; i < len(env); i++ {
		if env[i] == '=' {
			s = append(s, env[:i])
			s = append(s, env[i+1:])
			return s
		}
	}
	// Return slice with empty strings if no '=' is found
	return []string{"", ""}
}
