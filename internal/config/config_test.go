package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("TOKEN_TTL_HOURS", "")

	c := Load()
	if c.DBDriver != "mysql" {
		t.Fatalf("DBDriver = %q, want mysql", c.DBDriver)
	}
	if c.TokenTTL != 24*time.Hour {
		t.Fatalf("TokenTTL = %v, want 24h", c.TokenTTL)
	}
	if !c.AllowLegacyPlain {
		t.Fatalf("legacy plaintext fallback should default to enabled")
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !strings.Contains(c.DSN(), "parseTime=true") {
		t.Fatalf("mysql DSN missing parseTime: %s", c.DSN())
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			AppPort:    "8080",
			DBDriver:   "sqlite",
			SQLitePath: ":memory:",
			JWTSecret:  "x",
			TokenTTL:   time.Hour,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "ok", mutate: func(c *Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: "JWT_SECRET"},
		{name: "bad driver", mutate: func(c *Config) { c.DBDriver = "oracle" }, wantErr: "unsupported DB_DRIVER"},
		{name: "postgres without dsn", mutate: func(c *Config) { c.DBDriver = "postgres" }, wantErr: "POSTGRES_DSN"},
		{name: "half admin bootstrap", mutate: func(c *Config) { c.BootstrapAdminUser = "root" }, wantErr: "BOOTSTRAP_ADMIN"},
		{name: "bad mysql port", mutate: func(c *Config) {
			c.DBDriver = "mysql"
			c.MySQLHost, c.MySQLDB, c.MySQLUser = "h", "d", "u"
			c.MySQLPort = "not-a-port"
		}, wantErr: "MYSQL_PORT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("want err containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" http://a , ,http://b")
	if len(got) != 2 || got[0] != "http://a" || got[1] != "http://b" {
		t.Fatalf("splitList = %#v", got)
	}
}
