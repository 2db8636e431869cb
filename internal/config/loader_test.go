package config_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/okian/pitwall/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.EntrantDelay, convey.ShouldEqual, time.Second)
				convey.So(cfg.MaxRetries, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PITWALL_ADDR", ":8080")
			_ = os.Setenv("PITWALL_ENTRANT_DELAY", "250ms")
			_ = os.Setenv("PITWALL_RETRY_DELAY", "2s")
			_ = os.Setenv("PITWALL_MAX_RETRIES", "0")
			_ = os.Setenv("PITWALL_TOKEN_CACHE", "bolt")
			_ = os.Setenv("PITWALL_LOGIN", "racer@example.com")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.EntrantDelay, convey.ShouldEqual, 250*time.Millisecond)
				convey.So(cfg.RetryDelay, convey.ShouldEqual, 2*time.Second)
				convey.So(cfg.MaxRetries, convey.ShouldEqual, 0)
				convey.So(cfg.TokenCache, convey.ShouldEqual, config.TokenCacheBolt)
				convey.So(cfg.Credentials().Login, convey.ShouldEqual, "racer@example.com")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
addr: ":9090"
data_dir: "/tmp/pitwall"
entrant_delay: 10ms
lookup:
  "11": "Lewis Hamilton"
  "21": "Mercedes"
leagues:
  "guild-1":
    tag: rlm
    league_id: "9001"
    players:
      "101":
        name: Alice
        account_id: 555
    ignore: ["303"]
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PITWALL_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load leagues and the lookup table", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataDir, convey.ShouldEqual, "/tmp/pitwall")
				convey.So(cfg.EntrantDelay, convey.ShouldEqual, 10*time.Millisecond)
				convey.So(cfg.Lookup["11"], convey.ShouldEqual, "Lewis Hamilton")

				league, ok := cfg.Leagues["guild-1"]
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(league.Key, convey.ShouldEqual, "guild-1")
				convey.So(league.Tag, convey.ShouldEqual, "rlm")
				convey.So(league.LeagueID, convey.ShouldEqual, "9001")
				convey.So(league.Players["101"].Name, convey.ShouldEqual, "Alice")
				convey.So(league.Players["101"].AccountID, convey.ShouldEqual, int64(555))
				convey.So(league.Ignored("303"), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("addr: \":9090\"\nmax_retries: 3\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PITWALL_CONFIG", tmpFile)
			_ = os.Setenv("PITWALL_ADDR", ":8080")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxRetries, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PITWALL_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			cfg, err := config.LoadFrom(ctx, "/non/existent/file.yaml")

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			tmpFile := createTempConfigFile("addr: \"\"\n")
			defer func() { _ = os.Remove(tmpFile) }()
			clearConfigEnvVars()

			cfg, err := config.LoadFrom(ctx, tmpFile)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an unknown token cache", func() {
			_ = os.Setenv("PITWALL_TOKEN_CACHE", "redis")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should reject the backend", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("PITWALL_MAX_RETRIES", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a league is missing its remote id", func() {
			tmpFile := createTempConfigFile("leagues:\n  g1:\n    tag: rlm\n")
			defer func() { _ = os.Remove(tmpFile) }()
			clearConfigEnvVars()

			cfg, err := config.LoadFrom(ctx, tmpFile)

			convey.Convey("Then validation should name the league", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, `"g1"`)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"PITWALL_CONFIG",
		"PITWALL_ADDR",
		"PITWALL_ENTRANT_DELAY",
		"PITWALL_RETRY_DELAY",
		"PITWALL_MAX_RETRIES",
		"PITWALL_TOKEN_CACHE",
		"PITWALL_LOGIN",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "pitwall-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
