package config_test

import (
	"testing"
	"time"

	"github.com/okian/pitwall/internal/config"
	"github.com/okian/pitwall/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.TokenCache, convey.ShouldEqual, config.TokenCacheFile)
			convey.So(cfg.TokenTTL, convey.ShouldEqual, 24*time.Hour)
			convey.So(cfg.EntrantDelay, convey.ShouldEqual, time.Second)
			convey.So(cfg.RetryDelay, convey.ShouldEqual, 5*time.Second)
			convey.So(cfg.MaxRetries, convey.ShouldEqual, 5)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the token cache path should follow the backend", func() {
			cfg.DataDir = "/var/lib/pitwall"
			convey.So(cfg.TokenCachePath(), convey.ShouldEqual, "/var/lib/pitwall/cookie.txt")
			cfg.TokenCache = config.TokenCacheBolt
			convey.So(cfg.TokenCachePath(), convey.ShouldEqual, "/var/lib/pitwall/session.db")
		})
	})
}

func TestConfig_LeagueList(t *testing.T) {
	convey.Convey("Given a config with several leagues", t, func() {
		cfg := config.New()
		cfg.Leagues = map[string]model.League{
			"b": {Key: "b", Tag: "beta", LeagueID: "2"},
			"a": {Key: "a", Tag: "alpha", LeagueID: "1"},
		}

		convey.Convey("Then LeagueList should order them by key", func() {
			list := cfg.LeagueList()
			convey.So(len(list), convey.ShouldEqual, 2)
			convey.So(list[0].Tag, convey.ShouldEqual, "alpha")
			convey.So(list[1].Tag, convey.ShouldEqual, "beta")
		})
	})
}
