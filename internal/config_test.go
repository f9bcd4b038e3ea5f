package internal_test

import (
	"time"

	"github.com/frahmantamala/crm-console/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	var cfg internal.Config

	BeforeEach(func() {
		cfg = internal.Config{
			App:     internal.AppConfig{Env: "development"},
			API:     internal.APIConfig{BaseURL: "http://localhost:5000", PathPrefix: "/api/crm", Timeout: 15 * time.Second},
			Store:   internal.StoreConfig{Driver: "sqlite", Source: "crm.db", MaxOpenConns: 1, MaxIdleConns: 1},
			Polling: internal.PollingConfig{Orders: 5 * time.Second, Dashboard: 10 * time.Second},
			Server:  internal.ServerConfig{Port: 8080, ReadTimeout: 10 * time.Second, ReadHeaderTimeout: 5 * time.Second},
			Logging: internal.LoggingConfig{Level: "info", Format: "text"},
		}
	})

	It("accepts a complete configuration", func() {
		Expect(cfg.Validate()).To(Succeed())
	})

	It("joins every section error", func() {
		cfg.API.BaseURL = ""
		cfg.Store.Driver = "mysql"
		cfg.Polling.Orders = 0

		err := cfg.Validate()
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("api config: base_url is required"))
		Expect(err.Error()).To(ContainSubstring(`store config: unsupported driver "mysql"`))
		Expect(err.Error()).To(ContainSubstring("polling config"))
	})

	It("rejects non-http base urls", func() {
		cfg.API.BaseURL = "ftp://crm.local"
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("must be http or https")))
	})

	It("requires redis settings only when enabled", func() {
		cfg.Redis = internal.RedisConfig{Enabled: false}
		Expect(cfg.Validate()).To(Succeed())

		cfg.Redis.Enabled = true
		Expect(cfg.Validate()).To(MatchError(ContainSubstring("addr is required")))

		cfg.Redis.Addr = "localhost:6379"
		cfg.Redis.SessionTTL = time.Minute
		Expect(cfg.Validate()).To(Succeed())
	})

	It("joins base url and path prefix", func() {
		cfg.API.BaseURL = "https://crm.example.com/"
		Expect(cfg.API.Endpoint()).To(Equal("https://crm.example.com/api/crm"))
	})

	It("splits allowed origins", func() {
		cfg.Server.AllowedOrigins = "http://a.test, http://b.test,"
		Expect(cfg.Server.Origins()).To(Equal([]string{"http://a.test", "http://b.test"}))
	})
})
