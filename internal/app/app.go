package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kiangasgaryishere/Booka-frontendd/internal/config"
	httpx "github.com/kiangasgaryishere/Booka-frontendd/internal/http"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/http/handlers"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/http/middleware"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/validation"
)

// Run wires the container into the HTTP surface and serves until the listener
// fails.
func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validation.RegisterBinding(v); err != nil {
			return err
		}
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.TxRepo.Seed(context.Background()); err != nil {
		return err
	}
	seedPolicies(c)

	authH := handlers.NewAuthHandlers(c.AuthSvc, c.ProfileSvc, c.Audit)
	onboardingH := handlers.NewOnboardingHandlers(c.AuthSvc, c.ProfileSvc, c.FlowSvc, c.OTPSvc, c.Audit)
	profileH := handlers.NewProfileHandlers(c.ProfileSvc)
	paymentH := handlers.NewPaymentHandlers(c.PaymentSvc, c.Audit)

	jwtMW := middleware.NewAuthMW(c.TokenSvc, c.SessionRepo)
	casbinMW := middleware.NewCasbinMW(c.Casbin.E)

	r := httpx.BuildRouter(authH, onboardingH, profileH, paymentH, jwtMW, casbinMW)

	addr := ":" + cfg.Port
	c.Logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}

// seedPolicies installs the default route permissions on an empty policy
// table.
func seedPolicies(c *Container) {
	policies, _ := c.Casbin.E.GetPolicy()
	if len(policies) > 0 {
		return
	}

	c.Casbin.E.AddPolicy("role_user", "/auth/me", "GET")
	c.Casbin.E.AddPolicy("role_user", "/auth/logout", "POST")
	c.Casbin.E.AddPolicy("role_user", "/onboarding/*", "(GET|POST)")
	c.Casbin.E.AddPolicy("role_user", "/profile", "(GET|PATCH)")
	c.Casbin.E.AddPolicy("role_user", "/profile/*", "(GET|PUT)")
	c.Casbin.E.AddPolicy("role_user", "/payments/*", "(GET|POST)")
	if err := c.Casbin.E.SavePolicy(); err != nil {
		c.Logger.Warn("failed to persist seeded policies", zap.Error(err))
		return
	}
	c.Logger.Info("casbin: seeded default policies")
}
