package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/kiangasgaryishere/Booka-frontendd/internal/http/handlers"
	"github.com/kiangasgaryishere/Booka-frontendd/internal/http/middleware"
)

// BuildRouter assembles the route surface. The public group carries the
// passwordless entry points; everything stateful sits behind JWT validation
// plus casbin enforcement.
func BuildRouter(
	ah *handlers.AuthHandlers,
	oh *handlers.OnboardingHandlers,
	ph *handlers.ProfileHandlers,
	pay *handlers.PaymentHandlers,
	jwtmw *middleware.AuthMW,
	cb *middleware.CasbinMW,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/login/otp", ah.RequestOTP)
	auth.POST("/otp/verify", ah.VerifyOTP)
	auth.POST("/google", ah.GoogleSignIn)
	auth.POST("/refresh", ah.Refresh)

	r.POST("/onboarding/start", oh.Start)

	v := r.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	v.GET("/auth/me", ah.Me)
	v.POST("/auth/logout", ah.Logout)

	ob := r.Group("/onboarding").Use(jwtmw.WithJWT(), cb.Enforce())
	ob.POST("/steps/life-improvement", oh.SubmitLifeImprovement)
	ob.POST("/steps/daily-reading-time", oh.SubmitDailyReadingTime)
	ob.POST("/steps/name", oh.SubmitName)
	ob.POST("/steps/age", oh.SubmitAge)
	ob.POST("/steps/contact", oh.SubmitContact)
	ob.POST("/steps/otp/verify", oh.VerifyStepOTP)
	ob.POST("/steps/platform-discovery", oh.SubmitPlatformDiscovery)
	ob.GET("/next", oh.Next)
	ob.GET("/previous", oh.Previous)
	ob.GET("/progress", oh.Progress)

	pr := r.Group("/profile").Use(jwtmw.WithJWT(), cb.Enforce())
	pr.GET("", ph.Get)
	pr.PATCH("", ph.Update)
	pr.GET("/avatar", ph.GetAvatar)
	pr.PUT("/avatar", ph.SetAvatar)

	pm := r.Group("/payments").Use(jwtmw.WithJWT(), cb.Enforce())
	pm.GET("/plans", pay.Plans)
	pm.GET("/transactions", pay.Transactions)
	pm.GET("/transactions/export", pay.ExportTransactions)
	pm.GET("/subscription", pay.Subscription)
	pm.POST("/subscription/purchase", pay.Purchase)
	pm.POST("/subscription/cancel", pay.Cancel)

	return r
}
