package routes

import (
	"time"

	"jobtrackr/api/handler"
	"jobtrackr/api/middleware"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Users          *handler.UserHandler
	Jobs           *handler.JobHandler
	Learning       *handler.LearningHandler
	Admin          *handler.AdminHandler
	AuthMiddleware middleware.AuthMiddleware
	AuthRate       echo.MiddlewareFunc
	LoginRate      echo.MiddlewareFunc
}

func NewRouter(
	e *echo.Echo,
	auth *handler.AuthHandler,
	users *handler.UserHandler,
	jobs *handler.JobHandler,
	learning *handler.LearningHandler,
	admin *handler.AdminHandler,
	authMiddleware middleware.AuthMiddleware,
) *Router {
	return &Router{
		Echo:           e,
		Auth:           auth,
		Users:          users,
		Jobs:           jobs,
		Learning:       learning,
		Admin:          admin,
		AuthMiddleware: authMiddleware,
		AuthRate:       middleware.RateLimit(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.RateLimit(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	api := r.Echo.Group("/api")

	api.POST("/auth/register", r.Auth.Register, r.AuthRate)
	api.POST("/auth/login", r.Auth.Login, r.LoginRate)
	api.POST("/auth/refresh", r.Auth.Refresh)
	api.POST("/auth/logout", r.Auth.Logout, r.AuthMiddleware.RequireAuth)
	api.POST("/auth/change-password", r.Auth.ChangePassword, r.AuthMiddleware.RequireAuth)
	api.POST("/auth/forgot-password", r.Auth.ForgotPassword, r.LoginRate)
	api.POST("/auth/reset-password", r.Auth.ResetPassword, r.AuthRate)
	api.GET("/auth/me", r.Auth.Me, r.AuthMiddleware.RequireAuth)

	users := api.Group("/users", r.AuthMiddleware.RequireAuth)
	users.GET("", r.Users.List, middleware.RequireAdmin)
	users.POST("", r.Users.Create, middleware.RequireAdmin)
	users.GET("/:id", r.Users.Get)
	users.PUT("/:id", r.Users.Update)
	users.DELETE("/:id", r.Users.Delete, middleware.RequireAdmin)

	api.GET("/profiles", r.Users.ListProfiles, r.AuthMiddleware.RequireAuth, middleware.RequireAdmin)
	api.PUT("/profile", r.Users.UpdateProfile, r.AuthMiddleware.RequireAuth)
	api.PUT("/social-links", r.Users.UpdateSocialLinks, r.AuthMiddleware.RequireAuth)

	jobStatuses := api.Group("/job-statuses", r.AuthMiddleware.RequireAuth)
	jobStatuses.GET("", r.Jobs.ListStatuses)
	jobStatuses.POST("", r.Jobs.CreateStatus, middleware.RequireAdmin)
	jobStatuses.GET("/:id", r.Jobs.GetStatus)
	jobStatuses.PUT("/:id", r.Jobs.UpdateStatus, middleware.RequireAdmin)
	jobStatuses.DELETE("/:id", r.Jobs.DeleteStatus, middleware.RequireAdmin)

	jobSkills := api.Group("/job-skills", r.AuthMiddleware.RequireAuth)
	jobSkills.GET("", r.Jobs.ListSkills)
	jobSkills.POST("", r.Jobs.CreateSkill)
	jobSkills.GET("/:id", r.Jobs.GetSkill)
	jobSkills.PUT("/:id", r.Jobs.UpdateSkill)
	jobSkills.DELETE("/:id", r.Jobs.DeleteSkill)

	applications := api.Group("/job-applications", r.AuthMiddleware.RequireAuth)
	applications.GET("", r.Jobs.ListApplications)
	applications.POST("", r.Jobs.CreateApplication)
	applications.GET("/:id", r.Jobs.GetApplication)
	applications.PUT("/:id", r.Jobs.UpdateApplication)
	applications.DELETE("/:id", r.Jobs.DeleteApplication)

	userSkills := api.Group("/user-skills", r.AuthMiddleware.RequireAuth)
	userSkills.GET("", r.Jobs.ListUserSkills)
	userSkills.POST("", r.Jobs.CreateUserSkill)
	userSkills.GET("/:id", r.Jobs.GetUserSkill)
	userSkills.PUT("/:id", r.Jobs.UpdateUserSkill)
	userSkills.DELETE("/:id", r.Jobs.DeleteUserSkill)

	learningStatuses := api.Group("/learning-statuses", r.AuthMiddleware.RequireAuth)
	learningStatuses.GET("", r.Learning.ListStatuses)
	learningStatuses.POST("", r.Learning.CreateStatus)
	learningStatuses.GET("/:id", r.Learning.GetStatus)
	learningStatuses.PUT("/:id", r.Learning.UpdateStatus)
	learningStatuses.DELETE("/:id", r.Learning.DeleteStatus)

	plans := api.Group("/learning-plans", r.AuthMiddleware.RequireAuth)
	plans.GET("", r.Learning.ListPlans)
	plans.POST("", r.Learning.CreatePlan)
	plans.GET("/:id", r.Learning.GetPlan)
	plans.PUT("/:id", r.Learning.UpdatePlan)
	plans.DELETE("/:id", r.Learning.DeletePlan)

	resources := api.Group("/learning-resources", r.AuthMiddleware.RequireAuth)
	resources.GET("", r.Learning.ListResources)
	resources.POST("", r.Learning.CreateResource)
	resources.GET("/:id", r.Learning.GetResource)
	resources.PUT("/:id", r.Learning.UpdateResource)
	resources.DELETE("/:id", r.Learning.DeleteResource)

	api.GET("/kanban-board", r.Learning.Board, r.AuthMiddleware.RequireAuth)

	admin := api.Group("/admin")
	admin.GET("/stats", r.Admin.Stats, r.AuthMiddleware.RequireAuth, middleware.RequireAdmin)
	admin.GET("/export", r.Admin.Export, r.AuthMiddleware.RequireAuth, middleware.RequireAdmin)
	// Import accepts either an admin session or the operation secret, so auth
	// is optional here and the handler decides.
	admin.POST("/import", r.Admin.Import, r.AuthMiddleware.OptionalAuth)

	emailSettings := admin.Group("/email-settings", r.AuthMiddleware.RequireAuth, middleware.RequireAdmin)
	emailSettings.GET("", r.Admin.ListEmailSettings)
	emailSettings.POST("", r.Admin.CreateEmailSetting)
	emailSettings.GET("/:id", r.Admin.GetEmailSetting)
	emailSettings.PUT("/:id", r.Admin.UpdateEmailSetting)
	emailSettings.DELETE("/:id", r.Admin.DeleteEmailSetting)
	emailSettings.POST("/:id/activate", r.Admin.ActivateEmailSetting)

	emailLogs := admin.Group("/email-logs", r.AuthMiddleware.RequireAuth, middleware.RequireAdmin)
	emailLogs.GET("", r.Admin.ListEmailLogs)
	emailLogs.POST("/:id/resend", r.Admin.ResendEmail)
}
