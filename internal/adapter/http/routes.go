package http

import "github.com/labstack/echo/v4"

// Register mounts every route on e. Routes are served with and without the
// trailing slash.
func Register(e *echo.Echo, h *Handler, projects *ProjectHandler, donations *DonationHandler) {
	e.GET("/health", h.Health)

	pg := e.Group("/charity_project")
	pg.GET("", projects.List)
	pg.GET("/", projects.List)
	pg.POST("", projects.Create)
	pg.POST("/", projects.Create)
	pg.GET("/:project_id", projects.Get)
	pg.PATCH("/:project_id", projects.Update)
	pg.DELETE("/:project_id", projects.Delete)
	pg.POST("/:project_id/allocate", projects.Allocate)

	dg := e.Group("/donation")
	dg.GET("", donations.List)
	dg.GET("/", donations.List)
	dg.POST("", donations.Create)
	dg.POST("/", donations.Create)
	dg.GET("/my", donations.ListMine)
	dg.POST("/:donation_id/allocate", donations.Allocate)
}
