package routes

import (
	"gearguard/internal/controllers"
	"gearguard/pkg/constants"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runRequestRouter(api *echo.Group, ctrl *controllers.RequestController, authMW *middleware.AuthMiddleware) {
	workers := authMW.Require(constants.RoleAdmin, constants.RoleManager, constants.RoleTechnician)

	g := api.Group("/requests")
	g.GET("", ctrl.GetRequests)
	g.GET("/:id", ctrl.FindRequest)
	g.POST("", ctrl.CreateRequest, authMW.Require(constants.RoleAdmin, constants.RoleManager, constants.RoleEmployee))
	g.PUT("/:id", ctrl.UpdateRequest, workers)
	g.PATCH("/:id/status", ctrl.UpdateStatus, workers)
	g.POST("/:id/comments", ctrl.AddComment)
	g.DELETE("/:id", ctrl.DeleteRequest, authMW.Require(constants.RoleAdmin))
}
