package routes

import (
	"gearguard/internal/controllers"
	"gearguard/pkg/constants"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runTeamRouter(api *echo.Group, ctrl *controllers.TeamController, authMW *middleware.AuthMiddleware) {
	editors := authMW.Require(constants.RoleAdmin, constants.RoleManager)

	g := api.Group("/teams")
	g.GET("", ctrl.GetTeams)
	g.GET("/:id", ctrl.FindTeam)
	g.POST("", ctrl.CreateTeam, editors)
	g.PUT("/:id", ctrl.UpdateTeam, editors)
	g.DELETE("/:id", ctrl.DeleteTeam, authMW.Require(constants.RoleAdmin))
	g.POST("/:id/members", ctrl.AddMember, editors)
	g.DELETE("/:id/members/:user_id", ctrl.RemoveMember, editors)
}
