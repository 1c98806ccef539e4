package routes

import (
	"gearguard/internal/controllers"
	"gearguard/pkg/constants"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runEquipmentRouter(api *echo.Group, ctrl *controllers.EquipmentController, authMW *middleware.AuthMiddleware) {
	editors := authMW.Require(constants.RoleAdmin, constants.RoleManager)
	adminOnly := authMW.Require(constants.RoleAdmin)

	g := api.Group("/equipment")
	g.GET("", ctrl.GetEquipments)
	g.GET("/:id", ctrl.FindEquipment)
	g.POST("", ctrl.CreateEquipment, editors)
	g.PUT("/:id", ctrl.UpdateEquipment, editors)
	g.DELETE("/:id", ctrl.DeleteEquipment, adminOnly)
}
