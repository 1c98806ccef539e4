package routes

import (
	"gearguard/internal/controllers"
	"gearguard/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runAuthRouter(authGroup *echo.Group, authCtrl *controllers.AuthController, authMW *middleware.AuthMiddleware) {
	authGroup.POST("/login", authCtrl.Login)
	authGroup.POST("/logout", authCtrl.Logout)
	authGroup.POST("/signup", authCtrl.Signup)
	authGroup.POST("/refresh", authCtrl.Refresh)
	authGroup.GET("/me", authCtrl.Me, authMW.Authenticated())
}
