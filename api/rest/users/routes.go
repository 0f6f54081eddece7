package users

import (
	"codeberg.org/algorave/errorhandler/errorhandler/users"
	"codeberg.org/algorave/errorhandler/internal/auth"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, repo users.Repository) {
	group := rg.Group("/users")

	group.GET("", ListUsers(repo))
	group.GET("/search", SearchUser(repo))
	group.GET("/:id", GetUser(repo))

	group.POST("", auth.AuthMiddleware(), CreateUser(repo))
	group.DELETE("/:id", auth.AuthMiddleware(), auth.RequireAdmin(), DeleteUser(repo))
}
