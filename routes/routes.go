package routes

import (
	"Gin_postgres_redis_library_lending/app"
	"Gin_postgres_redis_library_lending/controllers"
	"Gin_postgres_redis_library_lending/lending"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// Controllers and shared deps
	s := controllers.GetSrv(a)
	authCtl := controllers.GetAuthController(s)
	userCtl := controllers.GetUserController(s)
	inviteCtl := controllers.GetInviteController(s)
	catalogCtl := controllers.NewCatalogController(s)
	copyCtl := controllers.NewCopyController(s)

	// Shared middleware
	authMW := app.AuthRequired(s.AppSess, s.Repo)
	librarianMW := app.LibrarianOnly()

	// ------------------------------
	// Auth (public + protected)
	// ------------------------------
	auth := r.Group("/auth")
	{
		auth.POST("/signup", authCtl.Signup)
		auth.POST("/login", authCtl.Login)
	}

	authAuth := auth.Group("", authMW)
	{
		authAuth.POST("/logout", authCtl.Logout)
		authAuth.GET("/whoami", authCtl.Whoami)
	}

	// ------------------------------
	// Invites (librarian only)
	// ------------------------------
	admin := r.Group("/admin", authMW, librarianMW)
	{
		admin.POST("/invites", inviteCtl.CreateInvite)
	}

	// ------------------------------
	// User management (librarian only)
	// ------------------------------
	users := r.Group("/api/users", authMW, librarianMW)
	{
		users.GET("", userCtl.ListUsers) // ?q=&page=&size=
		users.GET("/:id", userCtl.GetUser)
		users.DELETE("/:id", userCtl.DeleteUser)
	}

	// ------------------------------
	// Catalog (reads public, writes checked inside handlers)
	// ------------------------------
	r.GET("/api/catalog/summary", catalogCtl.Summary)

	books := r.Group("/api/books")
	{
		books.GET("", catalogCtl.ListBooks) // ?q=&page=&size=
		books.GET("/:id", catalogCtl.GetBook)
	}
	booksAdmin := r.Group("/api/books", authMW)
	{
		booksAdmin.POST("", catalogCtl.CreateBook)
		booksAdmin.PUT("/:id", catalogCtl.UpdateBook)
		booksAdmin.DELETE("/:id", catalogCtl.DeleteBook)
	}

	authors := r.Group("/api/authors")
	{
		authors.GET("", catalogCtl.ListAuthors)
		authors.GET("/:id", catalogCtl.GetAuthor)
	}
	authorsAdmin := r.Group("/api/authors", authMW)
	{
		authorsAdmin.POST("", catalogCtl.CreateAuthor)
		authorsAdmin.PUT("/:id", catalogCtl.UpdateAuthor)
		authorsAdmin.DELETE("/:id", catalogCtl.DeleteAuthor)
	}

	genres := r.Group("/api/genres")
	{
		genres.GET("", catalogCtl.ListGenres)
		genres.POST("", authMW, catalogCtl.CreateGenre)
		genres.DELETE("/:id", authMW, catalogCtl.DeleteGenre)
	}

	languages := r.Group("/api/languages")
	{
		languages.GET("", catalogCtl.ListLanguages)
		languages.POST("", authMW, catalogCtl.CreateLanguage)
		languages.DELETE("/:id", authMW, catalogCtl.DeleteLanguage)
	}

	// ------------------------------
	// Lending (copies and their lifecycle)
	// ------------------------------
	// Staff listings
	copiesStaff := r.Group("/api/copies", authMW, app.RequireOp(lending.OpViewLoans))
	{
		copiesStaff.GET("", copyCtl.ListCopies) // ?status=&overdue=&page=&size=
		copiesStaff.GET("/on-loan", copyCtl.ListOnLoan)
		copiesStaff.GET("/requests", copyCtl.ListBorrowRequests)
	}

	// Librarian: CRUD and lifecycle decisions
	copiesAdmin := r.Group("/api/copies", authMW, librarianMW)
	{
		copiesAdmin.POST("", copyCtl.CreateCopy)
		copiesAdmin.PUT("/:id", copyCtl.UpdateCopy)
		copiesAdmin.DELETE("/:id", copyCtl.DeleteCopy)
		copiesAdmin.POST("/:id/approve", copyCtl.ApproveBorrow)
		copiesAdmin.POST("/:id/renew", copyCtl.RenewLoan)
		copiesAdmin.POST("/:id/return", copyCtl.MarkReturned)
	}

	// Any signed-in user: browse the shelf, request loans, check their own
	copies := r.Group("/api/copies", authMW)
	{
		copies.GET("/available", copyCtl.ListAvailable)
		copies.GET("/mine", copyCtl.ListMine)
		copies.GET("/:id", copyCtl.GetCopy)
		copies.POST("/:id/borrow", copyCtl.BorrowRequest)
	}
}
