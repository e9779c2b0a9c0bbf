package routes

import (
	"project/backend/config"
	"project/backend/controllers"
	"project/backend/middleware"
	"project/backend/validators"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)
	instructorMiddleware := middleware.InstructorMiddleware(db, cfg)

	// Profile routes
	app.Get("/api/user/profile", authMiddleware, authController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, authController.UpdateProfile)

	// Public catalog
	coursesController := controllers.NewCoursesController(db, cfg)
	categoriesController := controllers.NewCategoriesController(db, cfg)
	app.Get("/api/courses", validators.CourseList(cfg), coursesController.List)
	app.Get("/api/courses/:id", coursesController.Detail)
	app.Get("/api/courses/:id/reviews", coursesController.ListReviews)
	app.Get("/api/categories", categoriesController.Tree)
	app.Get("/api/categories/:id", validators.CourseList(cfg), categoriesController.Courses)

	// Enrollment and reviews. Registered route-by-route because the
	// /api/courses prefix also serves public catalog GETs; a group-level
	// auth middleware would shadow those.
	app.Post("/api/courses/:id/enroll", authMiddleware, coursesController.Enroll)
	app.Delete("/api/courses/:id/enroll", authMiddleware, coursesController.Unenroll)
	app.Post("/api/courses/:id/reviews", authMiddleware, validators.AddReview(), coursesController.AddReview)
	app.Delete("/api/courses/:id/reviews", authMiddleware, coursesController.DeleteReview)

	watchlistController := controllers.NewWatchlistController(db, cfg)
	watchlist := app.Group("/api/watchlist", authMiddleware)
	watchlist.Get("/", watchlistController.List)
	watchlist.Post("/:id", watchlistController.Add)
	watchlist.Delete("/:id", watchlistController.Remove)

	// Learning
	learnController := controllers.NewLearnController(db, cfg)
	app.Get("/api/my/courses", authMiddleware, coursesController.MyCourses)
	app.Get("/api/my/courses/:id/progress", authMiddleware, learnController.CourseProgress)
	learn := app.Group("/api/learn", authMiddleware)
	learn.Get("/:lessonId", learnController.GetLesson)
	learn.Post("/:lessonId/progress", validators.UpdateProgress(), learnController.UpdateProgress)
	learn.Post("/:lessonId/complete", learnController.Complete)
	learn.Post("/:lessonId/uncomplete", learnController.Uncomplete)

	// Instructor course authoring
	instructorController := controllers.NewInstructorController(db, cfg)
	teach := app.Group("/api/teach/courses", authMiddleware, instructorMiddleware)
	teach.Get("/", instructorController.MyCourses)
	teach.Post("/", validators.CreateCourse(), instructorController.CreateCourse)
	teach.Put("/:id", validators.UpdateCourse(), instructorController.UpdateCourse)
	teach.Post("/:id/publish", instructorController.Publish)
	teach.Post("/:id/sections", validators.SectionBody(true), instructorController.AddSection)
	teach.Put("/:id/sections/:sectionId", validators.SectionBody(false), instructorController.UpdateSection)
	teach.Delete("/:id/sections/:sectionId", instructorController.DeleteSection)
	teach.Post("/:id/sections/:sectionId/lessons", validators.LessonBody(true), instructorController.AddLesson)
	teach.Put("/:id/lessons/:lessonId", validators.LessonBody(false), instructorController.UpdateLesson)
	teach.Delete("/:id/lessons/:lessonId", instructorController.DeleteLesson)

	// Admin CRUD
	adminController := controllers.NewAdminController(db, cfg)
	admin := app.Group("/api/admin", authMiddleware, adminMiddleware)
	admin.Get("/users", adminController.ListUsers)
	admin.Put("/users/:id/role", validators.RoleBody(), adminController.UpdateUserRole)
	admin.Delete("/users/:id", adminController.DeleteUser)
	admin.Post("/categories", validators.CategoryBody(true), adminController.CreateCategory)
	admin.Put("/categories/:id", validators.CategoryBody(false), adminController.UpdateCategory)
	admin.Delete("/categories/:id", adminController.DeleteCategory)
	admin.Get("/courses", adminController.ListCourses)
	admin.Put("/courses/:id/status", validators.StatusBody(), adminController.UpdateCourseStatus)
	admin.Delete("/courses/:id", adminController.DeleteCourse)
}
