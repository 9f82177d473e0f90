package router

import (
	"github.com/gofiber/fiber/v3"

	"order_commerce/internal/api/middleware"
)

// ============================================================================
// LƯU Ý: FIBER V3 - CÁCH ĐĂNG KÝ MIDDLEWARE
// ============================================================================
//
// Không đăng ký middleware trực tiếp trong route:
//
//	router.Get("/path", middleware.AuthMiddleware(), handler) // middleware KHÔNG được gọi
//
// Phải đăng ký qua group + .Use():
//
//	RegisterRouteWithMiddleware(router, "/prefix", "GET", "/path", []fiber.Handler{authMiddleware}, handler)
//
// ============================================================================

// CRUDHandler định nghĩa interface cho các handler CRUD.
// BaseHandler của mọi resource thỏa mãn interface này.
type CRUDHandler interface {
	// Create
	InsertOne(c fiber.Ctx) error

	// Read
	Find(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	Count(c fiber.Ctx) error

	// Update
	UpdateById(c fiber.Ctx) error
	PartialUpdateById(c fiber.Ctx) error
}

// Router quản lý việc định tuyến cho API
type Router struct {
	app *fiber.App
}

// CRUDConfig cấu hình các operation được phép cho mỗi resource
type CRUDConfig struct {
	Create        bool // POST /create
	List          bool // POST /list
	GetById       bool // GET /:id
	Count         bool // POST /count
	Update        bool // PUT /update/:id
	PartialUpdate bool // PUT /partial-update/:id
}

// ReadWriteConfig cho phép đầy đủ các operation của resource
var ReadWriteConfig = CRUDConfig{
	Create: true, List: true, GetById: true,
	Count: true, Update: true, PartialUpdate: true,
}

// ReadOnlyConfig chỉ cho phép đọc (list, get, count)
var ReadOnlyConfig = CRUDConfig{
	Create: false, List: true, GetById: true,
	Count: true, Update: false, PartialUpdate: false,
}

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter tạo mới một instance của Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware đăng ký route với middleware qua group + .Use()
// (cách duy nhất hoạt động đúng trong Fiber v3, xem ghi chú đầu file)
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	// Tạo group với prefix, middleware chỉ áp dụng cho routes trong group này
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	// Đăng ký route với path tương đối (không có prefix vì đã có trong group)
	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// RegisterCRUDRoutes đăng ký các route CRUD cho một resource.
// Mọi route đều yêu cầu xác thực, handler cần user_id để stamp addedBy/updatedBy.
//
// Route được đăng ký theo thứ tự path tĩnh trước, path có param sau
// để GET /:id không nuốt các path tĩnh.
func (r *Router) RegisterCRUDRoutes(router fiber.Router, prefix string, h CRUDHandler, config CRUDConfig) {
	authMiddleware := middleware.AuthMiddleware()

	// Create operations
	if config.Create {
		RegisterRouteWithMiddleware(router, prefix, "POST", "/create", []fiber.Handler{authMiddleware}, h.InsertOne)
	}

	// Read operations
	if config.List {
		RegisterRouteWithMiddleware(router, prefix, "POST", "/list", []fiber.Handler{authMiddleware}, h.Find)
	}
	if config.Count {
		RegisterRouteWithMiddleware(router, prefix, "POST", "/count", []fiber.Handler{authMiddleware}, h.Count)
	}

	// Update operations
	if config.Update {
		RegisterRouteWithMiddleware(router, prefix, "PUT", "/update/:id", []fiber.Handler{authMiddleware}, h.UpdateById)
	}
	if config.PartialUpdate {
		RegisterRouteWithMiddleware(router, prefix, "PUT", "/partial-update/:id", []fiber.Handler{authMiddleware}, h.PartialUpdateById)
	}

	// GET /:id đăng ký cuối cùng
	if config.GetById {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/:id", []fiber.Handler{authMiddleware}, h.FindOneById)
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng. Caller truyền lần lượt
// Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
