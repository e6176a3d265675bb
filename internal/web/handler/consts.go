package handler

const (
	// APIPath is the prefix of every JSON endpoint.
	APIPath = "/api"

	// PublicPath is the prefix of the storefront endpoints.
	PublicPath = APIPath + "/public"

	// AdminPath is the prefix of the endpoints that require a shop access key.
	AdminPath = APIPath + "/admin"

	// HeaderShopDomain names the shop of an admin request.
	HeaderShopDomain = "X-Shop-Domain"

	// LocalsShop is the fiber.Locals key of the authenticated, normalized shop.
	LocalsShop = "shop"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
