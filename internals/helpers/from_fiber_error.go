package helper

import "github.com/gofiber/fiber/v2"

// FromFiberError mengubah *fiber.Error (helper token, router 404/405)
// menjadi response JSON konsisten via helper.Error. Dipasang sebagai
// ErrorHandler aplikasi di main.go.
// Jika bukan *fiber.Error, fallback ke 500 dengan pesan asli.
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return Error(c, fe.Code, fe.Message)
	}
	return Error(c, fiber.StatusInternalServerError, err.Error())
}
