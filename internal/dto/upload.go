package dto

import (
	"errors"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const MaxImageSize = 5 << 20

var (
	ErrImageTooLarge = errors.New("image must be 5MB or smaller")
	ErrNotAnImage    = errors.New("only image files are allowed")
)

// ImageFromForm opens the named image file of a multipart request. It returns
// a nil file when the request is not multipart or carries no such field.
func ImageFromForm(c *fiber.Ctx, field string) (multipart.File, error) {
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	files := form.File[field]
	if len(files) == 0 {
		return nil, nil
	}

	fh := files[0]
	if fh.Size > MaxImageSize {
		return nil, ErrImageTooLarge
	}
	if !strings.HasPrefix(fh.Header.Get(fiber.HeaderContentType), "image/") {
		return nil, ErrNotAnImage
	}
	return fh.Open()
}
