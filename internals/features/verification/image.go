// internals/features/verification/image.go
package verification

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	"image/png"
	"log"
	"net/http"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// Frame yang dikirim ke face service dinormalisasi: decode, downscale
// ke maks 640px, re-encode WebP. Interpretasi pixel tetap urusan face
// service; di sini cuma soal ukuran payload.
const maxImageDimension = 640

// NormalizeImage menerima payload base64 (boleh berprefix data URL) dan
// mengembalikan WebP base64. Best-effort: kalau gagal decode, payload
// asli diteruskan apa adanya.
func NormalizeImage(b64 string) string {
	raw := b64
	if idx := strings.Index(raw, ","); idx >= 0 && strings.HasPrefix(raw, "data:") {
		raw = raw[idx+1:]
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return b64
	}

	img, err := decodeImage(data)
	if err != nil {
		log.Printf("[WARN] normalize image: %v", err)
		return b64
	}

	img = imaging.Fit(img, maxImageDimension, maxImageDimension, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: 80}); err != nil {
		log.Printf("[WARN] normalize image encode: %v", err)
		return b64
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func decodeImage(all []byte) (image.Image, error) {
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	switch {
	case strings.Contains(ct, "jpeg"):
		return jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		return png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(all))
	default:
		// terakhir: coba decoder generik
		img, _, err := image.Decode(bytes.NewReader(all))
		return img, err
	}
}
