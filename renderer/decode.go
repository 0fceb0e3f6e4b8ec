package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/webp"
)

// Decode 按文件头识别 PNG、JPEG、GIF、WebP，其余数据按 TGA 解码。
// TGA 没有可靠的魔数，因此不经过 image.Decode 的格式注册表。
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("图像数据为空")
	}
	r := bytes.NewReader(data)
	var (
		img  image.Image
		name string
		err  error
	)
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		name = "png"
		img, err = png.Decode(r)
	case bytes.HasPrefix(data, []byte{0xff, 0xd8}):
		name = "jpeg"
		img, err = jpeg.Decode(r)
	case bytes.HasPrefix(data, []byte("GIF8")):
		name = "gif"
		img, err = gif.Decode(r)
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		name = "webp"
		img, err = webp.Decode(r)
	default:
		name = "tga"
		img, err = tga.Decode(r)
	}
	if err != nil {
		return nil, name, fmt.Errorf("解码 %s 图像失败: %w", name, err)
	}
	return img, name, nil
}
