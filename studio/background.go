package studio

import (
	"encoding/base64"
	"fmt"
	"image"
	"math"
	"net/url"
	"os"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/ByLCY/coverstudio/layout"
	"github.com/ByLCY/coverstudio/renderer"
)

// DecodeBackground 读取背景图，src 可以是 data URI 或文件路径。
func DecodeBackground(src string) (image.Image, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(src, "data:") {
		data, _, err = ParseDataURI(src)
	} else {
		data, err = os.ReadFile(src)
	}
	if err != nil {
		return nil, fmt.Errorf("读取背景图失败: %w", err)
	}
	img, _, err := renderer.Decode(data)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// ParseDataURI 解析 data:[<mime>][;base64],<data>。
func ParseDataURI(uri string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, "", fmt.Errorf("不是 data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", fmt.Errorf("data URI 缺少数据部分")
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if mime == "" {
		mime = "text/plain"
	}
	if isBase64 {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("data URI base64 解码失败: %w", err)
		}
		return data, mime, nil
	}
	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", fmt.Errorf("data URI 解码失败: %w", err)
	}
	return []byte(text), mime, nil
}

// CoverFit 以居中裁切的方式把图像缩放到画布尺寸，等同 object-cover。
func CoverFit(img image.Image, canvas layout.Canvas) image.Image {
	w, h := int(math.Round(canvas.Width)), int(math.Round(canvas.Height))
	if w <= 0 || h <= 0 {
		return img
	}
	if b := img.Bounds(); b.Dx() == w && b.Dy() == h {
		return img
	}
	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
}
