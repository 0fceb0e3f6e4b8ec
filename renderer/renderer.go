// Package renderer 定义绘制栈的输出格式与位图编码。
package renderer

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/HugoSmits86/nativewebp"

	"github.com/ByLCY/coverstudio/scene"
)

// Format 是输出格式。
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
	FormatPDF  Format = "pdf"
)

// JPEGQuality 是 JPEG 输出质量。
const JPEGQuality = 92

// Renderer 将绘制栈输出为最终文件，例如 PNG 或 PDF。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(stack scene.Stack, format Format) ([]byte, error)
}

// ParseFormat 解析格式名或扩展名，空字符串视为 png。
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "webp":
		return FormatWebP, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("不支持的输出格式 %q", s)
}

// ContentType 返回 MIME 类型。
func (f Format) ContentType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatWebP:
		return "image/webp"
	case FormatPDF:
		return "application/pdf"
	default:
		return "image/png"
	}
}

// Ext 返回文件扩展名（含点）。
func (f Format) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// Bitmap 判断是否为位图格式。
func (f Format) Bitmap() bool { return f != FormatPDF }

// Encode 把位图编码为指定格式。
func Encode(img image.Image, format Format) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("图像为空")
	}
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(&buf, img)
	case FormatJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality})
	case FormatWebP:
		err = nativewebp.Encode(&buf, img, nil)
	default:
		return nil, fmt.Errorf("%s 不是位图格式", format)
	}
	if err != nil {
		return nil, fmt.Errorf("编码 %s 失败: %w", format, err)
	}
	return buf.Bytes(), nil
}
