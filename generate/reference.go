package generate

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/ByLCY/coverstudio/renderer"
)

const (
	// MaxReferenceDim 是参考图最长边的上限。
	MaxReferenceDim  = 1024
	referenceQuality = 70
)

// PrepareReference 解码参考图，最长边缩到 1024px 以内，铺白底后编码为 JPEG。
func PrepareReference(data []byte) (Reference, error) {
	src, _, err := renderer.Decode(data)
	if err != nil {
		return Reference{}, fmt.Errorf("解码参考图失败: %w", err)
	}
	w, h := fitWithin(src.Bounds().Dx(), src.Bounds().Dy(), MaxReferenceDim)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: referenceQuality}); err != nil {
		return Reference{}, fmt.Errorf("编码参考图失败: %w", err)
	}
	return Reference{Data: buf.Bytes(), MIMEType: "image/jpeg"}, nil
}

func fitWithin(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	scale := float64(limit) / float64(max(w, h))
	return int(math.Round(float64(w) * scale)), int(math.Round(float64(h) * scale))
}
