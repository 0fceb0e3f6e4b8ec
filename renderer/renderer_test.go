package renderer

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"":      FormatPNG,
		"PNG":   FormatPNG,
		".jpg":  FormatJPEG,
		"jpeg":  FormatJPEG,
		"webp":  FormatWebP,
		" pdf ": FormatPDF,
	}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v; 期望 %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("tiff"); err == nil {
		t.Fatalf("不支持的格式应报错")
	}
}

func TestEncodeSignatures(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 30), B: 128, A: 255})
		}
	}
	cases := []struct {
		format Format
		magic  []byte
	}{
		{FormatPNG, []byte("\x89PNG")},
		{FormatJPEG, []byte{0xFF, 0xD8}},
		{FormatWebP, []byte("RIFF")},
	}
	for _, c := range cases {
		data, err := Encode(img, c.format)
		if err != nil {
			t.Fatalf("编码 %s 失败: %v", c.format, err)
		}
		if !bytes.HasPrefix(data, c.magic) {
			t.Fatalf("%s 文件头错误: % x", c.format, data[:4])
		}
	}
	if _, err := Encode(img, FormatPDF); err == nil {
		t.Fatalf("PDF 不是位图格式，应报错")
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	for _, f := range []Format{FormatPNG, FormatJPEG, FormatWebP} {
		data, err := Encode(img, f)
		if err != nil {
			t.Fatalf("编码 %s 失败: %v", f, err)
		}
		out, name, err := Decode(data)
		if err != nil {
			t.Fatalf("解码 %s 失败: %v", f, err)
		}
		if name != string(f) {
			t.Fatalf("格式识别错误: %s != %s", name, f)
		}
		if b := out.Bounds(); b.Dx() != 6 || b.Dy() != 4 {
			t.Fatalf("%s 尺寸错误: %v", f, b)
		}
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, _, err := Decode(nil); err == nil {
		t.Fatalf("空数据应报错")
	}
	if _, _, err := Decode([]byte("garbage")); err == nil {
		t.Fatalf("无法识别的数据应报错")
	}
}
